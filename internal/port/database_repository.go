package port

import (
	"context"
	"errors"

	"github.com/acme/invoicehub/internal/core/domain"
)

// ErrDuplicateEmail is returned by CreateUser when the email uniqueness
// constraint rejects the insert. The constraint lives in the store, so
// concurrent sign-ups for the same email cannot both succeed.
var ErrDuplicateEmail = errors.New("email already in use")

type InvoiceRepository interface {
	// CreateInvoice persists a new invoice row.
	CreateInvoice(ctx context.Context, inv domain.Invoice) error

	// UpdateInvoice rewrites customer, amount and status by invoice ID.
	UpdateInvoice(ctx context.Context, inv domain.Invoice) error

	// DeleteInvoice removes the invoice by ID. Deleting a nonexistent ID
	// is not an error.
	DeleteInvoice(ctx context.Context, id string) error

	// GetInvoice retrieves an invoice by ID, nil if absent.
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)

	// ListInvoices returns all invoices joined to their customers,
	// newest first.
	ListInvoices(ctx context.Context) ([]domain.InvoiceWithCustomer, error)
}

type CustomerRepository interface {
	// ListCustomers returns all customers ordered by name.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

type UserRepository interface {
	// CreateUser inserts a new account; returns ErrDuplicateEmail when
	// the email is already registered.
	CreateUser(ctx context.Context, user domain.User) error

	// GetUserByEmail retrieves an account by email, nil if absent.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
