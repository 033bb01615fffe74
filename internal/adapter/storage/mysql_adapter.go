package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/acme/invoicehub/internal/core/domain"
	"github.com/acme/invoicehub/internal/port"
)

// MySQL duplicate-key error number.
const mysqlErrDupEntry = 1062

// MySQLAdapter implements the invoice, customer and user repositories
// over a shared *sql.DB. Every statement is parameterized; input never
// reaches a query string.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) CreateInvoice(ctx context.Context, inv domain.Invoice) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) UpdateInvoice(ctx context.Context, inv domain.Invoice) error {
	_, err := m.db.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = ?, amount = ?, status = ?
		WHERE id = ?`,
		inv.CustomerID, inv.AmountCents, inv.Status, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) DeleteInvoice(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := m.db.QueryRowContext(ctx, `
		SELECT id, customer_id, amount, status, date
		FROM invoices WHERE id = ?`, id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.AmountCents, &inv.Status, &inv.Date)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query invoice: %w", err)
	}
	return &inv, nil
}

func (m *MySQLAdapter) ListInvoices(ctx context.Context) ([]domain.InvoiceWithCustomer, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT i.id, i.customer_id, i.amount, i.status, i.date, c.name, c.email
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.date DESC, i.id`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var listing []domain.InvoiceWithCustomer
	for rows.Next() {
		var row domain.InvoiceWithCustomer
		if err := rows.Scan(
			&row.ID, &row.CustomerID, &row.AmountCents, &row.Status, &row.Date,
			&row.CustomerName, &row.CustomerEmail,
		); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		listing = append(listing, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return listing, nil
}

func (m *MySQLAdapter) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, email, image_url
		FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (m *MySQLAdapter) CreateUser(ctx context.Context, user domain.User) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password)
		VALUES (?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDupEntry {
			return port.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, email, password
		FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}
