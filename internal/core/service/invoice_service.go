package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acme/invoicehub/internal/core/domain"
	"github.com/acme/invoicehub/internal/core/validation"
	"github.com/acme/invoicehub/internal/port"
)

// InvoiceService runs the invoice mutation pipeline: persist, then
// invalidate the cached listing. Validation happens before the service is
// called; persistence is attempted at most once per invocation.
type InvoiceService struct {
	invoices  port.InvoiceRepository
	customers port.CustomerRepository
	cache     port.ListingCache
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewInvoiceService(invoices port.InvoiceRepository, customers port.CustomerRepository, cache port.ListingCache, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		customers: customers,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Create inserts a new invoice stamped with a fresh ID and today's date.
func (s *InvoiceService) Create(ctx context.Context, in validation.InvoiceInput) error {
	inv := domain.Invoice{
		ID:          s.newID(),
		CustomerID:  in.CustomerID,
		AmountCents: in.AmountCents,
		Status:      in.Status,
		Date:        today(s.now()),
	}

	if err := s.invoices.CreateInvoice(ctx, inv); err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	s.invalidateListing(ctx)
	return nil
}

// Update rewrites an existing invoice's customer, amount and status.
func (s *InvoiceService) Update(ctx context.Context, id string, in validation.InvoiceInput) error {
	inv := domain.Invoice{
		ID:          id,
		CustomerID:  in.CustomerID,
		AmountCents: in.AmountCents,
		Status:      in.Status,
	}

	if err := s.invoices.UpdateInvoice(ctx, inv); err != nil {
		return fmt.Errorf("update invoice %s: %w", id, err)
	}

	s.invalidateListing(ctx)
	return nil
}

// Delete removes an invoice. It reports failure like any other mutation;
// whether to surface or swallow that failure is the caller's policy.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if err := s.invoices.DeleteInvoice(ctx, id); err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}

	s.invalidateListing(ctx)
	return nil
}

// List returns the invoices listing, reading through the cache: a hit is
// served as cached, a miss queries the store and repopulates the cache.
func (s *InvoiceService) List(ctx context.Context) ([]domain.InvoiceWithCustomer, error) {
	payload, ok, err := s.cache.GetInvoiceListing(ctx)
	if err != nil {
		s.logger.Warn("listing cache read failed", zap.Error(err))
	} else if ok {
		var listing []domain.InvoiceWithCustomer
		if err := json.Unmarshal(payload, &listing); err == nil {
			return listing, nil
		}
		s.logger.Warn("listing cache payload corrupt, falling back to store")
	}

	listing, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	if payload, err := json.Marshal(listing); err == nil {
		if err := s.cache.SetInvoiceListing(ctx, payload); err != nil {
			s.logger.Warn("listing cache write failed", zap.Error(err))
		}
	}

	return listing, nil
}

// Get retrieves a single invoice, nil if absent.
func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", id, err)
	}
	return inv, nil
}

// Customers returns the customer rows the invoice form's select renders.
func (s *InvoiceService) Customers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// invalidateListing is best effort: a stale cache entry self-heals on the
// next invalidation, and the mutation itself already succeeded.
func (s *InvoiceService) invalidateListing(ctx context.Context) {
	if err := s.cache.InvalidateInvoiceListing(ctx); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
