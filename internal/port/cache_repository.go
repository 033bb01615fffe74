package port

import "context"

// ListingCache holds the cached representation of the invoices listing.
// Mutations invalidate it; the next read repopulates it from the store.
type ListingCache interface {
	// GetInvoiceListing returns the cached listing payload and whether
	// one was present.
	GetInvoiceListing(ctx context.Context) ([]byte, bool, error)

	// SetInvoiceListing stores a fresh listing payload.
	SetInvoiceListing(ctx context.Context, payload []byte) error

	// InvalidateInvoiceListing drops the cached payload so the next view
	// recomputes it.
	InvalidateInvoiceListing(ctx context.Context) error
}
