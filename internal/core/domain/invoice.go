package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice amounts are stored in minor currency units (cents) to avoid
// floating-point rounding.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
	Date        time.Time // calendar date, no time component
}

// InvoiceWithCustomer is the listing row: an invoice joined to the
// customer it bills.
type InvoiceWithCustomer struct {
	Invoice
	CustomerName  string
	CustomerEmail string
}
