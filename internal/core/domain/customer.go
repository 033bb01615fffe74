package domain

// Customer is referenced by invoices but never mutated here.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}
