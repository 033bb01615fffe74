package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route behind the session guard. The guard runs on
// public routes too: it is what bounces a signed-in user away from the
// login and sign-up pages.
func NewRouter(h *HTTPHandler, guard *SessionGuard) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.SignUp).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	r.HandleFunc("/dashboard/invoices", h.ListInvoices).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/invoices", h.CreateInvoice).Methods(http.MethodPost)
	r.HandleFunc("/dashboard/invoices/{id}", h.GetInvoice).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/invoices/{id}", h.UpdateInvoice).Methods(http.MethodPost)
	r.HandleFunc("/dashboard/invoices/{id}/delete", h.DeleteInvoice).Methods(http.MethodPost)
	r.HandleFunc("/dashboard/customers", h.ListCustomers).Methods(http.MethodGet)

	return guard.Middleware(r)
}
