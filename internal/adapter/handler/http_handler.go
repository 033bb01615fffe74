package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/acme/invoicehub/internal/core/domain"
	"github.com/acme/invoicehub/internal/core/service"
	"github.com/acme/invoicehub/internal/core/validation"
)

const (
	msgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	msgCreateDBError       = "Database Error: Failed to Create Invoice."
	msgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	msgUpdateDBError       = "Database Error: Failed to Update Invoice."
	msgSignUpMissingFields = "Missing Fields. Failed to sign up."
	msgEmailExists         = "User with this email already exists"
	msgUserCreated         = "User created successfully"
	msgSignUpDBError       = "Database Error: Failed to create user."
	msgInvalidCredentials  = "Invalid credentials."
	msgAuthGenericError    = "Something went wrong."
)

const dateLayout = "2006-01-02"

// HTTPHandler serves the dashboard's form actions and listing reads.
// Mutation endpoints consume HTML form encoding and answer with either a
// MutationState or a 303 redirect to the invoices listing.
type HTTPHandler struct {
	invoices *service.InvoiceService
	auth     *service.AuthService
	logger   *zap.Logger
}

func NewHTTPHandler(invoices *service.InvoiceService, auth *service.AuthService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{invoices: invoices, auth: auth, logger: logger}
}

// ---- invoice mutations ----

func (h *HTTPHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.MutationState{Message: msgCreateMissingFields})
		return
	}

	in, fieldErrs := validation.ParseInvoiceForm(r.PostForm)
	if fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, domain.MutationState{
			Errors:  fieldErrs,
			Message: msgCreateMissingFields,
		})
		return
	}

	if err := h.invoices.Create(r.Context(), in); err != nil {
		h.logger.Error("create invoice failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgCreateDBError})
		return
	}

	http.Redirect(w, r, "/dashboard/invoices", http.StatusSeeOther)
}

func (h *HTTPHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.MutationState{Message: msgUpdateMissingFields})
		return
	}

	in, fieldErrs := validation.ParseInvoiceForm(r.PostForm)
	if fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, domain.MutationState{
			Errors:  fieldErrs,
			Message: msgUpdateMissingFields,
		})
		return
	}

	if err := h.invoices.Update(r.Context(), id, in); err != nil {
		h.logger.Error("update invoice failed", zap.String("invoice_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgUpdateDBError})
		return
	}

	http.Redirect(w, r, "/dashboard/invoices", http.StatusSeeOther)
}

// DeleteInvoice swallows persistence failures: the policy for this
// low-stakes action is to log and carry on, so the client always lands
// back on the listing. The service still reports the error; only this
// handler decides to drop it.
func (h *HTTPHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.invoices.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete invoice failed", zap.String("invoice_id", id), zap.Error(err))
	}

	http.Redirect(w, r, "/dashboard/invoices", http.StatusSeeOther)
}

// ---- invoice reads ----

type invoiceRow struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

func (h *HTTPHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	listing, err := h.invoices.List(r.Context())
	if err != nil {
		h.logger.Error("list invoices failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgAuthGenericError})
		return
	}

	rows := make([]invoiceRow, 0, len(listing))
	for _, inv := range listing {
		rows = append(rows, invoiceRow{
			ID:            inv.ID,
			CustomerID:    inv.CustomerID,
			Amount:        inv.AmountCents,
			Status:        string(inv.Status),
			Date:          inv.Date.Format(dateLayout),
			CustomerName:  inv.CustomerName,
			CustomerEmail: inv.CustomerEmail,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *HTTPHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	inv, err := h.invoices.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get invoice failed", zap.String("invoice_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgAuthGenericError})
		return
	}
	if inv == nil {
		writeJSON(w, http.StatusNotFound, domain.MutationState{Message: "Invoice not found"})
		return
	}

	writeJSON(w, http.StatusOK, invoiceRow{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.AmountCents,
		Status:     string(inv.Status),
		Date:       inv.Date.Format(dateLayout),
	})
}

type customerRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *HTTPHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.invoices.Customers(r.Context())
	if err != nil {
		h.logger.Error("list customers failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgAuthGenericError})
		return
	}

	rows := make([]customerRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, customerRow{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	writeJSON(w, http.StatusOK, rows)
}

// ---- auth ----

func (h *HTTPHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.MutationState{Message: msgSignUpMissingFields})
		return
	}

	in, fieldErrs := validation.ParseSignUpForm(r.PostForm)
	if fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, domain.MutationState{
			Errors:  fieldErrs,
			Message: msgSignUpMissingFields,
		})
		return
	}

	if _, err := h.auth.SignUp(r.Context(), in); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeJSON(w, http.StatusConflict, domain.MutationState{Message: msgEmailExists})
			return
		}
		h.logger.Error("sign up failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgSignUpDBError})
		return
	}

	writeJSON(w, http.StatusCreated, domain.MutationState{Message: msgUserCreated, Success: true})
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusUnauthorized, domain.MutationState{Message: msgInvalidCredentials})
		return
	}

	creds, fieldErrs := validation.ParseLoginForm(r.PostForm)
	if fieldErrs != nil {
		writeJSON(w, http.StatusUnauthorized, domain.MutationState{Message: msgInvalidCredentials})
		return
	}

	user, err := h.auth.Authenticate(r.Context(), creds)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, domain.MutationState{Message: msgInvalidCredentials})
			return
		}
		h.logger.Error("authenticate failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgAuthGenericError})
		return
	}

	session, err := h.auth.IssueSession(*user)
	if err != nil {
		h.logger.Error("issue session failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, domain.MutationState{Message: msgAuthGenericError})
		return
	}

	http.SetCookie(w, sessionCookie(session))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := sessionCookie("")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
