package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/acme/invoicehub/internal/core/domain"
	"github.com/acme/invoicehub/internal/port"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/invoicehub?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func ensureTestCustomer(t *testing.T, db *sql.DB, id string) {
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO customers (id, name, email) VALUES (?, 'Test Customer', 'customer@test.local')
		ON DUPLICATE KEY UPDATE name = 'Test Customer'`, id)
	if err != nil {
		t.Fatalf("setup customer failed: %v", err)
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	customerID := "test-customer-lifecycle"
	ensureTestCustomer(t, db, customerID)

	inv := domain.Invoice{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		AmountCents: 4999,
		Status:      domain.InvoiceStatusPending,
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	defer db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, inv.ID)

	if err := adapter.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	got, err := adapter.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected invoice, got nil")
	}
	if got.AmountCents != 4999 || got.Status != domain.InvoiceStatusPending {
		t.Errorf("unexpected invoice: %+v", got)
	}

	inv.AmountCents = 12050
	inv.Status = domain.InvoiceStatusPaid
	if err := adapter.UpdateInvoice(ctx, inv); err != nil {
		t.Fatalf("UpdateInvoice failed: %v", err)
	}

	got, err = adapter.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice after update failed: %v", err)
	}
	if got.AmountCents != 12050 || got.Status != domain.InvoiceStatusPaid {
		t.Errorf("update not applied: %+v", got)
	}

	listing, err := adapter.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	found := false
	for _, row := range listing {
		if row.ID == inv.ID {
			found = true
			if row.CustomerName != "Test Customer" {
				t.Errorf("expected joined customer name, got %q", row.CustomerName)
			}
		}
	}
	if !found {
		t.Error("created invoice missing from listing")
	}

	if err := adapter.DeleteInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("DeleteInvoice failed: %v", err)
	}

	got, err = adapter.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice after delete failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestDeleteInvoice_Nonexistent(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	adapter := NewMySQLAdapter(db)
	if err := adapter.DeleteInvoice(context.Background(), "no-such-invoice"); err != nil {
		t.Errorf("deleting a nonexistent id must not fail: %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	email := "dup-" + uuid.NewString() + "@test.local"
	defer db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email)

	first := domain.User{ID: uuid.NewString(), Name: "First", Email: email, PasswordHash: "x"}
	if err := adapter.CreateUser(ctx, first); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	second := domain.User{ID: uuid.NewString(), Name: "Second", Email: email, PasswordHash: "y"}
	if err := adapter.CreateUser(ctx, second); !errors.Is(err, port.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	adapter := NewMySQLAdapter(db)
	user, err := adapter.GetUserByEmail(context.Background(), "nobody@test.local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Error("expected nil for unknown email")
	}
}
