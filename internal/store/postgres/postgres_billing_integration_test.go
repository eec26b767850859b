package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store"
)

func TestCreateBillDecrementsStockAtomically(t *testing.T) {
	databaseURL := os.Getenv("BILLFLOW_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set BILLFLOW_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	stamp := time.Now().UnixNano()
	sku := fmt.Sprintf("SKU-BILL-IT-%d", stamp)
	productID := uuid.NewString()
	customerID := uuid.NewString()

	t.Cleanup(func() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM bill_items WHERE product_id = $1`, productID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM bills WHERE customer_id = $1`, customerID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	})

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, sku, category, stock_quantity, purchase_price_cents, selling_price_cents,
			tax_rate_percent, created_at, updated_at
		)
		VALUES ($1, 'Bill IT Product', $2, 'snack', 5, 3000, 5000, 5, now(), now())
	`, productID, sku); err != nil {
		t.Fatalf("insert product: %v", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, loyalty_points, created_at)
		VALUES ($1, 'Bill IT Customer', $2, 0, now())
	`, customerID, fmt.Sprintf("99%d", stamp%100000000)); err != nil {
		t.Fatalf("insert customer: %v", err)
	}

	draft := domain.Bill{
		ID:          uuid.NewString(),
		PublicID:    fmt.Sprintf("%032x", stamp),
		CustomerID:  &customerID,
		PaymentMode: domain.PaymentCash,
		Items: []domain.BillItem{
			{ProductID: productID, Quantity: 5},
		},
	}

	bill, err := s.CreateBill(ctx, draft, 10000)
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	// 5 x 5000 = 25000 subtotal, 5% tax = 1250, grand 26250, 2 loyalty points.
	if bill.GrandTotalCents != 26250 {
		t.Fatalf("expected grand total 26250, got %d", bill.GrandTotalCents)
	}
	if bill.LoyaltyEarned != 2 {
		t.Fatalf("expected 2 loyalty points, got %d", bill.LoyaltyEarned)
	}

	var stock int
	if err := s.db.QueryRowContext(ctx, `
		SELECT stock_quantity FROM products WHERE id = $1
	`, productID).Scan(&stock); err != nil {
		t.Fatalf("query stock: %v", err)
	}
	if stock != 0 {
		t.Fatalf("expected stock 0 after bill, got %d", stock)
	}

	var points int
	if err := s.db.QueryRowContext(ctx, `
		SELECT loyalty_points FROM customers WHERE id = $1
	`, customerID).Scan(&points); err != nil {
		t.Fatalf("query loyalty: %v", err)
	}
	if points != 2 {
		t.Fatalf("expected 2 loyalty points on customer, got %d", points)
	}

	// Oversell against the now-empty product must reject without side effects.
	over := domain.Bill{
		ID:          uuid.NewString(),
		PublicID:    fmt.Sprintf("%032x", stamp+1),
		PaymentMode: domain.PaymentCash,
		Items: []domain.BillItem{
			{ProductID: productID, Quantity: 1},
		},
	}
	if _, err := s.CreateBill(ctx, over, 10000); !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bills WHERE id = $1
	`, over.ID).Scan(&count); err != nil {
		t.Fatalf("query bills: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected bill must not be persisted, found %d rows", count)
	}
}

func TestCreateBillDuplicateLinesRollBack(t *testing.T) {
	databaseURL := os.Getenv("BILLFLOW_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set BILLFLOW_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	stamp := time.Now().UnixNano()
	sku := fmt.Sprintf("SKU-DUP-IT-%d", stamp)
	productID := uuid.NewString()

	t.Cleanup(func() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM bill_items WHERE product_id = $1`, productID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	})

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, sku, category, stock_quantity, purchase_price_cents, selling_price_cents,
			tax_rate_percent, created_at, updated_at
		)
		VALUES ($1, 'Dup IT Product', $2, 'snack', 5, 3000, 5000, 0, now(), now())
	`, productID, sku); err != nil {
		t.Fatalf("insert product: %v", err)
	}

	// Two lines for the same product that only oversell combined. The whole
	// bill must fail and the first line's decrement must not survive.
	draft := domain.Bill{
		ID:          uuid.NewString(),
		PublicID:    fmt.Sprintf("%032x", stamp),
		PaymentMode: domain.PaymentCash,
		Items: []domain.BillItem{
			{ProductID: productID, Quantity: 3},
			{ProductID: productID, Quantity: 3},
		},
	}
	if _, err := s.CreateBill(ctx, draft, 10000); !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var stock int
	if err := s.db.QueryRowContext(ctx, `
		SELECT stock_quantity FROM products WHERE id = $1
	`, productID).Scan(&stock); err != nil {
		t.Fatalf("query stock: %v", err)
	}
	if stock != 5 {
		t.Fatalf("expected stock 5 after rejected bill, got %d", stock)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bills WHERE id = $1
	`, draft.ID).Scan(&count); err != nil {
		t.Fatalf("query bills: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected bill must not be persisted, found %d rows", count)
	}
}
