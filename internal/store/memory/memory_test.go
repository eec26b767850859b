package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store"
)

func TestAdjustStockNeverGoesNegative(t *testing.T) {
	s := New()
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, domain.Product{Name: "Test", SKU: "T001", SellingPriceCents: 100, StockQuantity: 3})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if _, err := s.AdjustStock(ctx, p.ID, -5); !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.StockQuantity != 3 {
		t.Fatalf("stock changed on rejected adjustment: got %d, want 3", got.StockQuantity)
	}
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateProduct(ctx, domain.Product{Name: "A", SKU: "DUP", SellingPriceCents: 100}); err != nil {
		t.Fatalf("first CreateProduct: %v", err)
	}
	if _, err := s.CreateProduct(ctx, domain.Product{Name: "B", SKU: "DUP", SellingPriceCents: 200}); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate sku, got %v", err)
	}
}

func TestCreateBillDuplicateLinesLeaveStockUntouched(t *testing.T) {
	s := New()
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, domain.Product{Name: "Test", SKU: "T001", SellingPriceCents: 100, StockQuantity: 5})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	draft := domain.Bill{
		ID:          "bill-1",
		PublicID:    "pub-1",
		PaymentMode: domain.PaymentCash,
		Items: []domain.BillItem{
			{ProductID: p.ID, Quantity: 3},
			{ProductID: p.ID, Quantity: 3},
		},
	}
	if _, err := s.CreateBill(ctx, draft, 10000); !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.StockQuantity != 5 {
		t.Fatalf("stock changed on rejected bill: got %d, want 5", got.StockQuantity)
	}

	bills, err := s.ListBills(ctx, 10)
	if err != nil {
		t.Fatalf("ListBills: %v", err)
	}
	if len(bills) != 0 {
		t.Fatalf("expected no bills after rejection, got %d", len(bills))
	}
}

func TestSeededStoreHasAdminAndCatalog(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	products, err := s.ListProducts(ctx, "", "")
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 seeded products, got %d", len(products))
	}

	if _, err := s.GetUserByUsername(ctx, "admin"); err != nil {
		t.Fatalf("expected seeded admin user, got %v", err)
	}
}

func TestListProductsFiltersBySearchAndCategory(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	byName, err := s.ListProducts(ctx, "milk", "")
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(byName) != 1 || byName[0].SKU != "MILK001" {
		t.Fatalf("searchmatch: got %+v", byName)
	}

	byCategory, err := s.ListProducts(ctx, "", "Bakery")
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].SKU != "BRD001" {
		t.Fatalf("category match: got %+v", byCategory)
	}
}
