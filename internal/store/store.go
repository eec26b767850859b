package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation error")
)

// InsufficientStockError reports which product could not cover the requested
// quantity. errors.Is(err, ErrInsufficientStock) matches it.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type Repository interface {
	ListProducts(ctx context.Context, search string, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	// AdjustStock atomically applies delta to the product's stock quantity and
	// returns the new value. It rejects any adjustment that would leave the
	// quantity negative, independent of checks the caller already made.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)

	ListCustomers(ctx context.Context, search string) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	// AdjustLoyalty atomically applies delta to the customer's loyalty balance
	// and returns the new value. The balance never goes negative.
	AdjustLoyalty(ctx context.Context, id string, delta int) (int, error)

	// CreateBill commits one bill as a single atomic unit of work: stock
	// checks and decrements, bill number minting, bill + item inserts and
	// loyalty accrual all succeed or all roll back. The draft carries cart
	// lines (product id + quantity), the requested discount in
	// DiscountTotalCents, and a pre-minted ID and PublicID; prices, totals
	// and the recorded discount are computed inside the unit of work from
	// the catalog rows it locks.
	CreateBill(ctx context.Context, draft domain.Bill, loyaltyRateCents int64) (*domain.Bill, error)
	ListBills(ctx context.Context, limit int) ([]domain.Bill, error)
	GetBillByPublicID(ctx context.Context, publicID string) (*domain.Bill, error)

	// GetDashboardStats reads committed bills only.
	GetDashboardStats(ctx context.Context, from time.Time, to time.Time, topN int, lowStockThreshold int) (domain.DashboardStats, error)

	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
}
