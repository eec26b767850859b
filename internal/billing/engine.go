// Package billing holds the transaction engine: validation, public reference
// minting and the orchestration of atomic bill commits against the store.
package billing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/cache"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/publicid"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store"
)

type Config struct {
	LoyaltyEarnRateCents int64
	LowStockThreshold    int
	TopProductsLimit     int
	DashboardCacheTTL    time.Duration
}

type Service struct {
	repo   store.Repository
	cache  cache.DashboardCache
	config Config
}

func New(repo store.Repository, dashboardCache cache.DashboardCache, config Config) *Service {
	if dashboardCache == nil {
		dashboardCache = cache.NoopDashboardCache{}
	}
	if config.LoyaltyEarnRateCents < 1 {
		config.LoyaltyEarnRateCents = 10000
	}
	if config.LowStockThreshold < 0 {
		config.LowStockThreshold = 0
	}
	if config.TopProductsLimit < 1 {
		config.TopProductsLimit = 5
	}
	return &Service{repo: repo, cache: dashboardCache, config: config}
}

func (s *Service) ListProducts(ctx context.Context, search string, category string) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, search, category)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.ToUpper(strings.TrimSpace(req.SKU))
	req.Category = strings.TrimSpace(req.Category)

	if req.Name == "" || req.SKU == "" {
		return nil, fmt.Errorf("%w: name and sku are required", store.ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", store.ErrValidation)
	}
	if req.PurchasePriceCents < 0 || req.SellingPriceCents < 1 {
		return nil, fmt.Errorf("%w: selling price must be positive", store.ErrValidation)
	}
	if req.TaxRatePercent < 0 || req.TaxRatePercent > 100 {
		return nil, fmt.Errorf("%w: tax rate must be between 0 and 100", store.ErrValidation)
	}
	expiry, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateProduct(ctx, domain.Product{
		Name:               req.Name,
		SKU:                req.SKU,
		Category:           req.Category,
		StockQuantity:      req.StockQuantity,
		PurchasePriceCents: req.PurchasePriceCents,
		SellingPriceCents:  req.SellingPriceCents,
		TaxRatePercent:     req.TaxRatePercent,
		SupplierID:         req.SupplierID,
		ExpiryDate:         expiry,
	})
}

// parseExpiryDate accepts a calendar date; an empty value means no expiry.
func parseExpiryDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry date must be YYYY-MM-DD", store.ErrValidation)
	}
	d := parsed.UTC()
	return &d, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductUpdateRequest) (*domain.Product, error) {
	existing, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product := *existing
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
		if product.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", store.ErrValidation)
		}
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.PurchasePriceCents != nil {
		if *req.PurchasePriceCents < 0 {
			return nil, fmt.Errorf("%w: purchase price cannot be negative", store.ErrValidation)
		}
		product.PurchasePriceCents = *req.PurchasePriceCents
	}
	if req.SellingPriceCents != nil {
		if *req.SellingPriceCents < 1 {
			return nil, fmt.Errorf("%w: selling price must be positive", store.ErrValidation)
		}
		product.SellingPriceCents = *req.SellingPriceCents
	}
	if req.TaxRatePercent != nil {
		if *req.TaxRatePercent < 0 || *req.TaxRatePercent > 100 {
			return nil, fmt.Errorf("%w: tax rate must be between 0 and 100", store.ErrValidation)
		}
		product.TaxRatePercent = *req.TaxRatePercent
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}
	if req.ExpiryDate != nil {
		expiry, err := parseExpiryDate(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		product.ExpiryDate = expiry
	}

	return s.repo.UpdateProduct(ctx, product)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) Restock(ctx context.Context, id string, quantity int) (*domain.Product, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", store.ErrValidation)
	}
	if _, err := s.repo.AdjustStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx, search)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) CreateCustomer(ctx context.Context, req domain.CustomerCreateRequest) (*domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", store.ErrValidation)
	}

	return s.repo.CreateCustomer(ctx, domain.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
}

// CreateBill runs the whole checkout as one unit of work. The engine mints
// the bill identity (uuid plus opaque public reference) before delegating to
// the store, but nothing minted here escapes unless the store commit
// succeeds. Prices and totals always come from the catalog rows locked
// inside the store, never from the request.
func (s *Service) CreateBill(ctx context.Context, actor domain.Actor, req domain.BillCreateRequest) (*domain.Bill, error) {
	if !req.PaymentMode.Valid() {
		return nil, fmt.Errorf("%w: unsupported payment mode %q", store.ErrValidation, req.PaymentMode)
	}
	if req.DiscountCents < 0 {
		return nil, fmt.Errorf("%w: discount cannot be negative", store.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", store.ErrValidation)
	}

	lines, err := mergeCartLines(req.Items)
	if err != nil {
		return nil, err
	}

	var customerID *string
	if req.CustomerID != nil && strings.TrimSpace(*req.CustomerID) != "" {
		id := strings.TrimSpace(*req.CustomerID)
		if _, err := s.repo.GetCustomer(ctx, id); err != nil {
			return nil, fmt.Errorf("customer %s: %w", id, err)
		}
		customerID = &id
	}

	publicID, err := publicid.New()
	if err != nil {
		return nil, fmt.Errorf("mint public reference: %w", err)
	}

	draft := domain.Bill{
		ID:                 uuid.NewString(),
		PublicID:           publicID,
		CustomerID:         customerID,
		PaymentMode:        req.PaymentMode,
		DiscountTotalCents: req.DiscountCents,
		CreatedByUserID:    actor.UserID,
		CreatedAt:          time.Now().UTC(),
		Items:              lines,
	}

	bill, err := s.repo.CreateBill(ctx, draft, s.config.LoyaltyEarnRateCents)
	if err != nil {
		return nil, err
	}

	log.Printf("[billing] bill %s committed: %d line(s), grand total %d cents", bill.BillNumber, len(bill.Items), bill.GrandTotalCents)
	return bill, nil
}

// mergeCartLines collapses duplicate product lines into one so the stock
// check sees the combined quantity.
func mergeCartLines(items []domain.CartLine) ([]domain.BillItem, error) {
	merged := make([]domain.BillItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, line := range items {
		productID := strings.TrimSpace(line.ProductID)
		if productID == "" {
			return nil, fmt.Errorf("%w: cart line missing product id", store.ErrValidation)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", store.ErrValidation)
		}
		if at, seen := index[productID]; seen {
			merged[at].Quantity += line.Quantity
			continue
		}
		index[productID] = len(merged)
		merged = append(merged, domain.BillItem{ProductID: productID, Quantity: line.Quantity})
	}
	return merged, nil
}

func (s *Service) ListBills(ctx context.Context, limit int) ([]domain.Bill, error) {
	return s.repo.ListBills(ctx, limit)
}

// PublicBill resolves a bill by its opaque public reference. The lookup is
// unauthenticated, so the reference itself is the only credential.
func (s *Service) PublicBill(ctx context.Context, publicID string) (*domain.PublicBillResponse, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return nil, store.ErrNotFound
	}
	bill, err := s.repo.GetBillByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return &domain.PublicBillResponse{Bill: *bill, Items: bill.Items}, nil
}

const dashboardCacheKey = "dashboard:today"

func (s *Service) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	if cached, ok, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && ok {
		return *cached, nil
	} else if err != nil {
		log.Printf("[billing] dashboard cache read failed: %v", err)
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	stats, err := s.repo.GetDashboardStats(ctx, from, to, s.config.TopProductsLimit, s.config.LowStockThreshold)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, &stats, s.config.DashboardCacheTTL); err != nil {
		log.Printf("[billing] dashboard cache write failed: %v", err)
	}

	return stats, nil
}
