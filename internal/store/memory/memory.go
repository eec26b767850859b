package memory

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store"
)

// Store is an in-memory Repository used for dev mode and tests. All writes
// happen under one mutex, so each CreateBill runs as a single critical
// section: checks and effects cannot interleave with another bill.
type Store struct {
	mu              sync.RWMutex
	products        map[string]domain.Product
	customers       map[string]domain.Customer
	billsByID       map[string]*domain.Bill
	billIDByPublic  map[string]string
	billOrder       []string
	usersByUsername map[string]domain.User
	billSeq         int64
}

func New() *Store {
	return &Store{
		products:        make(map[string]domain.Product),
		customers:       make(map[string]domain.Customer),
		billsByID:       make(map[string]*domain.Bill),
		billIDByPublic:  make(map[string]string),
		usersByUsername: make(map[string]domain.User),
	}
}

// NewSeeded returns a store pre-loaded with a small demo catalog, one
// customer and an admin account, mirroring the fixtures the frontend
// expects in dev mode.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()

	expiry := func(value string) *time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil
		}
		d := parsed.UTC()
		return &d
	}

	for _, p := range []domain.Product{
		{ID: uuid.NewString(), Name: "Organic Milk 1L", SKU: "MILK001", Category: "Dairy", StockQuantity: 50, PurchasePriceCents: 4500, SellingPriceCents: 6000, TaxRatePercent: 5, ExpiryDate: expiry("2026-12-31")},
		{ID: uuid.NewString(), Name: "Whole Wheat Bread", SKU: "BRD001", Category: "Bakery", StockQuantity: 20, PurchasePriceCents: 3000, SellingPriceCents: 4500, TaxRatePercent: 0, ExpiryDate: expiry("2026-05-20")},
		{ID: uuid.NewString(), Name: "Wireless Mouse", SKU: "TECH001", Category: "Electronics", StockQuantity: 15, PurchasePriceCents: 40000, SellingPriceCents: 85000, TaxRatePercent: 18},
	} {
		p.CreatedAt = now
		p.UpdatedAt = now
		s.products[p.ID] = p
	}

	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      "John Doe",
		Phone:     "9876543210",
		Email:     "john@example.com",
		CreatedAt: now,
	}
	s.customers[customer.ID] = customer

	adminPwd := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPwd == "" {
		adminPwd = "admin123"
		log.Println("[memory-store] WARNING: using default dev admin credentials. Set SEED_ADMIN_PASSWORD to override.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPwd), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("[memory-store] failed to hash seed password: %v", err)
	}
	s.usersByUsername["admin"] = domain.User{
		ID:        uuid.NewString(),
		Username:  "admin",
		Password:  string(hash),
		Name:      "System Admin",
		Role:      domain.RoleAdmin,
		CreatedAt: now,
	}

	return s
}

func (s *Store) ListProducts(_ context.Context, search string, category string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Category == products[j].Category {
			return products[i].Name < products[j].Name
		}
		return products[i].Category < products[j].Category
	})
	return products, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	found := p
	return &found, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	for _, existing := range s.products {
		if existing.SKU == product.SKU {
			return nil, fmt.Errorf("%w: sku %s already exists", store.ErrValidation, product.SKU)
		}
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.UpdatedAt = product.CreatedAt
	s.products[product.ID] = product

	created := product
	return &created, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return nil, store.ErrNotFound
	}
	// SKU and stock are not editable here; stock moves only through
	// AdjustStock and CreateBill.
	product.SKU = existing.SKU
	product.StockQuantity = existing.StockQuantity
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	s.products[product.ID] = product

	updated := product
	return &updated, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) AdjustStock(_ context.Context, id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adjustStockLocked(id, delta)
}

func (s *Store) adjustStockLocked(id string, delta int) (int, error) {
	p, ok := s.products[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	next := p.StockQuantity + delta
	if next < 0 {
		return 0, &store.InsufficientStockError{ProductID: id, Requested: -delta, Available: p.StockQuantity}
	}
	p.StockQuantity = next
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return next, nil
}

func (s *Store) ListCustomers(_ context.Context, search string) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	customers := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) && !strings.Contains(c.Phone, search) {
			continue
		}
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	found := c
	return &found, nil
}

func (s *Store) CreateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	s.customers[customer.ID] = customer

	created := customer
	return &created, nil
}

func (s *Store) AdjustLoyalty(_ context.Context, id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adjustLoyaltyLocked(id, delta)
}

func (s *Store) adjustLoyaltyLocked(id string, delta int) (int, error) {
	c, ok := s.customers[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	next := c.LoyaltyPoints + delta
	if next < 0 {
		next = 0
	}
	c.LoyaltyPoints = next
	s.customers[id] = c
	return next, nil
}

func (s *Store) CreateBill(_ context.Context, draft domain.Bill, loyaltyRateCents int64) (*domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", store.ErrValidation)
	}
	if draft.DiscountTotalCents < 0 {
		return nil, fmt.Errorf("%w: negative discount", store.ErrValidation)
	}

	if draft.CustomerID != nil {
		if _, ok := s.customers[*draft.CustomerID]; !ok {
			return nil, fmt.Errorf("customer %s: %w", *draft.CustomerID, store.ErrNotFound)
		}
	}

	// Validate everything before touching any state, so a failed line leaves
	// stock untouched. Quantities are accumulated per product so duplicate
	// lines are checked against what earlier lines already claimed.
	items := make([]domain.BillItem, 0, len(draft.Items))
	claimed := make(map[string]int, len(draft.Items))
	subtotal := int64(0)
	taxTotal := int64(0)
	for _, line := range draft.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be positive", store.ErrValidation)
		}
		product, ok := s.products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, store.ErrNotFound)
		}
		remaining := product.StockQuantity - claimed[product.ID]
		if remaining < line.Quantity {
			return nil, &store.InsufficientStockError{
				ProductID: product.ID,
				Requested: line.Quantity,
				Available: remaining,
			}
		}
		claimed[product.ID] += line.Quantity

		lineSubtotal := product.SellingPriceCents * int64(line.Quantity)
		lineTax := int64(math.Round(float64(lineSubtotal) * product.TaxRatePercent / 100))
		items = append(items, domain.BillItem{
			ProductID:         product.ID,
			Name:              product.Name,
			SKU:               product.SKU,
			UnitPriceCents:    product.SellingPriceCents,
			TaxRatePercent:    product.TaxRatePercent,
			Quantity:          line.Quantity,
			LineSubtotalCents: lineSubtotal,
			LineTaxCents:      lineTax,
		})
		subtotal += lineSubtotal
		taxTotal += lineTax
	}

	applied := draft.DiscountTotalCents
	if applied > subtotal+taxTotal {
		applied = subtotal + taxTotal
	}
	grand := subtotal + taxTotal - applied

	loyalty := 0
	if draft.CustomerID != nil && loyaltyRateCents > 0 {
		loyalty = int(grand / loyaltyRateCents)
	}

	// All checks passed: apply effects. Nothing below can fail, so the
	// critical section is effectively the commit.
	for _, item := range items {
		if _, err := s.adjustStockLocked(item.ProductID, -item.Quantity); err != nil {
			return nil, err
		}
	}
	if draft.CustomerID != nil && loyalty > 0 {
		if _, err := s.adjustLoyaltyLocked(*draft.CustomerID, loyalty); err != nil {
			return nil, err
		}
	}

	s.billSeq++
	bill := draft
	bill.BillNumber = fmt.Sprintf("INV-%06d", s.billSeq)
	bill.SubtotalCents = subtotal
	bill.TaxTotalCents = taxTotal
	bill.DiscountTotalCents = applied
	bill.GrandTotalCents = grand
	bill.LoyaltyEarned = loyalty
	bill.Items = items
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}

	s.billsByID[bill.ID] = &bill
	s.billIDByPublic[bill.PublicID] = bill.ID
	s.billOrder = append(s.billOrder, bill.ID)

	return cloneBill(&bill), nil
}

func (s *Store) ListBills(_ context.Context, limit int) ([]domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 1 {
		limit = 100
	}

	bills := make([]domain.Bill, 0, limit)
	for i := len(s.billOrder) - 1; i >= 0 && len(bills) < limit; i-- {
		bills = append(bills, *cloneBill(s.billsByID[s.billOrder[i]]))
	}
	return bills, nil
}

func (s *Store) GetBillByPublicID(_ context.Context, publicID string) (*domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.billIDByPublic[publicID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneBill(s.billsByID[id]), nil
}

func (s *Store) GetDashboardStats(_ context.Context, from time.Time, to time.Time, topN int, lowStockThreshold int) (domain.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.DashboardStats{}

	soldByProduct := make(map[string]domain.TopProduct)
	for _, bill := range s.billsByID {
		if !bill.CreatedAt.Before(from) && bill.CreatedAt.Before(to) {
			stats.DailySalesCents += bill.GrandTotalCents
		}
		for _, item := range bill.Items {
			entry := soldByProduct[item.ProductID]
			entry.ProductID = item.ProductID
			entry.Name = item.Name
			entry.SKU = item.SKU
			entry.QuantitySold += item.Quantity
			soldByProduct[item.ProductID] = entry
		}
	}

	top := make([]domain.TopProduct, 0, len(soldByProduct))
	for _, entry := range soldByProduct {
		top = append(top, entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].QuantitySold == top[j].QuantitySold {
			return top[i].Name < top[j].Name
		}
		return top[i].QuantitySold > top[j].QuantitySold
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	stats.TopProducts = top

	low := make([]domain.Product, 0, 8)
	for _, p := range s.products {
		if p.StockQuantity <= lowStockThreshold {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].StockQuantity == low[j].StockQuantity {
			return low[i].Name < low[j].Name
		}
		return low[i].StockQuantity < low[j].StockQuantity
	})
	stats.LowStock = low

	return stats, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByUsername[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	found := user
	return &found, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[user.Username]; exists {
		return nil, fmt.Errorf("%w: username %s already exists", store.ErrValidation, user.Username)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.usersByUsername[user.Username] = user

	created := user
	return &created, nil
}

func cloneBill(bill *domain.Bill) *domain.Bill {
	clone := *bill
	clone.Items = append([]domain.BillItem(nil), bill.Items...)
	if bill.CustomerID != nil {
		id := *bill.CustomerID
		clone.CustomerID = &id
	}
	return &clone
}
