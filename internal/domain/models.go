package domain

import "time"

// PaymentMode is the closed set of payment methods a bill may record.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentCard   PaymentMode = "card"
	PaymentUPI    PaymentMode = "upi"
	PaymentWallet PaymentMode = "wallet"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentWallet:
		return true
	default:
		return false
	}
}

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

type Product struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	SKU                string     `json:"sku"`
	Category           string     `json:"category"`
	StockQuantity      int        `json:"stock_quantity"`
	PurchasePriceCents int64      `json:"purchase_price_cents"`
	SellingPriceCents  int64      `json:"selling_price_cents"`
	TaxRatePercent     float64    `json:"tax_rate_percent"`
	SupplierID         *string    `json:"supplier_id,omitempty"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ProductCreateRequest struct {
	Name               string  `json:"name"`
	SKU                string  `json:"sku"`
	Category           string  `json:"category"`
	StockQuantity      int     `json:"stock_quantity"`
	PurchasePriceCents int64   `json:"purchase_price_cents"`
	SellingPriceCents  int64   `json:"selling_price_cents"`
	TaxRatePercent     float64 `json:"tax_rate_percent"`
	SupplierID         *string `json:"supplier_id,omitempty"`
	ExpiryDate         string  `json:"expiry_date,omitempty"`
}

type ProductUpdateRequest struct {
	Name               *string  `json:"name,omitempty"`
	Category           *string  `json:"category,omitempty"`
	PurchasePriceCents *int64   `json:"purchase_price_cents,omitempty"`
	SellingPriceCents  *int64   `json:"selling_price_cents,omitempty"`
	TaxRatePercent     *float64 `json:"tax_rate_percent,omitempty"`
	SupplierID         *string  `json:"supplier_id,omitempty"`
	ExpiryDate         *string  `json:"expiry_date,omitempty"`
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	LoyaltyPoints int       `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
}

type CustomerCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type BillCreateRequest struct {
	Items         []CartLine  `json:"items"`
	PaymentMode   PaymentMode `json:"payment_mode"`
	DiscountCents int64       `json:"discount_cents"`
	CustomerID    *string     `json:"customer_id,omitempty"`
}

// BillItem is a product-quantity line within a bill. Name, SKU, unit price
// and tax rate are snapshotted at sale time so committed bills stay stable
// under later catalog edits.
type BillItem struct {
	ProductID         string  `json:"product_id"`
	Name              string  `json:"name"`
	SKU               string  `json:"sku"`
	UnitPriceCents    int64   `json:"unit_price_cents"`
	TaxRatePercent    float64 `json:"tax_rate_percent"`
	Quantity          int     `json:"quantity"`
	LineSubtotalCents int64   `json:"line_subtotal_cents"`
	LineTaxCents      int64   `json:"line_tax_cents"`
}

// Bill is a committed sale transaction. Bills are immutable once created;
// grand_total_cents = max(0, subtotal + tax - requested discount) and
// discount_total_cents records the discount actually applied.
type Bill struct {
	ID                 string      `json:"id"`
	BillNumber         string      `json:"bill_number"`
	PublicID           string      `json:"public_id"`
	CustomerID         *string     `json:"customer_id,omitempty"`
	PaymentMode        PaymentMode `json:"payment_mode"`
	SubtotalCents      int64       `json:"subtotal_cents"`
	TaxTotalCents      int64       `json:"tax_total_cents"`
	DiscountTotalCents int64       `json:"discount_total_cents"`
	GrandTotalCents    int64       `json:"grand_total_cents"`
	LoyaltyEarned      int         `json:"loyalty_earned"`
	CreatedByUserID    string      `json:"created_by_user_id"`
	CreatedAt          time.Time   `json:"created_at"`
	Items              []BillItem  `json:"items"`
}

type PublicBillResponse struct {
	Bill  Bill       `json:"bill"`
	Items []BillItem `json:"items"`
}

type TopProduct struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	QuantitySold int    `json:"quantity_sold"`
}

type DashboardStats struct {
	DailySalesCents int64        `json:"daily_sales_cents"`
	TopProducts     []TopProduct `json:"top_products"`
	LowStock        []Product    `json:"low_stock"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	ExpiresAt   string `json:"expires_at"`
}

// Actor identifies the authenticated user behind a request.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

// User is an internal persistence model for auth credentials. Password holds
// a bcrypt hash.
type User struct {
	ID        string
	Username  string
	Password  string
	Name      string
	Role      string
	CreatedAt time.Time
}
