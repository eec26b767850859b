package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const productColumns = `
	id, name, sku, category, stock_quantity, purchase_price_cents, selling_price_cents,
	tax_rate_percent, supplier_id, expiry_date, created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	var supplierID sql.NullString
	var expiry sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SKU,
		&p.Category,
		&p.StockQuantity,
		&p.PurchasePriceCents,
		&p.SellingPriceCents,
		&p.TaxRatePercent,
		&supplierID,
		&expiry,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if supplierID.Valid {
		p.SupplierID = &supplierID.String
	}
	if expiry.Valid {
		e := expiry.Time.UTC()
		p.ExpiryDate = &e
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, search string, category string) ([]domain.Product, error) {
	search = strings.TrimSpace(search)
	category = strings.TrimSpace(category)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%')
			AND ($2 = '' OR category = $2)
		ORDER BY category, name
	`, search, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 128)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.UpdatedAt = product.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, sku, category, stock_quantity, purchase_price_cents, selling_price_cents,
			tax_rate_percent, supplier_id, expiry_date, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, product.ID, product.Name, product.SKU, product.Category, product.StockQuantity,
		product.PurchasePriceCents, product.SellingPriceCents, product.TaxRatePercent,
		nullIfEmptyPtr(product.SupplierID), nullDate(product.ExpiryDate), product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: sku %s already exists", store.ErrValidation, product.SKU)
		}
		return nil, err
	}

	created := product
	return &created, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	// SKU and stock never change through this path; stock moves only via
	// AdjustStock and CreateBill.
	row := s.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, category = $3, purchase_price_cents = $4, selling_price_cents = $5,
			tax_rate_percent = $6, supplier_id = $7, expiry_date = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns+`
	`, product.ID, product.Name, product.Category, product.PurchasePriceCents,
		product.SellingPriceCents, product.TaxRatePercent, nullIfEmptyPtr(product.SupplierID), nullDate(product.ExpiryDate))
	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	// The guard in the WHERE clause makes the adjustment atomic: the row is
	// only updated when it cannot go negative.
	var next int
	err := s.db.QueryRowContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING stock_quantity
	`, id, delta).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	// No row updated: distinguish a missing product from a guarded reject.
	var available int
	lookupErr := s.db.QueryRowContext(ctx, `
		SELECT stock_quantity FROM products WHERE id = $1
	`, id).Scan(&available)
	if lookupErr != nil {
		if errors.Is(lookupErr, sql.ErrNoRows) {
			return 0, store.ErrNotFound
		}
		return 0, lookupErr
	}
	return 0, &store.InsufficientStockError{ProductID: id, Requested: -delta, Available: available}
}

func (s *Store) ListCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	search = strings.TrimSpace(search)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, COALESCE(email,''), loyalty_points, created_at
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%')
		ORDER BY name
	`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, 64)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.LoyaltyPoints, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, COALESCE(email,''), loyalty_points, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.LoyaltyPoints, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, email, loyalty_points, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, customer.ID, customer.Name, customer.Phone, nullIfEmpty(customer.Email), customer.LoyaltyPoints, customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: phone %s already registered", store.ErrValidation, customer.Phone)
		}
		return nil, err
	}

	created := customer
	return &created, nil
}

func (s *Store) AdjustLoyalty(ctx context.Context, id string, delta int) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx, `
		UPDATE customers
		SET loyalty_points = GREATEST(loyalty_points + $2, 0)
		WHERE id = $1
		RETURNING loyalty_points
	`, id, delta).Scan(&next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrNotFound
		}
		return 0, err
	}
	return next, nil
}

// CreateBill commits a bill as one serializable transaction. Product rows are
// locked up front, prices and tax come from the locked rows rather than the
// request, and every stock decrement is re-checked under the lock. Any
// failure rolls the whole unit back: no partial decrements, no bill row, no
// loyalty change.
func (s *Store) CreateBill(ctx context.Context, draft domain.Bill, loyaltyRateCents int64) (*domain.Bill, error) {
	if len(draft.Items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", store.ErrValidation)
	}
	if draft.DiscountTotalCents < 0 {
		return nil, fmt.Errorf("%w: negative discount", store.ErrValidation)
	}

	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = pgTx.Rollback() }()

	if draft.CustomerID != nil {
		var exists bool
		err := pgTx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)
		`, *draft.CustomerID).Scan(&exists)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("customer %s: %w", *draft.CustomerID, store.ErrNotFound)
		}
	}

	productIDs := uniqueProductIDs(draft.Items)
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("%w: empty cart", store.ErrValidation)
	}

	productRows, err := pgTx.QueryContext(ctx, `
		SELECT id, name, sku, stock_quantity, selling_price_cents, tax_rate_percent
		FROM products
		WHERE id = ANY($1)
		FOR UPDATE
	`, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[string]domain.Product, len(productIDs))
	for productRows.Next() {
		var p domain.Product
		if err := productRows.Scan(&p.ID, &p.Name, &p.SKU, &p.StockQuantity, &p.SellingPriceCents, &p.TaxRatePercent); err != nil {
			_ = productRows.Close()
			return nil, err
		}
		productMap[p.ID] = p
	}
	if err := productRows.Err(); err != nil {
		_ = productRows.Close()
		return nil, err
	}
	_ = productRows.Close()

	subtotal := int64(0)
	taxTotal := int64(0)
	items := make([]domain.BillItem, 0, len(draft.Items))
	claimed := make(map[string]int, len(draft.Items))
	for _, line := range draft.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be positive", store.ErrValidation)
		}
		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, store.ErrNotFound)
		}
		// productMap is a snapshot from before any decrement, so duplicate
		// lines for one product are checked against what earlier lines
		// already claimed.
		remaining := product.StockQuantity - claimed[product.ID]
		if remaining < line.Quantity {
			return nil, &store.InsufficientStockError{
				ProductID: product.ID,
				Requested: line.Quantity,
				Available: remaining,
			}
		}
		claimed[product.ID] += line.Quantity

		res, err := pgTx.ExecContext(ctx, `
			UPDATE products
			SET stock_quantity = stock_quantity - $1, updated_at = now()
			WHERE id = $2 AND stock_quantity >= $1
		`, line.Quantity, product.ID)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, &store.InsufficientStockError{
				ProductID: product.ID,
				Requested: line.Quantity,
				Available: remaining,
			}
		}

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

	var seq int64
	if err := pgTx.QueryRowContext(ctx, `SELECT nextval('bill_number_seq')`).Scan(&seq); err != nil {
		return nil, err
	}

	bill := draft
	bill.BillNumber = fmt.Sprintf("INV-%06d", seq)
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

	_, err = pgTx.ExecContext(ctx, `
		INSERT INTO bills (
			id, bill_number, public_id, customer_id, payment_mode,
			subtotal_cents, tax_total_cents, discount_total_cents, grand_total_cents,
			loyalty_earned, created_by_user_id, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, bill.ID, bill.BillNumber, bill.PublicID, nullIfEmptyPtr(bill.CustomerID), bill.PaymentMode,
		bill.SubtotalCents, bill.TaxTotalCents, bill.DiscountTotalCents, bill.GrandTotalCents,
		bill.LoyaltyEarned, bill.CreatedByUserID, bill.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, item := range bill.Items {
		_, err := pgTx.ExecContext(ctx, `
			INSERT INTO bill_items (
				bill_id, product_id, name, sku, unit_price_cents, tax_rate_percent,
				quantity, line_subtotal_cents, line_tax_cents
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, bill.ID, item.ProductID, item.Name, item.SKU, item.UnitPriceCents, item.TaxRatePercent,
			item.Quantity, item.LineSubtotalCents, item.LineTaxCents)
		if err != nil {
			return nil, err
		}
	}

	if bill.CustomerID != nil && loyalty > 0 {
		_, err := pgTx.ExecContext(ctx, `
			UPDATE customers
			SET loyalty_points = loyalty_points + $2
			WHERE id = $1
		`, *bill.CustomerID, loyalty)
		if err != nil {
			return nil, err
		}
	}

	if err := pgTx.Commit(); err != nil {
		return nil, err
	}

	return &bill, nil
}

const billColumns = `
	id, bill_number, public_id, customer_id, payment_mode,
	subtotal_cents, tax_total_cents, discount_total_cents, grand_total_cents,
	loyalty_earned, created_by_user_id, created_at
`

func scanBill(row interface{ Scan(...any) error }) (domain.Bill, error) {
	var bill domain.Bill
	var customerID sql.NullString
	err := row.Scan(
		&bill.ID,
		&bill.BillNumber,
		&bill.PublicID,
		&customerID,
		&bill.PaymentMode,
		&bill.SubtotalCents,
		&bill.TaxTotalCents,
		&bill.DiscountTotalCents,
		&bill.GrandTotalCents,
		&bill.LoyaltyEarned,
		&bill.CreatedByUserID,
		&bill.CreatedAt,
	)
	if err != nil {
		return bill, err
	}
	if customerID.Valid {
		bill.CustomerID = &customerID.String
	}
	bill.CreatedAt = bill.CreatedAt.UTC()
	return bill, nil
}

func (s *Store) ListBills(ctx context.Context, limit int) ([]domain.Bill, error) {
	if limit < 1 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+billColumns+`
		FROM bills
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0, limit)
	ids := make([]string, 0, limit)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
		ids = append(ids, bill.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return bills, nil
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT bill_id, product_id, name, sku, unit_price_cents, tax_rate_percent,
			quantity, line_subtotal_cents, line_tax_cents
		FROM bill_items
		WHERE bill_id = ANY($1)
		ORDER BY id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	itemMap := make(map[string][]domain.BillItem, len(ids))
	for itemRows.Next() {
		var billID string
		var item domain.BillItem
		if err := itemRows.Scan(&billID, &item.ProductID, &item.Name, &item.SKU, &item.UnitPriceCents,
			&item.TaxRatePercent, &item.Quantity, &item.LineSubtotalCents, &item.LineTaxCents); err != nil {
			return nil, err
		}
		itemMap[billID] = append(itemMap[billID], item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range bills {
		bills[i].Items = itemMap[bills[i].ID]
	}
	return bills, nil
}

func (s *Store) GetBillByPublicID(ctx context.Context, publicID string) (*domain.Bill, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+billColumns+`
		FROM bills
		WHERE public_id = $1
	`, publicID)
	bill, err := scanBill(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, sku, unit_price_cents, tax_rate_percent,
			quantity, line_subtotal_cents, line_tax_cents
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY id ASC
	`, bill.ID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	items := make([]domain.BillItem, 0, 8)
	for itemRows.Next() {
		var item domain.BillItem
		if err := itemRows.Scan(&item.ProductID, &item.Name, &item.SKU, &item.UnitPriceCents,
			&item.TaxRatePercent, &item.Quantity, &item.LineSubtotalCents, &item.LineTaxCents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	bill.Items = items

	return &bill, nil
}

func (s *Store) GetDashboardStats(ctx context.Context, from time.Time, to time.Time, topN int, lowStockThreshold int) (domain.DashboardStats, error) {
	stats := domain.DashboardStats{
		TopProducts: make([]domain.TopProduct, 0, topN),
		LowStock:    make([]domain.Product, 0, 8),
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(grand_total_cents),0)::bigint
		FROM bills
		WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&stats.DailySalesCents)
	if err != nil {
		return stats, err
	}

	topRows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, sku, SUM(quantity)::int
		FROM bill_items
		GROUP BY product_id, name, sku
		ORDER BY SUM(quantity) DESC, name
		LIMIT $1
	`, topN)
	if err != nil {
		return stats, err
	}
	for topRows.Next() {
		var entry domain.TopProduct
		if err := topRows.Scan(&entry.ProductID, &entry.Name, &entry.SKU, &entry.QuantitySold); err != nil {
			_ = topRows.Close()
			return stats, err
		}
		stats.TopProducts = append(stats.TopProducts, entry)
	}
	if err := topRows.Err(); err != nil {
		_ = topRows.Close()
		return stats, err
	}
	_ = topRows.Close()

	lowRows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE stock_quantity <= $1
		ORDER BY stock_quantity, name
	`, lowStockThreshold)
	if err != nil {
		return stats, err
	}
	defer lowRows.Close()
	for lowRows.Next() {
		p, err := scanProduct(lowRows)
		if err != nil {
			return stats, err
		}
		stats.LowStock = append(stats.LowStock, p)
	}
	if err := lowRows.Err(); err != nil {
		return stats, err
	}

	return stats, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, name, role, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.Password, &user.Name, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, name, role, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, user.ID, user.Username, user.Password, user.Name, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %s already exists", store.ErrValidation, user.Username)
		}
		return nil, err
	}

	created := user
	return &created, nil
}

func uniqueProductIDs(items []domain.BillItem) []string {
	if len(items) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		set[item.ProductID] = struct{}{}
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}

func nullIfEmptyPtr(val *string) any {
	if val == nil || *val == "" {
		return nil
	}
	return *val
}

func nullDate(val *time.Time) any {
	if val == nil {
		return nil
	}
	t := val.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
