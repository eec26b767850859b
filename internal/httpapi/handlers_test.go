package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/billing"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/cache"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store/memory"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	t.Setenv("SEED_ADMIN_PASSWORD", "admin123")
	repo := memory.NewSeeded()

	hash, err := bcrypt.GenerateFromPassword([]byte("cashier123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := repo.CreateUser(context.Background(), domain.User{
		Username: "cashier",
		Password: string(hash),
		Name:     "Front Desk",
		Role:     domain.RoleCashier,
	}); err != nil {
		t.Fatalf("create cashier: %v", err)
	}

	svc := billing.New(repo, cache.NoopDashboardCache{}, billing.Config{
		LoyaltyEarnRateCents: 10000,
		LowStockThreshold:    10,
		TopProductsLimit:     5,
	})
	auth := NewAuthManager(testSecret, time.Hour, repo)
	return New(svc, auth, "http://localhost:3000").Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Username: username,
		Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var resp domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("login returned empty token")
	}
	return resp.AccessToken
}

func listProducts(t *testing.T, handler http.Handler, token string) []domain.Product {
	t.Helper()

	rec := doJSON(t, handler, http.MethodGet, "/api/products", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list products: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	return resp.Products
}

func productBySKU(t *testing.T, products []domain.Product, sku string) domain.Product {
	t.Helper()
	for _, p := range products {
		if p.SKU == sku {
			return p
		}
	}
	t.Fatalf("product %s not found", sku)
	return domain.Product{}
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: status %d", rec.Code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	handler := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	handler := newTestHandler(t)
	for i := 0; i < 5; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
			Username: "admin",
			Password: "wrong",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, rec.Code)
		}
	}
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", domain.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated failures, got %d", rec.Code)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	handler := newTestHandler(t)
	for _, path := range []string{"/api/products", "/api/customers", "/api/bills", "/api/stats/dashboard"} {
		rec := doJSON(t, handler, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestCreateBillEndToEnd(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "cashier", "cashier123")

	milk := productBySKU(t, listProducts(t, handler, token), "MILK001")

	rec := doJSON(t, handler, http.MethodPost, "/api/bills", token, domain.BillCreateRequest{
		Items:       []domain.CartLine{{ProductID: milk.ID, Quantity: 2}},
		PaymentMode: domain.PaymentCash,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bill: status %d body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Bill domain.Bill `json:"bill"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode bill: %v", err)
	}
	// 2 x 6000 = 12000, 5% tax = 600.
	if created.Bill.GrandTotalCents != 12600 {
		t.Fatalf("grand total: got %d, want 12600", created.Bill.GrandTotalCents)
	}
	if created.Bill.BillNumber != "INV-000001" {
		t.Fatalf("bill number: got %s", created.Bill.BillNumber)
	}

	// The public lookup needs no token.
	pub := doJSON(t, handler, http.MethodGet, "/api/bills/public/"+created.Bill.PublicID, "", nil)
	if pub.Code != http.StatusOK {
		t.Fatalf("public bill: status %d body %s", pub.Code, pub.Body.String())
	}

	missing := doJSON(t, handler, http.MethodGet, "/api/bills/public/0123456789abcdef0123456789abcdef", "", nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("unknown public bill: expected 404, got %d", missing.Code)
	}

	list := doJSON(t, handler, http.MethodGet, "/api/bills?limit=10", token, nil)
	if list.Code != http.StatusOK {
		t.Fatalf("list bills: status %d", list.Code)
	}
	var bills struct {
		Bills []domain.Bill `json:"bills"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &bills); err != nil {
		t.Fatalf("decode bills: %v", err)
	}
	if len(bills.Bills) != 1 {
		t.Fatalf("expected 1 bill, got %d", len(bills.Bills))
	}
}

func TestCreateBillOversellReturns400(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "cashier", "cashier123")

	mouse := productBySKU(t, listProducts(t, handler, token), "TECH001")

	rec := doJSON(t, handler, http.MethodPost, "/api/bills", token, domain.BillCreateRequest{
		Items:       []domain.CartLine{{ProductID: mouse.ID, Quantity: mouse.StockQuantity + 1}},
		PaymentMode: domain.PaymentCard,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on oversell, got %d body %s", rec.Code, rec.Body.String())
	}

	after := productBySKU(t, listProducts(t, handler, token), "TECH001")
	if after.StockQuantity != mouse.StockQuantity {
		t.Fatalf("stock must be untouched: got %d, want %d", after.StockQuantity, mouse.StockQuantity)
	}
}

func TestCreateBillRejectsUnknownField(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "cashier", "cashier123")

	rec := doJSON(t, handler, http.MethodPost, "/api/bills", token, map[string]any{
		"items":        []map[string]any{},
		"payment_mode": "cash",
		"surprise":     true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestDashboardAvailableToAllAuthenticatedRoles(t *testing.T) {
	handler := newTestHandler(t)

	cashierToken := login(t, handler, "cashier", "cashier123")
	rec := doJSON(t, handler, http.MethodGet, "/api/stats/dashboard", cashierToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cashier dashboard: expected 200, got %d body %s", rec.Code, rec.Body.String())
	}

	adminToken := login(t, handler, "admin", "admin123")
	rec = doJSON(t, handler, http.MethodGet, "/api/stats/dashboard", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin dashboard: expected 200, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestProductMutationsRequireElevatedRole(t *testing.T) {
	handler := newTestHandler(t)
	cashierToken := login(t, handler, "cashier", "cashier123")

	rec := doJSON(t, handler, http.MethodPost, "/api/products", cashierToken, domain.ProductCreateRequest{
		Name:              "Blocked",
		SKU:               "BLOCK1",
		SellingPriceCents: 100,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cashier product create: expected 403, got %d", rec.Code)
	}

	adminToken := login(t, handler, "admin", "admin123")
	rec = doJSON(t, handler, http.MethodPost, "/api/products", adminToken, domain.ProductCreateRequest{
		Name:              "Allowed",
		SKU:               "ALLOW1",
		SellingPriceCents: 100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin product create: expected 201, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestRestockEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	adminToken := login(t, handler, "admin", "admin123")

	bread := productBySKU(t, listProducts(t, handler, adminToken), "BRD001")

	rec := doJSON(t, handler, http.MethodPost, fmt.Sprintf("/api/products/%s/restock", bread.ID), adminToken, domain.RestockRequest{Quantity: 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("restock: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Product domain.Product `json:"product"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if resp.Product.StockQuantity != bread.StockQuantity+10 {
		t.Fatalf("stock after restock: got %d, want %d", resp.Product.StockQuantity, bread.StockQuantity+10)
	}
}

func TestCustomerCreateAndLookup(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "cashier", "cashier123")

	rec := doJSON(t, handler, http.MethodPost, "/api/customers", token, domain.CustomerCreateRequest{
		Name:  "Jane Roe",
		Phone: "5551234567",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create customer: status %d body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Customer domain.Customer `json:"customer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode customer: %v", err)
	}

	lookup := doJSON(t, handler, http.MethodGet, "/api/customers/"+created.Customer.ID, token, nil)
	if lookup.Code != http.StatusOK {
		t.Fatalf("get customer: status %d", lookup.Code)
	}

	missing := doJSON(t, handler, http.MethodGet, "/api/customers/does-not-exist", token, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("unknown customer: expected 404, got %d", missing.Code)
	}
}
