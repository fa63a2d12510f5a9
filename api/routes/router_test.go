package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/petrolube/lubedash-backend/internal/auth"
	clientsvc "github.com/petrolube/lubedash-backend/internal/clients"
	productsvc "github.com/petrolube/lubedash-backend/internal/products"
	purchasesvc "github.com/petrolube/lubedash-backend/internal/purchases"
	pkgAuth "github.com/petrolube/lubedash-backend/pkg/auth"
	"github.com/petrolube/lubedash-backend/pkg/auth/session"
	"github.com/petrolube/lubedash-backend/pkg/config"
	"github.com/petrolube/lubedash-backend/pkg/enums"
	"github.com/petrolube/lubedash-backend/pkg/logger"
	"github.com/petrolube/lubedash-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubClientService struct{}

func (stubClientService) CreateClient(ctx context.Context, input clientsvc.ClientInput) (*clientsvc.CreateClientResult, error) {
	return &clientsvc.CreateClientResult{}, nil
}

func (stubClientService) ListClients(ctx context.Context, search string) ([]clientsvc.ClientDTO, error) {
	return []clientsvc.ClientDTO{}, nil
}

func (stubClientService) GetClient(ctx context.Context, id uuid.UUID) (*clientsvc.ClientDTO, error) {
	return &clientsvc.ClientDTO{}, nil
}

func (stubClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubProductService struct{}

func (stubProductService) CreateProduct(ctx context.Context, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubProductService) GetProduct(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductService) ListProducts(ctx context.Context, filter productsvc.ListFilter) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}

func (stubProductService) ListCategories(ctx context.Context) ([]productsvc.CategorySummary, error) {
	return []productsvc.CategorySummary{}, nil
}

type stubPurchaseService struct {
	list func(ctx context.Context, query purchasesvc.ListQuery) (*purchasesvc.PurchaseList, error)
}

func (s stubPurchaseService) ListPurchases(ctx context.Context, query purchasesvc.ListQuery) (*purchasesvc.PurchaseList, error) {
	if s.list != nil {
		return s.list(ctx, query)
	}
	return &purchasesvc.PurchaseList{Purchases: []purchasesvc.PurchaseListItem{}}, nil
}

func (stubPurchaseService) CreatePurchase(ctx context.Context, input purchasesvc.PurchaseInput) (*purchasesvc.PurchaseDTO, error) {
	return &purchasesvc.PurchaseDTO{}, nil
}

func (stubPurchaseService) GetPurchase(ctx context.Context, number string) (*purchasesvc.PurchaseDTO, error) {
	return &purchasesvc.PurchaseDTO{}, nil
}

func (stubPurchaseService) UpdatePurchase(ctx context.Context, number string, input purchasesvc.UpdateInput) (*purchasesvc.PurchaseDTO, error) {
	return &purchasesvc.PurchaseDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, purchaseSvc purchasesvc.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	if purchaseSvc == nil {
		purchaseSvc = stubPurchaseService{}
	}
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		Redis:           (*redis.Client)(nil),
		SessionManager:  stubSessionManager{},
		AuthService:     stubAuthService{},
		ClientService:   stubClientService{},
		ProductService:  stubProductService{},
		PurchaseService: purchaseSvc,
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "ops@petrolube.test",
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for client list got %d", resp.Code)
	}
}

func TestClientDeleteRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)
	target := "/api/v1/clients/" + uuid.NewString()

	manager := httptest.NewRequest(http.MethodDelete, target, nil)
	manager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleManager))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, manager)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager delete got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodDelete, target, nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete got %d", resp.Code)
	}
}

func TestProductMutationsRequireManagerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)
	target := "/api/v1/products/" + uuid.NewString()

	staff := httptest.NewRequest(http.MethodDelete, target, nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff delete got %d", resp.Code)
	}

	manager := httptest.NewRequest(http.MethodDelete, target, nil)
	manager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleManager))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, manager)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager delete got %d", resp.Code)
	}
}

func TestPurchaseListForwardsQueryParams(t *testing.T) {
	cfg := testConfig()
	var captured purchasesvc.ListQuery
	svc := stubPurchaseService{
		list: func(ctx context.Context, query purchasesvc.ListQuery) (*purchasesvc.PurchaseList, error) {
			captured = query
			return &purchasesvc.PurchaseList{Purchases: []purchasesvc.PurchaseListItem{}}, nil
		},
	}
	router := newTestRouter(cfg, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases?search=INV-1001&limit=10&offset=20", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for purchase list got %d", resp.Code)
	}
	if captured.Search != "INV-1001" {
		t.Fatalf("expected search forwarded got %q", captured.Search)
	}
	if captured.Page.Limit != 10 || captured.Page.Offset != 20 {
		t.Fatalf("expected limit/offset forwarded got %+v", captured.Page)
	}
}

func TestPurchaseMutationsRequireManagerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, nil)

	staff := httptest.NewRequest(http.MethodPut, "/api/v1/purchases/INV-1001", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff update got %d", resp.Code)
	}
}

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	router := newTestRouter(testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, testConfig(), enums.UserRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route got %d", resp.Code)
	}
}
