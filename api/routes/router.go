package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petrolube/lubedash-backend/api/controllers"
	"github.com/petrolube/lubedash-backend/api/middleware"
	"github.com/petrolube/lubedash-backend/internal/auth"
	clientsvc "github.com/petrolube/lubedash-backend/internal/clients"
	productsvc "github.com/petrolube/lubedash-backend/internal/products"
	purchasesvc "github.com/petrolube/lubedash-backend/internal/purchases"
	"github.com/petrolube/lubedash-backend/pkg/auth/session"
	"github.com/petrolube/lubedash-backend/pkg/config"
	"github.com/petrolube/lubedash-backend/pkg/db"
	"github.com/petrolube/lubedash-backend/pkg/enums"
	"github.com/petrolube/lubedash-backend/pkg/logger"
	"github.com/petrolube/lubedash-backend/pkg/metrics"
	"github.com/petrolube/lubedash-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionManager  session.AccessSessionChecker
	AuthService     auth.Service
	ClientService   clientsvc.Service
	ProductService  productsvc.Service
	PurchaseService purchasesvc.Service
	Metrics         *metrics.HTTPMetrics
	MetricsRegistry prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	manager := middleware.RequireRole(logg, enums.UserRoleManager, enums.UserRoleAdmin)
	admin := middleware.RequireRole(logg, enums.UserRoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ListClients(deps.ClientService, logg))
			r.Post("/", controllers.CreateClient(deps.ClientService, logg))
			r.Get("/{clientId}", controllers.GetClient(deps.ClientService, logg))
			r.With(admin).Delete("/{clientId}", controllers.DeleteClient(deps.ClientService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.With(manager).Post("/", controllers.CreateProduct(deps.ProductService, logg))
			r.Get("/categories", controllers.ListProductCategories(deps.ProductService, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.ProductService, logg))
			r.With(manager).Put("/{productId}", controllers.UpdateProduct(deps.ProductService, logg))
			r.With(manager).Delete("/{productId}", controllers.DeleteProduct(deps.ProductService, logg))
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Get("/", controllers.ListPurchases(deps.PurchaseService, logg))
			r.With(manager).Post("/", controllers.CreatePurchase(deps.PurchaseService, logg))
			r.Get("/{number}", controllers.GetPurchase(deps.PurchaseService, logg))
			r.With(manager).Put("/{number}", controllers.UpdatePurchase(deps.PurchaseService, logg))
		})
	})

	return r
}
