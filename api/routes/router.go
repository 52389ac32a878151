package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adamkadry/backoffice-api/api/controllers"
	"github.com/adamkadry/backoffice-api/api/middleware"
	"github.com/adamkadry/backoffice-api/internal/brands"
	"github.com/adamkadry/backoffice-api/internal/categories"
	"github.com/adamkadry/backoffice-api/internal/customers"
	"github.com/adamkadry/backoffice-api/internal/products"
	"github.com/adamkadry/backoffice-api/internal/sales"
	"github.com/adamkadry/backoffice-api/pkg/config"
	"github.com/adamkadry/backoffice-api/pkg/logger"
	"github.com/adamkadry/backoffice-api/pkg/metrics"
	"github.com/adamkadry/backoffice-api/pkg/redis"
)

// Dependencies carries everything the router wires together.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Database    controllers.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	Sales      sales.Service
	Customers  customers.Service
	Products   products.Service
	Categories categories.Service
	Brands     brands.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Database, redisPinger(deps.Redis), logg))
	})

	metricsHandler := deps.MetricsHTTP
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))
		r.Use(middleware.Idempotency(idempotencyStore(deps.Redis), cfg.Idempotency.TTL, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(deps.Sales, logg))
			r.Post("/", controllers.CreateSale(deps.Sales, logg))
			r.Get("/{saleId}", controllers.GetSale(deps.Sales, logg))
			r.Patch("/{saleId}", controllers.UpdateSale(deps.Sales, logg))
			r.Delete("/{saleId}", controllers.DeleteSale(deps.Sales, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(deps.Customers, logg))
			r.Post("/", controllers.CreateCustomer(deps.Customers, logg))
			r.Get("/{customerId}", controllers.GetCustomer(deps.Customers, logg))
			r.Patch("/{customerId}", controllers.UpdateCustomer(deps.Customers, logg))
			r.Delete("/{customerId}", controllers.DeleteCustomer(deps.Customers, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(deps.Products, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Categories, logg))
			r.Post("/", controllers.CreateCategory(deps.Categories, logg))
			r.Get("/{categoryId}", controllers.GetCategory(deps.Categories, logg))
			r.Patch("/{categoryId}", controllers.UpdateCategory(deps.Categories, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(deps.Categories, logg))
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.ListBrands(deps.Brands, logg))
			r.Post("/", controllers.CreateBrand(deps.Brands, logg))
			r.Get("/{brandId}", controllers.GetBrand(deps.Brands, logg))
			r.Patch("/{brandId}", controllers.UpdateBrand(deps.Brands, logg))
			r.Delete("/{brandId}", controllers.DeleteBrand(deps.Brands, logg))
		})
	})

	return r
}

// A nil *redis.Client in an interface value would still ping; keep it nil.
func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
