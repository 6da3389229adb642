package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlisondra/tindahan-backend/api/controllers"
	"github.com/mlisondra/tindahan-backend/api/middleware"
	cartsvc "github.com/mlisondra/tindahan-backend/internal/cart"
	"github.com/mlisondra/tindahan-backend/internal/catalog"
	checkoutsvc "github.com/mlisondra/tindahan-backend/internal/checkout"
	ordersvc "github.com/mlisondra/tindahan-backend/internal/orders"
	"github.com/mlisondra/tindahan-backend/pkg/config"
	"github.com/mlisondra/tindahan-backend/pkg/db"
	"github.com/mlisondra/tindahan-backend/pkg/logger"
	"github.com/mlisondra/tindahan-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService ordersvc.Service,
	metricsGatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/shops", func(r chi.Router) {
		r.Get("/", controllers.ShopList(catalogService, logg))
		r.Get("/{sellerId}/products", controllers.ShopProducts(catalogService, logg))
		r.Get("/{sellerId}/products/{productId}", controllers.ShopProductDetail(catalogService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, catalogService, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(ordersService, logg))
			r.Post("/{orderId}/status", controllers.OrderUpdateStatus(ordersService, logg))
		})
	})

	return r
}
