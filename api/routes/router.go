package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chainfeed/storefront-backend/api/controllers"
	cartcontrollers "github.com/chainfeed/storefront-backend/api/controllers/cart"
	"github.com/chainfeed/storefront-backend/api/middleware"
	cartsvc "github.com/chainfeed/storefront-backend/internal/cart"
	"github.com/chainfeed/storefront-backend/pkg/config"
	"github.com/chainfeed/storefront-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers map[string]controllers.Pinger,
	cartService *cartsvc.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))

		r.Get("/", cartcontrollers.CartFetch(cartService, logg))
		r.Delete("/", cartcontrollers.CartClear(cartService, logg))
		r.Get("/checkout-url", cartcontrollers.CartCheckoutURL(cartService, cfg, logg))

		r.Route("/items", func(r chi.Router) {
			r.Post("/", cartcontrollers.CartAddItem(cartService, logg))
			r.Patch("/{productId}", cartcontrollers.CartSetQuantity(cartService, logg))
			r.Delete("/{productId}", cartcontrollers.CartRemoveItem(cartService, logg))
		})
	})

	return r
}
