package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/libertycherie/storefront-backend/api/controllers"
	webhookcontrollers "github.com/libertycherie/storefront-backend/api/controllers/webhooks"
	"github.com/libertycherie/storefront-backend/api/middleware"
	"github.com/libertycherie/storefront-backend/internal/cart"
	"github.com/libertycherie/storefront-backend/internal/catalog"
	checkoutsvc "github.com/libertycherie/storefront-backend/internal/checkout"
	"github.com/libertycherie/storefront-backend/internal/customorders"
	"github.com/libertycherie/storefront-backend/internal/newsletter"
	"github.com/libertycherie/storefront-backend/internal/orders"
	stripewebhook "github.com/libertycherie/storefront-backend/internal/webhooks/stripe"
	"github.com/libertycherie/storefront-backend/internal/wishlist"
	"github.com/libertycherie/storefront-backend/pkg/config"
	"github.com/libertycherie/storefront-backend/pkg/db"
	"github.com/libertycherie/storefront-backend/pkg/logger"
	"github.com/libertycherie/storefront-backend/pkg/metrics"
	"github.com/libertycherie/storefront-backend/pkg/redis"
	"github.com/libertycherie/storefront-backend/pkg/stripe"
)

// RouterParams collects everything the HTTP surface needs.
type RouterParams struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   redis.Pinger
	Metrics *metrics.HTTPMetrics

	CatalogService      catalog.Service
	CartService         cart.Service
	CheckoutService     checkoutsvc.Service
	OrdersService       orders.Service
	WishlistService     wishlist.Service
	NewsletterService   newsletter.Service
	CustomOrdersService customorders.Service

	StripeClient       *stripe.Client
	StripeWebhookSvc   *stripewebhook.Service
	StripeWebhookGuard *stripewebhook.IdempotencyGuard
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.DB, p.Redis, p.Logger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// raw-body route; signature verification happens in the controller
	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(p.StripeWebhookSvc, p.StripeClient, p.StripeWebhookGuard, p.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(p.CatalogService, p.Logger))
			r.Get("/{idOrSlug}", controllers.GetProduct(p.CatalogService, p.Logger))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartToken(p.Logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(p.CartService, p.Logger))
				r.Delete("/", controllers.ClearCart(p.CartService, p.Logger))
				r.Post("/items", controllers.AddCartItem(p.CartService, p.Logger))
				r.Patch("/items/{productId}", controllers.UpdateCartItem(p.CartService, p.Logger))
				r.Delete("/items/{productId}", controllers.RemoveCartItem(p.CartService, p.Logger))
			})

			r.Post("/checkout", controllers.CreateCheckoutSession(p.CheckoutService, p.Logger))

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.ListWishlist(p.WishlistService, p.Logger))
				r.Post("/", controllers.AddWishlistItem(p.WishlistService, p.Logger))
				r.Delete("/{productId}", controllers.RemoveWishlistItem(p.WishlistService, p.Logger))
			})
		})

		r.Get("/orders/lookup", controllers.LookupOrder(p.OrdersService, p.Logger))
		r.Post("/newsletter/subscribe", controllers.SubscribeNewsletter(p.NewsletterService, p.Logger))
		r.Post("/custom-orders", controllers.SubmitCustomOrder(p.CustomOrdersService, p.Logger))
	})

	return r
}
