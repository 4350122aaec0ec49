package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/libertycherie/storefront-backend/api/routes"
	"github.com/libertycherie/storefront-backend/internal/cart"
	"github.com/libertycherie/storefront-backend/internal/catalog"
	checkoutsvc "github.com/libertycherie/storefront-backend/internal/checkout"
	"github.com/libertycherie/storefront-backend/internal/customorders"
	"github.com/libertycherie/storefront-backend/internal/newsletter"
	"github.com/libertycherie/storefront-backend/internal/orders"
	"github.com/libertycherie/storefront-backend/internal/pricing"
	stripewebhook "github.com/libertycherie/storefront-backend/internal/webhooks/stripe"
	"github.com/libertycherie/storefront-backend/internal/wishlist"
	"github.com/libertycherie/storefront-backend/pkg/config"
	"github.com/libertycherie/storefront-backend/pkg/db"
	"github.com/libertycherie/storefront-backend/pkg/logger"
	"github.com/libertycherie/storefront-backend/pkg/metrics"
	"github.com/libertycherie/storefront-backend/pkg/migrate"
	"github.com/libertycherie/storefront-backend/pkg/redis"
	"github.com/libertycherie/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	policy, err := pricing.NewPolicy(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to build pricing policy", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalogRepo)
	exitOnError(logg, "failed to create catalog service", err)

	cartStore, err := cart.NewStore(redisClient, cfg.Cart.TTL)
	exitOnError(logg, "failed to create cart store", err)

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    cartStore,
		Products: catalogRepo,
		Policy:   policy,
	})
	exitOnError(logg, "failed to create cart service", err)

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Stripe:     stripeClient,
		Products:   catalogRepo,
		Policy:     policy,
		SuccessURL: cfg.App.SuccessURL(),
		CancelURL:  cfg.App.CancelURL(),
	})
	exitOnError(logg, "failed to create checkout service", err)

	ordersService, err := orders.NewService(ordersRepo)
	exitOnError(logg, "failed to create orders service", err)

	wishlistService, err := wishlist.NewService(wishlist.NewRepository(dbClient.DB()), catalogRepo)
	exitOnError(logg, "failed to create wishlist service", err)

	newsletterService, err := newsletter.NewService(dbClient.DB())
	exitOnError(logg, "failed to create newsletter service", err)

	customOrdersService, err := customorders.NewService(dbClient.DB())
	exitOnError(logg, "failed to create custom orders service", err)

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		OrdersRepo:        ordersRepo,
		CatalogRepo:       catalogRepo,
		TransactionRunner: dbClient,
		Carts:             cartStore,
		Logger:            logg,
		Currency:          cfg.Pricing.Currency,
	})
	exitOnError(logg, "failed to create webhook service", err)

	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Stripe.EventTTL, "stripe")
	exitOnError(logg, "failed to create idempotency guard", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:              cfg,
			Logger:              logg,
			DB:                  dbClient,
			Redis:               redisClient,
			Metrics:             httpMetrics,
			CatalogService:      catalogService,
			CartService:         cartService,
			CheckoutService:     checkoutService,
			OrdersService:       ordersService,
			WishlistService:     wishlistService,
			NewsletterService:   newsletterService,
			CustomOrdersService: customOrdersService,
			StripeClient:        stripeClient,
			StripeWebhookSvc:    webhookService,
			StripeWebhookGuard:  webhookGuard,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOnError(logg *logger.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
