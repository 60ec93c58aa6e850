package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/ngducnhatt/muacode.com/internal/domain/cart"
	"github.com/ngducnhatt/muacode.com/internal/domain/catalog"
	"github.com/ngducnhatt/muacode.com/internal/domain/order"
	"github.com/ngducnhatt/muacode.com/internal/handler"
	"github.com/ngducnhatt/muacode.com/internal/kv"
	"github.com/ngducnhatt/muacode.com/internal/session"
	"github.com/ngducnhatt/muacode.com/internal/storage/postgres"
	"github.com/ngducnhatt/muacode.com/internal/telegram"
	"github.com/ngducnhatt/muacode.com/internal/vietqr"
	"github.com/ngducnhatt/muacode.com/pkg/health"
	"github.com/ngducnhatt/muacode.com/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Cart storage: Redis when configured, in-process memory otherwise.
	var cartKV kv.KV
	if cfg.RedisURL != "" {
		redisKV, err := kv.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return errors.Wrap(err, "connect redis")
		}
		defer redisKV.Close()
		cartKV = redisKV
		lg.Info("Cart storage: redis")
	} else {
		cartKV = kv.NewMemory()
		lg.Info("Cart storage: in-process memory")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if redisKV, ok := cartKV.(*kv.Redis); ok {
		healthSvc.AddReadinessCheck("redis", 5*time.Second, redisKV.Ping)
	}
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Domain services.
	catalogRepo := postgres.NewCatalogRepository(pool)
	catalogSvc := catalog.NewService(catalogRepo)
	detailCache := catalog.NewDetailCache(catalogSvc)
	carts := cart.NewSessions(cartKV)
	notifier := telegram.New(telegram.Config{
		Token:  cfg.Telegram.BotToken,
		ChatID: cfg.Telegram.ChatID,
	})
	orderSvc := order.NewService(notifier, order.PayeeConfig{
		BankBIN: cfg.Payee.BankBIN,
		Account: cfg.Payee.Account,
	})
	bankClient := vietqr.NewClient()

	// HTTP routes: health endpoints + API on one server, the API behind the
	// session middleware.
	h := handler.New(catalogSvc, detailCache, carts, orderSvc, bankClient)
	api := http.NewServeMux()
	h.Register(api)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", otelhttp.NewHandler(session.Middleware(api), "storefront-api",
		otelhttp.WithTracerProvider(m.TracerProvider()),
		otelhttp.WithMeterProvider(m.MeterProvider()),
	))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
