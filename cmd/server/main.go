package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/tornado/portal/internal/application/catalog"
	identityapp "github.com/tornado/portal/internal/application/identity"
	orderingapp "github.com/tornado/portal/internal/application/ordering"
	partnerapp "github.com/tornado/portal/internal/application/partner"
	quotingapp "github.com/tornado/portal/internal/application/quoting"
	reportapp "github.com/tornado/portal/internal/application/report"
	"github.com/tornado/portal/internal/infrastructure/auth"
	"github.com/tornado/portal/internal/infrastructure/config"
	"github.com/tornado/portal/internal/infrastructure/event"
	"github.com/tornado/portal/internal/infrastructure/logger"
	"github.com/tornado/portal/internal/infrastructure/persistence"
	"github.com/tornado/portal/internal/interfaces/http/handler"
	"github.com/tornado/portal/internal/interfaces/http/middleware"
	"github.com/tornado/portal/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Tornado Portal",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database ready")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	membershipRepo := persistence.NewGormPartnerUserRepository(db.DB)
	priceRepo := persistence.NewGormPartnerPriceRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)

	// Event bus with the in-process notification feed
	bus := event.NewInMemoryEventBus(log)
	feed := event.NewNotificationFeed(cfg.Notification.FeedCapacity)
	bus.Subscribe(feed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, membershipRepo, jwtService)
	userService := identityapp.NewUserService(userRepo)
	partnerService := partnerapp.NewPartnerService(partnerRepo, membershipRepo, userRepo)
	productService := catalogapp.NewProductService(productRepo, priceRepo, partnerRepo)
	quoteService := quotingapp.NewQuoteService(quoteRepo, productRepo, priceRepo, partnerRepo, bus)
	orderService := orderingapp.NewOrderService(orderRepo, quoteRepo, bus)
	reportService := reportapp.NewReportService(salesReportRepo)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	router.Setup(engine, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Partner: handler.NewPartnerHandler(partnerService),
		Product: handler.NewProductHandler(productService),
		Quote:   handler.NewQuoteHandler(quoteService),
		Order:   handler.NewOrderHandler(orderService),
		Report:  handler.NewReportHandler(reportService),
		System:  handler.NewSystemHandler(db, feed, version),
	}, middleware.Auth(jwtService, authService, log))

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}

	log.Info("Stopped")
	os.Exit(0)
}
