package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/erp/projectlink/docs"
	accountingapp "github.com/erp/projectlink/internal/application/accounting"
	projectapp "github.com/erp/projectlink/internal/application/project"
	purchaseapp "github.com/erp/projectlink/internal/application/purchase"
	saleapp "github.com/erp/projectlink/internal/application/sale"
	"github.com/erp/projectlink/internal/infrastructure/config"
	"github.com/erp/projectlink/internal/infrastructure/i18n"
	"github.com/erp/projectlink/internal/infrastructure/logger"
	"github.com/erp/projectlink/internal/infrastructure/persistence"
	"github.com/erp/projectlink/internal/infrastructure/telemetry"
	"github.com/erp/projectlink/internal/interfaces/http/handler"
	"github.com/erp/projectlink/internal/interfaces/http/middleware"
	"github.com/erp/projectlink/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Project Link API
//	@version		1.0
//	@description	Project counters and navigation actions over purchase orders, vendor bills, sales orders and customer invoices.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// OpenTelemetry: traces, metrics and the zap log bridge
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		MinLevel:          zapcore.InfoLevel,
	})
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Bridge(log)

	// Continuous profiling. Span profiles need the profiler running first.
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilingBasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingBasicAuthPass,
		ProfileTypes:      cfg.Telemetry.ProfilingTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Profiler shutdown failed", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, shutdown := range []func(context.Context) error{tp.Shutdown, mp.Shutdown, lp.Shutdown} {
			if err := shutdown(shutdownCtx); err != nil {
				log.Error("Telemetry shutdown failed", zap.Error(err))
			}
		}
	}()

	log.Info("Starting project link service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel, logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	accountRepo := persistence.NewGormAnalyticAccountRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	moveRepo := persistence.NewGormAccountMoveRepository(db.DB)
	saleOrderRepo := persistence.NewGormSaleOrderRepository(db.DB)
	actionRepo := persistence.NewGormWindowActionRepository(db.DB)
	purchaseLinkRepo := persistence.NewGormPurchaseLinkRepository(db.DB)
	saleLinkRepo := persistence.NewGormSaleLinkRepository(db.DB)

	translator, err := i18n.NewTranslator(cfg.I18n.DefaultLanguage)
	if err != nil {
		log.Fatal("Failed to build translation catalog", zap.Error(err))
	}
	linkMetrics, err := telemetry.NewLinkMetrics(mp.Meter("projectlink"))
	if err != nil {
		log.Fatal("Failed to create link metrics", zap.Error(err))
	}

	// Initialize application services
	purchaseLinkService := projectapp.NewPurchaseLinkService(projectRepo, purchaseLinkRepo, actionRepo, translator, linkMetrics)
	saleLinkService := projectapp.NewSaleLinkService(projectRepo, saleLinkRepo, actionRepo, translator, linkMetrics)
	projectService := projectapp.NewProjectService(projectRepo, accountRepo, purchaseLinkService, saleLinkService)
	purchaseOrderService := purchaseapp.NewOrderService(purchaseOrderRepo)
	moveService := accountingapp.NewMoveService(moveRepo)
	saleOrderService := saleapp.NewOrderService(saleOrderRepo, projectRepo)
	advancePaymentService := saleapp.NewAdvancePaymentService(saleOrderRepo, projectRepo, persistence.NewGormTransactionScope(db), linkMetrics)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Project:       handler.NewProjectHandler(projectService, purchaseLinkService, saleLinkService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		AccountMove:   handler.NewAccountMoveHandler(moveService),
		SaleOrder:     handler.NewSaleOrderHandler(saleOrderService, advancePaymentService),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup custom validator with JSON tag name support
	middleware.SetupValidator()

	// Create Gin engine
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Add middleware (order matters). Tracing runs first so every later
	// middleware sees the server span.
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside the API group)
	engine.GET("/health", healthHandler(db))

	if cfg.Swagger.Enabled {
		router.RegisterSwagger(engine, cfg.Swagger.AllowedIPs)
	}

	// API routes. Language negotiation only matters for action names.
	r := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(middleware.Language(translator), middleware.TracingAttributeInjector()).
		RegisterAll(handlers)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// corsConfig overlays the configured origins, methods and headers on the defaults
func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
