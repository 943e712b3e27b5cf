package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	drawerapp "github.com/pos/backend/internal/application/drawer"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/event"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"github.com/pos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			POS Backend API
//	@version		1.0
//	@description	Cash drawer session and reconciliation engine for point-of-sale terminals

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

	log.Info("Starting POS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

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
	log.Info("Database connected successfully")

	// Initialize repositories
	drawerRepo := persistence.NewGormDrawerRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	transactionRepo := persistence.NewGormCashTransactionRepository(db.DB)
	varianceRepo := persistence.NewGormCashVarianceRepository(db.DB)
	transactionScope := persistence.NewGormTransactionScope(db.DB)

	// Domain services
	calculator := drawer.NewBalanceCalculator()
	classifier := drawer.NewReconciliationClassifier(cfg.Drawer.VarianceThresholdCents)

	// Event bus and projections
	eventBus := event.NewInMemoryEventBus(log)
	balanceProjector := drawerapp.NewDrawerBalanceProjector(drawerRepo, log)
	eventBus.Subscribe(balanceProjector)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	drawerService := drawerapp.NewDrawerService(drawerRepo, sessionRepo, log)
	drawerService.SetEventPublisher(eventBus)
	sessionService := drawerapp.NewSessionService(transactionScope, calculator, classifier, log)
	sessionService.SetEventPublisher(eventBus)
	auditService := drawerapp.NewAuditService(sessionRepo, transactionRepo, varianceRepo, calculator)

	// HTTP handlers
	drawerHandler := handler.NewDrawerHandler(drawerService)
	sessionHandler := handler.NewSessionHandler(sessionService, auditService)

	// Configure gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Drawer domain: registry, sessions, cash movements, audit
	drawerRoutes := router.NewDomainGroup("drawer", "/drawer")
	drawerRoutes.GET("/drawers", drawerHandler.ListActive)
	drawerRoutes.POST("/drawers", drawerHandler.Create)
	drawerRoutes.GET("/drawers/:id", drawerHandler.GetByID)
	drawerRoutes.POST("/drawers/:id/activate", drawerHandler.Activate)
	drawerRoutes.POST("/drawers/:id/deactivate", drawerHandler.Deactivate)
	drawerRoutes.POST("/drawers/:id/sessions", sessionHandler.Open)
	drawerRoutes.GET("/sessions", sessionHandler.List)
	drawerRoutes.GET("/sessions/open", sessionHandler.ListOpen)
	drawerRoutes.GET("/sessions/:id", sessionHandler.GetByID)
	drawerRoutes.GET("/sessions/:id/export", sessionHandler.Export)
	drawerRoutes.POST("/sessions/:id/close", sessionHandler.Close)
	drawerRoutes.POST("/sessions/:id/cancel", sessionHandler.Cancel)
	drawerRoutes.POST("/sessions/:id/transactions", sessionHandler.Record)
	r.Register(drawerRoutes)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health.
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
