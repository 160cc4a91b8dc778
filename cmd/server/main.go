package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/hisaabos/backend/internal/application/catalog"
	financeapp "github.com/hisaabos/backend/internal/application/finance"
	khataapp "github.com/hisaabos/backend/internal/application/khata"
	projectapp "github.com/hisaabos/backend/internal/application/project"
	reportapp "github.com/hisaabos/backend/internal/application/report"
	salesapp "github.com/hisaabos/backend/internal/application/sales"
	"github.com/hisaabos/backend/internal/domain/integration"
	"github.com/hisaabos/backend/internal/infrastructure/config"
	"github.com/hisaabos/backend/internal/infrastructure/courier"
	"github.com/hisaabos/backend/internal/infrastructure/ecommerce"
	"github.com/hisaabos/backend/internal/infrastructure/logger"
	"github.com/hisaabos/backend/internal/infrastructure/persistence"
	"github.com/hisaabos/backend/internal/interfaces/http/handler"
	"github.com/hisaabos/backend/internal/interfaces/http/middleware"
	"github.com/hisaabos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting HisaabOS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	personRepo := persistence.NewGormPersonRepository(db.DB)
	blacklistRepo := persistence.NewGormBlacklistRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	adSpendRepo := persistence.NewGormAdSpendRepository(db.DB)

	// Courier registry and storefront connections
	couriers := courier.NewRegistry(cfg.Courier, log)

	sources := make([]integration.OrderSource, 0, 2)
	if cfg.Shopify.StoreDomain != "" {
		sources = append(sources, ecommerce.NewShopifyClient(cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken, log))
		log.Info("Shopify sync enabled", zap.String("store", cfg.Shopify.StoreDomain))
	}
	if cfg.WooCommerce.SiteURL != "" {
		sources = append(sources, ecommerce.NewWooCommerceClient(
			cfg.WooCommerce.SiteURL, cfg.WooCommerce.ConsumerKey, cfg.WooCommerce.ConsumerSecret, log))
		log.Info("WooCommerce sync enabled", zap.String("site", cfg.WooCommerce.SiteURL))
	}

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo)
	txScope := persistence.NewGormTransactionScope(db.DB)
	orderService := salesapp.NewOrderService(orderRepo, productRepo, personRepo, blacklistRepo, txScope)
	bookingService := salesapp.NewBookingService(orderRepo, couriers)
	syncService := salesapp.NewSyncService(orderRepo, productRepo, personRepo, blacklistRepo, txScope, sources, log)
	personService := khataapp.NewPersonService(personRepo, blacklistRepo)
	financeService := financeapp.NewFinanceService(expenseRepo, adSpendRepo)
	projectService := projectapp.NewProjectService(projectRepo, orderRepo, expenseRepo)
	dashboardService := reportapp.NewDashboardService(orderRepo, productRepo, expenseRepo, adSpendRepo)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService, bookingService)
	syncHandler := handler.NewSyncHandler(syncService)
	personHandler := handler.NewPersonHandler(personService)
	financeHandler := handler.NewFinanceHandler(financeService)
	projectHandler := handler.NewProjectHandler(projectService)
	reportHandler := handler.NewReportHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

	// Setup gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Register domain route groups
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/low-stock", productHandler.ListLowStock)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	r.Register(catalogRoutes)

	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.POST("/orders", orderHandler.Create)
	salesRoutes.GET("/orders", orderHandler.List)
	salesRoutes.GET("/orders/invoice/:invoice", orderHandler.GetByInvoiceNumber)
	salesRoutes.GET("/orders/:id", orderHandler.GetByID)
	salesRoutes.PUT("/orders/:id", orderHandler.Update)
	salesRoutes.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	salesRoutes.DELETE("/orders/:id", orderHandler.Delete)
	salesRoutes.GET("/risk-check", orderHandler.CheckRisk)
	salesRoutes.POST("/bookings", orderHandler.BulkBook)
	salesRoutes.POST("/factoring-quote", orderHandler.QuoteFactoring)
	salesRoutes.POST("/sync", syncHandler.SyncAll)
	salesRoutes.GET("/sync/test", syncHandler.TestConnections)
	salesRoutes.POST("/sync/stock", syncHandler.PushStock)
	r.Register(salesRoutes)

	khataRoutes := router.NewDomainGroup("khata", "/khata")
	khataRoutes.POST("/people", personHandler.Create)
	khataRoutes.GET("/people", personHandler.List)
	khataRoutes.GET("/people/phone/:phone", personHandler.GetByPhone)
	khataRoutes.GET("/people/:id", personHandler.GetByID)
	khataRoutes.PUT("/people/:id", personHandler.Update)
	khataRoutes.DELETE("/people/:id", personHandler.Delete)
	khataRoutes.POST("/people/:id/ledger", personHandler.PostLedgerEntry)
	khataRoutes.GET("/blacklist", personHandler.ListBlacklist)
	khataRoutes.POST("/blacklist", personHandler.Blacklist)
	khataRoutes.DELETE("/blacklist/:phone", personHandler.Unblacklist)
	r.Register(khataRoutes)

	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/expenses", financeHandler.CreateExpense)
	financeRoutes.GET("/expenses", financeHandler.ListExpenses)
	financeRoutes.DELETE("/expenses/:id", financeHandler.DeleteExpense)
	financeRoutes.POST("/ad-spends", financeHandler.CreateAdSpend)
	financeRoutes.GET("/ad-spends", financeHandler.ListAdSpends)
	financeRoutes.GET("/ad-spends/total", financeHandler.TotalAdSpend)
	financeRoutes.DELETE("/ad-spends/:id", financeHandler.DeleteAdSpend)
	r.Register(financeRoutes)

	projectRoutes := router.NewDomainGroup("project", "/projects")
	projectRoutes.POST("", projectHandler.Create)
	projectRoutes.GET("", projectHandler.List)
	projectRoutes.GET("/:id", projectHandler.GetByID)
	projectRoutes.PUT("/:id", projectHandler.Update)
	projectRoutes.DELETE("/:id", projectHandler.Delete)
	projectRoutes.GET("/:id/profit-loss", projectHandler.ProfitLoss)
	r.Register(projectRoutes)

	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)
	r.Register(reportRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
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
