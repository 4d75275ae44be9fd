package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/wms/backend/internal/application/catalog"
	inventoryapp "github.com/wms/backend/internal/application/inventory"
	orderapp "github.com/wms/backend/internal/application/order"
	warehouseapp "github.com/wms/backend/internal/application/warehouse"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/event"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"github.com/wms/backend/internal/interfaces/http/router"

	_ "github.com/wms/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			WMS Backend API
//	@version		1.0
//	@description	Warehouse management backend: stock balances, movement ledger and order fulfillment.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	log.Info("Starting WMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing first so everything below can pick up the global provider
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database with a zap-backed GORM logger
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
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracingCfg := telemetry.DefaultDBTracingConfig()
		dbTracingCfg.Enabled = true
		if err := telemetry.NewDBTracingPlugin(dbTracingCfg, log).Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	zoneRepo := persistence.NewGormZoneRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	balanceRepo := persistence.NewGormStockBalanceRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus with an audit subscriber for fulfillment events
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingEventHandler(log))
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Idempotency store (Redis when configured, in-memory otherwise)
	idempotencyStore := cache.NewIdempotencyStore(cfg, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	movementService := inventoryapp.NewMovementService(
		txScope, productRepo, locationRepo, movementRepo, balanceRepo, eventBus, log)
	orderService := orderapp.NewOrderService(txScope, orderRepo, productRepo, eventBus, log)
	productService := catalogapp.NewProductService(productRepo, log)
	warehouseService := warehouseapp.NewWarehouseService(
		warehouseRepo, zoneRepo, locationRepo, balanceRepo, log)

	// HTTP handlers
	inventoryHandler := handler.NewInventoryHandler(movementService)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	systemHandler := handler.NewSystemHandler(cfg)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, panic recovery, access log, tracing,
	// security headers, CORS, body limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check outside API versioning
	engine.GET("/health", healthHandler(db))

	// Swagger documentation, gated by configuration
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{Enabled: cfg.Swagger.Enabled}, nil),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	if cfg.Idempotency.Enabled {
		r.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Store:  idempotencyStore,
			TTL:    cfg.Idempotency.TTL,
			Logger: log,
		}))
		log.Info("Idempotency protection enabled", zap.Duration("ttl", cfg.Idempotency.TTL))
	}

	// Inventory domain: movements and balances
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/movements", inventoryHandler.CreateMovement)
	inventoryRoutes.GET("/movements", inventoryHandler.ListMovements)
	inventoryRoutes.GET("/movements/:id", inventoryHandler.GetMovement)
	inventoryRoutes.GET("/balances", inventoryHandler.ListBalances)

	// Order workflow
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.CreateOrder)
	orderRoutes.GET("", orderHandler.ListOrders)
	orderRoutes.GET("/:id", orderHandler.GetOrder)
	orderRoutes.PATCH("/:id/status", orderHandler.UpdateStatus)

	// Product catalog
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.POST("", productHandler.CreateProduct)
	productRoutes.GET("", productHandler.ListProducts)
	productRoutes.GET("/:id", productHandler.GetProduct)
	productRoutes.PUT("/:id", productHandler.UpdateProduct)
	productRoutes.DELETE("/:id", productHandler.DeleteProduct)

	// Warehouse hierarchy
	warehouseRoutes := router.NewDomainGroup("warehouses", "/warehouses")
	warehouseRoutes.POST("", warehouseHandler.CreateWarehouse)
	warehouseRoutes.GET("", warehouseHandler.ListWarehouses)
	warehouseRoutes.GET("/:id", warehouseHandler.GetWarehouse)
	warehouseRoutes.POST("/:id/zones", warehouseHandler.CreateZone)
	warehouseRoutes.GET("/:id/zones", warehouseHandler.ListZones)

	zoneRoutes := router.NewDomainGroup("zones", "/zones")
	zoneRoutes.POST("/:id/locations", warehouseHandler.CreateLocation)
	zoneRoutes.GET("/:id/locations", warehouseHandler.ListLocations)

	locationRoutes := router.NewDomainGroup("locations", "/locations")
	locationRoutes.DELETE("/:id", warehouseHandler.DeleteLocation)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.Info)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(inventoryRoutes).
		Register(orderRoutes).
		Register(productRoutes).
		Register(warehouseRoutes).
		Register(zoneRoutes).
		Register(locationRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
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
