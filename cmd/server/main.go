package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	catalogapp "github.com/reves-en-feuilles/backend/internal/application/catalog"
	inventoryapp "github.com/reves-en-feuilles/backend/internal/application/inventory"
	orderapp "github.com/reves-en-feuilles/backend/internal/application/order"
	settingsapp "github.com/reves-en-feuilles/backend/internal/application/settings"
	"github.com/reves-en-feuilles/backend/internal/infrastructure/config"
	"github.com/reves-en-feuilles/backend/internal/infrastructure/logger"
	"github.com/reves-en-feuilles/backend/internal/infrastructure/persistence"
	"github.com/reves-en-feuilles/backend/internal/interfaces/http/handler"
	"github.com/reves-en-feuilles/backend/internal/interfaces/http/middleware"
	"github.com/reves-en-feuilles/backend/internal/interfaces/http/router"
)

func main() {
	// Local .env overrides are optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting atelier backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database ready", zap.String("driver", cfg.Database.Driver))

	// Repositories
	ingredientRepo := persistence.NewGormIngredientRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	recipeVersionRepo := persistence.NewGormRecipeVersionRepository(db.DB)
	packRepo := persistence.NewGormPackRepository(db.DB)
	packVersionRepo := persistence.NewGormPackVersionRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	orderScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Application services
	ledgerService := inventoryapp.NewLedgerService(inventoryScope, ingredientRepo, movementRepo, recipeRepo, log)
	supplierService := inventoryapp.NewSupplierService(supplierRepo, ingredientRepo)
	recipeService := catalogapp.NewRecipeService(recipeRepo, recipeVersionRepo, ingredientRepo)
	packService := catalogapp.NewPackService(packRepo, packVersionRepo, recipeRepo, recipeService, ingredientRepo)
	packagingResolver := catalogapp.NewPackagingResolver(ingredientRepo)
	orderService := orderapp.NewOrderService(
		orderScope,
		orderRepo,
		settingsRepo,
		ingredientRepo,
		recipeRepo,
		packRepo,
		recipeService,
		packService,
		packagingResolver,
		ledgerService,
		log,
	)
	settingsService := settingsapp.NewSettingsService(settingsRepo, log)

	// HTTP handlers
	ingredientHandler := handler.NewIngredientHandler(ledgerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	packHandler := handler.NewPackHandler(packService)
	orderHandler := handler.NewOrderHandler(orderService, ledgerService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Inventory: ingredient ledger and suppliers
	inventoryRoutes := router.NewDomainGroup("inventory", "")
	inventoryRoutes.POST("/ingredients", ingredientHandler.Create)
	inventoryRoutes.GET("/ingredients", ingredientHandler.List)
	inventoryRoutes.GET("/ingredients/alerts", ingredientHandler.ListBelowThreshold)
	inventoryRoutes.GET("/ingredients/:id", ingredientHandler.Get)
	inventoryRoutes.PUT("/ingredients/:id", ingredientHandler.Update)
	inventoryRoutes.DELETE("/ingredients/:id", ingredientHandler.Delete)
	inventoryRoutes.POST("/ingredients/:id/archive", ingredientHandler.Archive)
	inventoryRoutes.GET("/ingredients/:id/movements", ingredientHandler.ListMovements)
	inventoryRoutes.POST("/movements", ingredientHandler.RecordMovement)
	inventoryRoutes.POST("/ingredients/:id/recompute-stock", ingredientHandler.RecomputeStock)
	inventoryRoutes.POST("/ingredients/:id/recompute-cost", ingredientHandler.RecomputeWAC)
	inventoryRoutes.POST("/suppliers", supplierHandler.Create)
	inventoryRoutes.GET("/suppliers", supplierHandler.List)
	inventoryRoutes.GET("/suppliers/:id", supplierHandler.Get)
	inventoryRoutes.PUT("/suppliers/:id", supplierHandler.Update)
	inventoryRoutes.DELETE("/suppliers/:id", supplierHandler.Delete)

	// Catalog: recipes and packs with their version history
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.POST("/recipes", recipeHandler.Create)
	catalogRoutes.GET("/recipes", recipeHandler.List)
	catalogRoutes.GET("/recipes/:id", recipeHandler.Get)
	catalogRoutes.PUT("/recipes/:id", recipeHandler.Update)
	catalogRoutes.DELETE("/recipes/:id", recipeHandler.Delete)
	catalogRoutes.GET("/recipes/:id/versions", recipeHandler.ListVersions)
	catalogRoutes.GET("/recipes/:id/versions/:version", recipeHandler.GetVersion)
	catalogRoutes.POST("/packs", packHandler.Create)
	catalogRoutes.GET("/packs", packHandler.List)
	catalogRoutes.GET("/packs/:id", packHandler.Get)
	catalogRoutes.PUT("/packs/:id", packHandler.Update)
	catalogRoutes.DELETE("/packs/:id", packHandler.Delete)
	catalogRoutes.GET("/packs/:id/versions", packHandler.ListVersions)
	catalogRoutes.GET("/packs/:id/versions/:version", packHandler.GetVersion)

	// Orders: lifecycle, stock flow, financial snapshots
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.PUT("/:id", orderHandler.Update)
	orderRoutes.DELETE("/:id", orderHandler.Delete)
	orderRoutes.POST("/:id/items", orderHandler.AddItem)
	orderRoutes.PATCH("/:id/status", orderHandler.UpdateStatus)
	orderRoutes.POST("/:id/confirm", orderHandler.Confirm)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.GET("/:id/movements", orderHandler.ListMovements)

	// Settings: fee schedule
	settingsRoutes := router.NewDomainGroup("settings", "/settings")
	settingsRoutes.GET("/fees", settingsHandler.GetSchedule)
	settingsRoutes.PUT("/fees", settingsHandler.UpdateSchedule)

	r.Register(inventoryRoutes).
		Register(catalogRoutes).
		Register(orderRoutes).
		Register(settingsRoutes)
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
