package main

import (
	"net/http"
	"os"

	"shopstack-products/internal/handlers"
	"shopstack-products/internal/middleware"
	"shopstack-products/internal/repositories"
	"shopstack-products/internal/services"
	"shopstack-products/internal/transformers"
	"shopstack-products/internal/validators"
	"shopstack-products/pkg/cache"
	"shopstack-products/pkg/config"
	"shopstack-products/pkg/database"
	"shopstack-products/pkg/logger"
	"shopstack-products/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	FavoriteHandler *handlers.FavoriteHandler
	ReviewHandler   *handlers.ReviewHandler
	AdminHandler    *handlers.AdminHandler
	RateLimiter     *middleware.RateLimiter
	Server          *http.Server
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeDatabase()
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the database connection and catalog indexes
func (a *App) initializeDatabase() {
	if err := database.InitDB(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	if err := database.CreateCatalogIndexes(database.DB); err != nil {
		logger.GlobalLogger.Errorf("Failed to create indexes: %v", err)
		os.Exit(1)
	}
}

// initialize the Redis cache
func (a *App) initializeCache() {
	if err := cache.InitRedis(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(rate.Limit(100/60.0), 10)
	go a.RateLimiter.Cleanup()
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// transformers
	productTrans := transformers.NewProductTransformer()
	categoryTrans := transformers.NewCategoryTransformer()

	// repositories
	productRepo := repositories.NewProductRepository(productTrans)
	referenceRepo := repositories.NewReferenceRepository(categoryTrans)
	cartRepo := repositories.NewCartRepository()
	favoriteRepo := repositories.NewFavoriteRepository()
	reviewRepo := repositories.NewReviewRepository()
	productCache := repositories.NewProductCache()

	// validators
	productValidator := validators.NewProductValidator()
	cartValidator := validators.NewCartValidator()

	// services
	catalogService := services.NewCatalogService(productRepo, referenceRepo, productCache, categoryTrans, productValidator)
	productService := services.NewProductService(productRepo, referenceRepo, productCache, categoryTrans, productValidator)
	cartService := services.NewCartService(cartRepo, productRepo, productCache, cartValidator)
	favoriteService := services.NewFavoriteService(favoriteRepo, productRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo, productCache)
	adminService := services.NewAdminService(productRepo, referenceRepo)

	// handlers
	a.ProductHandler = handlers.NewProductHandler(catalogService, productService)
	a.CartHandler = handlers.NewCartHandler(cartService)
	a.FavoriteHandler = handlers.NewFavoriteHandler(favoriteService)
	a.ReviewHandler = handlers.NewReviewHandler(reviewService)
	a.AdminHandler = handlers.NewAdminHandler(adminService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	database.CloseDB()
	cache.CloseRedis()
}
