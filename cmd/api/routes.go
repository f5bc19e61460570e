package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"shopstack-products/pkg/cache"
	"shopstack-products/pkg/database"
	"shopstack-products/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "net/http/pprof"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupOperationalRoutes()
	a.setupHealthCheck()
	a.setupAPIRoutes()
}

// setupOperationalRoutes exposes metrics and profiling endpoints
func (a *App) setupOperationalRoutes() {
	// Expose pprof profiling endpoints (disable in production)
	if os.Getenv("ENV") != "production" {
		a.Router.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := database.MongoClient.Ping(ctx, nil); err != nil {
			logger.GlobalLogger.Errorf("MongoDB ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "MongoDB unavailable"})
			return
		}

		if _, err := cache.RedisClient.Ping(ctx).Result(); err != nil {
			logger.GlobalLogger.Errorf("Redis ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", a.ProductHandler.GetProducts)
			products.GET("/autocomplete", a.ProductHandler.Autocomplete)
			products.GET("/categories", a.ProductHandler.GetCategories)
			products.GET("/brands", a.ProductHandler.GetBrands)
			products.GET("/price-range", a.ProductHandler.GetPriceRange)
			products.GET("/name/:name", a.ProductHandler.GetProductByName)
			products.GET("/:id", a.ProductHandler.GetProductByID)
			products.POST("", a.ProductHandler.CreateProduct)
			products.PUT("/:id", a.ProductHandler.UpdateProduct)
			products.DELETE("/:id", a.ProductHandler.DeleteProduct)

			products.GET("/:id/reviews", a.ReviewHandler.GetReviews)
			products.POST("/:id/reviews", a.ReviewHandler.CreateReview)
		}

		carts := api.Group("/carts")
		{
			carts.POST("", a.CartHandler.CreateCart)
			carts.GET("/:id", a.CartHandler.GetCart)
			carts.PUT("/:id", a.CartHandler.UpdateCart)
			carts.DELETE("/:id", a.CartHandler.DeleteCart)
			carts.POST("/:id/items", a.CartHandler.UpsertItem)
			carts.DELETE("/:id/items/:productId", a.CartHandler.RemoveItem)
			carts.POST("/:id/checkout", a.CartHandler.Checkout)
		}

		favorites := api.Group("/favorites")
		{
			favorites.POST("", a.FavoriteHandler.CreateFavorite)
			favorites.GET("/:id", a.FavoriteHandler.GetFavorite)
			favorites.POST("/:id/toggle", a.FavoriteHandler.ToggleProduct)
			favorites.DELETE("/:id", a.FavoriteHandler.DeleteFavorite)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/kpi", a.AdminHandler.DashboardKPI)
			admin.GET("/products", a.AdminHandler.ListProducts)
		}
	}
}
