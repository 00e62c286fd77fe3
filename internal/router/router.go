// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prodcat/catalog-backend/internal/cache"
	"github.com/prodcat/catalog-backend/internal/config"
	"github.com/prodcat/catalog-backend/internal/handlers"
	"github.com/prodcat/catalog-backend/internal/middleware"
	"github.com/prodcat/catalog-backend/internal/services"
	"github.com/prodcat/catalog-backend/internal/store"
)

func Initialize(db *gorm.DB, statsCache *cache.Cache, cfg *config.Config) *gin.Engine {
	// Initialize stores and services
	productStore := store.NewProductStore(db)
	propertyStore := store.NewPropertyStore(db)

	productService := services.NewProductService(productStore, statsCache)
	propertyService := services.NewPropertyService(propertyStore, statsCache)
	catalogService := services.NewCatalogService(productStore, statsCache,
		time.Duration(cfg.Redis.StatsTTL)*time.Second)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	productHandler := handlers.NewProductHandler(productService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.Metrics())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	r.GET("/metrics", middleware.MetricsHandler())

	// API v1 routes
	v1 := r.Group("/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/", catalogHandler.GetCatalog)
			catalog.GET("/filter/", catalogHandler.GetFilterStatistics)
		}

		products := v1.Group("/products")
		{
			products.GET("/", productHandler.GetProducts)
			products.POST("/", productHandler.CreateProduct)
			products.GET("/product/:uid", productHandler.GetProduct)
			products.DELETE("/product/:uid", productHandler.DeleteProduct)
		}

		properties := v1.Group("/properties")
		{
			properties.GET("/", propertyHandler.GetProperties)
			properties.POST("/", propertyHandler.CreateProperty)
			properties.GET("/:uid", propertyHandler.GetProperty)
			properties.DELETE("/:uid", propertyHandler.DeleteProperty)
		}
	}

	return r
}
