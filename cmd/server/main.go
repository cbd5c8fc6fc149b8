package main

import (
	"net/http"

	"catalog-service/internal/cache"
	"catalog-service/internal/handler"
	mid "catalog-service/internal/middleware"
	"catalog-service/internal/model"
	"catalog-service/internal/render"
	"catalog-service/internal/repository"
	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("catalog")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalog-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.Category{},
		&model.Product{},
		&model.Version{},
		&model.Blog{},
		&model.Buyer{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	buyerRepo := repository.NewBuyerRepository(db)

	// Category cache: read-through with TTL, invalidated by category writes
	categoryCache := cache.NewCategoryCache(categoryRepo.ListCategories, appConfig.Cache.CategoryTTL)

	// Handlers
	products := handler.NewProductHandler(productRepo, categoryCache, appConfig.Media.Dir)
	blogs := handler.NewBlogHandler(blogRepo, appConfig.Media.Dir)
	contacts := handler.NewContactHandler(buyerRepo)
	categories := handler.NewCategoryHandler(categoryRepo, categoryCache)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New("web/templates")
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}
	e.Renderer = renderer

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(logger.Middleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded images
	e.Static("/media", appConfig.Media.Dir)

	// Catalog pages
	e.GET("/", products.List)
	e.GET("/product/:id", products.Detail)
	e.GET("/product/create", products.CreateForm, mid.AuthMiddleware)
	e.POST("/product/create", products.Create, mid.AuthMiddleware)
	e.GET("/product/:id/update", products.UpdateForm, mid.AuthMiddleware)
	e.POST("/product/:id/update", products.Update, mid.AuthMiddleware)
	e.POST("/product/:id/delete", products.Delete, mid.AuthMiddleware)

	// Contact page
	e.GET("/contacts/", contacts.Form)
	e.POST("/contacts/", contacts.Submit)

	// Blog pages
	e.GET("/blog/", blogs.List)
	e.GET("/blog/create", blogs.CreateForm)
	e.POST("/blog/create", blogs.Create)
	e.GET("/detail_blog/:id", blogs.Detail)
	e.GET("/update_blog/:id", blogs.UpdateForm)
	e.POST("/update_blog/:id", blogs.Update)
	e.POST("/delete_blog/:id", blogs.Delete)
	e.GET("/activity/:id", blogs.TogglePublish)
	e.POST("/activity/:id", blogs.TogglePublish)

	// Category back-office API
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware)
	categoryAPI.GET("", categories.List)
	categoryAPI.GET("/:id", categories.Get)
	categoryAPI.POST("", categories.Create)
	categoryAPI.PUT("/:id", categories.Update)
	categoryAPI.DELETE("/:id", categories.Delete)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
