package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/cache"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/controllers"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/logger"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/routes"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/staging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Staged uploads survive a failed forward for a day before the sweeper
// discards them.
const (
	stagedRetention = 24 * time.Hour
	sweepInterval   = time.Hour
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	log, err := logger.Initialize(os.Getenv("ENV"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("Config load failed", zap.Error(err))
	}

	// --- Redis ---
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to parse REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)

	// --- Stores & upstream client ---
	marketplace := clients.NewMarketplaceClient(cfg.MarketplaceAPIURL, cfg.MarketplaceAPIToken, cfg.RequestTimeout)
	cacheStore := cache.NewStore(rdb, cfg.CacheTTL)

	stagedStore, err := staging.NewStore(cfg.StagingDir, stagedRetention)
	if err != nil {
		log.Fatal("Failed to initialize staging store", zap.Error(err))
	}
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	stagedStore.StartSweeper(sweeperCtx, sweepInterval)

	// --- Dependency injection ---
	locker := services.NewRedisDecisionLocker(rdb)
	importService := services.NewImportService(marketplace, cacheStore, stagedStore, log)
	suggestionService := services.NewSuggestionService(marketplace, cacheStore, locker, log)
	orderService := services.NewOrderService(marketplace, cacheStore, log)
	catalogService := services.NewCatalogService(marketplace, cacheStore, log)
	profileService := services.NewProfileService(marketplace, cacheStore, log)

	validator := controllers.NewRequestValidator()
	importController := controllers.NewImportController(importService, validator)
	suggestionController := controllers.NewSuggestionController(suggestionService, validator)
	orderController := controllers.NewOrderController(orderService, validator)
	catalogController := controllers.NewCatalogController(catalogService, validator)
	profileController := controllers.NewProfileController(profileService, validator)

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Seller-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(logger.RequestLogger(log))

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterDashboardRoutes(r, importController, suggestionController, orderController, catalogController, profileController)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Seller Dashboard started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		log.Error("Redis close error", zap.Error(err))
	}

	log.Info("Seller Dashboard stopped gracefully")
}
