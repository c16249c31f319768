package main

import (
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/skinsight/backend/config"
	httpDelivery "github.com/skinsight/backend/internal/delivery/http"
	"github.com/skinsight/backend/internal/domain"
	"github.com/skinsight/backend/internal/infrastructure/cache"
	"github.com/skinsight/backend/internal/infrastructure/openbeautyfacts"
	"github.com/skinsight/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SkinSight Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	store, err := newProductStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize product store: %v", err)
	}

	obfClient := openbeautyfacts.NewClient(cfg.OBF.BaseURL, cfg.OBF.UserAgent)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		obfClient.SetDebug(true)
		log.Printf("Open Beauty Facts client debug mode enabled")
	}

	log.Printf("Open Beauty Facts API configured: %s", cfg.OBF.BaseURL)

	// Initialize usecase layer
	productService := usecase.NewProductService(obfClient, store)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newProductStore builds the configured product store implementation
func newProductStore(cfg *config.Config) (domain.ProductStore, error) {
	switch cfg.Cache.Type {
	case "memory":
		return cache.NewMemoryStore(), nil
	case "file":
		log.Printf("Cache file: %s", cfg.Cache.Path)
		return cache.NewFileStore(cfg.Cache.Path), nil
	case "redis":
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		return cache.NewRedisStore(redis.NewClient(opts), cfg.Cache.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Cache.Type)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
