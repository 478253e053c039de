package main

import (
	"fmt"
	"log"
	"os"

	"github.com/medscan/backend/config"
	httpDelivery "github.com/medscan/backend/internal/delivery/http"
	"github.com/medscan/backend/internal/infrastructure/cache"
	"github.com/medscan/backend/internal/infrastructure/catalog"
	"github.com/medscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting MedScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s (%s)", cfg.Catalog.Path, cfg.Catalog.Type)

	// Load the reference catalog. A missing or malformed catalog is fatal:
	// the engine must not serve requests without it.
	var index *catalog.Index
	switch cfg.Catalog.Type {
	case "sqlite":
		index, err = catalog.LoadSQLite(cfg.Catalog.Path)
	default:
		index, err = catalog.LoadCSV(cfg.Catalog.Path)
	}
	if err != nil {
		log.Fatalf("Failed to load reference catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d records", index.Size())

	// Initialize usecase layer
	identificationService := usecase.NewIdentificationService(index, usecase.IdentificationConfig{
		ConfidenceThreshold: cfg.Matching.ConfidenceThreshold,
		MinQueryLength:      cfg.Matching.MinQueryLength,
		EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
	})

	log.Printf("Matching: threshold=%d, min_query_length=%d, debug=%v",
		cfg.Matching.ConfidenceThreshold,
		cfg.Matching.MinQueryLength,
		cfg.Matching.EnableDebugLogging)

	// Per-IP limiter store for the rate-limit middleware
	limiterStore := cache.NewMemoryCache()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(identificationService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, limiterStore)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
