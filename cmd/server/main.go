package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nutriboard/backend/config"
	httpDelivery "github.com/nutriboard/backend/internal/delivery/http"
	"github.com/nutriboard/backend/internal/infrastructure/dataset"
	"github.com/nutriboard/backend/internal/infrastructure/reasoning"
	"github.com/nutriboard/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Reasoning.APIKey == "" {
		log.Fatalf("Reasoning API key is required (set NUTRIBOARD_REASONING_API_KEY)")
	}

	log.Printf("Starting Nutriboard Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// The dataset is loaded fully before serving any query; the store is
	// immutable from here on and shared by every handler.
	store, err := dataset.Open(cfg.Data.ProcessedPath)
	if err != nil {
		log.Fatalf("Failed to load dataset from %s: %v", cfg.Data.ProcessedPath, err)
	}
	log.Printf("Dataset: %d products, categories: %v", store.Len(), store.Categories())

	reasoningClient := reasoning.NewClient(reasoning.Config{
		APIKey:            cfg.Reasoning.APIKey,
		BaseURL:           cfg.Reasoning.BaseURL,
		Model:             cfg.Reasoning.Model,
		Timeout:           cfg.Reasoning.Timeout,
		RequestsPerMinute: cfg.Reasoning.RequestsPerMinute,
	})
	if cfg.Server.Environment == "development" {
		reasoningClient.SetDebug(true)
		log.Printf("Reasoning client debug mode enabled")
	}

	filterService := usecase.NewFilterService(store)
	recommendationService := usecase.NewRecommendationService(
		store,
		reasoningClient,
		usecase.RecommendationConfig{
			MaxConcurrent:      cfg.Reasoning.MaxConcurrent,
			CallTimeout:        cfg.Reasoning.Timeout,
			EnableDebugLogging: cfg.Server.Environment == "development",
		},
	)
	comparisonService := usecase.NewComparisonService(store, reasoningClient, cfg.Reasoning.Timeout)

	handler := httpDelivery.NewHandler(filterService, recommendationService, comparisonService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
