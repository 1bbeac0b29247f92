package main

import (
	"flag"
	"log"
	"os"

	"github.com/nutriboard/backend/config"
	"github.com/nutriboard/backend/internal/infrastructure/dataset"
)

// preprocess is the offline ingestion stage: it reconciles the raw
// per-category source tables, computes health scores, and writes the derived
// dataset the server loads at startup.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	sourceDir := flag.String("sources", cfg.Data.SourceDir, "directory of raw per-category tables")
	outPath := flag.String("out", cfg.Data.ProcessedPath, "path of the derived dataset to write")
	flag.Parse()

	products, err := dataset.LoadSources(*sourceDir)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	products = dataset.BuildProcessed(products)

	if err := dataset.WriteProcessed(*outPath, products); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}

	log.Printf("[INGEST] Wrote %d products to %s", len(products), *outPath)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
