package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/nutriboard/backend/internal/domain"
)

// processedHeader is the fixed column layout of the persisted derived
// dataset: written once by the preprocessing stage, read once at serve time.
var processedHeader = []string{
	"product_name", "brands", "macro_category", "quantity", "serving_size",
	"ingredients_text", "energy_kcal", "sugars", "fat", "saturated_fat",
	"proteins", "salt", "fiber", "health_score",
}

// BuildProcessed cleans up ingested rows into the final derived dataset:
// health scores computed from adjusted normalization, row order preserved.
func BuildProcessed(products []domain.Product) []domain.Product {
	scoreAll(products)
	return products
}

// WriteProcessed persists the derived dataset as a flat CSV file.
func WriteProcessed(path string, products []domain.Product) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(processedHeader); err != nil {
		return err
	}
	for _, p := range products {
		rec := []string{
			p.Name, p.Brand, p.MacroCategory, p.Quantity, p.ServingSize,
			p.IngredientsText,
			formatFloat(p.EnergyKcal), formatFloat(p.Sugars), formatFloat(p.Fat),
			formatFloat(p.SaturatedFat), formatFloat(p.Proteins),
			formatFloat(p.Salt), formatFloat(p.Fiber), formatFloat(p.HealthScore),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadProcessed reads a previously persisted derived dataset in full.
func ReadProcessed(path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(processedHeader)

	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(all) < 2 {
		return nil, domain.ErrEmptyDataset
	}

	products := make([]domain.Product, 0, len(all)-1)
	for _, rec := range all[1:] {
		products = append(products, domain.Product{
			Name:            rec[0],
			Brand:           rec[1],
			MacroCategory:   rec[2],
			Quantity:        rec[3],
			ServingSize:     rec[4],
			IngredientsText: rec[5],
			EnergyKcal:      parseFloat(rec[6]),
			Sugars:          parseFloat(rec[7]),
			Fat:             parseFloat(rec[8]),
			SaturatedFat:    parseFloat(rec[9]),
			Proteins:        parseFloat(rec[10]),
			Salt:            parseFloat(rec[11]),
			Fiber:           parseFloat(rec[12]),
			HealthScore:     parseFloat(rec[13]),
		})
	}
	return products, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
