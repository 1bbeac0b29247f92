package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nutriboard/backend/internal/domain"
)

// unknownValue is the sentinel for missing textual fields.
const unknownValue = "Unknown"

// Source column aliases. OpenFoodFacts exports name columns per locale, so
// several headers can carry the same canonical field; first alias present in
// a file wins. Columns outside this set are dropped.
var columnAliases = map[string][]string{
	"name":         {"product_name_es", "product_name", "product_name_en"},
	"brand":        {"brands", "brand"},
	"quantity":     {"quantity"},
	"serving_size": {"serving_size"},
	"ingredients":  {"ingredients_text_es", "ingredients_text"},
	"energy":       {"energy-kcal_value", "energy_kcal"},
	"sugars":       {"sugars_value", "sugars"},
	"fat":          {"fat_value", "fat"},
	"sat_fat":      {"saturated-fat_value", "saturated_fat"},
	"proteins":     {"proteins_value", "proteins"},
	"salt":         {"salt_value", "salt"},
	"fiber":        {"fiber_value", "fiber"},
}

// LoadSources reads every delimited source table in dir, projects each onto
// the canonical column set, tags its rows with the category implied by the
// filename stem, and concatenates the results. Malformed sources are skipped
// with a warning; an empty combined result is fatal.
func LoadSources(dir string) ([]domain.Product, error) {
	paths, err := sourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no source tables in %s", domain.ErrEmptyDataset, dir)
	}

	var combined []domain.Product
	for _, path := range paths {
		category := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if !domain.IsMacroCategory(category) {
			log.Printf("[INGEST] Skipping %s: %q is not a macro category", filepath.Base(path), category)
			continue
		}

		rows, err := readSource(path, category)
		if err != nil {
			log.Printf("[INGEST] Skipping %s: %v", filepath.Base(path), err)
			continue
		}

		log.Printf("[INGEST] Loaded %d rows from %s (category %s)", len(rows), filepath.Base(path), category)
		combined = append(combined, rows...)
	}

	if len(combined) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	return combined, nil
}

// sourceFiles returns the delimited table files in dir in name order, so
// repeated ingestion runs produce the same row order.
func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".tsv":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// readSource parses one source table and returns its cleaned rows.
func readSource(path, category string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, records, err := readDelimited(f)
	if err != nil {
		return nil, err
	}

	cols := resolveColumns(header)
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("no product name column in header")
	}

	var rows []domain.Product
	for _, rec := range records {
		// Tolerate ragged rows the way pandas' on_bad_lines=skip does.
		if len(rec) != len(header) {
			continue
		}

		name := strings.TrimSpace(field(rec, cols, "name"))
		if name == "" {
			continue // no synthetic identity is invented
		}

		rows = append(rows, domain.Product{
			Name:            name,
			Brand:           textField(rec, cols, "brand"),
			MacroCategory:   category,
			Quantity:        textField(rec, cols, "quantity"),
			ServingSize:     textField(rec, cols, "serving_size"),
			IngredientsText: textField(rec, cols, "ingredients"),
			EnergyKcal:      numericField(rec, cols, "energy"),
			Sugars:          numericField(rec, cols, "sugars"),
			Fat:             numericField(rec, cols, "fat"),
			SaturatedFat:    numericField(rec, cols, "sat_fat"),
			Proteins:        numericField(rec, cols, "proteins"),
			Salt:            numericField(rec, cols, "salt"),
			Fiber:           numericField(rec, cols, "fiber"),
		})
	}
	return rows, nil
}

// readDelimited reads a whole table, sniffing tab vs comma from the header
// line so both export flavors are accepted.
func readDelimited(f *os.File) ([]string, [][]string, error) {
	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse table: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty table")
	}

	// A single-field header on a tab read means the file is comma-delimited.
	if len(all[0]) == 1 && strings.Contains(all[0][0], ",") {
		if _, err := f.Seek(0, 0); err != nil {
			return nil, nil, err
		}
		reader = csv.NewReader(f)
		reader.Comma = ','
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1
		all, err = reader.ReadAll()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse table: %w", err)
		}
	}

	return all[0], all[1:], nil
}

// resolveColumns maps canonical field names to column indices by
// intersecting the header with the known aliases.
func resolveColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	cols := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[canonical] = i
				break
			}
		}
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// textField returns the cleaned textual value, defaulting to "Unknown".
func textField(rec []string, cols map[string]int, name string) string {
	v := strings.TrimSpace(field(rec, cols, name))
	if v == "" {
		return unknownValue
	}
	return v
}

// numericField parses a nutrient value, mapping anything missing,
// unparseable, or negative to the 0.0 sentinel.
func numericField(rec []string, cols map[string]int, name string) float64 {
	v := strings.TrimSpace(field(rec, cols, name))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
