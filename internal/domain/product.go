package domain

// Product represents one breakfast product after ingestion and cleaning.
// Numeric nutrient fields are non-negative; 0.0 doubles as the
// missing-value sentinel (the source data cannot distinguish the two).
type Product struct {
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	MacroCategory   string  `json:"macroCategory"`
	Quantity        string  `json:"quantity,omitempty"`
	ServingSize     string  `json:"servingSize,omitempty"`
	IngredientsText string  `json:"ingredientsText,omitempty"`
	Sugars          float64 `json:"sugars"`
	Fat             float64 `json:"fat"`
	SaturatedFat    float64 `json:"saturatedFat"`
	EnergyKcal      float64 `json:"energyKcal"`
	Fiber           float64 `json:"fiber"`
	Proteins        float64 `json:"proteins"`
	Salt            float64 `json:"salt"`
	HealthScore     float64 `json:"healthScore"`
}

// NormalizedProfile holds the six scaled nutrient fields of a product,
// each min-max normalized into [0,1] against the whole dataset.
type NormalizedProfile struct {
	Sugars     float64 `json:"sugars"`
	Fat        float64 `json:"fat"`
	EnergyKcal float64 `json:"energyKcal"`
	Fiber      float64 `json:"fiber"`
	Proteins   float64 `json:"proteins"`
	Salt       float64 `json:"salt"`
}

// NutrientFields lists the six normalized nutrient field names in their
// canonical display order (used by comparison verdicts and chart views).
var NutrientFields = []string{"sugars", "fat", "energyKcal", "fiber", "proteins", "salt"}

// Field returns the profile value for a canonical nutrient field name.
func (p NormalizedProfile) Field(name string) float64 {
	switch name {
	case "sugars":
		return p.Sugars
	case "fat":
		return p.Fat
	case "energyKcal":
		return p.EnergyKcal
	case "fiber":
		return p.Fiber
	case "proteins":
		return p.Proteins
	case "salt":
		return p.Salt
	}
	return 0
}
