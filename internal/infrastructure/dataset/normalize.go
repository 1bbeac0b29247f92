package dataset

import "github.com/nutriboard/backend/internal/domain"

// scaler holds per-field (min, max) pairs fitted once over the whole
// dataset. The type and its fit function are unexported so no caller can
// refit on a filtered subset: normalized values stay comparable corpus-wide.
type scaler struct {
	min map[string]float64
	max map[string]float64
}

// profileFields extracts the six scaled nutrient values from a product.
func profileFields(p domain.Product) map[string]float64 {
	return map[string]float64{
		"sugars":     p.Sugars,
		"fat":        p.Fat,
		"energyKcal": p.EnergyKcal,
		"fiber":      p.Fiber,
		"proteins":   p.Proteins,
		"salt":       p.Salt,
	}
}

// fitScaler computes dataset-wide min and max for each nutrient field.
func fitScaler(products []domain.Product) *scaler {
	s := &scaler{
		min: make(map[string]float64, len(domain.NutrientFields)),
		max: make(map[string]float64, len(domain.NutrientFields)),
	}
	for i, p := range products {
		for name, v := range profileFields(p) {
			if i == 0 || v < s.min[name] {
				s.min[name] = v
			}
			if i == 0 || v > s.max[name] {
				s.max[name] = v
			}
		}
	}
	return s
}

// normalize maps one product's nutrient fields into [0,1]. A field whose
// fitted range is degenerate (max == min) maps to 0.
func (s *scaler) normalize(p domain.Product) domain.NormalizedProfile {
	fields := profileFields(p)
	scaled := make(map[string]float64, len(fields))
	for name, v := range fields {
		span := s.max[name] - s.min[name]
		if span <= 0 {
			scaled[name] = 0
			continue
		}
		scaled[name] = (v - s.min[name]) / span
	}
	return domain.NormalizedProfile{
		Sugars:     scaled["sugars"],
		Fat:        scaled["fat"],
		EnergyKcal: scaled["energyKcal"],
		Fiber:      scaled["fiber"],
		Proteins:   scaled["proteins"],
		Salt:       scaled["salt"],
	}
}

// scoreFields extracts the health-score inputs from a product. Energy is
// deliberately absent: the score weighs protein and fiber against sugar,
// fat, saturated fat and salt.
func scoreFields(p domain.Product) map[string]float64 {
	return map[string]float64{
		"sugars":       p.Sugars,
		"fat":          p.Fat,
		"saturatedFat": p.SaturatedFat,
		"proteins":     p.Proteins,
		"salt":         p.Salt,
		"fiber":        p.Fiber,
	}
}

// fitAdjustedMax computes the per-field maximum over non-zero values only.
// Zeros stand in for unreported values, so they are excluded from the fit;
// a field that is zero everywhere keeps a zero max and contributes nothing.
func fitAdjustedMax(products []domain.Product) map[string]float64 {
	adjMax := make(map[string]float64)
	for _, p := range products {
		for name, v := range scoreFields(p) {
			if v > 0 && v > adjMax[name] {
				adjMax[name] = v
			}
		}
	}
	return adjMax
}

// healthScore computes the derived health score for one product from its
// adjusted-normalized values. Unresolved zero-sentinel fields participate as
// zero in the ratio; the +1 denominator term makes the score total (never
// NaN, never negative). Higher is healthier.
func healthScore(p domain.Product, adjMax map[string]float64) float64 {
	norm := make(map[string]float64, 6)
	for name, v := range scoreFields(p) {
		if v > 0 && adjMax[name] > 0 {
			norm[name] = v / adjMax[name]
		}
	}

	reward := norm["proteins"] + norm["fiber"]
	penalty := norm["sugars"] + norm["fat"] + norm["saturatedFat"] + norm["salt"]
	return reward / (penalty + 1)
}

// scoreAll fills in the health score for every product. Called exactly once,
// from the offline preprocessing path.
func scoreAll(products []domain.Product) {
	adjMax := fitAdjustedMax(products)
	for i := range products {
		products[i].HealthScore = healthScore(products[i], adjMax)
	}
}
