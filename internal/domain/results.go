package domain

// FilterSelection is the transient selection state for the table/scatter
// views. Empty strings mean "no constraint"; RowLimit 0 means "All".
type FilterSelection struct {
	Category string
	Brand    string
	RowLimit int
}

// CompareSelection is the transient selection state for the comparison view.
type CompareSelection struct {
	Category string
	Brand1   string
	Brand2   string
	Product1 string
	Product2 string
}

// FilterView is the fully resolved output of one filter pass: the dependent
// option sets plus the rows and scatter points for the current selection.
type FilterView struct {
	BrandOptions   []string       `json:"brandOptions"`
	ProductOptions []string       `json:"productOptions"`
	Rows           []Product      `json:"rows"`
	TotalMatching  int            `json:"totalMatching"`
	Scatter        []ScatterPoint `json:"scatter"`
}

// ScatterPoint is one product positioned by normalized sugar and fat.
type ScatterPoint struct {
	Name          string  `json:"name"`
	Sugars        float64 `json:"sugars"`
	Fat           float64 `json:"fat"`
	MacroCategory string  `json:"macroCategory"`
}

// ProductDetail is the single-product analysis view: the raw record, its
// normalized profile restricted to reported (non-zero) fields, and the
// health score.
type ProductDetail struct {
	Product  Product            `json:"product"`
	Profile  map[string]float64 `json:"profile"`
	Category string             `json:"category"`
}

// CategoryRecommendation is the outcome for a single extracted category.
// Exactly one of Product/Justification or Err is meaningful: a service
// failure for one category never discards its siblings.
type CategoryRecommendation struct {
	Category      string    `json:"category"`
	Product       *Product  `json:"product,omitempty"`
	Candidates    []Product `json:"candidates,omitempty"`
	Justification string    `json:"justification,omitempty"`
	Err           string    `json:"error,omitempty"`
}

// Recommendation is the final output of the query resolution pipeline,
// one entry per category in extraction order.
type Recommendation struct {
	RequestID string                   `json:"requestId"`
	Query     string                   `json:"query"`
	Entries   []CategoryRecommendation `json:"entries"`
}

// NutrientVerdict is the per-field outcome of a comparison. Winner is the
// winning product's name, or empty when the field is tied or only a
// missing-sentinel zero would have won.
type NutrientVerdict struct {
	Field  string  `json:"field"`
	ValueA float64 `json:"valueA"`
	ValueB float64 `json:"valueB"`
	Winner string  `json:"winner,omitempty"`
}

// ComparisonVerdict is the output of the comparison engine. The deterministic
// per-field table and the narrative are independent: a failed narrative call
// leaves Narrative empty and NarrativeErr set, the table is always present.
type ComparisonVerdict struct {
	RequestID    string            `json:"requestId"`
	ProductA     Product           `json:"productA"`
	ProductB     Product           `json:"productB"`
	ProfileA     NormalizedProfile `json:"profileA"`
	ProfileB     NormalizedProfile `json:"profileB"`
	Nutrients    []NutrientVerdict `json:"nutrients"`
	Narrative    string            `json:"narrative,omitempty"`
	NarrativeErr string            `json:"narrativeError,omitempty"`
}
