package usecase

import (
	"github.com/nutriboard/backend/internal/domain"
)

// FilterService resolves the cascading selection graph: category is the
// root, brand options depend on category, product options on category and
// brand, and the table/scatter views on category, brand and row limit.
// Every derived node is recomputed from scratch per request against the
// immutable dataset; the service holds no state across invocations.
type FilterService struct {
	repo domain.ProductRepository
}

// NewFilterService creates a new filter service.
func NewFilterService(repo domain.ProductRepository) *FilterService {
	return &FilterService{repo: repo}
}

// Resolve evaluates the dependency graph top-down for one table/scatter
// selection. Absent selections pass the full table through; a zero RowLimit
// means "All" and disables truncation. Truncation keeps insertion order.
func (s *FilterService) Resolve(sel domain.FilterSelection) (*domain.FilterView, error) {
	if sel.RowLimit < 0 {
		return nil, domain.ErrInvalidRequest
	}

	// Node 1: brand options depend only on category.
	brands := s.repo.Brands(sel.Category)

	// Node 2: product options depend on category and brand.
	filtered := filterByBrand(s.repo.ByCategory(sel.Category), sel.Brand)
	products := productNames(filtered)

	// Node 3: table rows depend on category, brand and row limit.
	rows := filtered
	if sel.RowLimit > 0 && sel.RowLimit < len(rows) {
		rows = rows[:sel.RowLimit]
	}

	// Node 4: scatter points depend only on category.
	scatter := s.scatterPoints(sel.Category)

	return &domain.FilterView{
		BrandOptions:   brands,
		ProductOptions: products,
		Rows:           rows,
		TotalMatching:  len(filtered),
		Scatter:        scatter,
	}, nil
}

// CompareOptions resolves the dependent option sets of the comparison view:
// one brand option list per side, and per-side product options constrained
// by that side's brand.
func (s *FilterService) CompareOptions(sel domain.CompareSelection) (brands, products1, products2 []string) {
	brands = s.repo.Brands(sel.Category)
	inCategory := s.repo.ByCategory(sel.Category)
	products1 = productNames(filterByBrand(inCategory, sel.Brand1))
	products2 = productNames(filterByBrand(inCategory, sel.Brand2))
	return brands, products1, products2
}

// Scatter resolves the sugar-vs-fat scatter view for a category selection.
func (s *FilterService) Scatter(category string) []domain.ScatterPoint {
	return s.scatterPoints(category)
}

// Detail resolves the single-product analysis view. Zero-sentinel profile
// fields are elided, matching how the radar chart drops unreported values.
func (s *FilterService) Detail(name string) (*domain.ProductDetail, error) {
	if name == "" {
		return nil, domain.ErrInvalidRequest
	}
	product, ok := s.repo.ByName(name)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	profile, _ := s.repo.Profile(name)

	fields := make(map[string]float64)
	for _, f := range domain.NutrientFields {
		if v := profile.Field(f); v > 0 {
			fields[f] = v
		}
	}

	return &domain.ProductDetail{
		Product:  product,
		Profile:  fields,
		Category: product.MacroCategory,
	}, nil
}

// scatterPoints projects the category selection onto normalized sugar/fat
// coordinates.
func (s *FilterService) scatterPoints(category string) []domain.ScatterPoint {
	rows := s.repo.ByCategory(category)
	points := make([]domain.ScatterPoint, 0, len(rows))
	for _, p := range rows {
		profile, ok := s.repo.Profile(p.Name)
		if !ok {
			continue
		}
		points = append(points, domain.ScatterPoint{
			Name:          p.Name,
			Sugars:        profile.Sugars,
			Fat:           profile.Fat,
			MacroCategory: p.MacroCategory,
		})
	}
	return points
}

// filterByBrand narrows rows to one brand; an empty brand is no constraint.
func filterByBrand(rows []domain.Product, brand string) []domain.Product {
	if brand == "" {
		return rows
	}
	var out []domain.Product
	for _, p := range rows {
		if p.Brand == brand {
			out = append(out, p)
		}
	}
	return out
}

// productNames returns distinct product names in first occurrence order.
func productNames(rows []domain.Product) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range rows {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}
