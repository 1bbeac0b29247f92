package usecase

import (
	"context"

	"github.com/nutriboard/backend/internal/domain"
)

// stubRepo is an in-memory ProductRepository over a fixed product slice,
// preserving insertion order like the real store.
type stubRepo struct {
	products []domain.Product
	profiles map[string]domain.NormalizedProfile
}

func newStubRepo(products []domain.Product) *stubRepo {
	return &stubRepo{products: products, profiles: map[string]domain.NormalizedProfile{}}
}

func (r *stubRepo) All() []domain.Product { return r.products }

func (r *stubRepo) ByCategory(category string) []domain.Product {
	if category == "" {
		return r.products
	}
	var out []domain.Product
	for _, p := range r.products {
		if p.MacroCategory == category {
			out = append(out, p)
		}
	}
	return out
}

func (r *stubRepo) ByName(name string) (domain.Product, bool) {
	for _, p := range r.products {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (r *stubRepo) Profile(name string) (domain.NormalizedProfile, bool) {
	if prof, ok := r.profiles[name]; ok {
		return prof, true
	}
	_, ok := r.ByName(name)
	return domain.NormalizedProfile{}, ok
}

func (r *stubRepo) Categories() []string {
	var cats []string
	seen := map[string]bool{}
	for _, p := range r.products {
		if !seen[p.MacroCategory] {
			seen[p.MacroCategory] = true
			cats = append(cats, p.MacroCategory)
		}
	}
	return cats
}

func (r *stubRepo) Brands(category string) []string {
	var brands []string
	seen := map[string]bool{}
	for _, p := range r.ByCategory(category) {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	return brands
}

// stubReasoning scripts the reasoning client per capability.
type stubReasoning struct {
	extractTags  []string
	extractErr   error
	judgeFn      func(category string) (string, error)
	judgePair    string
	judgePairErr error
}

func (s *stubReasoning) ExtractCategories(_ context.Context, _ string) ([]string, error) {
	return s.extractTags, s.extractErr
}

func (s *stubReasoning) Judge(_ context.Context, category string, _ []domain.Product, _ string) (string, error) {
	if s.judgeFn != nil {
		return s.judgeFn(category)
	}
	return "a justification for " + category, nil
}

func (s *stubReasoning) JudgePair(_ context.Context, _, _ domain.Product, _ []domain.NutrientVerdict) (string, error) {
	return s.judgePair, s.judgePairErr
}
