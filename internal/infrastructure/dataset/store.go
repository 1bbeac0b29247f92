package dataset

import (
	"fmt"
	"log"
	"sort"

	"github.com/nutriboard/backend/internal/domain"
)

// Store is the immutable, process-scoped dataset. It is built exactly once
// at load time, fits the normalization scaler as part of that build, and is
// never written afterwards, so it is safe for unlimited concurrent readers.
type Store struct {
	products   []domain.Product
	profiles   []domain.NormalizedProfile
	byName     map[string]int
	byCategory map[string][]int
	categories []string
}

// NewStore builds the immutable dataset from cleaned product rows. This is
// the only place the min-max scaler is fitted.
func NewStore(products []domain.Product) (*Store, error) {
	if len(products) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	s := &Store{
		products:   products,
		profiles:   make([]domain.NormalizedProfile, len(products)),
		byName:     make(map[string]int, len(products)),
		byCategory: make(map[string][]int),
	}

	sc := fitScaler(products)
	for i, p := range products {
		s.profiles[i] = sc.normalize(p)
		// First occurrence wins for duplicate names, matching table order
		// tie-breaking everywhere else.
		if _, seen := s.byName[p.Name]; !seen {
			s.byName[p.Name] = i
		}
		if _, seen := s.byCategory[p.MacroCategory]; !seen {
			s.categories = append(s.categories, p.MacroCategory)
		}
		s.byCategory[p.MacroCategory] = append(s.byCategory[p.MacroCategory], i)
	}
	sort.Strings(s.categories)

	log.Printf("[DATASET] Loaded %d products across %d categories", len(products), len(s.categories))
	return s, nil
}

// Open reads the persisted preprocessed dataset and builds the store.
func Open(path string) (*Store, error) {
	products, err := ReadProcessed(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return NewStore(products)
}

// All returns every product in insertion order.
func (s *Store) All() []domain.Product {
	return s.products
}

// ByCategory returns the products of one category in insertion order.
// An empty category means no constraint.
func (s *Store) ByCategory(category string) []domain.Product {
	if category == "" {
		return s.products
	}
	idx := s.byCategory[category]
	out := make([]domain.Product, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.products[i])
	}
	return out
}

// ByName resolves a product identity.
func (s *Store) ByName(name string) (domain.Product, bool) {
	i, ok := s.byName[name]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

// Profile returns the normalized profile for a product identity.
func (s *Store) Profile(name string) (domain.NormalizedProfile, bool) {
	i, ok := s.byName[name]
	if !ok {
		return domain.NormalizedProfile{}, false
	}
	return s.profiles[i], true
}

// Categories returns the categories present in the dataset, sorted.
func (s *Store) Categories() []string {
	return s.categories
}

// Brands returns the distinct brands for a category selection, in first
// occurrence order. An empty category spans the whole dataset.
func (s *Store) Brands(category string) []string {
	var brands []string
	seen := make(map[string]bool)
	for _, p := range s.ByCategory(category) {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	return brands
}

// Len returns the dataset size.
func (s *Store) Len() int {
	return len(s.products)
}
