package domain

import "context"

// ProductRepository is the read-only view onto the loaded dataset. The
// backing data is immutable for the process lifetime, so implementations are
// safe for unlimited concurrent readers. Iteration order is the dataset's
// insertion order everywhere.
type ProductRepository interface {
	All() []Product
	ByCategory(category string) []Product
	ByName(name string) (Product, bool)
	Profile(name string) (NormalizedProfile, bool)
	Categories() []string
	Brands(category string) []string
}

// ReasoningClient defines the interface to the external natural-language
// reasoning service. All calls are single-shot request/response and fallible;
// callers own validation of anything the service returns.
type ReasoningClient interface {
	// ExtractCategories asks the service for the macro-category tags it can
	// detect in free text. Returned tags are raw and must be validated
	// against MacroCategories before use.
	ExtractCategories(ctx context.Context, text string) ([]string, error)

	// Judge asks the service to pick the healthiest of the candidate products
	// for one category, given the user's original intent.
	Judge(ctx context.Context, category string, candidates []Product, intent string) (string, error)

	// JudgePair asks the service for a holistic verdict between two products,
	// given the deterministic per-nutrient comparison already computed.
	JudgePair(ctx context.Context, a, b Product, nutrients []NutrientVerdict) (string, error)
}
