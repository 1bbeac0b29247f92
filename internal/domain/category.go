package domain

// MacroCategories is the fixed universe of macro categories. Every product
// row is tagged with exactly one of these, and category tags extracted from
// free text are validated against this set before use.
var MacroCategories = []string{
	"milk",
	"muffins",
	"croissants",
	"honey",
	"jam",
	"peanut_butter",
	"fresh_fruit",
	"fruit_juice",
	"hot_drink",
	"yogurt",
	"cereals",
	"cereal_bars",
}

var macroCategorySet = func() map[string]bool {
	set := make(map[string]bool, len(MacroCategories))
	for _, c := range MacroCategories {
		set[c] = true
	}
	return set
}()

// IsMacroCategory reports whether tag is a member of the fixed category set.
func IsMacroCategory(tag string) bool {
	return macroCategorySet[tag]
}
