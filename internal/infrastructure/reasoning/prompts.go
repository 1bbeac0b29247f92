package reasoning

import (
	"fmt"
	"strings"

	"github.com/nutriboard/backend/internal/domain"
)

const extractionSystemPrompt = "You are a helpful assistant that extracts information from text. " +
	"Answer with a single comma-separated list of category names and nothing else."

const judgeSystemPrompt = "You are a helpful assistant that provides nutritional recommendations."

// buildExtractionPrompt instructs the service to name the macro categories
// it detects, constrained to the fixed category set and answered as a plain
// comma-separated list.
func buildExtractionPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract every macro category mentioned in the user input below. ")
	b.WriteString("You can choose only from these values, written exactly as given: ")
	b.WriteString(strings.Join(domain.MacroCategories, ", "))
	b.WriteString(". Respond with a comma-separated list of the detected categories, ")
	b.WriteString("for example: cereals, milk. If you detect none, respond with: none.\n\n")
	fmt.Fprintf(&b, "User input: %q", text)
	return b.String()
}

// buildJudgePrompt presents the deterministic candidates for one category
// and asks for a pick with motivations.
func buildJudgePrompt(category string, candidates []domain.Product, intent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Decide which of these %q products is the healthiest, given that the user wants: %q.\n", category, intent)
	b.WriteString("Be synthetic: name the product you pick and give a couple of motivations.\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "\nProduct %d:\n%s", i+1, productSummary(c))
	}
	return b.String()
}

// buildJudgePairPrompt presents both full records plus the deterministic
// per-nutrient comparison for a holistic verdict.
func buildJudgePairPrompt(a, b domain.Product, nutrients []domain.NutrientVerdict) string {
	var sb strings.Builder
	sb.WriteString("Decide which of these two products is the healthiest. ")
	sb.WriteString("Be synthetic: name the product you pick and give a couple of motivations. ")
	sb.WriteString("A nutrient equal to zero may just mean the value was never reported, so also use common sense.\n")
	fmt.Fprintf(&sb, "\nProduct 1:\n%s", productSummary(a))
	fmt.Fprintf(&sb, "\nProduct 2:\n%s", productSummary(b))
	if len(nutrients) > 0 {
		sb.WriteString("\nPer-nutrient comparison (normalized, lower is better):\n")
		for _, n := range nutrients {
			winner := n.Winner
			if winner == "" {
				winner = "no winner"
			}
			fmt.Fprintf(&sb, "%s: %.3f vs %.3f -> %s\n", n.Field, n.ValueA, n.ValueB, winner)
		}
	}
	return sb.String()
}

// productSummary renders one product record as prompt text.
func productSummary(p domain.Product) string {
	return fmt.Sprintf(
		"name: %s\nbrand: %s\ncategory: %s\nenergy_kcal: %.2f\nsugars: %.2f\nfat: %.2f\nsaturated_fat: %.2f\nproteins: %.2f\nsalt: %.2f\nfiber: %.2f\n",
		p.Name, p.Brand, p.MacroCategory, p.EnergyKcal, p.Sugars, p.Fat, p.SaturatedFat, p.Proteins, p.Salt, p.Fiber,
	)
}
