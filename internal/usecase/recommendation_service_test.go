package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/nutriboard/backend/internal/domain"
)

func recommendationFixture() *stubRepo {
	return newStubRepo([]domain.Product{
		{Name: "Corn Flakes", MacroCategory: "cereals", Sugars: 8, Fat: 0.9, EnergyKcal: 378},
		{Name: "Muesli", MacroCategory: "cereals", Sugars: 16, Fat: 6, EnergyKcal: 350},
		{Name: "Avena", MacroCategory: "cereals", Sugars: 1, Fat: 7, EnergyKcal: 370},
		// zero-sentinel core nutrient: never rankable
		{Name: "Mystery Cereal", MacroCategory: "cereals", Sugars: 0, Fat: 2, EnergyKcal: 300},
		{Name: "Leche Entera", MacroCategory: "milk", Sugars: 4.5, Fat: 3.6, EnergyKcal: 64},
		// honey rows all miss fat: the category has no candidates
		{Name: "Miel", MacroCategory: "honey", Sugars: 80, Fat: 0, EnergyKcal: 330},
	})
}

func newTestRecommendationService(repo *stubRepo, reasoning domain.ReasoningClient) *RecommendationService {
	return NewRecommendationService(repo, reasoning, RecommendationConfig{MaxConcurrent: 2})
}

func TestResolve_InvalidTagIsDropped(t *testing.T) {
	reasoning := &stubReasoning{extractTags: []string{"cereals", "invalid_tag"}}
	svc := newTestRecommendationService(recommendationFixture(), reasoning)

	rec, err := svc.Resolve(context.Background(), "healthiest cereal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(rec.Entries))
	}
	if rec.Entries[0].Category != "cereals" {
		t.Errorf("category = %q, want cereals", rec.Entries[0].Category)
	}
	if rec.RequestID == "" {
		t.Error("RequestID should be set")
	}
}

func TestResolve_NoRecognizableCategory(t *testing.T) {
	reasoning := &stubReasoning{extractTags: []string{"spaceships"}}
	svc := newTestRecommendationService(recommendationFixture(), reasoning)

	_, err := svc.Resolve(context.Background(), "fastest spaceship")
	if !errors.Is(err, domain.ErrNoCategoryRecognized) {
		t.Errorf("error = %v, want ErrNoCategoryRecognized", err)
	}
}

func TestResolve_ExtractionFailureFailsRun(t *testing.T) {
	reasoning := &stubReasoning{extractErr: domain.ErrReasoningFailure}
	svc := newTestRecommendationService(recommendationFixture(), reasoning)

	if _, err := svc.Resolve(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when extraction fails")
	}
}

func TestResolve_EmptyQueryIsInvalid(t *testing.T) {
	svc := newTestRecommendationService(recommendationFixture(), &stubReasoning{})
	if _, err := svc.Resolve(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestResolve_CandidateSelection(t *testing.T) {
	reasoning := &stubReasoning{extractTags: []string{"cereals"}}
	svc := newTestRecommendationService(recommendationFixture(), reasoning)

	rec, err := svc.Resolve(context.Background(), "breakfast cereal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := rec.Entries[0]
	names := make(map[string]bool)
	for _, c := range entry.Candidates {
		names[c.Name] = true
	}
	// min sugar: Avena, min fat: Corn Flakes, min energy: Muesli
	for _, want := range []string{"Avena", "Corn Flakes", "Muesli"} {
		if !names[want] {
			t.Errorf("candidates missing %q: %v", want, names)
		}
	}
	if names["Mystery Cereal"] {
		t.Error("zero-sentinel product must not be a candidate")
	}
	if entry.Product == nil || entry.Product.Name != "Avena" {
		t.Errorf("default chosen product = %v, want min-sugar Avena", entry.Product)
	}
	if entry.Justification == "" {
		t.Error("justification should carry the narrative")
	}
}

func TestResolve_CoincidingCandidatesCollapse(t *testing.T) {
	repo := newStubRepo([]domain.Product{
		{Name: "Solo", MacroCategory: "milk", Sugars: 4, Fat: 3, EnergyKcal: 60},
	})
	reasoning := &stubReasoning{extractTags: []string{"milk"}}
	svc := newTestRecommendationService(repo, reasoning)

	rec, err := svc.Resolve(context.Background(), "milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(rec.Entries[0].Candidates); got != 1 {
		t.Errorf("candidates = %d, want 1 (all three minima coincide)", got)
	}
}

func TestResolve_TiesBreakToFirstOccurrence(t *testing.T) {
	repo := newStubRepo([]domain.Product{
		{Name: "First", MacroCategory: "milk", Sugars: 4, Fat: 3, EnergyKcal: 60},
		{Name: "Second", MacroCategory: "milk", Sugars: 4, Fat: 3, EnergyKcal: 60},
	})
	reasoning := &stubReasoning{extractTags: []string{"milk"}}
	svc := newTestRecommendationService(repo, reasoning)

	rec, err := svc.Resolve(context.Background(), "milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Entries[0].Product.Name != "First" {
		t.Errorf("chosen = %q, want First (table order wins ties)", rec.Entries[0].Product.Name)
	}
}

func TestResolve_EmptyCategoryIsSkipped(t *testing.T) {
	// honey has no rankable rows, cereals does
	reasoning := &stubReasoning{extractTags: []string{"honey", "cereals"}}
	svc := newTestRecommendationService(recommendationFixture(), reasoning)

	rec, err := svc.Resolve(context.Background(), "honey and cereal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Entries) != 1 || rec.Entries[0].Category != "cereals" {
		t.Errorf("entries = %v, want only cereals", rec.Entries)
	}
}

func TestResolve_AllCategoriesEmpty(t *testing.T) {
	// every honey row misses a core nutrient, so nothing can be ranked
	reasoning := &stubReasoning{extractTags: []string{"honey"}}
	svc := newTestRecommendationService(recommendationFixture(), reasoning)

	_, err := svc.Resolve(context.Background(), "healthiest honey")
	if !errors.Is(err, domain.ErrNoCandidates) {
		t.Errorf("error = %v, want ErrNoCandidates", err)
	}
}

func TestResolve_PartialSuccessAcrossCategories(t *testing.T) {
	reasoning := &stubReasoning{
		extractTags: []string{"cereals", "milk"},
		judgeFn: func(category string) (string, error) {
			if category == "milk" {
				return "", domain.ErrReasoningFailure
			}
			return "pick the oats", nil
		},
	}
	svc := newTestRecommendationService(recommendationFixture(), reasoning)

	rec, err := svc.Resolve(context.Background(), "cereal with milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(rec.Entries))
	}

	// output order matches extraction order regardless of fan-out
	if rec.Entries[0].Category != "cereals" || rec.Entries[1].Category != "milk" {
		t.Errorf("entry order = [%s %s], want [cereals milk]", rec.Entries[0].Category, rec.Entries[1].Category)
	}
	if rec.Entries[0].Err != "" || rec.Entries[0].Justification == "" {
		t.Errorf("cereals entry should succeed: %+v", rec.Entries[0])
	}
	if rec.Entries[1].Err == "" {
		t.Error("milk entry should carry its isolated failure")
	}
	if rec.Entries[1].Justification != "" {
		t.Error("failed entry must not carry a justification")
	}
}
