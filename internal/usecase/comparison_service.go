package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nutriboard/backend/internal/domain"
)

// ComparisonService compares exactly two products: a deterministic
// per-nutrient verdict table plus a holistic narrative from the reasoning
// service. The two outputs are independent; a failed narrative call never
// withholds the table.
type ComparisonService struct {
	repo        domain.ProductRepository
	reasoning   domain.ReasoningClient
	callTimeout time.Duration
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(repo domain.ProductRepository, reasoning domain.ReasoningClient, callTimeout time.Duration) *ComparisonService {
	if callTimeout == 0 {
		callTimeout = 45 * time.Second
	}
	return &ComparisonService{
		repo:        repo,
		reasoning:   reasoning,
		callTimeout: callTimeout,
	}
}

// Compare resolves both product identities and produces the verdict.
func (s *ComparisonService) Compare(ctx context.Context, nameA, nameB string) (*domain.ComparisonVerdict, error) {
	if nameA == "" || nameB == "" || nameA == nameB {
		return nil, domain.ErrInvalidRequest
	}

	productA, ok := s.repo.ByName(nameA)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	productB, ok := s.repo.ByName(nameB)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	profileA, _ := s.repo.Profile(nameA)
	profileB, _ := s.repo.Profile(nameB)

	verdict := &domain.ComparisonVerdict{
		RequestID: uuid.NewString(),
		ProductA:  productA,
		ProductB:  productB,
		ProfileA:  profileA,
		ProfileB:  profileB,
		Nutrients: nutrientVerdicts(productA.Name, productB.Name, profileA, profileB),
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	narrative, err := s.reasoning.JudgePair(callCtx, productA, productB, verdict.Nutrients)
	if err != nil {
		log.Printf("[COMPARE] Narrative call failed for %q vs %q: %v", nameA, nameB, err)
		verdict.NarrativeErr = "overall verdict unavailable"
		return verdict, nil
	}
	verdict.Narrative = narrative
	return verdict, nil
}

// nutrientVerdicts computes the lower-is-better winner per nutrient field.
// A zero value is the missing sentinel and is never declared the winner,
// which also covers the tie case.
func nutrientVerdicts(nameA, nameB string, a, b domain.NormalizedProfile) []domain.NutrientVerdict {
	verdicts := make([]domain.NutrientVerdict, 0, len(domain.NutrientFields))
	for _, field := range domain.NutrientFields {
		va, vb := a.Field(field), b.Field(field)
		v := domain.NutrientVerdict{Field: field, ValueA: va, ValueB: vb}
		switch {
		case va < vb && va != 0:
			v.Winner = nameA
		case vb < va && vb != 0:
			v.Winner = nameB
		}
		verdicts = append(verdicts, v)
	}
	return verdicts
}
