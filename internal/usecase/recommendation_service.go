package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nutriboard/backend/internal/domain"
)

// PipelineState tracks where a query resolution run is. Each run walks
// Idle -> Extracting -> CandidateSelecting -> Arbitrating -> Done, with a
// transition to Failed possible from any state.
type PipelineState int

const (
	StateIdle PipelineState = iota
	StateExtracting
	StateCandidateSelecting
	StateArbitrating
	StateDone
	StateFailed
)

func (s PipelineState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateExtracting:
		return "Extracting"
	case StateCandidateSelecting:
		return "CandidateSelecting"
	case StateArbitrating:
		return "Arbitrating"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	}
	return "Unknown"
}

// RecommendationConfig holds configuration for the query pipeline.
type RecommendationConfig struct {
	// MaxConcurrent bounds the fan-out of reasoning calls across categories.
	MaxConcurrent int
	// CallTimeout bounds each individual reasoning call.
	CallTimeout time.Duration
	// EnableDebugLogging logs state transitions and dropped tags.
	EnableDebugLogging bool
}

// RecommendationService turns a free-text query into per-category
// recommendations by combining deterministic candidate selection with
// reasoning-service arbitration.
type RecommendationService struct {
	repo          domain.ProductRepository
	reasoning     domain.ReasoningClient
	maxConcurrent int
	callTimeout   time.Duration
	debug         bool
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(
	repo domain.ProductRepository,
	reasoning domain.ReasoningClient,
	config RecommendationConfig,
) *RecommendationService {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	callTimeout := config.CallTimeout
	if callTimeout == 0 {
		callTimeout = 45 * time.Second
	}

	return &RecommendationService{
		repo:          repo,
		reasoning:     reasoning,
		maxConcurrent: maxConcurrent,
		callTimeout:   callTimeout,
		debug:         config.EnableDebugLogging,
	}
}

// Resolve runs the full pipeline for one query. A reasoning failure during
// extraction fails the whole run; a failure while arbitrating one category
// is confined to that category's entry so siblings still succeed.
func (s *RecommendationService) Resolve(ctx context.Context, query string) (*domain.Recommendation, error) {
	query = SanitizeQuery(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	requestID := uuid.NewString()
	state := StateIdle
	step := func(next PipelineState) {
		if s.debug {
			log.Printf("[QUERY] %s: %s -> %s", requestID, state, next)
		}
		state = next
	}

	step(StateExtracting)
	extractCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	tags, err := s.reasoning.ExtractCategories(extractCtx, query)
	cancel()
	if err != nil {
		step(StateFailed)
		return nil, fmt.Errorf("category extraction failed: %w", err)
	}

	categories := s.validateTags(tags)
	if len(categories) == 0 {
		step(StateFailed)
		return nil, domain.ErrNoCategoryRecognized
	}

	step(StateCandidateSelecting)
	type job struct {
		category   string
		candidates []domain.Product
	}
	var jobs []job
	for _, category := range categories {
		candidates := s.selectCandidates(category)
		if len(candidates) == 0 {
			log.Printf("[QUERY] %s: no rankable products for %q, skipping", requestID, category)
			continue
		}
		jobs = append(jobs, job{category: category, candidates: candidates})
	}
	if len(jobs) == 0 {
		step(StateFailed)
		return nil, domain.ErrNoCandidates
	}

	step(StateArbitrating)
	entries := make([]domain.CategoryRecommendation, len(jobs))
	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			entries[i] = s.arbitrate(ctx, j.category, j.candidates, query)
		}(i, j)
	}
	wg.Wait()

	step(StateDone)
	return &domain.Recommendation{
		RequestID: requestID,
		Query:     query,
		Entries:   entries,
	}, nil
}

// validateTags keeps only tags belonging to the fixed macro category set,
// preserving extraction order. Anything else from the service is dropped,
// never trusted verbatim.
func (s *RecommendationService) validateTags(tags []string) []string {
	var valid []string
	for _, tag := range tags {
		if domain.IsMacroCategory(tag) {
			valid = append(valid, tag)
			continue
		}
		if s.debug {
			log.Printf("[QUERY] Dropping extracted tag %q: not a macro category", tag)
		}
	}
	return valid
}

// selectCandidates picks the deterministic candidates for one category:
// minimum sugar, minimum fat and minimum energy over rows that report all
// three core nutrients. Ties break to the first occurrence in table order,
// and coinciding candidates collapse to one.
func (s *RecommendationService) selectCandidates(category string) []domain.Product {
	var rankable []domain.Product
	for _, p := range s.repo.ByCategory(category) {
		if p.Sugars > 0 && p.Fat > 0 && p.EnergyKcal > 0 {
			rankable = append(rankable, p)
		}
	}
	if len(rankable) == 0 {
		return nil
	}

	minSugar := minBy(rankable, func(p domain.Product) float64 { return p.Sugars })
	minFat := minBy(rankable, func(p domain.Product) float64 { return p.Fat })
	minEnergy := minBy(rankable, func(p domain.Product) float64 { return p.EnergyKcal })

	var candidates []domain.Product
	seen := make(map[string]bool)
	for _, c := range []domain.Product{minSugar, minFat, minEnergy} {
		if !seen[c.Name] {
			seen[c.Name] = true
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// arbitrate runs the reasoning call for one category. Failures surface in
// the entry itself and never abort sibling categories.
func (s *RecommendationService) arbitrate(ctx context.Context, category string, candidates []domain.Product, intent string) domain.CategoryRecommendation {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	entry := domain.CategoryRecommendation{
		Category:   category,
		Candidates: candidates,
	}

	narrative, err := s.reasoning.Judge(callCtx, category, candidates, intent)
	if err != nil {
		log.Printf("[QUERY] Arbitration failed for %q: %v", category, err)
		entry.Err = fmt.Sprintf("recommendation unavailable for %s", category)
		return entry
	}

	// The narrative is stored as-is; the min-sugar candidate stands as the
	// deterministic default identity.
	entry.Product = &candidates[0]
	entry.Justification = narrative
	return entry
}

// minBy returns the element with the smallest key, first occurrence winning
// ties.
func minBy(products []domain.Product, key func(domain.Product) float64) domain.Product {
	best := products[0]
	for _, p := range products[1:] {
		if key(p) < key(best) {
			best = p
		}
	}
	return best
}
