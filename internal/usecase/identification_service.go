package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/medscan/backend/internal/domain"
)

// IdentificationConfig holds configuration for the identification service
type IdentificationConfig struct {
	ConfidenceThreshold int
	MinQueryLength      int
	EnableDebugLogging  bool
}

// IdentificationService resolves noisy extracted medicine attributes to a
// single authoritative catalog record. It scores the brand name against the
// name pool and the composition against the composition pool, reconciles the
// two signals, and applies the confidence threshold to produce exactly one
// outcome per request. The service is stateless across requests.
type IdentificationService struct {
	index               domain.CatalogIndex
	matcher             *MatchingService
	confidenceThreshold int
	enableDebugLogging  bool
}

// NewIdentificationService creates a new identification service backed by a
// loaded catalog index.
func NewIdentificationService(index domain.CatalogIndex, config IdentificationConfig) *IdentificationService {
	threshold := config.ConfidenceThreshold
	if threshold <= 0 {
		threshold = 85 // default trust cutoff, inclusive
	}

	matcher := NewMatchingService(MatchConfig{
		MinQueryLength:     config.MinQueryLength,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	return &IdentificationService{
		index:               index,
		matcher:             matcher,
		confidenceThreshold: threshold,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// Identify runs the full decision flow: validate input, score both signals,
// reconcile, threshold. A low-confidence or error outcome is a final answer,
// never retried here. Any panic during scoring or lookup is contained and
// converted to an error outcome so one bad request cannot take down
// concurrent ones.
func (s *IdentificationService) Identify(ctx context.Context, extraction domain.ExtractionResult) (outcome domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[IDENTIFY] recovered panic: %v", r)
			outcome = domain.MatchFailure{Reason: fmt.Sprintf("unexpected failure during matching: %v", r)}
		}
	}()

	brandQuery := sanitizeExtractedField(extraction.BrandName)
	compositionQuery := sanitizeExtractedField(extraction.Composition)

	if brandQuery == "" && compositionQuery == "" {
		return domain.MatchFailure{Reason: domain.ErrNoIdentifyingInfo.Error()}
	}

	// Both pools are immutable after load, so the two scans run in parallel
	// without locking. Pool accessors run on this goroutine (go-statement
	// argument evaluation) so their failures hit the deferred recover above;
	// each scan contains its own panics.
	var (
		wg               sync.WaitGroup
		brandMatch       domain.MatchCandidate
		compositionMatch domain.MatchCandidate
		brandErr         error
		compositionErr   error
	)
	scan := func(query string, pool []string, match *domain.MatchCandidate, scanErr *error) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				*scanErr = fmt.Errorf("pool scan panic: %v", r)
			}
		}()
		*match, *scanErr = s.matcher.BestMatch(ctx, query, pool)
	}
	wg.Add(2)
	go scan(brandQuery, s.index.NamePool(), &brandMatch, &brandErr)
	go scan(compositionQuery, s.index.CompositionPool(), &compositionMatch, &compositionErr)
	wg.Wait()

	if brandErr != nil || compositionErr != nil {
		err := brandErr
		if err == nil {
			err = compositionErr
		}
		return domain.MatchFailure{Reason: fmt.Sprintf("matching aborted: %v", err)}
	}

	best, field := reconcile(brandMatch, compositionMatch)

	if s.enableDebugLogging {
		log.Printf("[IDENTIFY] brand %q (%d) vs composition %q (%d) -> trusting %s %q (%d)",
			brandMatch.Text, brandMatch.Score,
			compositionMatch.Text, compositionMatch.Score,
			field, best.Text, best.Score)
	}

	return s.classify(best, field)
}

// reconcile selects which of the two independently scored signals to trust.
// The strictly higher score wins; on an exact tie the brand-name candidate is
// preferred, brand text being more discriminative and less prone to
// truncation than composition strings.
func reconcile(brand, composition domain.MatchCandidate) (domain.MatchCandidate, domain.MatchField) {
	if brand.Score >= composition.Score {
		return brand, domain.MatchFieldName
	}
	return composition, domain.MatchFieldComposition
}

// classify applies the confidence threshold (inclusive lower bound for
// success) and resolves a trusted match back to its catalog record.
func (s *IdentificationService) classify(best domain.MatchCandidate, field domain.MatchField) domain.Outcome {
	if best.Score >= s.confidenceThreshold {
		record, ok := s.index.Lookup(field, best.Text)
		if !ok {
			// The matched text always originates from a pool, so a failed
			// lookup means the index is inconsistent.
			return domain.MatchFailure{Reason: fmt.Sprintf("%v: %s %q", domain.ErrRecordNotFound, field, best.Text)}
		}
		return domain.MatchSuccess{Confidence: best.Score, Record: record}
	}

	return domain.MatchLowConfidence{Confidence: best.Score, ClosestMatch: best.Text}
}
