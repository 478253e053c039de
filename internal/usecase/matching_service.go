package usecase

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/medscan/backend/internal/domain"
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	MinQueryLength     int
	EnableDebugLogging bool
}

// MatchingService scores a query string against a candidate pool on a fixed
// 0-100 scale. The metric is a token-set similarity: order-insensitive over
// whitespace-delimited tokens and robust to one token set being a subset of
// the other. A whitespace-insensitive character comparison runs alongside it
// so pure spacing differences are not penalized.
type MatchingService struct {
	minQueryLength     int
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	minLength := config.MinQueryLength
	if minLength <= 0 {
		minLength = 3 // shorter queries produce unreliable fuzzy matches
	}

	return &MatchingService{
		minQueryLength:     minLength,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// BestMatch returns the single highest-scoring pool member for the query.
// Queries that are empty after sentinel normalization, or shorter than the
// minimum length, return the zero candidate without scanning the pool.
// Ties resolve to the first candidate in pool iteration order, keeping
// results reproducible for a fixed pool. The scan is read-only; the only
// error is context cancellation.
func (s *MatchingService) BestMatch(ctx context.Context, query string, pool []string) (domain.MatchCandidate, error) {
	query = sanitizeExtractedField(query)
	if len(query) < s.minQueryLength {
		return domain.MatchCandidate{}, nil
	}

	queryTokens := tokenSet(query)
	queryCompact := compactForm(query)

	best := domain.MatchCandidate{}
	highestScore := -1 // so the first candidate is always recorded

	for _, candidate := range pool {
		select {
		case <-ctx.Done():
			return domain.MatchCandidate{}, ctx.Err()
		default:
		}

		score := similarity(queryTokens, queryCompact, candidate)
		if score > highestScore {
			highestScore = score
			best = domain.MatchCandidate{Text: candidate, Score: score}
		}
	}

	if s.enableDebugLogging {
		log.Printf("[MATCH] query %q -> best %q (score %d, pool size %d)",
			query, best.Text, best.Score, len(pool))
	}

	return best, nil
}

// similarity computes the score between a pre-tokenized query and one
// candidate: the higher of the token-set ratio and the compact-form
// character ratio.
func similarity(queryTokens []string, queryCompact, candidate string) int {
	score := tokenSetRatio(queryTokens, tokenSet(candidate))

	if compact := indelRatio(queryCompact, compactForm(candidate)); compact > score {
		score = compact
	}

	if score > 100 {
		score = 100
	}
	return score
}

// tokenSetRatio compares two sorted token sets. The sets are split into the
// shared intersection and the two remainders; the score is the best character
// ratio among the three pairings of (intersection, intersection+remainder).
// Identical sets score 100, and so does a set fully contained in the other.
func tokenSetRatio(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection, aOnly, bOnly := splitTokenSets(a, b)

	base := strings.Join(intersection, " ")
	combinedA := joinNonEmpty(base, strings.Join(aOnly, " "))
	combinedB := joinNonEmpty(base, strings.Join(bOnly, " "))

	score := indelRatio(base, combinedA)
	if r := indelRatio(base, combinedB); r > score {
		score = r
	}
	if r := indelRatio(combinedA, combinedB); r > score {
		score = r
	}
	return score
}

// splitTokenSets partitions two sorted token sets into their intersection and
// the tokens unique to each side. All three results stay sorted.
func splitTokenSets(a, b []string) (intersection, aOnly, bOnly []string) {
	inB := make(map[string]bool, len(b))
	for _, t := range b {
		inB[t] = true
	}

	inBoth := make(map[string]bool)
	for _, t := range a {
		if inB[t] {
			intersection = append(intersection, t)
			inBoth[t] = true
		} else {
			aOnly = append(aOnly, t)
		}
	}
	for _, t := range b {
		if !inBoth[t] {
			bOnly = append(bOnly, t)
		}
	}
	return intersection, aOnly, bOnly
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

// indelRatio is the normalized insert/delete similarity between two strings
// as an integer percentage: 100*(len(a)+len(b)-distance)/(len(a)+len(b)),
// rounded. Empty-vs-anything scores 0.
func indelRatio(a, b string) int {
	if a == b {
		if len(a) == 0 {
			return 0
		}
		return 100
	}

	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 0
	}

	distance := indelDistance(a, b)
	return int(math.Round(100 * float64(total-distance) / float64(total)))
}

// indelDistance is the edit distance allowing only insertions and deletions.
// Two-row dynamic program, linear space.
func indelDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(
					prev[j]+1,   // deletion
					curr[j-1]+1, // insertion
				)
			}
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
