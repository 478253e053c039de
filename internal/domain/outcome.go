package domain

// Outcome is the closed result of one identification request. Exactly one of
// the three variants is produced per invocation; callers switch on the
// concrete type. The unexported method seals the set.
type Outcome interface {
	matchOutcome()
}

// MatchSuccess is a confident match: confidence at or above the threshold,
// resolved to a full catalog record.
type MatchSuccess struct {
	Confidence int
	Record     CatalogRecord
}

// MatchLowConfidence is a mechanically successful match below the trust
// threshold. ClosestMatch carries the best guess so a human can decide;
// it is empty when no candidate scored at all.
type MatchLowConfidence struct {
	Confidence   int
	ClosestMatch string
}

// MatchFailure is a per-request error: no usable input, or an unexpected
// failure during scoring/lookup. Never a process-level state.
type MatchFailure struct {
	Reason string
}

func (MatchSuccess) matchOutcome()       {}
func (MatchLowConfidence) matchOutcome() {}
func (MatchFailure) matchOutcome()       {}
