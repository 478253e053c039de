package domain

// CatalogRecord is one reference product from the medicine catalog.
// Records are immutable after load and owned by the catalog index.
type CatalogRecord struct {
	Row          int    `json:"-"` // load-order index, used for deterministic tie-breaks
	Name         string `json:"name"`
	Composition  string `json:"composition"` // derived: short_composition1 + " " + short_composition2, trimmed
	Manufacturer string `json:"manufacturer,omitempty"`
	Price        string `json:"price,omitempty"`
	PackSize     string `json:"packSize,omitempty"`
}

// ExtractionResult is the untrusted output of the vision extraction step.
// Any field may be empty, missing, or a placeholder like "N/A".
type ExtractionResult struct {
	BrandName    string `json:"brand_name"`
	Composition  string `json:"composition"`
	Manufacturer string `json:"manufacturer"` // informational only, never matched
}

// MatchCandidate is the result of one fuzzy lookup against a candidate pool.
// A zero value means no usable query or an empty pool.
type MatchCandidate struct {
	Text  string `json:"text"`
	Score int    `json:"score"` // 0-100
}

// MatchField identifies which catalog attribute a match came from.
type MatchField string

const (
	MatchFieldName        MatchField = "name"
	MatchFieldComposition MatchField = "composition"
)
