package catalog

import (
	"log"
	"strings"

	"github.com/medscan/backend/internal/domain"
)

// Index holds the loaded reference catalog: the full records, the two
// candidate pools, and the reverse-lookup maps from pool strings back to
// row indices. Built once at startup, read-only afterwards.
type Index struct {
	records         []domain.CatalogRecord
	namePool        []string
	compositionPool []string
	nameRow         map[string]int // pool string -> lowest row index
	compositionRow  map[string]int
}

// rawRow is one row of catalog source data before derivation.
type rawRow struct {
	name         string
	composition1 string
	composition2 string
	manufacturer string
	price        string
	packSize     string
}

// buildIndex derives compositions, builds both candidate pools, and wires the
// reverse-lookup maps. Rows without a name are skipped. Shared by the CSV and
// SQLite loaders.
func buildIndex(rows []rawRow) *Index {
	idx := &Index{
		nameRow:        make(map[string]int),
		compositionRow: make(map[string]int),
	}

	for _, raw := range rows {
		name := strings.TrimSpace(raw.name)
		if name == "" {
			continue
		}

		composition := strings.TrimSpace(raw.composition1 + " " + raw.composition2)

		row := len(idx.records)
		idx.records = append(idx.records, domain.CatalogRecord{
			Row:          row,
			Name:         name,
			Composition:  composition,
			Manufacturer: strings.TrimSpace(raw.manufacturer),
			Price:        strings.TrimSpace(raw.price),
			PackSize:     strings.TrimSpace(raw.packSize),
		})

		// Name pool keeps duplicates; only the first occurrence is the
		// lookup target.
		idx.namePool = append(idx.namePool, name)
		if _, seen := idx.nameRow[name]; !seen {
			idx.nameRow[name] = row
		}

		// Composition pool is deduplicated: compositions repeat far more
		// than names and the scorer's cost is linear in pool size.
		if composition != "" {
			if _, seen := idx.compositionRow[composition]; !seen {
				idx.compositionRow[composition] = row
				idx.compositionPool = append(idx.compositionPool, composition)
			}
		}
	}

	log.Printf("[CATALOG] Indexed %d records (%d names, %d distinct compositions)",
		len(idx.records), len(idx.namePool), len(idx.compositionPool))

	return idx
}

// NamePool returns all catalog product names in load order.
func (idx *Index) NamePool() []string {
	return idx.namePool
}

// CompositionPool returns the distinct non-empty derived composition strings
// in first-seen order.
func (idx *Index) CompositionPool() []string {
	return idx.compositionPool
}

// Lookup resolves a matched pool string back to its catalog record. Ties
// among identical names or compositions resolve to the lowest row index.
func (idx *Index) Lookup(field domain.MatchField, text string) (domain.CatalogRecord, bool) {
	var row int
	var ok bool

	switch field {
	case domain.MatchFieldName:
		row, ok = idx.nameRow[text]
	case domain.MatchFieldComposition:
		row, ok = idx.compositionRow[text]
	default:
		return domain.CatalogRecord{}, false
	}

	if !ok {
		return domain.CatalogRecord{}, false
	}
	return idx.records[row], true
}

// Size returns the number of loaded records.
func (idx *Index) Size() int {
	return len(idx.records)
}
