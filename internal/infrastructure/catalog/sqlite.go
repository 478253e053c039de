package catalog

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/medscan/backend/internal/domain"
)

// LoadSQLite reads the reference catalog from a SQLite database and builds
// the index. The database must contain a medicines table with at least a
// name column; composition sub-fields and pass-through columns may be NULL.
func LoadSQLite(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrCatalogUnavailable, path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %v", domain.ErrCatalogUnavailable, err)
	}
	defer db.Close()

	query := `SELECT
            name,
            COALESCE(short_composition1, ''),
            COALESCE(short_composition2, ''),
            COALESCE(manufacturer_name, ''),
            COALESCE(price, ''),
            COALESCE(pack_size_label, '')
        FROM medicines
        ORDER BY rowid`

	dbRows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: query medicines: %v", domain.ErrCatalogUnavailable, err)
	}
	defer dbRows.Close()

	var rows []rawRow
	for dbRows.Next() {
		var raw rawRow
		if err := dbRows.Scan(&raw.name, &raw.composition1, &raw.composition2,
			&raw.manufacturer, &raw.price, &raw.packSize); err != nil {
			return nil, fmt.Errorf("%w: scan row %d: %v", domain.ErrCatalogUnavailable, len(rows)+1, err)
		}
		rows = append(rows, raw)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate medicines: %v", domain.ErrCatalogUnavailable, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s contains no medicines", domain.ErrCatalogUnavailable, path)
	}

	return buildIndex(rows), nil
}
