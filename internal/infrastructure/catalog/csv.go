package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/medscan/backend/internal/domain"
)

// Column header aliases accepted in catalog CSV files. The reference dataset
// uses "short_composition1"/"short_composition2" and a currency-suffixed
// price column; cleaned exports commonly rename them.
var (
	nameHeaders         = []string{"name", "medicine_name", "product_name"}
	composition1Headers = []string{"short_composition1", "composition1", "composition"}
	composition2Headers = []string{"short_composition2", "composition2"}
	manufacturerHeaders = []string{"manufacturer_name", "manufacturer"}
	priceHeaders        = []string{"price(₹)", "price", "price_inr"}
	packSizeHeaders     = []string{"pack_size_label", "pack_size"}
)

// LoadCSV reads the reference catalog from a CSV file and builds the index.
// A missing or malformed file is a configuration error: the caller must not
// serve requests without a loaded catalog.
func LoadCSV(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // dataset has ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrCatalogUnavailable, err)
	}

	cols := columnMap(header)
	nameCol, ok := cols.find(nameHeaders)
	if !ok {
		return nil, fmt.Errorf("%w: no name column in header %v", domain.ErrCatalogUnavailable, header)
	}
	comp1Col, _ := cols.find(composition1Headers)
	comp2Col, _ := cols.find(composition2Headers)
	manufacturerCol, _ := cols.find(manufacturerHeaders)
	priceCol, _ := cols.find(priceHeaders)
	packSizeCol, _ := cols.find(packSizeHeaders)

	var rows []rawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row %d: %v", domain.ErrCatalogUnavailable, len(rows)+2, err)
		}

		rows = append(rows, rawRow{
			name:         field(record, nameCol),
			composition1: field(record, comp1Col),
			composition2: field(record, comp2Col),
			manufacturer: field(record, manufacturerCol),
			price:        field(record, priceCol),
			packSize:     field(record, packSizeCol),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s contains no data rows", domain.ErrCatalogUnavailable, path)
	}

	return buildIndex(rows), nil
}

// columns maps lowercased header names to their position.
type columns map[string]int

func columnMap(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

// find returns the position of the first alias present in the header.
func (c columns) find(aliases []string) (int, bool) {
	for _, alias := range aliases {
		if i, ok := c[alias]; ok {
			return i, true
		}
	}
	return -1, false
}

// field safely reads a column from a possibly short record.
func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return record[col]
}
