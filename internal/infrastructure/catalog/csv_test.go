package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medscan/backend/internal/domain"
)

// writeCatalogCSV drops a catalog file into a test temp dir.
func writeCatalogCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCSV = `name,short_composition1,short_composition2,manufacturer_name,price(₹),pack_size_label
Dolo 650,Paracetamol 650mg,,Micro Labs Ltd,30.91,strip of 15 tablets
Crocin Advance,Paracetamol 500mg,,GSK,20.00,strip of 10 tablets
Augmentin 625 Duo,Amoxycillin 500mg,Clavulanic Acid 125mg,GSK,223.42,strip of 10 tablets
`

func TestLoadCSV(t *testing.T) {
	t.Run("loads records and builds pools", func(t *testing.T) {
		idx, err := LoadCSV(writeCatalogCSV(t, sampleCSV))
		require.NoError(t, err)

		assert.Equal(t, 3, idx.Size())
		assert.Equal(t, []string{"Dolo 650", "Crocin Advance", "Augmentin 625 Duo"}, idx.NamePool())
		assert.Len(t, idx.CompositionPool(), 3)
	})

	t.Run("derives composition from both sub-fields", func(t *testing.T) {
		idx, err := LoadCSV(writeCatalogCSV(t, sampleCSV))
		require.NoError(t, err)

		record, ok := idx.Lookup(domain.MatchFieldName, "Augmentin 625 Duo")
		require.True(t, ok)
		assert.Equal(t, "Amoxycillin 500mg Clavulanic Acid 125mg", record.Composition)
	})

	t.Run("trims composition when a sub-field is blank", func(t *testing.T) {
		idx, err := LoadCSV(writeCatalogCSV(t, sampleCSV))
		require.NoError(t, err)

		record, ok := idx.Lookup(domain.MatchFieldName, "Dolo 650")
		require.True(t, ok)
		assert.Equal(t, "Paracetamol 650mg", record.Composition)
		assert.Equal(t, "30.91", record.Price)
		assert.Equal(t, "strip of 15 tablets", record.PackSize)
	})

	t.Run("deduplicates the composition pool", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("name,short_composition1,short_composition2\n")
		for i := 0; i < 1000; i++ {
			fmt.Fprintf(&b, "Brand %d,Paracetamol 650mg,\n", i)
		}

		idx, err := LoadCSV(writeCatalogCSV(t, b.String()))
		require.NoError(t, err)

		assert.Equal(t, 1000, idx.Size())
		assert.Equal(t, []string{"Paracetamol 650mg"}, idx.CompositionPool())
	})

	t.Run("keeps duplicate names in the name pool", func(t *testing.T) {
		csv := "name,short_composition1,short_composition2\n" +
			"Dolo 650,Paracetamol 650mg,\n" +
			"Dolo 650,Paracetamol 650mg,\n"

		idx, err := LoadCSV(writeCatalogCSV(t, csv))
		require.NoError(t, err)
		assert.Len(t, idx.NamePool(), 2)
	})

	t.Run("reverse lookup ties resolve to the lowest row", func(t *testing.T) {
		csv := "name,short_composition1,short_composition2,manufacturer_name\n" +
			"Dolo 650,Paracetamol 650mg,,First Pharma\n" +
			"Dolo 650,Paracetamol 650mg,,Second Pharma\n"

		idx, err := LoadCSV(writeCatalogCSV(t, csv))
		require.NoError(t, err)

		byName, ok := idx.Lookup(domain.MatchFieldName, "Dolo 650")
		require.True(t, ok)
		assert.Equal(t, 0, byName.Row)
		assert.Equal(t, "First Pharma", byName.Manufacturer)

		byComposition, ok := idx.Lookup(domain.MatchFieldComposition, "Paracetamol 650mg")
		require.True(t, ok)
		assert.Equal(t, 0, byComposition.Row)
	})

	t.Run("skips rows without a name", func(t *testing.T) {
		csv := "name,short_composition1,short_composition2\n" +
			",Paracetamol 650mg,\n" +
			"Dolo 650,Paracetamol 650mg,\n"

		idx, err := LoadCSV(writeCatalogCSV(t, csv))
		require.NoError(t, err)
		assert.Equal(t, 1, idx.Size())
	})

	t.Run("accepts ragged rows", func(t *testing.T) {
		csv := "name,short_composition1,short_composition2,manufacturer_name\n" +
			"Dolo 650,Paracetamol 650mg\n"

		idx, err := LoadCSV(writeCatalogCSV(t, csv))
		require.NoError(t, err)

		record, ok := idx.Lookup(domain.MatchFieldName, "Dolo 650")
		require.True(t, ok)
		assert.Empty(t, record.Manufacturer)
	})

	t.Run("missing file is a catalog error", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("empty file is a catalog error", func(t *testing.T) {
		_, err := LoadCSV(writeCatalogCSV(t, ""))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("header without a name column is a catalog error", func(t *testing.T) {
		_, err := LoadCSV(writeCatalogCSV(t, "id,composition_a\n1,Paracetamol\n"))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("header-only file is a catalog error", func(t *testing.T) {
		_, err := LoadCSV(writeCatalogCSV(t, "name,short_composition1,short_composition2\n"))
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("accepts aliased headers", func(t *testing.T) {
		csv := "medicine_name,composition1,composition2,manufacturer,price,pack_size\n" +
			"Dolo 650,Paracetamol 650mg,,Micro Labs Ltd,30.91,strip of 15 tablets\n"

		idx, err := LoadCSV(writeCatalogCSV(t, csv))
		require.NoError(t, err)

		record, ok := idx.Lookup(domain.MatchFieldName, "Dolo 650")
		require.True(t, ok)
		assert.Equal(t, "30.91", record.Price)
	})
}

func TestIndexLookupUnknownField(t *testing.T) {
	idx, err := LoadCSV(writeCatalogCSV(t, sampleCSV))
	require.NoError(t, err)

	_, ok := idx.Lookup(domain.MatchField("dosage"), "Dolo 650")
	assert.False(t, ok)

	_, ok = idx.Lookup(domain.MatchFieldName, "Nonexistent Medicine")
	assert.False(t, ok)
}
