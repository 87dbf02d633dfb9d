package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,description,amount
2025-07-03,UPWORK PAYOUT,85000.00
2025-07-05,SWIGGY ORDER,-650.50
2025-07-09,RENT JULY,-18000.00
2025-07-15,ACME RETAINER JULY,42000.00
`

func TestGenericParser_Parse(t *testing.T) {
	p := &GenericParser{}
	txns, err := p.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, txns, 4)

	payout := txns[0]
	assert.Equal(t, "UPWORK PAYOUT", payout.Description)
	assert.Equal(t, "85000.00", payout.Amount.StringFixed(2))
	assert.Equal(t, "credit", payout.Type)
	assert.Equal(t, 2025, payout.Date.Year())
	assert.Equal(t, 7, int(payout.Date.Month()))
	assert.Equal(t, 3, payout.Date.Day())

	rent := txns[2]
	assert.True(t, rent.Amount.IsNegative())
	assert.Equal(t, "debit", rent.Type)
}

func TestGenericParser_Reference(t *testing.T) {
	p := &GenericParser{}
	txns, err := p.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Reference format: generic_YYYYMMDD_<prefix>, prefix capped at 10.
	assert.Equal(t, "generic_20250703_UPWORKPAYO", txns[0].Reference)
	assert.Equal(t, "generic_20250715_ACMERETAIN", txns[3].Reference)
}

func TestGenericParser_EmptyFile(t *testing.T) {
	p := &GenericParser{}
	txns, err := p.Parse(strings.NewReader("date,description,amount\n"))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestGenericParser_BadDate(t *testing.T) {
	csv := "date,description,amount\nNOTADATE,desc,-4.00\n"
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestGenericParser_BadAmount(t *testing.T) {
	csv := "date,description,amount\n2025-07-03,desc,NOTANUMBER\n"
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestGenericParser_Format(t *testing.T) {
	p := &GenericParser{}
	assert.Equal(t, "generic", p.Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&GenericParser{})
	p := r.Get("generic")
	require.NotNil(t, p)
	assert.Equal(t, "generic", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&GenericParser{})
	assert.NotNil(t, r.Get("Generic"))
	assert.NotNil(t, r.Get("GENERIC"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.Contains(t, r.Formats(), "generic")
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "a.csv")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
