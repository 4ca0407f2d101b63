package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modulargunworks/catalog/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_CSVPassesThrough(t *testing.T) {
	content := "title\n,,CATEGORY / SKU,,ITEM DESCRIPTION\n,,A1,1,Thing\n"
	path := writeFile(t, "form.csv", "\xef\xbb\xbf"+content)

	got, err := NewLoader(zerolog.Nop()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(zerolog.Nop()).Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, domain.ErrReadSheet)
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(zerolog.Nop()).Load(ctx, "irrelevant.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_HTMLTable(t *testing.T) {
	html := `<html><body><table>
<tr><td colspan="3">NcSTAR 2025 AUTH ORDER FORM</td></tr>
<tr><th></th><th>CAT PG#</th><th>CATEGORY / SKU</th><th>CASE QTY</th><th>ITEM  DESCRIPTION</th></tr>
<tr><td></td><td></td><td>DOT SIGHTS</td><td></td><td></td></tr>
<tr><td></td><td>12</td><td>ABC123</td><td>10</td><td>Red Dot,
  Sight &amp; Mount</td></tr>
</table></body></html>`
	path := writeFile(t, "form.xls", html)

	got, err := NewLoader(zerolog.Nop()).Load(context.Background(), path)
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(got))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"NcSTAR 2025 AUTH ORDER FORM", "", ""}, records[0])
	assert.Equal(t, "CATEGORY / SKU", records[1][2])
	assert.Equal(t, "ITEM DESCRIPTION", records[1][4])
	assert.Equal(t, []string{"", "", "DOT SIGHTS", "", ""}, records[2])
	assert.Equal(t, "Red Dot, Sight & Mount", records[3][4])

	lines := strings.Split(string(got), "\n")
	assert.Contains(t, lines[1], "CATEGORY / SKU")
	assert.Contains(t, lines[1], "ITEM DESCRIPTION")
}

func TestHTMLTableToCSV_ColspanIsCapped(t *testing.T) {
	html := `<table>
<tr><td colspan="100000000">banner</td><td>x</td></tr>
<tr><td colspan="0">a</td><td colspan="bogus">b</td><td colspan=" 2 ">c</td></tr>
</table>`

	got, err := HTMLTableToCSV(strings.NewReader(html))
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(got))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Len(t, records[0], maxColspan+1)
	assert.Equal(t, "banner", records[0][0])
	assert.Equal(t, "x", records[0][maxColspan])
	assert.Equal(t, []string{"a", "b", "c", ""}, records[1])
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"csv", "a,b,c\n", false},
		{"table", "  <table><tr><td>x</td></tr></table>", true},
		{"doctype", "<!DOCTYPE html><html>", true},
		{"xml but not html", "<?xml version=\"1.0\"?><Workbook>", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeHTML([]byte(tt.in)))
		})
	}
}
