package catalogjson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modulargunworks/catalog/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		"VISM": {
			{SKU: "V1", Category: "LIGHTS", Name: "Flashlight", Description: "Flashlight", Brand: "VISM"},
		},
		"NcSTAR": {
			{
				SKU:         "ABC123",
				Category:    "OPTICS",
				Name:        "Red Dot & Mount",
				UPC:         "0123",
				MSRP:        domain.NewPrice(decimal.RequireFromString("199.99")),
				MAP:         domain.NewPrice(decimal.RequireFromString("179.99")),
				CaseQty:     "10",
				Description: "Red Dot & Mount",
				Brand:       "NcSTAR",
				Images: &domain.Images{
					Thumbnails: []string{},
					Fullsize:   []string{"PERFORMANCE GEAR/ABC123.webp"},
				},
			},
		},
	}
}

func TestEncode(t *testing.T) {
	got, err := Encode(sampleCatalog())
	require.NoError(t, err)

	want := `{
  "NcSTAR": [
    {
      "sku": "ABC123",
      "category": "OPTICS",
      "name": "Red Dot & Mount",
      "upc": "0123",
      "msrp": 199.99,
      "map": 179.99,
      "price": null,
      "case_qty": "10",
      "auth_plus": null,
      "description": "Red Dot & Mount",
      "brand": "NcSTAR",
      "images": {
        "thumbnails": [],
        "fullsize": [
          "PERFORMANCE GEAR/ABC123.webp"
        ]
      }
    }
  ],
  "VISM": [
    {
      "sku": "V1",
      "category": "LIGHTS",
      "name": "Flashlight",
      "upc": "",
      "msrp": null,
      "map": null,
      "price": null,
      "case_qty": "",
      "auth_plus": null,
      "description": "Flashlight",
      "brand": "VISM"
    }
  ]
}
`
	assert.Equal(t, want, string(got))
}

func TestEncode_Empty(t *testing.T) {
	got, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(got))
}

func TestWriterReader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Data", "optics-data.json")

	w := NewWriter(path)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, w.Write(ctx, sampleCatalog()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, w.Write(ctx, sampleCatalog()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second, "rewriting the same catalog must be byte-identical")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	got, err := NewReader(path).Read(ctx)
	require.NoError(t, err)
	require.Len(t, got["NcSTAR"], 1)
	assert.Equal(t, "199.99", got["NcSTAR"][0].MSRP.String())
	assert.False(t, got["NcSTAR"][0].Price.Valid)
	assert.Nil(t, got["VISM"][0].Images)
}

func TestWriter_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "catalog.json")
	require.NoError(t, NewWriter(path).Write(context.Background(), domain.Catalog{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestWriter_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewWriter(filepath.Join(blocker, "catalog.json")).Write(context.Background(), domain.Catalog{})
	assert.ErrorIs(t, err, domain.ErrWriteCatalog)
}

func TestReader_Missing(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "none.json")).Read(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}
