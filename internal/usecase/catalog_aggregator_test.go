package usecase

import (
	"reflect"
	"testing"

	"github.com/modulargunworks/catalog/internal/domain"
)

func TestCatalogAggregator(t *testing.T) {
	agg := NewCatalogAggregator()

	withImages := domain.Images{Fullsize: []string{"PERFORMANCE GEAR/A1.webp"}}
	agg.Add(domain.Product{SKU: "A1", Brand: "NcSTAR"}, withImages)
	agg.Add(domain.Product{SKU: "XY9", Brand: "NcSTAR"}, domain.Images{})
	agg.Add(domain.Product{SKU: "V1", Brand: "VISM"}, domain.Images{Thumbnails: []string{}, Fullsize: []string{}})
	agg.Add(domain.Product{SKU: "A1", Brand: "NcSTAR"}, withImages)

	catalog := agg.Catalog()

	t.Run("keeps insertion order per brand without dedup", func(t *testing.T) {
		var skus []string
		for _, p := range catalog["NcSTAR"] {
			skus = append(skus, p.SKU)
		}
		if want := []string{"A1", "XY9", "A1"}; !reflect.DeepEqual(skus, want) {
			t.Errorf("NcSTAR skus = %v, want %v", skus, want)
		}
		if len(catalog["VISM"]) != 1 {
			t.Errorf("VISM products = %d, want 1", len(catalog["VISM"]))
		}
	})

	t.Run("attaches images only when present", func(t *testing.T) {
		first := catalog["NcSTAR"][0]
		if first.Images == nil {
			t.Fatal("Images = nil, want set")
		}
		if first.Images.Thumbnails == nil {
			t.Error("Thumbnails = nil, want empty slice")
		}
		if catalog["NcSTAR"][1].Images != nil {
			t.Error("XY9 Images set, want nil")
		}
	})

	t.Run("ledger lists SKUs without images", func(t *testing.T) {
		if want := []string{"XY9", "V1"}; !reflect.DeepEqual(agg.MissingImages(), want) {
			t.Errorf("MissingImages() = %v, want %v", agg.MissingImages(), want)
		}
	})

	t.Run("brand counts", func(t *testing.T) {
		want := map[string]int{"NcSTAR": 3, "VISM": 1}
		if got := agg.BrandCounts(); !reflect.DeepEqual(got, want) {
			t.Errorf("BrandCounts() = %v, want %v", got, want)
		}
		if catalog.Count() != 4 {
			t.Errorf("Count() = %d, want 4", catalog.Count())
		}
	})
}

func TestCatalogAggregator_Empty(t *testing.T) {
	agg := NewCatalogAggregator()
	if agg.Catalog() == nil {
		t.Error("Catalog() = nil, want empty map")
	}
	if agg.MissingImages() == nil {
		t.Error("MissingImages() = nil, want empty slice")
	}
}
