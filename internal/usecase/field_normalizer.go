package usecase

import (
	"strings"

	"github.com/modulargunworks/catalog/internal/domain"
	"github.com/shopspring/decimal"
)

var priceNoise = strings.NewReplacer("$", "", ",", "")

// ParsePrice converts a vendor monetary cell such as "$1,234.56".
// Anything that does not parse, including blanks and "N/A", becomes the
// absent-value marker. Exponent notation is rejected so a cell like
// "1e100000" cannot expand into a huge number.
func ParsePrice(raw string) domain.Price {
	s := strings.TrimSpace(priceNoise.Replace(raw))
	if s == "" || strings.ContainsAny(s, "eE") {
		return domain.Price{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return domain.Price{}
	}
	return domain.NewPrice(d)
}

// FieldNormalizer extracts product fields by fixed column position
type FieldNormalizer struct {
	layout SheetLayout
}

// NewFieldNormalizer creates a normalizer for the given layout
func NewFieldNormalizer(layout SheetLayout) *FieldNormalizer {
	return &FieldNormalizer{layout: layout}
}

// Normalize builds a product from a candidate row.
// ok is false when the SKU or the name is empty after trimming.
func (n *FieldNormalizer) Normalize(row []string, category string) (domain.Product, bool) {
	l := n.layout

	sku := cell(row, l.SKUColumn)
	name := cell(row, l.NameColumn)
	if sku == "" || name == "" {
		return domain.Product{}, false
	}

	brand := l.Brand
	if l.BrandColumn >= 0 {
		if b := cell(row, l.BrandColumn); b != "" {
			brand = b
		}
	}

	return domain.Product{
		SKU:         sku,
		Category:    category,
		Name:        name,
		UPC:         cell(row, l.UPCColumn),
		MSRP:        ParsePrice(cell(row, l.MSRPColumn)),
		MAP:         ParsePrice(cell(row, l.MAPColumn)),
		Price:       ParsePrice(cell(row, l.AuthPriceColumn)),
		CaseQty:     cell(row, l.CaseQtyColumn),
		AuthPlus:    ParsePrice(cell(row, l.AuthPlusColumn)),
		Description: name,
		Brand:       brand,
	}, true
}
