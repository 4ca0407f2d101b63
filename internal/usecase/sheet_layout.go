package usecase

import "strings"

// SheetLayout describes where things live in a vendor export.
// Column indexes are zero-based.
type SheetLayout struct {
	HeaderMarkers []string
	MaxScanLines  int
	MinColumns    int

	// A row is a section marker when LabelColumn is filled and every
	// SectionBlankColumns cell is empty.
	LabelColumn         int
	SectionBlankColumns []int

	SKUColumn       int
	CaseQtyColumn   int
	NameColumn      int
	UPCColumn       int
	AuthPriceColumn int
	AuthPlusColumn  int
	MAPColumn       int
	MSRPColumn      int
	BrandColumn     int // -1 disables per-row brand

	FallbackCategory string
	Brand            string
}

// Defaults for the vendor order-form export
const (
	DefaultMaxScanLines     = 1000
	DefaultMinColumns       = 15
	DefaultFallbackCategory = "Optics"
	DefaultBrand            = "NcSTAR"
)

// DefaultSheetLayout returns the layout of the vendor order-form export
func DefaultSheetLayout() SheetLayout {
	return SheetLayout{
		HeaderMarkers:       []string{"CATEGORY / SKU", "ITEM DESCRIPTION"},
		MaxScanLines:        DefaultMaxScanLines,
		MinColumns:          DefaultMinColumns,
		LabelColumn:         2,
		SectionBlankColumns: []int{3, 4},
		SKUColumn:           2,
		CaseQtyColumn:       3,
		NameColumn:          4,
		UPCColumn:           7,
		AuthPriceColumn:     9,
		AuthPlusColumn:      10,
		MAPColumn:           13,
		MSRPColumn:          14,
		BrandColumn:         -1,
		FallbackCategory:    DefaultFallbackCategory,
		Brand:               DefaultBrand,
	}
}

// cell returns the trimmed cell at idx, or "" when the row is too short
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
