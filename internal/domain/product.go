package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents one normalized catalog entry
type Product struct {
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	UPC         string  `json:"upc"`
	MSRP        Price   `json:"msrp"`
	MAP         Price   `json:"map"`
	Price       Price   `json:"price"`
	CaseQty     string  `json:"case_qty"`
	AuthPlus    Price   `json:"auth_plus"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Images      *Images `json:"images,omitempty"`
}

// Images holds the relative image paths resolved for a SKU
type Images struct {
	Thumbnails []string `json:"thumbnails"`
	Fullsize   []string `json:"fullsize"`
}

// Empty reports whether no image was resolved at all
func (i Images) Empty() bool {
	return len(i.Thumbnails) == 0 && len(i.Fullsize) == 0
}

// Price is a monetary value that may be absent.
// The zero value is the absent-value marker and serializes as null.
type Price struct {
	Value decimal.Decimal
	Valid bool
}

// NewPrice wraps a known value
func NewPrice(d decimal.Decimal) Price {
	return Price{Value: d, Valid: true}
}

func (p Price) String() string {
	if !p.Valid {
		return "null"
	}
	return p.Value.String()
}

// MarshalJSON writes the exact decimal text as a JSON number, or null
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Value.String()), nil
}

// UnmarshalJSON accepts a JSON number or null
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	*p = NewPrice(d)
	return nil
}
