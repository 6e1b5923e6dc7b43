package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a read-only catalog row. Price is parsed on load; an
// unparseable price becomes zero.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Gender   string          `json:"gender"`
	Color    string          `json:"color"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

// InSegment reports whether the product belongs to the gender segment.
// The "all" segment matches every product.
func (p Product) InSegment(segment string) bool {
	return segment == SegmentAll || strings.EqualFold(p.Gender, segment)
}

const SegmentAll = "all"

// ParsePrice converts a raw table value into a price, falling back to zero.
func ParsePrice(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
