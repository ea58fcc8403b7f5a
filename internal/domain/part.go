package domain

import (
	"errors"
	"strings"
)

// Part is a long-lived inventory catalog entry shared across services.
type Part struct {
	ID        int64
	Code      string
	Name      string
	UnitPrice float64
	StockQty  int
}

// NewPart creates a new part catalog entry
func NewPart(code, name string, unitPrice float64, stockQty int) *Part {
	return &Part{
		Code:      strings.TrimSpace(code),
		Name:      strings.TrimSpace(name),
		UnitPrice: unitPrice,
		StockQty:  stockQty,
	}
}

// Validate returns an error if the part is invalid
func (p *Part) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("part name is required")
	}
	if p.UnitPrice < 0 {
		return errors.New("unit price cannot be negative")
	}
	if p.StockQty < 0 {
		return errors.New("stock quantity cannot be negative")
	}
	return nil
}

// Matches reports whether the term is a case-insensitive substring
// of the part's name or code
func (p *Part) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Code), term)
}
