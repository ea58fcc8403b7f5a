package domain

import (
	"errors"
	"strings"
)

// Labor is a catalog entry for a unit of shop work. Entries may be created
// lazily when the operator types free-form work into a maintenance draft.
type Labor struct {
	ID            int64
	Name          string
	Description   string
	StandardPrice float64
}

// NewLabor creates a new labor catalog entry
func NewLabor(name, description string, standardPrice float64) *Labor {
	return &Labor{
		Name:          strings.TrimSpace(name),
		Description:   strings.TrimSpace(description),
		StandardPrice: standardPrice,
	}
}

// Validate returns an error if the labor entry is invalid
func (l *Labor) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("labor name is required")
	}
	if l.StandardPrice < 0 {
		return errors.New("standard price cannot be negative")
	}
	return nil
}

// Matches reports whether the term is a case-insensitive substring of the name
func (l *Labor) Matches(term string) bool {
	return strings.Contains(strings.ToLower(l.Name), strings.ToLower(term))
}
