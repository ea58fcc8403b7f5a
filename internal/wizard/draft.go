package wizard

import (
	"github.com/mvalarezo/taller/internal/domain"
)

// PartLine is a part picked into a draft. UnitPriceAtTime is snapshotted
// from the catalog when the line is inserted and is editable afterwards;
// it is never re-read from the catalog.
type PartLine struct {
	PartID          int64
	Code            string
	Name            string
	Quantity        int
	UnitPriceAtTime float64
}

// Subtotal returns this line's contribution to the draft total
func (l *PartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPriceAtTime
}

// LaborLine is work added to a draft. Lines typed in as free text carry
// IsNewDefinition and no LaborID until the commit realizes them as catalog
// entries.
type LaborLine struct {
	LaborID         *int64
	Name            string
	CostAtTime      float64
	IsNewDefinition bool
}

// Draft is the session-scoped maintenance being composed. It lives only for
// the duration of one wizard run and is discarded on submit or abandon. The
// wizard owns the single instance; stage components mutate it only through
// their published operations.
type Draft struct {
	Client  *domain.Client
	Vehicle *domain.Vehicle

	Notes string
	// EnteredOdometerKm holds the operator's raw input. It may be empty or
	// partial while the service stage is being edited; it must parse as an
	// integer before the stage can be left.
	EnteredOdometerKm string

	PartLines  []*PartLine
	LaborLines []*LaborLine
}

// PartsSubtotal sums all part line subtotals
func (d *Draft) PartsSubtotal() float64 {
	var sum float64
	for _, l := range d.PartLines {
		sum += l.Subtotal()
	}
	return sum
}

// LaborSubtotal sums all labor line costs
func (d *Draft) LaborSubtotal() float64 {
	var sum float64
	for _, l := range d.LaborLines {
		sum += l.CostAtTime
	}
	return sum
}

// Total is always derived from the current lines, never cached
func (d *Draft) Total() float64 {
	return d.PartsSubtotal() + d.LaborSubtotal()
}

// partLine returns the line for a part id, or nil
func (d *Draft) partLine(partID int64) *PartLine {
	for _, l := range d.PartLines {
		if l.PartID == partID {
			return l
		}
	}
	return nil
}
