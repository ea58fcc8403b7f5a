package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// minCatalogSearchLen is the shortest term that filters the part and labor
// catalogs in the service stage.
const minCatalogSearchLen = 2

// ServiceComposer builds the draft's part and labor line sets and the two
// scalar fields (notes, entered odometer). Catalogs are fetched once per
// wizard run and searched locally.
type ServiceComposer struct {
	w  *Wizard
	gw gateway.API

	parts  []*domain.Part
	labors []*domain.Labor
	loaded bool
}

// LoadCatalogs fetches the part and labor catalogs. Calls are sequential;
// no two gateway calls run concurrently within a stage.
func (c *ServiceComposer) LoadCatalogs(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	parts, err := c.gw.ListParts(ctx)
	if err != nil {
		return fmt.Errorf("load part catalog: %w", err)
	}
	labors, err := c.gw.ListLabors(ctx)
	if err != nil {
		return fmt.Errorf("load labor catalog: %w", err)
	}
	c.parts = parts
	c.labors = labors
	c.loaded = true
	return nil
}

// SearchParts filters the cached part catalog by name or code
func (c *ServiceComposer) SearchParts(term string) []*domain.Part {
	term = strings.TrimSpace(term)
	if len(term) < minCatalogSearchLen {
		return nil
	}
	var matches []*domain.Part
	for _, p := range c.parts {
		if p.Matches(term) {
			matches = append(matches, p)
		}
	}
	return matches
}

// SearchLabors filters the cached labor catalog by name
func (c *ServiceComposer) SearchLabors(term string) []*domain.Labor {
	term = strings.TrimSpace(term)
	if len(term) < minCatalogSearchLen {
		return nil
	}
	var matches []*domain.Labor
	for _, l := range c.labors {
		if l.Matches(term) {
			matches = append(matches, l)
		}
	}
	return matches
}

// AddPart inserts a line for the catalog entry with quantity 1 and the
// catalog's current price as the frozen snapshot. Adding a part that is
// already on the draft bumps its quantity instead of duplicating the row.
func (c *ServiceComposer) AddPart(p *domain.Part) {
	if line := c.w.draft.partLine(p.ID); line != nil {
		line.Quantity++
		return
	}
	c.w.draft.PartLines = append(c.w.draft.PartLines, &PartLine{
		PartID:          p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Quantity:        1,
		UnitPriceAtTime: p.UnitPrice,
	})
}

// SetQuantity sets a part line's quantity; it must be at least 1
func (c *ServiceComposer) SetQuantity(partID int64, qty int) error {
	line := c.w.draft.partLine(partID)
	if line == nil {
		return errors.New("part is not on this draft")
	}
	if qty < 1 {
		return errors.New("quantity must be at least 1")
	}
	line.Quantity = qty
	return nil
}

// SetUnitPrice overrides a part line's frozen price. The catalog is not
// touched.
func (c *ServiceComposer) SetUnitPrice(partID int64, price float64) error {
	line := c.w.draft.partLine(partID)
	if line == nil {
		return errors.New("part is not on this draft")
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	line.UnitPriceAtTime = price
	return nil
}

// RemovePart deletes the line for the given part id
func (c *ServiceComposer) RemovePart(partID int64) {
	lines := c.w.draft.PartLines
	for i, l := range lines {
		if l.PartID == partID {
			c.w.draft.PartLines = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// AddLaborFromCatalog inserts a labor line priced at the catalog's standard
// price. The same entry may appear more than once.
func (c *ServiceComposer) AddLaborFromCatalog(l *domain.Labor) {
	id := l.ID
	c.w.draft.LaborLines = append(c.w.draft.LaborLines, &LaborLine{
		LaborID:    &id,
		Name:       l.Name,
		CostAtTime: l.StandardPrice,
	})
}

// AddAdHocLabor inserts an empty free-text labor line for the operator to
// fill in. It has no catalog id until the commit realizes it.
func (c *ServiceComposer) AddAdHocLabor() *LaborLine {
	line := &LaborLine{IsNewDefinition: true}
	c.w.draft.LaborLines = append(c.w.draft.LaborLines, line)
	return line
}

// SetLaborName updates the description of the labor line at index i
func (c *ServiceComposer) SetLaborName(i int, name string) error {
	if i < 0 || i >= len(c.w.draft.LaborLines) {
		return errors.New("labor line does not exist")
	}
	c.w.draft.LaborLines[i].Name = name
	return nil
}

// SetLaborCost updates the cost of the labor line at index i
func (c *ServiceComposer) SetLaborCost(i int, cost float64) error {
	if i < 0 || i >= len(c.w.draft.LaborLines) {
		return errors.New("labor line does not exist")
	}
	if cost < 0 {
		return errors.New("cost cannot be negative")
	}
	c.w.draft.LaborLines[i].CostAtTime = cost
	return nil
}

// RemoveLabor deletes the labor line at index i
func (c *ServiceComposer) RemoveLabor(i int) {
	lines := c.w.draft.LaborLines
	if i < 0 || i >= len(lines) {
		return
	}
	c.w.draft.LaborLines = append(lines[:i], lines[i+1:]...)
}

// SetNotes stores the free-form service notes
func (c *ServiceComposer) SetNotes(notes string) {
	c.w.draft.Notes = notes
}

// SetEnteredOdometer stores the operator's raw odometer input
func (c *ServiceComposer) SetEnteredOdometer(value string) {
	c.w.draft.EnteredOdometerKm = value
}

// Validate is the exit guard for the service stage: the entered odometer
// must parse as an integer no lower than the vehicle's stored reading, every
// labor line needs a description, and every part line a committed quantity.
// Zero parts and zero labor lines are both valid.
func (c *ServiceComposer) Validate() error {
	d := c.w.draft
	if d.Vehicle == nil {
		return ErrNoVehicleSelected
	}

	entered, err := strconv.Atoi(strings.TrimSpace(d.EnteredOdometerKm))
	if err != nil {
		return errors.New("enter a valid odometer reading")
	}
	if entered < d.Vehicle.OdometerKm {
		return fmt.Errorf("entered odometer (%d km) cannot be lower than the vehicle's last recorded reading (%d km)", entered, d.Vehicle.OdometerKm)
	}

	for _, line := range d.PartLines {
		if line.Quantity < 1 {
			return fmt.Errorf("part %s needs a quantity of at least 1", line.Name)
		}
	}
	for _, line := range d.LaborLines {
		if strings.TrimSpace(line.Name) == "" {
			return errors.New("complete the description of every labor line")
		}
	}
	return nil
}

// enteredOdometer returns the parsed odometer input. Only meaningful after
// Validate has passed.
func (c *ServiceComposer) enteredOdometer() int {
	entered, _ := strconv.Atoi(strings.TrimSpace(c.w.draft.EnteredOdometerKm))
	return entered
}
