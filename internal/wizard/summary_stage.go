package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// adHocLaborDescription is the fixed description given to labor catalog
// entries realized from free-text draft lines.
const adHocLaborDescription = "Quick entry from maintenance intake"

// SummaryFinalizer derives the totals for the read-only summary view and
// commits the record.
type SummaryFinalizer struct {
	w  *Wizard
	gw gateway.API

	// now is swappable for tests
	now func() time.Time
}

// Totals are the derived amounts shown on the summary. They are recomputed
// on every call, never cached across line edits.
type Totals struct {
	Parts float64
	Labor float64
	Total float64
}

// Totals derives the current subtotals and total from the draft
func (f *SummaryFinalizer) Totals() Totals {
	d := f.w.draft
	return Totals{
		Parts: d.PartsSubtotal(),
		Labor: d.LaborSubtotal(),
		Total: d.Total(),
	}
}

// Confirm commits the draft as an ordered, non-transactional sequence:
//
//  1. Each free-text labor line is realized as a catalog entry, one call at
//     a time, in the order the lines were added. The first failure aborts
//     the whole commit; entries created before the failure stay in the
//     catalog (there is no compensating delete) and no record is created.
//  2. The realized entries are merged with the catalog-picked lines and one
//     maintenance-creation request is submitted.
//
// On success the wizard terminates and the draft is discarded. On failure
// the wizard stays on the summary stage with the draft untouched.
func (f *SummaryFinalizer) Confirm(ctx context.Context) (*domain.Maintenance, error) {
	if f.w.stage != StageSummaryConfirmation {
		return nil, ErrWizardFinished
	}
	d := f.w.draft

	var catalogSelected, adHoc []*LaborLine
	for _, line := range d.LaborLines {
		if line.IsNewDefinition && line.LaborID == nil {
			adHoc = append(adHoc, line)
		} else {
			catalogSelected = append(catalogSelected, line)
		}
	}

	laborItems := make([]gateway.MaintenanceLaborItem, 0, len(d.LaborLines))
	for _, line := range catalogSelected {
		laborItems = append(laborItems, gateway.MaintenanceLaborItem{
			ID:         *line.LaborID,
			CostAtTime: line.CostAtTime,
		})
	}
	// Realized ids are collected locally rather than written back into the
	// draft, so an aborted commit leaves the draft exactly as it was.
	for _, line := range adHoc {
		entry, err := f.gw.CreateLabor(ctx, domain.NewLabor(line.Name, adHocLaborDescription, line.CostAtTime))
		if err != nil {
			return nil, fmt.Errorf("register labor %q: %w", line.Name, err)
		}
		laborItems = append(laborItems, gateway.MaintenanceLaborItem{
			ID:         entry.ID,
			CostAtTime: line.CostAtTime,
		})
	}

	partItems := make([]gateway.MaintenancePartItem, 0, len(d.PartLines))
	for _, line := range d.PartLines {
		partItems = append(partItems, gateway.MaintenancePartItem{
			ID:              line.PartID,
			Quantity:        line.Quantity,
			UnitPriceAtTime: line.UnitPriceAtTime,
		})
	}

	record, err := f.gw.CreateMaintenance(ctx, &gateway.MaintenanceRequest{
		VehicleID:          d.Vehicle.ID,
		PriorOdometerKm:    d.Vehicle.OdometerKm,
		RecordedOdometerKm: f.w.service.enteredOdometer(),
		Date:               f.submittedAt(),
		Notes:              d.Notes,
		Parts:              partItems,
		Labors:             laborItems,
	})
	if err != nil {
		return nil, err
	}

	f.w.stage = StageSubmitted
	f.w.draft = &Draft{}
	return record, nil
}

func (f *SummaryFinalizer) submittedAt() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}
