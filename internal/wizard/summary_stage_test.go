package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// advanceToSummary builds a submittable draft: one part (qty 2), one catalog
// labor, two free-text labor lines, odometer 75.
func advanceToSummary(t *testing.T, w *Wizard, gw *fakeGateway) {
	t.Helper()
	advanceToService(t, w, gw)
	require.NoError(t, w.Service().LoadCatalogs(context.Background()))

	w.Service().AddPart(gw.parts[0])
	w.Service().AddPart(gw.parts[0])
	w.Service().AddLaborFromCatalog(gw.labors[0])

	w.Service().AddAdHocLabor()
	require.NoError(t, w.Service().SetLaborName(1, "Alineación"))
	require.NoError(t, w.Service().SetLaborCost(1, 25))
	w.Service().AddAdHocLabor()
	require.NoError(t, w.Service().SetLaborName(2, "Balanceo"))
	require.NoError(t, w.Service().SetLaborCost(2, 18))

	w.Service().SetNotes("mantenimiento de rutina")
	w.Service().SetEnteredOdometer("75")
	require.NoError(t, w.Advance())
}

func TestConfirmRealizesAdHocLaborsInOrder(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToSummary(t, w, gw)

	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	w.Summary().now = func() time.Time { return at }

	record, err := w.Summary().Confirm(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, StageSubmitted, w.Stage())

	// Both free-text lines became catalog entries, in draft order, before
	// the record was submitted.
	require.Len(t, gw.createdLabors, 2)
	assert.Equal(t, "Alineación", gw.createdLabors[0].Name)
	assert.Equal(t, "Balanceo", gw.createdLabors[1].Name)
	assert.Equal(t, adHocLaborDescription, gw.createdLabors[0].Description)
	assert.Equal(t, 25.0, gw.createdLabors[0].StandardPrice)

	req := gw.maintenanceReq
	require.NotNil(t, req)
	assert.Equal(t, int64(10), req.VehicleID)
	assert.Equal(t, 50, req.PriorOdometerKm)
	assert.Equal(t, 75, req.RecordedOdometerKm)
	assert.Equal(t, at, req.Date)
	assert.Equal(t, "mantenimiento de rutina", req.Notes)

	require.Len(t, req.Parts, 1)
	assert.Equal(t, int64(100), req.Parts[0].ID)
	assert.Equal(t, 2, req.Parts[0].Quantity)
	assert.Equal(t, 10.0, req.Parts[0].UnitPriceAtTime)

	// Catalog-picked labor first, then the realized ones in order
	require.Len(t, req.Labors, 3)
	assert.Equal(t, int64(200), req.Labors[0].ID)
	assert.Equal(t, 15.0, req.Labors[0].CostAtTime)
	assert.Equal(t, gw.createdLabors[0].ID, req.Labors[1].ID)
	assert.Equal(t, 25.0, req.Labors[1].CostAtTime)
	assert.Equal(t, gw.createdLabors[1].ID, req.Labors[2].ID)
	assert.Equal(t, 18.0, req.Labors[2].CostAtTime)

	// Success discards the draft
	assert.Nil(t, w.Draft().Client)
	assert.Empty(t, w.Draft().PartLines)
}

func TestConfirmAbortsOnLaborFailureWithoutTouchingDraft(t *testing.T) {
	gw := seededGateway()
	gw.laborErrAt = 2 // second realization fails
	w := New(gw)
	advanceToSummary(t, w, gw)

	_, err := w.Summary().Confirm(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Balanceo"`)

	// No record was created and the wizard stays put with the draft intact,
	// including the still-unrealized free-text lines.
	assert.Zero(t, gw.maintenanceCalls)
	assert.Equal(t, StageSummaryConfirmation, w.Stage())
	require.Len(t, w.Draft().LaborLines, 3)
	assert.Nil(t, w.Draft().LaborLines[1].LaborID)
	assert.Nil(t, w.Draft().LaborLines[2].LaborID)
	assert.Len(t, w.Draft().PartLines, 1)

	// Retrying after the backend recovers succeeds; the lines are realized
	// again from scratch.
	gw.laborErrAt = 0
	_, err = w.Summary().Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.maintenanceCalls)
}

func TestConfirmSurfacesMaintenanceFailure(t *testing.T) {
	gw := seededGateway()
	gw.maintenanceErr = errors.New("backend unavailable")
	w := New(gw)
	advanceToSummary(t, w, gw)

	_, err := w.Summary().Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, StageSummaryConfirmation, w.Stage())
	assert.NotNil(t, w.Draft().Client)
}

func TestConfirmOnlyFromSummaryStage(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)

	_, err := w.Summary().Confirm(context.Background())
	assert.ErrorIs(t, err, ErrWizardFinished)
	assert.Zero(t, gw.maintenanceCalls)
}

func TestConfirmWithNoLines(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	w.Service().SetEnteredOdometer("75")
	require.NoError(t, w.Advance())

	record, err := w.Summary().Confirm(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Zero(t, gw.laborCalls)
	require.NotNil(t, gw.maintenanceReq)
	assert.Empty(t, gw.maintenanceReq.Parts)
	assert.Empty(t, gw.maintenanceReq.Labors)
}
