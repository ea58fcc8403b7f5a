package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddingSamePartTwiceIncrementsQuantity(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	require.NoError(t, w.Service().LoadCatalogs(context.Background()))

	w.Service().AddPart(gw.parts[0])
	w.Service().AddPart(gw.parts[0])

	require.Len(t, w.Draft().PartLines, 1)
	assert.Equal(t, 2, w.Draft().PartLines[0].Quantity)
}

func TestPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	require.NoError(t, w.Service().LoadCatalogs(context.Background()))

	w.Service().AddPart(gw.parts[0])
	gw.parts[0].UnitPrice = 99

	assert.Equal(t, 10.0, w.Draft().PartLines[0].UnitPriceAtTime)
}

func TestSetUnitPriceDoesNotTouchCatalog(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	require.NoError(t, w.Service().LoadCatalogs(context.Background()))

	w.Service().AddPart(gw.parts[0])
	require.NoError(t, w.Service().SetUnitPrice(gw.parts[0].ID, 12.5))

	assert.Equal(t, 12.5, w.Draft().PartLines[0].UnitPriceAtTime)
	assert.Equal(t, 10.0, gw.parts[0].UnitPrice)

	assert.Error(t, w.Service().SetUnitPrice(gw.parts[0].ID, -1))
	assert.Error(t, w.Service().SetUnitPrice(999, 5))
}

func TestSetQuantityRejectsZero(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)

	w.Service().AddPart(gw.parts[0])
	assert.Error(t, w.Service().SetQuantity(gw.parts[0].ID, 0))
	require.NoError(t, w.Service().SetQuantity(gw.parts[0].ID, 3))
	assert.Equal(t, 3, w.Draft().PartLines[0].Quantity)
}

func TestRemovePartDropsItsContribution(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)

	w.Service().AddPart(gw.parts[0]) // 10.00
	w.Service().AddPart(gw.parts[1]) // 4.50
	require.NoError(t, w.Service().SetQuantity(gw.parts[1].ID, 2))
	assert.InDelta(t, 19.0, w.Draft().PartsSubtotal(), 1e-9)

	w.Service().RemovePart(gw.parts[1].ID)
	assert.InDelta(t, 10.0, w.Draft().PartsSubtotal(), 1e-9)
	require.Len(t, w.Draft().PartLines, 1)
	assert.Equal(t, gw.parts[0].ID, w.Draft().PartLines[0].PartID)
}

func TestCatalogSearchFiltersLocally(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	require.NoError(t, w.Service().LoadCatalogs(context.Background()))

	assert.Nil(t, w.Service().SearchParts("f"))
	byCode := w.Service().SearchParts("flt")
	require.Len(t, byCode, 1)
	assert.Equal(t, int64(100), byCode[0].ID)

	byName := w.Service().SearchLabors("aceite")
	require.Len(t, byName, 1)
	assert.Equal(t, int64(200), byName[0].ID)
}

func TestTotalsAddPartsAndLabor(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	require.NoError(t, w.Service().LoadCatalogs(context.Background()))

	w.Service().AddPart(gw.parts[0])
	w.Service().AddPart(gw.parts[0]) // 2 x 10.00
	w.Service().AddLaborFromCatalog(gw.labors[0])

	totals := w.Summary().Totals()
	assert.InDelta(t, 20.0, totals.Parts, 1e-9)
	assert.InDelta(t, 15.0, totals.Labor, 1e-9)
	assert.InDelta(t, 35.0, totals.Total, 1e-9)
}

func TestValidateOdometerGuard(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw) // vehicle reads 50 km

	w.Service().SetEnteredOdometer("10")
	err := w.Service().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 km")
	assert.Contains(t, err.Error(), "50 km")

	w.Service().SetEnteredOdometer("50")
	assert.NoError(t, w.Service().Validate())

	w.Service().SetEnteredOdometer("51")
	assert.NoError(t, w.Service().Validate())

	w.Service().SetEnteredOdometer("abc")
	assert.Error(t, w.Service().Validate())
	w.Service().SetEnteredOdometer("")
	assert.Error(t, w.Service().Validate())
}

func TestValidateRejectsUnnamedLaborLines(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	w.Service().SetEnteredOdometer("60")

	w.Service().AddAdHocLabor()
	assert.Error(t, w.Service().Validate())

	require.NoError(t, w.Service().SetLaborName(0, "Limpieza de inyectores"))
	require.NoError(t, w.Service().SetLaborCost(0, 20))
	assert.NoError(t, w.Service().Validate())
}

func TestAdvancePastServiceRunsExitGuard(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)

	assert.Error(t, w.Advance(), "missing odometer reading must block the stage")
	assert.Equal(t, StageServiceComposition, w.Stage())

	w.Service().SetEnteredOdometer("75")
	require.NoError(t, w.Advance())
	assert.Equal(t, StageSummaryConfirmation, w.Stage())
}
