package wizard

import (
	"context"
	"testing"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededGateway() *fakeGateway {
	return &fakeGateway{
		clients: []*domain.Client{
			{ID: 1, Name: "María Pérez", NationalID: "0912345678", Phone: "0990000000"},
			{ID: 2, Name: "Juan López", NationalID: "0801234567"},
		},
		vehicles: []*domain.Vehicle{
			{ID: 10, ClientID: 1, Brand: "Chevrolet", Model: "Aveo", Year: 2015, Plate: "ABC1234", OdometerKm: 50},
			{ID: 11, ClientID: 2, Brand: "Kia", Model: "Rio", Year: 2019, Plate: "GYE8812", OdometerKm: 30000},
		},
		parts: []*domain.Part{
			{ID: 100, Code: "FLT-001", Name: "Filtro de aceite", UnitPrice: 10, StockQty: 12},
			{ID: 101, Code: "BUJ-004", Name: "Bujía", UnitPrice: 4.5, StockQty: 40},
		},
		labors: []*domain.Labor{
			{ID: 200, Name: "Cambio de aceite", Description: "Aceite y filtro", StandardPrice: 15},
		},
	}
}

// advanceToService walks a wizard through client and vehicle selection
func advanceToService(t *testing.T, w *Wizard, gw *fakeGateway) {
	t.Helper()
	w.Clients().Select(gw.clients[0])
	require.NoError(t, w.Advance())
	vehicles, err := w.Vehicles().ListForClient(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, vehicles)
	w.Vehicles().Select(vehicles[0])
	require.NoError(t, w.Advance())
}

func TestAdvanceBlockedWithoutClient(t *testing.T) {
	w := New(seededGateway())
	assert.ErrorIs(t, w.Advance(), ErrNoClientSelected)
	assert.Equal(t, StageClientSelection, w.Stage())
}

func TestSearchShortTermMakesNoRequest(t *testing.T) {
	gw := seededGateway()
	w := New(gw)

	matches, err := w.Clients().Search(context.Background(), "ma")
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Zero(t, gw.listClientCalls, "short terms must not hit the gateway")
}

func TestSearchMatchesNameAndNationalID(t *testing.T) {
	gw := seededGateway()
	w := New(gw)

	byName, err := w.Clients().Search(context.Background(), "pérez")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ID)

	byID, err := w.Clients().Search(context.Background(), "0801")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, int64(2), byID[0].ID)

	assert.Equal(t, 1, gw.listClientCalls, "candidate list is fetched once per run")
}

func TestCreateClientRequiresNameAndNationalID(t *testing.T) {
	w := New(seededGateway())

	_, err := w.Clients().Create(context.Background(), "", "0912345678", "")
	assert.Error(t, err)
	_, err = w.Clients().Create(context.Background(), "Pedro Mora", "  ", "")
	assert.Error(t, err)
	assert.Nil(t, w.Draft().Client)

	created, err := w.Clients().Create(context.Background(), "Pedro Mora", "1712345678", "")
	require.NoError(t, err)
	assert.Equal(t, created, w.Draft().Client)

	// The created client joins the local candidate set
	matches, err := w.Clients().Search(context.Background(), "mora")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestReselectingClientInvalidatesVehicle(t *testing.T) {
	gw := seededGateway()
	w := New(gw)

	w.Clients().Select(gw.clients[0])
	require.NoError(t, w.Advance())

	vehicles, err := w.Vehicles().ListForClient(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	w.Vehicles().Select(vehicles[0])

	// Going back and picking a different client drops the vehicle and
	// refetches candidates scoped to the new client.
	w.Retreat()
	w.Clients().Select(gw.clients[1])
	require.NoError(t, w.Advance())

	assert.Nil(t, w.Draft().Vehicle)
	vehicles, err = w.Vehicles().ListForClient(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, int64(11), vehicles[0].ID)
	assert.Equal(t, 2, gw.listVehicleCalls)
}

func TestReselectingSameClientKeepsVehicle(t *testing.T) {
	gw := seededGateway()
	w := New(gw)

	w.Clients().Select(gw.clients[0])
	require.NoError(t, w.Advance())
	vehicles, err := w.Vehicles().ListForClient(context.Background())
	require.NoError(t, err)
	w.Vehicles().Select(vehicles[0])

	w.Retreat()
	w.Clients().Select(gw.clients[0])
	assert.NotNil(t, w.Draft().Vehicle)
}

func TestCreateVehicleNormalizesAndCoerces(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	w.Clients().Select(gw.clients[0])
	require.NoError(t, w.Advance())

	created, err := w.Vehicles().Create(context.Background(), "Toyota", "Hilux", "2021", "ab-12 34", "")
	require.NoError(t, err)
	assert.Equal(t, "AB1234", created.Plate)
	assert.Equal(t, 2021, created.Year)
	assert.Equal(t, 0, created.OdometerKm)
	assert.Equal(t, int64(1), created.ClientID)
	assert.Equal(t, created, w.Draft().Vehicle)

	_, err = w.Vehicles().Create(context.Background(), "", "", "", "XYZ123", "0")
	assert.Error(t, err)
	_, err = w.Vehicles().Create(context.Background(), "Toyota", "", "", "--- ", "0")
	assert.Error(t, err)
}

func TestRetreatKeepsEnteredData(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)

	w.Service().SetNotes("ruido en frenos")
	w.Service().AddPart(gw.parts[0])

	w.Retreat()
	w.Retreat()
	assert.Equal(t, StageClientSelection, w.Stage())
	assert.Equal(t, "ruido en frenos", w.Draft().Notes)
	assert.Len(t, w.Draft().PartLines, 1)
	assert.NotNil(t, w.Draft().Client)
}

func TestAbandonDiscardsDraft(t *testing.T) {
	gw := seededGateway()
	w := New(gw)
	advanceToService(t, w, gw)
	w.Service().AddPart(gw.parts[0])

	w.Abandon()
	assert.Equal(t, StageAbandoned, w.Stage())
	assert.Nil(t, w.Draft().Client)
	assert.Empty(t, w.Draft().PartLines)
	assert.ErrorIs(t, w.Advance(), ErrWizardFinished)
}
