package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// stubGateway overrides only the listing calls the report service uses;
// anything else panics through the embedded nil interface.
type stubGateway struct {
	gateway.API

	clients      []*domain.Client
	vehicles     []*domain.Vehicle
	parts        []*domain.Part
	labors       []*domain.Labor
	maintenances []*domain.Maintenance
}

func (s *stubGateway) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.clients, nil
}

func (s *stubGateway) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicles, nil
}

func (s *stubGateway) ListParts(ctx context.Context) ([]*domain.Part, error) {
	return s.parts, nil
}

func (s *stubGateway) ListLabors(ctx context.Context) ([]*domain.Labor, error) {
	return s.labors, nil
}

func (s *stubGateway) ListMaintenances(ctx context.Context) ([]*domain.Maintenance, error) {
	return s.maintenances, nil
}

func day(d int) time.Time {
	return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
}

func TestGetShopSummary(t *testing.T) {
	gw := &stubGateway{
		clients:  []*domain.Client{{ID: 1}, {ID: 2}},
		vehicles: []*domain.Vehicle{{ID: 10}},
		parts: []*domain.Part{
			{ID: 100, Name: "Filtro de aceite", StockQty: 2},
			{ID: 101, Name: "Bujía", StockQty: 40},
			{ID: 102, Name: "Pastillas de freno", StockQty: 0},
		},
		labors: []*domain.Labor{{ID: 200}},
		maintenances: []*domain.Maintenance{
			{ID: 1, VehicleID: 10, Date: day(1), TotalCost: 35},
			{ID: 2, VehicleID: 10, Date: day(20), TotalCost: 80},
			{ID: 3, VehicleID: 10, Date: day(10), TotalCost: 12.5},
		},
	}

	summary, err := NewReportService(gw).GetShopSummary(context.Background(), 5, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ClientCount)
	assert.Equal(t, 1, summary.VehicleCount)
	assert.Equal(t, 3, summary.PartCount)
	assert.Equal(t, 1, summary.LaborCount)
	assert.Equal(t, 3, summary.MaintenanceCount)
	assert.InDelta(t, 127.5, summary.RevenueTotal, 1e-9)

	// Low-stock parts sorted by remaining stock, emptiest first
	require.Len(t, summary.LowStockParts, 2)
	assert.Equal(t, int64(102), summary.LowStockParts[0].ID)
	assert.Equal(t, int64(100), summary.LowStockParts[1].ID)

	// Recent maintenances newest first, capped at the limit
	require.Len(t, summary.Recent, 2)
	assert.Equal(t, int64(2), summary.Recent[0].ID)
	assert.Equal(t, int64(3), summary.Recent[1].ID)
}

func TestGetVehicleHistory(t *testing.T) {
	gw := &stubGateway{
		maintenances: []*domain.Maintenance{
			{ID: 1, VehicleID: 10, Date: day(1)},
			{ID: 2, VehicleID: 99, Date: day(2)},
			{ID: 3, VehicleID: 10, Date: day(3)},
		},
	}

	history, err := NewReportService(gw).GetVehicleHistory(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(3), history[0].ID)
	assert.Equal(t, int64(1), history[1].ID)
}
