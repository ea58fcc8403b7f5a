// Package gateway is the HTTP client for the shop's backend API. All
// persistent state (clients, vehicles, part and labor catalogs, maintenance
// records) lives behind that API; this process only holds session state.
package gateway

import (
	"context"
	"time"

	"github.com/mvalarezo/taller/internal/domain"
)

// API is the full surface the backend exposes to this app.
type API interface {
	// Clients
	ListClients(ctx context.Context) ([]*domain.Client, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, c *domain.Client) (*domain.Client, error)

	// Vehicles. The backend only exposes a bulk listing; callers filter
	// by client id locally.
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)

	// Parts
	ListParts(ctx context.Context) ([]*domain.Part, error)
	CreatePart(ctx context.Context, p *domain.Part) (*domain.Part, error)
	UpdatePart(ctx context.Context, p *domain.Part) (*domain.Part, error)
	DeletePart(ctx context.Context, id int64) error

	// Labors
	ListLabors(ctx context.Context) ([]*domain.Labor, error)
	CreateLabor(ctx context.Context, l *domain.Labor) (*domain.Labor, error)
	UpdateLabor(ctx context.Context, l *domain.Labor) (*domain.Labor, error)
	DeleteLabor(ctx context.Context, id int64) error

	// Maintenances
	ListMaintenances(ctx context.Context) ([]*domain.Maintenance, error)
	GetMaintenance(ctx context.Context, id int64) (*domain.Maintenance, error)
	CreateMaintenance(ctx context.Context, req *MaintenanceRequest) (*domain.Maintenance, error)
}

// MaintenanceRequest is the payload for creating a maintenance record.
type MaintenanceRequest struct {
	VehicleID          int64
	PriorOdometerKm    int
	RecordedOdometerKm int
	Date               time.Time
	Notes              string
	Parts              []MaintenancePartItem
	Labors             []MaintenanceLaborItem
}

// MaintenancePartItem references a catalog part with its frozen price.
type MaintenancePartItem struct {
	ID              int64
	Quantity        int
	UnitPriceAtTime float64
}

// MaintenanceLaborItem references a catalog labor with its frozen cost.
type MaintenanceLaborItem struct {
	ID         int64
	CostAtTime float64
}
