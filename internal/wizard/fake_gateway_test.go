package wizard

import (
	"context"
	"errors"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// fakeGateway is an in-memory stand-in for the backend API
type fakeGateway struct {
	clients  []*domain.Client
	vehicles []*domain.Vehicle
	parts    []*domain.Part
	labors   []*domain.Labor

	nextID int64

	listClientCalls  int
	listVehicleCalls int

	createdLabors []*domain.Labor
	laborErrAt    int // 1-based call index that fails, 0 = never
	laborCalls    int

	maintenanceCalls int
	maintenanceReq   *gateway.MaintenanceRequest
	maintenanceErr   error
}

func (f *fakeGateway) id() int64 {
	f.nextID++
	return 1000 + f.nextID
}

func (f *fakeGateway) ListClients(ctx context.Context) ([]*domain.Client, error) {
	f.listClientCalls++
	return f.clients, nil
}

func (f *fakeGateway) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("client not found")
}

func (f *fakeGateway) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	created := *c
	created.ID = f.id()
	f.clients = append(f.clients, &created)
	return &created, nil
}

func (f *fakeGateway) UpdateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	return c, nil
}

func (f *fakeGateway) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	f.listVehicleCalls++
	return f.vehicles, nil
}

func (f *fakeGateway) CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	created := *v
	created.ID = f.id()
	f.vehicles = append(f.vehicles, &created)
	return &created, nil
}

func (f *fakeGateway) ListParts(ctx context.Context) ([]*domain.Part, error) {
	return f.parts, nil
}

func (f *fakeGateway) CreatePart(ctx context.Context, p *domain.Part) (*domain.Part, error) {
	created := *p
	created.ID = f.id()
	f.parts = append(f.parts, &created)
	return &created, nil
}

func (f *fakeGateway) UpdatePart(ctx context.Context, p *domain.Part) (*domain.Part, error) {
	return p, nil
}

func (f *fakeGateway) DeletePart(ctx context.Context, id int64) error { return nil }

func (f *fakeGateway) ListLabors(ctx context.Context) ([]*domain.Labor, error) {
	return f.labors, nil
}

func (f *fakeGateway) CreateLabor(ctx context.Context, l *domain.Labor) (*domain.Labor, error) {
	f.laborCalls++
	if f.laborErrAt > 0 && f.laborCalls == f.laborErrAt {
		return nil, errors.New("labor creation rejected")
	}
	created := *l
	created.ID = f.id()
	f.labors = append(f.labors, &created)
	f.createdLabors = append(f.createdLabors, &created)
	return &created, nil
}

func (f *fakeGateway) UpdateLabor(ctx context.Context, l *domain.Labor) (*domain.Labor, error) {
	return l, nil
}

func (f *fakeGateway) DeleteLabor(ctx context.Context, id int64) error { return nil }

func (f *fakeGateway) ListMaintenances(ctx context.Context) ([]*domain.Maintenance, error) {
	return nil, nil
}

func (f *fakeGateway) GetMaintenance(ctx context.Context, id int64) (*domain.Maintenance, error) {
	return nil, errors.New("maintenance not found")
}

func (f *fakeGateway) CreateMaintenance(ctx context.Context, req *gateway.MaintenanceRequest) (*domain.Maintenance, error) {
	f.maintenanceCalls++
	f.maintenanceReq = req
	if f.maintenanceErr != nil {
		return nil, f.maintenanceErr
	}
	return &domain.Maintenance{
		ID:                 f.id(),
		VehicleID:          req.VehicleID,
		PriorOdometerKm:    req.PriorOdometerKm,
		RecordedOdometerKm: req.RecordedOdometerKm,
		Date:               req.Date,
		Notes:              req.Notes,
	}, nil
}
