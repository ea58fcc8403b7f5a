package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mvalarezo/taller/internal/domain"
)

type maintenancePartItemPayload struct {
	ID              int64    `json:"id"`
	Code            string   `json:"code,omitempty"`
	Name            string   `json:"name,omitempty"`
	Quantity        int      `json:"quantity"`
	UnitPriceAtTime apiFloat `json:"unit_price_at_time"`
}

type maintenanceLaborItemPayload struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name,omitempty"`
	CostAtTime apiFloat `json:"cost_at_time"`
}

type maintenancePayload struct {
	ID                 int64                          `json:"id,omitempty"`
	VehicleID          int64                          `json:"vehicle_id"`
	PriorOdometerKm    int                            `json:"prior_odometer_km"`
	RecordedOdometerKm int                            `json:"recorded_odometer_km"`
	Date               string                         `json:"date"`
	Notes              string                         `json:"notes,omitempty"`
	TotalCost          apiFloat                       `json:"total_cost,omitempty"`
	Parts              []*maintenancePartItemPayload  `json:"parts"`
	Labors             []*maintenanceLaborItemPayload `json:"labors"`
	Vehicle            *vehiclePayload                `json:"vehicle,omitempty"`
}

func (p *maintenancePayload) toDomain() *domain.Maintenance {
	m := &domain.Maintenance{
		ID:                 p.ID,
		VehicleID:          p.VehicleID,
		PriorOdometerKm:    p.PriorOdometerKm,
		RecordedOdometerKm: p.RecordedOdometerKm,
		Notes:              p.Notes,
		TotalCost:          float64(p.TotalCost),
	}
	if date, err := time.Parse(dateLayout, p.Date); err == nil {
		m.Date = date
	}
	for _, item := range p.Parts {
		m.Parts = append(m.Parts, &domain.MaintenancePart{
			PartID:          item.ID,
			Code:            item.Code,
			Name:            item.Name,
			Quantity:        item.Quantity,
			UnitPriceAtTime: float64(item.UnitPriceAtTime),
		})
	}
	for _, item := range p.Labors {
		m.Labors = append(m.Labors, &domain.MaintenanceLabor{
			LaborID:    item.ID,
			Name:       item.Name,
			CostAtTime: float64(item.CostAtTime),
		})
	}
	if p.Vehicle != nil {
		m.Vehicle = p.Vehicle.toDomain()
	}
	return m
}

// ListMaintenances retrieves all maintenance records
func (c *Client) ListMaintenances(ctx context.Context) ([]*domain.Maintenance, error) {
	var payloads []*maintenancePayload
	if err := c.do(ctx, http.MethodGet, "/maintenances", nil, &payloads); err != nil {
		return nil, fmt.Errorf("list maintenances: %w", err)
	}
	records := make([]*domain.Maintenance, len(payloads))
	for i, p := range payloads {
		records[i] = p.toDomain()
	}
	return records, nil
}

// GetMaintenance retrieves one maintenance record with its lines
func (c *Client) GetMaintenance(ctx context.Context, id int64) (*domain.Maintenance, error) {
	var payload maintenancePayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/maintenances/%d", id), nil, &payload); err != nil {
		return nil, fmt.Errorf("get maintenance %d: %w", id, err)
	}
	return payload.toDomain(), nil
}

// CreateMaintenance submits a completed maintenance record and returns the
// persisted record including its id.
func (c *Client) CreateMaintenance(ctx context.Context, req *MaintenanceRequest) (*domain.Maintenance, error) {
	payload := &maintenancePayload{
		VehicleID:          req.VehicleID,
		PriorOdometerKm:    req.PriorOdometerKm,
		RecordedOdometerKm: req.RecordedOdometerKm,
		Date:               req.Date.Format(dateLayout),
		Notes:              req.Notes,
		Parts:              make([]*maintenancePartItemPayload, 0, len(req.Parts)),
		Labors:             make([]*maintenanceLaborItemPayload, 0, len(req.Labors)),
	}
	for _, item := range req.Parts {
		payload.Parts = append(payload.Parts, &maintenancePartItemPayload{
			ID:              item.ID,
			Quantity:        item.Quantity,
			UnitPriceAtTime: apiFloat(item.UnitPriceAtTime),
		})
	}
	for _, item := range req.Labors {
		payload.Labors = append(payload.Labors, &maintenanceLaborItemPayload{
			ID:         item.ID,
			CostAtTime: apiFloat(item.CostAtTime),
		})
	}

	var created maintenancePayload
	if err := c.do(ctx, http.MethodPost, "/maintenances", payload, &created); err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}
