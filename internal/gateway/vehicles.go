package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mvalarezo/taller/internal/domain"
)

type vehiclePayload struct {
	ID         int64  `json:"id,omitempty"`
	ClientID   int64  `json:"client_id"`
	Brand      string `json:"brand"`
	Model      string `json:"model,omitempty"`
	Year       int    `json:"year,omitempty"`
	Plate      string `json:"plate"`
	OdometerKm int    `json:"odometer_km"`
}

func (p *vehiclePayload) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:         p.ID,
		ClientID:   p.ClientID,
		Brand:      p.Brand,
		Model:      p.Model,
		Year:       p.Year,
		Plate:      p.Plate,
		OdometerKm: p.OdometerKm,
	}
}

// ListVehicles retrieves the full vehicle registry. There is no server-side
// client filter; callers narrow the result locally.
func (c *Client) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	var payloads []*vehiclePayload
	if err := c.do(ctx, http.MethodGet, "/vehicles", nil, &payloads); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	vehicles := make([]*domain.Vehicle, len(payloads))
	for i, p := range payloads {
		vehicles[i] = p.toDomain()
	}
	return vehicles, nil
}

// CreateVehicle registers a new vehicle and returns it with its assigned id
func (c *Client) CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vehicle: %w", err)
	}
	req := &vehiclePayload{
		ClientID:   v.ClientID,
		Brand:      v.Brand,
		Model:      v.Model,
		Year:       v.Year,
		Plate:      v.Plate,
		OdometerKm: v.OdometerKm,
	}
	var payload vehiclePayload
	if err := c.do(ctx, http.MethodPost, "/vehicles", req, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}
