package wizard

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// VehicleResolver finds or registers the vehicle owned by the resolved
// client. The backend only offers a bulk listing, so candidates are filtered
// by client id on this side; fine for small fleets, a server-side query if
// the registry ever grows.
type VehicleResolver struct {
	w  *Wizard
	gw gateway.API

	candidates []*domain.Vehicle
	loaded     bool
}

// ListForClient returns the vehicles registered to the selected client,
// fetching and caching the registry on first use.
func (r *VehicleResolver) ListForClient(ctx context.Context) ([]*domain.Vehicle, error) {
	client := r.w.draft.Client
	if client == nil {
		return nil, ErrNoClientSelected
	}
	if !r.loaded {
		all, err := r.gw.ListVehicles(ctx)
		if err != nil {
			return nil, err
		}
		r.candidates = r.candidates[:0]
		for _, v := range all {
			if v.ClientID == client.ID {
				r.candidates = append(r.candidates, v)
			}
		}
		r.loaded = true
	}
	return r.candidates, nil
}

// Select stores the vehicle in the draft
func (r *VehicleResolver) Select(v *domain.Vehicle) {
	r.w.draft.Vehicle = v
}

// Create registers a new vehicle for the selected client, selects it, and
// adds it to the candidate set. Brand and plate are required; the plate is
// normalized, year and odometer are coerced to integers with the odometer
// defaulting to zero.
func (r *VehicleResolver) Create(ctx context.Context, brand, model, year, plate, odometerKm string) (*domain.Vehicle, error) {
	client := r.w.draft.Client
	if client == nil {
		return nil, ErrNoClientSelected
	}
	if strings.TrimSpace(brand) == "" || domain.NormalizePlate(plate) == "" {
		return nil, errors.New("brand and plate are required")
	}

	yearVal, _ := strconv.Atoi(strings.TrimSpace(year))
	odometerVal, _ := strconv.Atoi(strings.TrimSpace(odometerKm))
	if odometerVal < 0 {
		odometerVal = 0
	}

	created, err := r.gw.CreateVehicle(ctx, domain.NewVehicle(client.ID, brand, model, yearVal, plate, odometerVal))
	if err != nil {
		return nil, err
	}
	r.candidates = append(r.candidates, created)
	r.Select(created)
	return created, nil
}

// invalidate drops the cached candidates so the next listing re-fetches
// scoped to the (new) client.
func (r *VehicleResolver) invalidate() {
	r.candidates = nil
	r.loaded = false
}
