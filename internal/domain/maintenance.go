package domain

import "time"

// Maintenance is a persisted service record as returned by the backend.
type Maintenance struct {
	ID                 int64
	VehicleID          int64
	PriorOdometerKm    int
	RecordedOdometerKm int
	Date               time.Time
	Notes              string
	TotalCost          float64

	// Related data (populated on detail fetches)
	Parts   []*MaintenancePart
	Labors  []*MaintenanceLabor
	Vehicle *Vehicle
}

// MaintenancePart is a part consumed by a maintenance, with the price
// frozen at the time the service was composed.
type MaintenancePart struct {
	PartID          int64
	Code            string
	Name            string
	Quantity        int
	UnitPriceAtTime float64
}

// MaintenanceLabor is work performed during a maintenance, with the cost
// frozen at the time the service was composed.
type MaintenanceLabor struct {
	LaborID    int64
	Name       string
	CostAtTime float64
}

// PartsSubtotal sums quantity times the frozen unit price over all part lines
func (m *Maintenance) PartsSubtotal() float64 {
	var sum float64
	for _, p := range m.Parts {
		sum += float64(p.Quantity) * p.UnitPriceAtTime
	}
	return sum
}

// LaborSubtotal sums the frozen cost over all labor lines
func (m *Maintenance) LaborSubtotal() float64 {
	var sum float64
	for _, l := range m.Labors {
		sum += l.CostAtTime
	}
	return sum
}
