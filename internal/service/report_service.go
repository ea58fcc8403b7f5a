package service

import (
	"context"
	"sort"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// ShopSummary provides the counts and highlights shown on the dashboard
type ShopSummary struct {
	ClientCount      int
	VehicleCount     int
	PartCount        int
	LaborCount       int
	MaintenanceCount int

	LowStockParts []*domain.Part
	Recent        []*domain.Maintenance
	RevenueTotal  float64
}

// ReportService provides aggregations over the backend catalogs
type ReportService interface {
	// GetShopSummary builds the dashboard view. Parts at or below the
	// low-stock threshold are flagged; the most recent maintenances are
	// included up to recentLimit.
	GetShopSummary(ctx context.Context, lowStockThreshold, recentLimit int) (*ShopSummary, error)

	// GetVehicleHistory returns a vehicle's maintenances, newest first
	GetVehicleHistory(ctx context.Context, vehicleID int64) ([]*domain.Maintenance, error)
}

type reportService struct {
	gw gateway.API
}

// NewReportService creates a new report service
func NewReportService(gw gateway.API) ReportService {
	return &reportService{gw: gw}
}

func (s *reportService) GetShopSummary(ctx context.Context, lowStockThreshold, recentLimit int) (*ShopSummary, error) {
	clients, err := s.gw.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.gw.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	parts, err := s.gw.ListParts(ctx)
	if err != nil {
		return nil, err
	}
	labors, err := s.gw.ListLabors(ctx)
	if err != nil {
		return nil, err
	}
	maintenances, err := s.gw.ListMaintenances(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ShopSummary{
		ClientCount:      len(clients),
		VehicleCount:     len(vehicles),
		PartCount:        len(parts),
		LaborCount:       len(labors),
		MaintenanceCount: len(maintenances),
	}

	for _, p := range parts {
		if p.StockQty <= lowStockThreshold {
			summary.LowStockParts = append(summary.LowStockParts, p)
		}
	}
	sort.Slice(summary.LowStockParts, func(i, j int) bool {
		return summary.LowStockParts[i].StockQty < summary.LowStockParts[j].StockQty
	})

	sorted := sortByDateDesc(maintenances)
	for _, m := range sorted {
		summary.RevenueTotal += m.TotalCost
	}
	if recentLimit > 0 && len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	summary.Recent = sorted

	return summary, nil
}

func (s *reportService) GetVehicleHistory(ctx context.Context, vehicleID int64) ([]*domain.Maintenance, error) {
	maintenances, err := s.gw.ListMaintenances(ctx)
	if err != nil {
		return nil, err
	}

	var history []*domain.Maintenance
	for _, m := range maintenances {
		if m.VehicleID == vehicleID {
			history = append(history, m)
		}
	}
	return sortByDateDesc(history), nil
}

func sortByDateDesc(maintenances []*domain.Maintenance) []*domain.Maintenance {
	sorted := make([]*domain.Maintenance, len(maintenances))
	copy(sorted, maintenances)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
