package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvalarezo/taller/internal/app"
	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/service"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	summary      *service.ShopSummary
	vehicleCache map[int64]*domain.Vehicle

	loading bool
	err     error
}

type dashboardDataMsg struct {
	summary      *service.ShopSummary
	vehicleCache map[int64]*domain.Vehicle
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:          a,
		loading:      true,
		vehicleCache: make(map[int64]*domain.Vehicle),
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		shop := m.app.Config.Shop

		summary, err := m.app.ReportService.GetShopSummary(ctx, shop.LowStockThreshold, shop.RecentLimit)
		if err != nil {
			return dashboardDataMsg{err: displayErr(err)}
		}

		// Resolve vehicles for the recent maintenance rows
		cache := make(map[int64]*domain.Vehicle)
		vehicles, err := m.app.Gateway.ListVehicles(ctx)
		if err == nil {
			for _, v := range vehicles {
				cache[v.ID] = v
			}
		}

		return dashboardDataMsg{summary: summary, vehicleCache: cache}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.vehicleCache = msg.vehicleCache
		}
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := fmt.Sprintf(
		"  Clients: %d   Vehicles: %d   Parts: %d   Labors: %d   Maintenances: %d\n",
		m.summary.ClientCount,
		m.summary.VehicleCount,
		m.summary.PartCount,
		m.summary.LaborCount,
		m.summary.MaintenanceCount,
	)
	s += fmt.Sprintf("  Lifetime revenue: %s\n", totalStyle.Render(formatMoney(m.summary.RevenueTotal)))

	s += "\n" + m.renderLowStock()
	s += "\n" + m.renderRecent()

	s += "\n" + helpStyle.Render("  m: start a new maintenance")

	return s
}

func (m *DashboardModel) renderLowStock() string {
	header := "  Low Stock\n"
	if len(m.summary.LowStockParts) == 0 {
		return header + subtitleStyle.Render("  All parts above the threshold") + "\n"
	}

	s := header
	limit := 5
	if len(m.summary.LowStockParts) < limit {
		limit = len(m.summary.LowStockParts)
	}
	for i := 0; i < limit; i++ {
		p := m.summary.LowStockParts[i]
		s += fmt.Sprintf("  %s %-30s %s\n",
			lowStockStyle.Render("!"),
			truncateStr(p.Name, 30),
			lowStockStyle.Render(fmt.Sprintf("%d left", p.StockQty)),
		)
	}
	return s
}

func (m *DashboardModel) renderRecent() string {
	header := "  Recent Maintenances\n"
	if len(m.summary.Recent) == 0 {
		return header + subtitleStyle.Render("  No maintenances recorded yet") + "\n"
	}

	s := header
	for _, record := range m.summary.Recent {
		vehicle := fmt.Sprintf("Vehicle #%d", record.VehicleID)
		if v, ok := m.vehicleCache[record.VehicleID]; ok {
			vehicle = v.Label()
		}
		s += fmt.Sprintf("  %-11s %-30s %10s  %s\n",
			record.Date.Format("Jan 2 2006"),
			truncateStr(vehicle, 30),
			formatMoney(record.TotalCost),
			formatKm(record.RecordedOdometerKm),
		)
	}
	return s
}
