package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvalarezo/taller/internal/app"
	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

type historyMode int

const (
	historyModeList historyMode = iota
	historyModeDetail
)

// HistoryModel lists recorded maintenances with a drill-down detail view
type HistoryModel struct {
	app          *app.App
	records      []*domain.Maintenance
	vehicleCache map[int64]*domain.Vehicle
	cursor       int
	loading      bool
	err          error

	mode   historyMode
	detail *domain.Maintenance
}

type historyDataMsg struct {
	records      []*domain.Maintenance
	vehicleCache map[int64]*domain.Vehicle
	err          error
}

type historyDetailMsg struct {
	record *domain.Maintenance
	err    error
}

// NewHistoryModel creates the history screen
func NewHistoryModel(a *app.App) tea.Model {
	return &HistoryModel{
		app:          a,
		vehicleCache: make(map[int64]*domain.Vehicle),
		loading:      true,
	}
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.loadHistory()
}

func (m *HistoryModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		records, err := m.app.Gateway.ListMaintenances(ctx)
		if err != nil {
			return historyDataMsg{err: fmt.Errorf("%s", gateway.Message(err))}
		}

		cache := make(map[int64]*domain.Vehicle)
		vehicles, err := m.app.Gateway.ListVehicles(ctx)
		if err == nil {
			for _, v := range vehicles {
				cache[v.ID] = v
			}
		}

		return historyDataMsg{records: records, vehicleCache: cache}
	}
}

func (m *HistoryModel) loadDetail() tea.Cmd {
	id := m.records[m.cursor].ID
	return func() tea.Msg {
		record, err := m.app.Gateway.GetMaintenance(context.Background(), id)
		if err != nil {
			return historyDetailMsg{err: fmt.Errorf("%s", gateway.Message(err))}
		}
		return historyDetailMsg{record: record}
	}
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		m.mode = historyModeList
		return m, m.loadHistory()

	case historyDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.records = msg.records
			m.vehicleCache = msg.vehicleCache
			if m.cursor >= len(m.records) {
				m.cursor = max(0, len(m.records)-1)
			}
		}
		return m, nil

	case historyDetailMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.detail = msg.record
			m.mode = historyModeDetail
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.err = nil

		if m.mode == historyModeDetail {
			if msg.String() == "esc" || msg.String() == "backspace" {
				m.mode = historyModeList
				m.detail = nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.records) > 0 && m.cursor < len(m.records) {
				m.loading = true
				return m, m.loadDetail()
			}
		}
	}

	return m, nil
}

func (m *HistoryModel) View() string {
	if m.loading {
		return "Loading history..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.mode == historyModeDetail && m.detail != nil {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m *HistoryModel) viewList() string {
	var s string
	s += titleStyle.Render("Maintenance History") + "\n\n"

	if len(m.records) == 0 {
		s += subtitleStyle.Render("  No maintenances recorded yet. Press 'm' to start one.") + "\n"
		return s
	}

	for i, record := range m.records {
		selected := i == m.cursor
		indicator := "  "
		if selected {
			indicator = "> "
		}

		vehicle := fmt.Sprintf("Vehicle #%d", record.VehicleID)
		if v, ok := m.vehicleCache[record.VehicleID]; ok {
			vehicle = v.Label()
		}

		line := fmt.Sprintf("%s%-11s %-32s %10s  %s",
			indicator,
			record.Date.Format("Jan 2 2006"),
			truncateStr(vehicle, 32),
			formatMoney(record.TotalCost),
			formatKm(record.RecordedOdometerKm),
		)
		if selected {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: details")

	return s
}

func (m *HistoryModel) viewDetail() string {
	record := m.detail

	var s string
	s += titleStyle.Render(fmt.Sprintf("Maintenance #%d", record.ID)) + "\n\n"

	vehicle := fmt.Sprintf("Vehicle #%d", record.VehicleID)
	if record.Vehicle != nil {
		vehicle = record.Vehicle.Label()
	} else if v, ok := m.vehicleCache[record.VehicleID]; ok {
		vehicle = v.Label()
	}

	s += fmt.Sprintf("  Vehicle:  %s\n", vehicle)
	s += fmt.Sprintf("  Date:     %s\n", record.Date.Format("January 2, 2006"))
	s += fmt.Sprintf("  Odometer: %s (was %s)\n",
		formatKm(record.RecordedOdometerKm), formatKm(record.PriorOdometerKm))
	if record.Notes != "" {
		s += fmt.Sprintf("  Notes:    %s\n", record.Notes)
	}

	if len(record.Parts) > 0 {
		s += "\n  Parts\n"
		for _, p := range record.Parts {
			s += fmt.Sprintf("    %-28s x%-3d %8s = %s\n",
				truncateStr(p.Name, 28), p.Quantity, formatMoney(p.UnitPriceAtTime),
				formatMoney(float64(p.Quantity)*p.UnitPriceAtTime))
		}
	}
	if len(record.Labors) > 0 {
		s += "\n  Labor\n"
		for _, l := range record.Labors {
			s += fmt.Sprintf("    %-32s %8s\n", truncateStr(l.Name, 32), formatMoney(l.CostAtTime))
		}
	}

	s += "\n" + fmt.Sprintf("  Parts %s + Labor %s = %s\n",
		formatMoney(record.PartsSubtotal()),
		formatMoney(record.LaborSubtotal()),
		totalStyle.Render(formatMoney(record.TotalCost)))

	s += "\n" + helpStyle.Render("  esc: back to list")

	return s
}
