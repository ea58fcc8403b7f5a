package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvalarezo/taller/internal/app"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenMaintenance
	ScreenClients
	ScreenInventory
	ScreenLabors
	ScreenHistory
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenMaintenance:
		return "New Maintenance"
	case ScreenClients:
		return "Clients"
	case ScreenInventory:
		return "Inventory"
	case ScreenLabors:
		return "Labors"
	case ScreenHistory:
		return "History"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	dashboard   tea.Model
	maintenance tea.Model
	clients     tea.Model
	inventory   tea.Model
	labors      tea.Model
	history     tea.Model
	settings    tea.Model

	// First-run state
	checkedFirstRun bool

	// Error state
	err     error
	quitMsg string // shown when quit is blocked
}

// New creates a new root model
func New(a *app.App) Model {
	dashboard := NewDashboardModel(a)
	return Model{
		app:           a,
		currentScreen: ScreenDashboard,
		dashboard:     dashboard,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.checkFirstRun(),
	}
	if m.dashboard != nil {
		cmds = append(cmds, m.dashboard.Init())
	}
	return tea.Batch(cmds...)
}

// checkFirstRun checks if any clients exist in the backend
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		clients, err := m.app.Gateway.ListClients(context.Background())
		if err != nil {
			return firstRunCheckMsg{hasClients: true} // assume yes on error
		}
		return firstRunCheckMsg{hasClients: len(clients) > 0}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenDashboard:
		if m.dashboard == nil {
			m.dashboard = NewDashboardModel(m.app)
			return m.dashboard.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenMaintenance:
		if m.maintenance == nil {
			m.maintenance = NewMaintenanceModel(m.app)
			return m.maintenance.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenClients:
		if m.clients == nil {
			m.clients = NewClientsModel(m.app)
			return m.clients.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenInventory:
		if m.inventory == nil {
			m.inventory = NewInventoryModel(m.app)
			return m.inventory.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenLabors:
		if m.labors == nil {
			m.labors = NewLaborsModel(m.app)
			return m.labors.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenHistory:
		if m.history == nil {
			m.history = NewHistoryModel(m.app)
			return m.history.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (M, C, I, L, H, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// DraftHolder is implemented by screens holding unsubmitted work, so quitting
// cannot silently lose a half-composed maintenance.
type DraftHolder interface {
	HasDraft() bool
}

// activeScreen returns the model for the current screen
func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenDashboard:
		return m.dashboard
	case ScreenMaintenance:
		return m.maintenance
	case ScreenClients:
		return m.clients
	case ScreenInventory:
		return m.inventory
	case ScreenLabors:
		return m.labors
	case ScreenHistory:
		return m.history
	case ScreenSettings:
		return m.settings
	}
	return nil
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// draftInProgress returns true if any screen holds unsubmitted work
func (m *Model) draftInProgress() bool {
	if dh, ok := m.maintenance.(DraftHolder); ok {
		return dh.HasDraft()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear quit warning on any keypress
		m.quitMsg = ""

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			// Global key handlers (screen navigation)
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				if m.draftInProgress() {
					m.quitMsg = "A maintenance draft is in progress. Submit or discard it before quitting."
					return m, nil
				}
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Maintenance):
				m.currentScreen = ScreenMaintenance
				cmd := m.initScreen(ScreenMaintenance)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Clients):
				m.currentScreen = ScreenClients
				cmd := m.initScreen(ScreenClients)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Inventory):
				m.currentScreen = ScreenInventory
				cmd := m.initScreen(ScreenInventory)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Labors):
				m.currentScreen = ScreenLabors
				cmd := m.initScreen(ScreenLabors)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.History):
				m.currentScreen = ScreenHistory
				cmd := m.initScreen(ScreenHistory)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Settings):
				m.currentScreen = ScreenSettings
				cmd := m.initScreen(ScreenSettings)
				return m, cmd
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasClients {
			m.checkedFirstRun = true
			m.currentScreen = ScreenClients
			initCmd := m.initScreen(ScreenClients)
			openFormCmd := func() tea.Msg { return OpenNewClientFormMsg{} }
			return m, tea.Batch(initCmd, openFormCmd)
		}
		m.checkedFirstRun = true
		return m, nil

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		cmd := m.initScreen(msg.Screen)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenDashboard:
		if m.dashboard != nil {
			m.dashboard, cmd = m.dashboard.Update(msg)
		}
	case ScreenMaintenance:
		if m.maintenance != nil {
			m.maintenance, cmd = m.maintenance.Update(msg)
		}
	case ScreenClients:
		if m.clients != nil {
			m.clients, cmd = m.clients.Update(msg)
		}
	case ScreenInventory:
		if m.inventory != nil {
			m.inventory, cmd = m.inventory.Update(msg)
		}
	case ScreenLabors:
		if m.labors != nil {
			m.labors, cmd = m.labors.Update(msg)
		}
	case ScreenHistory:
		if m.history != nil {
			m.history, cmd = m.history.Update(msg)
		}
	case ScreenSettings:
		if m.settings != nil {
			m.settings, cmd = m.settings.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("%s - %s", m.app.Config.Shop.Name, m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[M]aintenance  [C]lients  [I]nventory  [L]abors  [H]istory  [,] Settings  [Q]uit")

	// Current screen content
	content := "Loading..."
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	}

	// Error/warning display
	errorDisplay := ""
	if m.quitMsg != "" {
		errorDisplay = lipgloss.NewStyle().
			Foreground(warningColor).
			Render(fmt.Sprintf("\n%s", m.quitMsg))
	} else if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
