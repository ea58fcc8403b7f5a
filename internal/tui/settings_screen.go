package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvalarezo/taller/internal/app"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldShopName = iota
	settingsFieldBaseURL
	settingsFieldTimeout
	settingsFieldLowStock
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	// Shop name
	m.fields[settingsFieldShopName] = textinput.New()
	m.fields[settingsFieldShopName].Placeholder = "Taller"
	m.fields[settingsFieldShopName].CharLimit = 60
	m.fields[settingsFieldShopName].Width = 40
	m.fields[settingsFieldShopName].SetValue(cfg.Shop.Name)

	// API base URL
	m.fields[settingsFieldBaseURL] = textinput.New()
	m.fields[settingsFieldBaseURL].Placeholder = "http://localhost:8000/api/v1"
	m.fields[settingsFieldBaseURL].CharLimit = 200
	m.fields[settingsFieldBaseURL].Width = 60
	m.fields[settingsFieldBaseURL].SetValue(cfg.API.BaseURL)

	// Request timeout
	m.fields[settingsFieldTimeout] = textinput.New()
	m.fields[settingsFieldTimeout].Placeholder = "30"
	m.fields[settingsFieldTimeout].CharLimit = 4
	m.fields[settingsFieldTimeout].Width = 8
	m.fields[settingsFieldTimeout].SetValue(strconv.Itoa(cfg.API.TimeoutSeconds))

	// Low stock threshold
	m.fields[settingsFieldLowStock] = textinput.New()
	m.fields[settingsFieldLowStock].Placeholder = "5"
	m.fields[settingsFieldLowStock].CharLimit = 4
	m.fields[settingsFieldLowStock].Width = 8
	m.fields[settingsFieldLowStock].SetValue(strconv.Itoa(cfg.Shop.LowStockThreshold))

	m.fieldFocus = settingsFieldShopName
	m.fields[settingsFieldShopName].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		shopName := m.fields[settingsFieldShopName].Value()
		baseURL := m.fields[settingsFieldBaseURL].Value()
		timeoutStr := m.fields[settingsFieldTimeout].Value()
		lowStockStr := m.fields[settingsFieldLowStock].Value()

		if shopName == "" {
			return settingsSavedMsg{err: fmt.Errorf("shop name is required")}
		}
		if baseURL == "" {
			return settingsSavedMsg{err: fmt.Errorf("API base URL is required")}
		}

		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil || timeout <= 0 {
			return settingsSavedMsg{err: fmt.Errorf("timeout must be a positive number of seconds")}
		}

		lowStock, err := strconv.Atoi(lowStockStr)
		if err != nil || lowStock < 0 {
			return settingsSavedMsg{err: fmt.Errorf("low stock threshold must be a non-negative number")}
		}

		m.app.Config.Shop.Name = shopName
		m.app.Config.API.BaseURL = baseURL
		m.app.Config.API.TimeoutSeconds = timeout
		m.app.Config.Shop.LowStockThreshold = lowStock

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved. Restart to apply connection changes."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += subtitleStyle.Render("  Shop") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Name:"), valueStyle.Render(cfg.Shop.Name))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Low Stock Threshold:"), valueStyle.Render(strconv.Itoa(cfg.Shop.LowStockThreshold)))

	s += "\n" + subtitleStyle.Render("  Backend") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("API Base URL:"), valueStyle.Render(cfg.API.BaseURL))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Request Timeout:"), valueStyle.Render(fmt.Sprintf("%ds", cfg.API.TimeoutSeconds)))

	tokenState := "not set"
	if _, err := m.app.Tokens.GetToken(); err == nil {
		tokenState = "configured"
	}
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("API Token:"), valueStyle.Render(tokenState))

	s += "\n" + helpStyle.Render("  enter: edit settings  (set the token with: taller token set)")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Shop Name:", "API Base URL:", "Timeout (s):", "Low Stock Threshold:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
