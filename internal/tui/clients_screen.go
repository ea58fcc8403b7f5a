package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvalarezo/taller/internal/app"
	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
)

// form field indices
const (
	fieldName = iota
	fieldNationalID
	fieldPhone
	fieldCount
)

// ClientsModel displays a navigable list of clients with create/edit forms
type ClientsModel struct {
	app          *app.App
	clients      []*domain.Client
	vehicleCount map[int64]int
	cursor       int
	loading      bool
	err          error
	statusMsg    string

	// Form state
	mode          clientMode
	fields        []textinput.Model
	fieldFocus    int
	editingID     int64 // 0 for new client
	autoNewClient bool  // open new client form after data loads
}

type clientsDataMsg struct {
	clients      []*domain.Client
	vehicleCount map[int64]int
	err          error
}

type clientSavedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:          a,
		vehicleCount: make(map[int64]int),
		loading:      true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeNew || m.mode == clientModeEdit
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.Gateway.ListClients(ctx)
		if err != nil {
			return clientsDataMsg{err: displayErr(err)}
		}

		counts := make(map[int64]int)
		vehicles, err := m.app.Gateway.ListVehicles(ctx)
		if err == nil {
			for _, v := range vehicles {
				counts[v.ClientID]++
			}
		}

		return clientsDataMsg{
			clients:      clients,
			vehicleCount: counts,
		}
	}
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, fieldCount)

	m.fields[fieldName] = textinput.New()
	m.fields[fieldName].Placeholder = "Full name"
	m.fields[fieldName].CharLimit = 100
	m.fields[fieldName].Width = 40

	m.fields[fieldNationalID] = textinput.New()
	m.fields[fieldNationalID].Placeholder = "National id"
	m.fields[fieldNationalID].CharLimit = 20
	m.fields[fieldNationalID].Width = 20

	m.fields[fieldPhone] = textinput.New()
	m.fields[fieldPhone].Placeholder = "Phone (optional)"
	m.fields[fieldPhone].CharLimit = 20
	m.fields[fieldPhone].Width = 20

	// Pre-fill for editing
	if editing != nil {
		m.fields[fieldName].SetValue(editing.Name)
		m.fields[fieldNationalID].SetValue(editing.NationalID)
		m.fields[fieldPhone].SetValue(editing.Phone)
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.fieldFocus = fieldName
	m.fields[fieldName].Focus()
}

func (m *ClientsModel) saveClient() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		name := m.fields[fieldName].Value()
		nationalID := m.fields[fieldNationalID].Value()
		phone := m.fields[fieldPhone].Value()

		client := domain.NewClient(name, nationalID, phone)
		if err := client.Validate(); err != nil {
			return clientSavedMsg{err: err}
		}

		if m.editingID > 0 {
			client.ID = m.editingID
			if _, err := m.app.Gateway.UpdateClient(ctx, client); err != nil {
				return clientSavedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
			}
			return clientSavedMsg{name: name}
		}

		if _, err := m.app.Gateway.CreateClient(ctx, client); err != nil {
			return clientSavedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
		}
		return clientSavedMsg{name: name}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		m.mode = clientModeNew
		m.initForm(nil)
		return m, m.fields[fieldName].Focus()
	}

	// Handle form mode
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.vehicleCount = msg.vehicleCount
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		// Auto-open new client form on first run
		if m.autoNewClient {
			m.autoNewClient = false
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[fieldName].Focus()
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[fieldName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				m.mode = clientModeEdit
				m.initForm(m.clients[m.cursor])
				return m, m.fields[fieldName].Focus()
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field or explicit submit, save
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			// Otherwise advance to next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		if len(m.clients) == 0 {
			s += titleStyle.Render("Welcome!") + "\n"
			s += subtitleStyle.Render("  Let's register your first client to get started.") + "\n\n"
		} else {
			s += titleStyle.Render("New Client") + "\n\n"
		}
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	labels := []string{"Name:", "National id:", "Phone:"}
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

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Clients") + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	vehicles := m.vehicleCount[client.ID]
	line1 := fmt.Sprintf("%s%s", indicator, client.Name)
	line2 := fmt.Sprintf("    ID: %s  |  Vehicles: %d", client.NationalID, vehicles)
	if client.Phone != "" {
		line2 += fmt.Sprintf("  |  %s", client.Phone)
	}

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
}
