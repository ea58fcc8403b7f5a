package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvalarezo/taller/internal/app"
	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

type laborMode int

const (
	laborModeList laborMode = iota
	laborModeNew
	laborModeEdit
	laborModeConfirmDelete
)

// labor form field indices
const (
	laborFieldName = iota
	laborFieldDescription
	laborFieldPrice
	laborFieldCount
)

// LaborsModel manages the labor catalog
type LaborsModel struct {
	app       *app.App
	labors    []*domain.Labor
	cursor    int
	loading   bool
	err       error
	statusMsg string

	mode       laborMode
	fields     []textinput.Model
	fieldFocus int
	editingID  int64
}

type laborsDataMsg struct {
	labors []*domain.Labor
	err    error
}

type laborSavedMsg struct {
	name string
	err  error
}

type laborDeletedMsg struct {
	err error
}

// NewLaborsModel creates the labor catalog screen
func NewLaborsModel(a *app.App) tea.Model {
	return &LaborsModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *LaborsModel) IsCapturingInput() bool {
	return m.mode == laborModeNew || m.mode == laborModeEdit
}

func (m *LaborsModel) Init() tea.Cmd {
	return m.loadLabors()
}

func (m *LaborsModel) loadLabors() tea.Cmd {
	return func() tea.Msg {
		labors, err := m.app.Gateway.ListLabors(context.Background())
		return laborsDataMsg{labors: labors, err: displayErr(err)}
	}
}

func (m *LaborsModel) initForm(editing *domain.Labor) {
	m.fields = make([]textinput.Model, laborFieldCount)

	m.fields[laborFieldName] = textinput.New()
	m.fields[laborFieldName].Placeholder = "Work name"
	m.fields[laborFieldName].CharLimit = 100
	m.fields[laborFieldName].Width = 40

	m.fields[laborFieldDescription] = textinput.New()
	m.fields[laborFieldDescription].Placeholder = "Description (optional)"
	m.fields[laborFieldDescription].CharLimit = 200
	m.fields[laborFieldDescription].Width = 50

	m.fields[laborFieldPrice] = textinput.New()
	m.fields[laborFieldPrice].Placeholder = "0.00"
	m.fields[laborFieldPrice].CharLimit = 10
	m.fields[laborFieldPrice].Width = 12

	if editing != nil {
		m.fields[laborFieldName].SetValue(editing.Name)
		m.fields[laborFieldDescription].SetValue(editing.Description)
		m.fields[laborFieldPrice].SetValue(fmt.Sprintf("%.2f", editing.StandardPrice))
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.fieldFocus = laborFieldName
	m.fields[laborFieldName].Focus()
}

func (m *LaborsModel) saveLabor() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		name := m.fields[laborFieldName].Value()
		description := m.fields[laborFieldDescription].Value()
		priceStr := m.fields[laborFieldPrice].Value()

		if name == "" {
			return laborSavedMsg{err: fmt.Errorf("name is required")}
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			return laborSavedMsg{err: fmt.Errorf("invalid price: %s", priceStr)}
		}

		labor := domain.NewLabor(name, description, price)

		if m.editingID > 0 {
			labor.ID = m.editingID
			if _, err := m.app.Gateway.UpdateLabor(ctx, labor); err != nil {
				return laborSavedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
			}
			return laborSavedMsg{name: name}
		}

		if _, err := m.app.Gateway.CreateLabor(ctx, labor); err != nil {
			return laborSavedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
		}
		return laborSavedMsg{name: name}
	}
}

func (m *LaborsModel) deleteLabor() tea.Cmd {
	id := m.labors[m.cursor].ID
	return func() tea.Msg {
		if err := m.app.Gateway.DeleteLabor(context.Background(), id); err != nil {
			return laborDeletedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
		}
		return laborDeletedMsg{}
	}
}

func (m *LaborsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == laborModeNew || m.mode == laborModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadLabors()

	case laborsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.labors = msg.labors
			if m.cursor >= len(m.labors) {
				m.cursor = max(0, len(m.labors)-1)
			}
		}
		return m, nil

	case laborSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = laborModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadLabors()

	case laborDeletedMsg:
		m.mode = laborModeList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "Labor deleted"
		m.loading = true
		return m, m.loadLabors()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if m.mode == laborModeConfirmDelete {
			switch msg.String() {
			case "y":
				return m, m.deleteLabor()
			default:
				m.mode = laborModeList
			}
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
			if m.cursor < len(m.labors)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = laborModeNew
			m.initForm(nil)
			return m, m.fields[laborFieldName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.labors) > 0 && m.cursor < len(m.labors) {
				m.mode = laborModeEdit
				m.initForm(m.labors[m.cursor])
				return m, m.fields[laborFieldName].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.labors) > 0 && m.cursor < len(m.labors) {
				m.mode = laborModeConfirmDelete
			}
		}
	}

	return m, nil
}

func (m *LaborsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case laborSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = laborModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadLabors()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = laborModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % laborFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + laborFieldCount) % laborFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == laborFieldCount-1 {
				return m, m.saveLabor()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveLabor()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *LaborsModel) View() string {
	if m.mode == laborModeNew || m.mode == laborModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *LaborsModel) viewForm() string {
	var s string
	if m.mode == laborModeNew {
		s += titleStyle.Render("New Labor") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Labor") + "\n\n"
	}

	labels := []string{"Name:", "Description:", "Standard price:"}
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

func (m *LaborsModel) viewList() string {
	if m.loading {
		return "Loading labors..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Labor Catalog") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.mode == laborModeConfirmDelete {
		s += lipgloss.NewStyle().Foreground(warningColor).
			Render(fmt.Sprintf("  Delete %s? (y/n)", m.labors[m.cursor].Name)) + "\n\n"
	}

	if len(m.labors) == 0 {
		s += subtitleStyle.Render("  No labors yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, labor := range m.labors {
		selected := i == m.cursor
		indicator := "  "
		if selected {
			indicator = "> "
		}

		rowStyle := lipgloss.NewStyle()
		if selected {
			rowStyle = rowStyle.Bold(true).Foreground(primaryColor)
		}
		s += rowStyle.Render(fmt.Sprintf("%s%-40s %10s",
			indicator, truncateStr(labor.Name, 40), formatMoney(labor.StandardPrice))) + "\n"
		if labor.Description != "" {
			s += subtitleStyle.Render("    "+truncateStr(labor.Description, 60)) + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  d: delete")

	return s
}
