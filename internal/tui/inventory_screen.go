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

type inventoryMode int

const (
	inventoryModeList inventoryMode = iota
	inventoryModeNew
	inventoryModeEdit
	inventoryModeConfirmDelete
)

// part form field indices
const (
	partFieldCode = iota
	partFieldName
	partFieldPrice
	partFieldStock
	partFieldCount
)

// InventoryModel manages the parts catalog
type InventoryModel struct {
	app       *app.App
	parts     []*domain.Part
	cursor    int
	loading   bool
	err       error
	statusMsg string

	mode       inventoryMode
	fields     []textinput.Model
	fieldFocus int
	editingID  int64
}

type partsDataMsg struct {
	parts []*domain.Part
	err   error
}

type partSavedMsg struct {
	name string
	err  error
}

type partDeletedMsg struct {
	err error
}

// NewInventoryModel creates the inventory screen
func NewInventoryModel(a *app.App) tea.Model {
	return &InventoryModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *InventoryModel) IsCapturingInput() bool {
	return m.mode == inventoryModeNew || m.mode == inventoryModeEdit
}

func (m *InventoryModel) Init() tea.Cmd {
	return m.loadParts()
}

func (m *InventoryModel) loadParts() tea.Cmd {
	return func() tea.Msg {
		parts, err := m.app.Gateway.ListParts(context.Background())
		return partsDataMsg{parts: parts, err: displayErr(err)}
	}
}

func (m *InventoryModel) initForm(editing *domain.Part) {
	m.fields = make([]textinput.Model, partFieldCount)

	m.fields[partFieldCode] = textinput.New()
	m.fields[partFieldCode].Placeholder = "FLT-001"
	m.fields[partFieldCode].CharLimit = 30
	m.fields[partFieldCode].Width = 15

	m.fields[partFieldName] = textinput.New()
	m.fields[partFieldName].Placeholder = "Part name"
	m.fields[partFieldName].CharLimit = 100
	m.fields[partFieldName].Width = 40

	m.fields[partFieldPrice] = textinput.New()
	m.fields[partFieldPrice].Placeholder = "0.00"
	m.fields[partFieldPrice].CharLimit = 10
	m.fields[partFieldPrice].Width = 12

	m.fields[partFieldStock] = textinput.New()
	m.fields[partFieldStock].Placeholder = "0"
	m.fields[partFieldStock].CharLimit = 6
	m.fields[partFieldStock].Width = 8

	if editing != nil {
		m.fields[partFieldCode].SetValue(editing.Code)
		m.fields[partFieldName].SetValue(editing.Name)
		m.fields[partFieldPrice].SetValue(fmt.Sprintf("%.2f", editing.UnitPrice))
		m.fields[partFieldStock].SetValue(strconv.Itoa(editing.StockQty))
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.fieldFocus = partFieldCode
	m.fields[partFieldCode].Focus()
}

func (m *InventoryModel) savePart() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		code := m.fields[partFieldCode].Value()
		name := m.fields[partFieldName].Value()
		priceStr := m.fields[partFieldPrice].Value()
		stockStr := m.fields[partFieldStock].Value()

		if name == "" {
			return partSavedMsg{err: fmt.Errorf("name is required")}
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			return partSavedMsg{err: fmt.Errorf("invalid price: %s", priceStr)}
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			return partSavedMsg{err: fmt.Errorf("invalid stock quantity: %s", stockStr)}
		}

		part := &domain.Part{Code: code, Name: name, UnitPrice: price, StockQty: stock}

		if m.editingID > 0 {
			part.ID = m.editingID
			if _, err := m.app.Gateway.UpdatePart(ctx, part); err != nil {
				return partSavedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
			}
			return partSavedMsg{name: name}
		}

		if _, err := m.app.Gateway.CreatePart(ctx, part); err != nil {
			return partSavedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
		}
		return partSavedMsg{name: name}
	}
}

func (m *InventoryModel) deletePart() tea.Cmd {
	id := m.parts[m.cursor].ID
	return func() tea.Msg {
		if err := m.app.Gateway.DeletePart(context.Background(), id); err != nil {
			return partDeletedMsg{err: fmt.Errorf("%s", gateway.Message(err))}
		}
		return partDeletedMsg{}
	}
}

func (m *InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == inventoryModeNew || m.mode == inventoryModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadParts()

	case partsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.parts = msg.parts
			if m.cursor >= len(m.parts) {
				m.cursor = max(0, len(m.parts)-1)
			}
		}
		return m, nil

	case partSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = inventoryModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadParts()

	case partDeletedMsg:
		m.mode = inventoryModeList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "Part deleted"
		m.loading = true
		return m, m.loadParts()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if m.mode == inventoryModeConfirmDelete {
			switch msg.String() {
			case "y":
				return m, m.deletePart()
			default:
				m.mode = inventoryModeList
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
			if m.cursor < len(m.parts)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = inventoryModeNew
			m.initForm(nil)
			return m, m.fields[partFieldCode].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.parts) > 0 && m.cursor < len(m.parts) {
				m.mode = inventoryModeEdit
				m.initForm(m.parts[m.cursor])
				return m, m.fields[partFieldCode].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.parts) > 0 && m.cursor < len(m.parts) {
				m.mode = inventoryModeConfirmDelete
			}
		}
	}

	return m, nil
}

func (m *InventoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case partSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = inventoryModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadParts()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = inventoryModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % partFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + partFieldCount) % partFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == partFieldCount-1 {
				return m, m.savePart()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.savePart()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *InventoryModel) View() string {
	if m.mode == inventoryModeNew || m.mode == inventoryModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *InventoryModel) viewForm() string {
	var s string
	if m.mode == inventoryModeNew {
		s += titleStyle.Render("New Part") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Part") + "\n\n"
	}

	labels := []string{"Code:", "Name:", "Unit price:", "Stock:"}
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

func (m *InventoryModel) viewList() string {
	if m.loading {
		return "Loading inventory..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Inventory") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.mode == inventoryModeConfirmDelete {
		s += lipgloss.NewStyle().Foreground(warningColor).
			Render(fmt.Sprintf("  Delete %s? (y/n)", m.parts[m.cursor].Name)) + "\n\n"
	}

	if len(m.parts) == 0 {
		s += subtitleStyle.Render("  No parts yet. Press 'n' to add one.") + "\n"
		return s
	}

	threshold := m.app.Config.Shop.LowStockThreshold
	for i, part := range m.parts {
		selected := i == m.cursor
		indicator := "  "
		if selected {
			indicator = "> "
		}

		stock := fmt.Sprintf("%d", part.StockQty)
		if part.StockQty <= threshold {
			stock = lowStockStyle.Render(stock + " !")
		}

		rowStyle := lipgloss.NewStyle()
		if selected {
			rowStyle = rowStyle.Bold(true).Foreground(primaryColor)
		}
		s += rowStyle.Render(fmt.Sprintf("%s%-10s %-35s %10s",
			indicator, part.Code, truncateStr(part.Name, 35), formatMoney(part.UnitPrice)))
		s += "   " + stock + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  d: delete")

	return s
}
