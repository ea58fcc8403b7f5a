package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvalarezo/taller/internal/app"
	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/wizard"
)

// composer focus areas within the service stage
type serviceFocus int

const (
	focusParts serviceFocus = iota
	focusLabors
	focusDetails
)

// sub-modes that open a form on top of the current stage
type composerForm int

const (
	formNone composerForm = iota
	formNewClient
	formNewVehicle
	formAdHocLabor
	formEditLine
)

// new client form fields
const (
	wzClientName = iota
	wzClientNationalID
	wzClientPhone
	wzClientFieldCount
)

// new vehicle form fields
const (
	wzVehicleBrand = iota
	wzVehicleModel
	wzVehicleYear
	wzVehiclePlate
	wzVehicleOdometer
	wzVehicleFieldCount
)

// MaintenanceModel drives the four-stage composer: client, vehicle, service
// lines, summary. One wizard instance lives for the whole draft; finishing or
// discarding it starts a fresh one.
type MaintenanceModel struct {
	app *app.App
	wz  *wizard.Wizard

	// Client stage
	searchInput textinput.Model
	clientHits  []*domain.Client
	clientIdx   int

	// Vehicle stage
	vehicles   []*domain.Vehicle
	vehicleIdx int

	// Service stage
	focus      serviceFocus
	partInput  textinput.Model
	partHits   []*domain.Part
	partIdx    int
	laborInput textinput.Model
	laborHits  []*domain.Labor
	laborIdx   int
	lineIdx    int // cursor over draft lines in the details pane

	notesInput    textinput.Model
	odometerInput textinput.Model
	detailFocus   int // 0 = odometer, 1 = notes

	// Overlay form state
	form       composerForm
	fields     []textinput.Model
	fieldFocus int

	// Edit-line overlay targets
	editingPartID   int64
	editingLaborIdx int

	submitting bool
	submitted  *domain.Maintenance
	statusMsg  string
	err        error
}

type wzClientHitsMsg struct {
	hits []*domain.Client
	err  error
}

type wzVehiclesMsg struct {
	vehicles []*domain.Vehicle
	err      error
}

type wzCatalogsMsg struct {
	err error
}

type wzClientSavedMsg struct {
	client *domain.Client
	err    error
}

type wzVehicleSavedMsg struct {
	vehicle *domain.Vehicle
	err     error
}

type wzSubmittedMsg struct {
	record *domain.Maintenance
	err    error
}

// NewMaintenanceModel creates the composer screen
func NewMaintenanceModel(a *app.App) tea.Model {
	m := &MaintenanceModel{app: a}
	m.reset()
	return m
}

// reset starts a fresh wizard and clears all per-draft view state
func (m *MaintenanceModel) reset() {
	m.wz = wizard.New(m.app.Gateway)

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search by name or national id (min 3 chars)"
	m.searchInput.CharLimit = 60
	m.searchInput.Width = 45
	m.searchInput.Focus()

	m.partInput = textinput.New()
	m.partInput.Placeholder = "Search parts"
	m.partInput.CharLimit = 60
	m.partInput.Width = 30

	m.laborInput = textinput.New()
	m.laborInput.Placeholder = "Search labors"
	m.laborInput.CharLimit = 60
	m.laborInput.Width = 30

	m.notesInput = textinput.New()
	m.notesInput.Placeholder = "Service notes"
	m.notesInput.CharLimit = 500
	m.notesInput.Width = 50

	m.odometerInput = textinput.New()
	m.odometerInput.Placeholder = "Odometer (km)"
	m.odometerInput.CharLimit = 9
	m.odometerInput.Width = 12

	m.clientHits = nil
	m.clientIdx = 0
	m.vehicles = nil
	m.vehicleIdx = 0
	m.partHits = nil
	m.laborHits = nil
	m.focus = focusParts
	m.form = formNone
	m.submitting = false
	m.submitted = nil
	m.statusMsg = ""
	m.err = nil
}

// IsCapturingInput: the composer is all text entry, so global navigation is
// suppressed whenever a draft is open.
func (m *MaintenanceModel) IsCapturingInput() bool {
	return m.wz.Stage() <= wizard.StageSummaryConfirmation && m.submitted == nil
}

// HasDraft reports whether an unsubmitted draft holds any operator input
func (m *MaintenanceModel) HasDraft() bool {
	if m.wz.Stage() > wizard.StageSummaryConfirmation {
		return false
	}
	return m.wz.Draft().Client != nil
}

func (m *MaintenanceModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *MaintenanceModel) searchClients() tea.Cmd {
	term := m.searchInput.Value()
	return func() tea.Msg {
		hits, err := m.wz.Clients().Search(context.Background(), term)
		return wzClientHitsMsg{hits: hits, err: err}
	}
}

func (m *MaintenanceModel) loadVehicles() tea.Cmd {
	return func() tea.Msg {
		vehicles, err := m.wz.Vehicles().ListForClient(context.Background())
		return wzVehiclesMsg{vehicles: vehicles, err: err}
	}
}

func (m *MaintenanceModel) loadCatalogs() tea.Cmd {
	return func() tea.Msg {
		return wzCatalogsMsg{err: m.wz.Service().LoadCatalogs(context.Background())}
	}
}

func (m *MaintenanceModel) saveClient() tea.Cmd {
	name := m.fields[wzClientName].Value()
	nationalID := m.fields[wzClientNationalID].Value()
	phone := m.fields[wzClientPhone].Value()
	return func() tea.Msg {
		client, err := m.wz.Clients().Create(context.Background(), name, nationalID, phone)
		return wzClientSavedMsg{client: client, err: err}
	}
}

func (m *MaintenanceModel) saveVehicle() tea.Cmd {
	brand := m.fields[wzVehicleBrand].Value()
	model := m.fields[wzVehicleModel].Value()
	year := m.fields[wzVehicleYear].Value()
	plate := m.fields[wzVehiclePlate].Value()
	odometer := m.fields[wzVehicleOdometer].Value()
	return func() tea.Msg {
		vehicle, err := m.wz.Vehicles().Create(context.Background(), brand, model, year, plate, odometer)
		return wzVehicleSavedMsg{vehicle: vehicle, err: err}
	}
}

func (m *MaintenanceModel) submit() tea.Cmd {
	return func() tea.Msg {
		record, err := m.wz.Summary().Confirm(context.Background())
		return wzSubmittedMsg{record: record, err: err}
	}
}

func (m *MaintenanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		// A finished draft is cleared when the operator comes back
		if m.wz.Stage() > wizard.StageSummaryConfirmation {
			m.reset()
			return m, textinput.Blink
		}
		return m, nil

	case wzClientHitsMsg:
		m.err = displayErr(msg.err)
		if msg.err == nil {
			m.clientHits = msg.hits
			if m.clientIdx >= len(m.clientHits) {
				m.clientIdx = 0
			}
		}
		return m, nil

	case wzVehiclesMsg:
		m.err = displayErr(msg.err)
		if msg.err == nil {
			m.vehicles = msg.vehicles
			if m.vehicleIdx >= len(m.vehicles) {
				m.vehicleIdx = 0
			}
		}
		return m, nil

	case wzCatalogsMsg:
		m.err = displayErr(msg.err)
		return m, nil

	case wzClientSavedMsg:
		if msg.err != nil {
			m.err = displayErr(msg.err)
			return m, nil
		}
		m.form = formNone
		m.err = nil
		m.statusMsg = fmt.Sprintf("Registered client: %s", msg.client.Name)
		return m, m.advance()

	case wzVehicleSavedMsg:
		if msg.err != nil {
			m.err = displayErr(msg.err)
			return m, nil
		}
		m.form = formNone
		m.err = nil
		m.statusMsg = fmt.Sprintf("Registered vehicle: %s", msg.vehicle.Label())
		return m, m.advance()

	case wzSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = displayErr(msg.err)
			return m, nil
		}
		m.submitted = msg.record
		m.statusMsg = fmt.Sprintf("Maintenance #%d recorded", msg.record.ID)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		m.statusMsg = ""
		if m.form != formNone {
			return m.updateForm(msg)
		}
		if m.submitted != nil {
			return m.updateDone(msg)
		}
		switch m.wz.Stage() {
		case wizard.StageClientSelection:
			return m.updateClientStage(msg)
		case wizard.StageVehicleSelection:
			return m.updateVehicleStage(msg)
		case wizard.StageServiceComposition:
			return m.updateServiceStage(msg)
		case wizard.StageSummaryConfirmation:
			return m.updateSummaryStage(msg)
		default:
			return m.updateDone(msg)
		}
	}

	return m, nil
}

// advance runs the wizard's exit guard and prepares the next stage's view
func (m *MaintenanceModel) advance() tea.Cmd {
	if err := m.wz.Advance(); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	switch m.wz.Stage() {
	case wizard.StageVehicleSelection:
		return m.loadVehicles()
	case wizard.StageServiceComposition:
		m.syncDetailInputs()
		return m.loadCatalogs()
	}
	return nil
}

// syncDetailInputs pushes the draft's scalar values into the inputs when the
// service stage is (re-)entered.
func (m *MaintenanceModel) syncDetailInputs() {
	m.notesInput.SetValue(m.wz.Draft().Notes)
	m.odometerInput.SetValue(m.wz.Draft().EnteredOdometerKm)
}

func (m *MaintenanceModel) updateClientStage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.HasDraft() || m.searchInput.Value() != "" {
			m.wz.Abandon()
			m.reset()
			return m, textinput.Blink
		}
		// Nothing composed yet: hand the terminal back to the dashboard
		m.wz.Abandon()
		m.reset()
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDashboard} }

	case "up":
		if m.clientIdx > 0 {
			m.clientIdx--
		}
		return m, nil

	case "down":
		if m.clientIdx < len(m.clientHits)-1 {
			m.clientIdx++
		}
		return m, nil

	case "ctrl+n":
		m.openClientForm()
		return m, m.fields[wzClientName].Focus()

	case "enter":
		if len(m.clientHits) > 0 && m.clientIdx < len(m.clientHits) {
			m.wz.Clients().Select(m.clientHits[m.clientIdx])
			return m, m.advance()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, tea.Batch(cmd, m.searchClients())
}

func (m *MaintenanceModel) updateVehicleStage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wz.Retreat()
		m.err = nil
		return m, textinput.Blink

	case "up", "k":
		if m.vehicleIdx > 0 {
			m.vehicleIdx--
		}

	case "down", "j":
		if m.vehicleIdx < len(m.vehicles)-1 {
			m.vehicleIdx++
		}

	case "n", "ctrl+n":
		m.openVehicleForm()
		return m, m.fields[wzVehicleBrand].Focus()

	case "enter":
		if len(m.vehicles) > 0 && m.vehicleIdx < len(m.vehicles) {
			m.wz.Vehicles().Select(m.vehicles[m.vehicleIdx])
			return m, m.advance()
		}
	}
	return m, nil
}

func (m *MaintenanceModel) updateServiceStage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stashDetails()
		m.wz.Retreat()
		m.err = nil
		return m, nil

	case "tab":
		m.cycleFocus(1)
		return m, m.focusServiceInput()

	case "shift+tab":
		m.cycleFocus(-1)
		return m, m.focusServiceInput()

	case "ctrl+d":
		// Continue to the summary; the exit guard reports what is missing
		m.stashDetails()
		return m, m.advance()
	}

	switch m.focus {
	case focusParts:
		return m.updatePartsPane(msg)
	case focusLabors:
		return m.updateLaborsPane(msg)
	default:
		return m.updateDetailsPane(msg)
	}
}

// stashDetails copies the notes and odometer inputs into the draft so they
// survive stage changes.
func (m *MaintenanceModel) stashDetails() {
	m.wz.Service().SetNotes(m.notesInput.Value())
	m.wz.Service().SetEnteredOdometer(m.odometerInput.Value())
}

func (m *MaintenanceModel) cycleFocus(dir int) {
	m.partInput.Blur()
	m.laborInput.Blur()
	m.notesInput.Blur()
	m.odometerInput.Blur()
	m.focus = serviceFocus((int(m.focus) + dir + 3) % 3)
}

func (m *MaintenanceModel) focusServiceInput() tea.Cmd {
	switch m.focus {
	case focusParts:
		return m.partInput.Focus()
	case focusLabors:
		return m.laborInput.Focus()
	default:
		if m.detailFocus == 0 {
			return m.odometerInput.Focus()
		}
		return m.notesInput.Focus()
	}
}

func (m *MaintenanceModel) updatePartsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.partIdx > 0 {
			m.partIdx--
		}
		return m, nil
	case "down":
		if m.partIdx < len(m.partHits)-1 {
			m.partIdx++
		}
		return m, nil
	case "enter":
		if len(m.partHits) > 0 && m.partIdx < len(m.partHits) {
			m.wz.Service().AddPart(m.partHits[m.partIdx])
			m.statusMsg = fmt.Sprintf("Added %s", m.partHits[m.partIdx].Name)
		}
		return m, nil
	case "ctrl+e":
		// Edit quantity/price of the part under the line cursor
		lines := m.wz.Draft().PartLines
		if len(lines) > 0 {
			if m.lineIdx >= len(lines) {
				m.lineIdx = len(lines) - 1
			}
			m.openEditLineForm(lines[m.lineIdx])
			return m, m.fields[0].Focus()
		}
		return m, nil
	case "ctrl+x":
		lines := m.wz.Draft().PartLines
		if len(lines) > 0 {
			if m.lineIdx >= len(lines) {
				m.lineIdx = len(lines) - 1
			}
			m.wz.Service().RemovePart(lines[m.lineIdx].PartID)
			if m.lineIdx > 0 {
				m.lineIdx--
			}
		}
		return m, nil
	case "ctrl+j":
		if m.lineIdx < len(m.wz.Draft().PartLines)-1 {
			m.lineIdx++
		}
		return m, nil
	case "ctrl+k":
		if m.lineIdx > 0 {
			m.lineIdx--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.partInput, cmd = m.partInput.Update(msg)
	m.partHits = m.wz.Service().SearchParts(m.partInput.Value())
	if m.partIdx >= len(m.partHits) {
		m.partIdx = 0
	}
	return m, cmd
}

func (m *MaintenanceModel) updateLaborsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.laborIdx > 0 {
			m.laborIdx--
		}
		return m, nil
	case "down":
		if m.laborIdx < len(m.laborHits)-1 {
			m.laborIdx++
		}
		return m, nil
	case "enter":
		if len(m.laborHits) > 0 && m.laborIdx < len(m.laborHits) {
			m.wz.Service().AddLaborFromCatalog(m.laborHits[m.laborIdx])
			m.statusMsg = fmt.Sprintf("Added %s", m.laborHits[m.laborIdx].Name)
		}
		return m, nil
	case "ctrl+n":
		// Free-text labor line
		m.wz.Service().AddAdHocLabor()
		m.openAdHocForm(len(m.wz.Draft().LaborLines) - 1)
		return m, m.fields[0].Focus()
	case "ctrl+x":
		lines := m.wz.Draft().LaborLines
		if len(lines) > 0 {
			if m.lineIdx >= len(lines) {
				m.lineIdx = len(lines) - 1
			}
			m.wz.Service().RemoveLabor(m.lineIdx)
			if m.lineIdx > 0 {
				m.lineIdx--
			}
		}
		return m, nil
	case "ctrl+e":
		lines := m.wz.Draft().LaborLines
		if len(lines) > 0 {
			if m.lineIdx >= len(lines) {
				m.lineIdx = len(lines) - 1
			}
			m.openAdHocForm(m.lineIdx)
			return m, m.fields[0].Focus()
		}
		return m, nil
	case "ctrl+j":
		if m.lineIdx < len(m.wz.Draft().LaborLines)-1 {
			m.lineIdx++
		}
		return m, nil
	case "ctrl+k":
		if m.lineIdx > 0 {
			m.lineIdx--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.laborInput, cmd = m.laborInput.Update(msg)
	m.laborHits = m.wz.Service().SearchLabors(m.laborInput.Value())
	if m.laborIdx >= len(m.laborHits) {
		m.laborIdx = 0
	}
	return m, cmd
}

func (m *MaintenanceModel) updateDetailsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down":
		m.odometerInput.Blur()
		m.notesInput.Blur()
		m.detailFocus = (m.detailFocus + 1) % 2
		return m, m.focusServiceInput()
	}

	var cmd tea.Cmd
	if m.detailFocus == 0 {
		m.odometerInput, cmd = m.odometerInput.Update(msg)
	} else {
		m.notesInput, cmd = m.notesInput.Update(msg)
	}
	m.stashDetails()
	return m, cmd
}

func (m *MaintenanceModel) updateSummaryStage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wz.Retreat()
		m.err = nil
		m.syncDetailInputs()
		return m, m.focusServiceInput()
	case "enter":
		m.submitting = true
		return m, m.submit()
	}
	return m, nil
}

func (m *MaintenanceModel) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.reset()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *MaintenanceModel) openClientForm() {
	m.form = formNewClient
	m.fields = make([]textinput.Model, wzClientFieldCount)

	m.fields[wzClientName] = textinput.New()
	m.fields[wzClientName].Placeholder = "Full name"
	m.fields[wzClientName].CharLimit = 100
	m.fields[wzClientName].Width = 40
	m.fields[wzClientName].SetValue(strings.TrimSpace(m.searchInput.Value()))

	m.fields[wzClientNationalID] = textinput.New()
	m.fields[wzClientNationalID].Placeholder = "National id"
	m.fields[wzClientNationalID].CharLimit = 20
	m.fields[wzClientNationalID].Width = 20

	m.fields[wzClientPhone] = textinput.New()
	m.fields[wzClientPhone].Placeholder = "Phone (optional)"
	m.fields[wzClientPhone].CharLimit = 20
	m.fields[wzClientPhone].Width = 20

	m.fieldFocus = wzClientName
}

func (m *MaintenanceModel) openVehicleForm() {
	m.form = formNewVehicle
	m.fields = make([]textinput.Model, wzVehicleFieldCount)

	m.fields[wzVehicleBrand] = textinput.New()
	m.fields[wzVehicleBrand].Placeholder = "Brand"
	m.fields[wzVehicleBrand].CharLimit = 50
	m.fields[wzVehicleBrand].Width = 25

	m.fields[wzVehicleModel] = textinput.New()
	m.fields[wzVehicleModel].Placeholder = "Model"
	m.fields[wzVehicleModel].CharLimit = 50
	m.fields[wzVehicleModel].Width = 25

	m.fields[wzVehicleYear] = textinput.New()
	m.fields[wzVehicleYear].Placeholder = "2020"
	m.fields[wzVehicleYear].CharLimit = 4
	m.fields[wzVehicleYear].Width = 8

	m.fields[wzVehiclePlate] = textinput.New()
	m.fields[wzVehiclePlate].Placeholder = "ABC-1234"
	m.fields[wzVehiclePlate].CharLimit = 10
	m.fields[wzVehiclePlate].Width = 12

	m.fields[wzVehicleOdometer] = textinput.New()
	m.fields[wzVehicleOdometer].Placeholder = "0"
	m.fields[wzVehicleOdometer].CharLimit = 9
	m.fields[wzVehicleOdometer].Width = 12

	m.fieldFocus = wzVehicleBrand
}

// openAdHocForm edits the name and cost of the labor line at index i
func (m *MaintenanceModel) openAdHocForm(i int) {
	m.form = formAdHocLabor
	m.editingLaborIdx = i
	line := m.wz.Draft().LaborLines[i]

	m.fields = make([]textinput.Model, 2)
	m.fields[0] = textinput.New()
	m.fields[0].Placeholder = "Work description"
	m.fields[0].CharLimit = 100
	m.fields[0].Width = 40
	m.fields[0].SetValue(line.Name)

	m.fields[1] = textinput.New()
	m.fields[1].Placeholder = "0.00"
	m.fields[1].CharLimit = 10
	m.fields[1].Width = 12
	if line.CostAtTime > 0 {
		m.fields[1].SetValue(fmt.Sprintf("%.2f", line.CostAtTime))
	}

	m.fieldFocus = 0
}

// openEditLineForm edits the quantity and unit price of a part line
func (m *MaintenanceModel) openEditLineForm(line *wizard.PartLine) {
	m.form = formEditLine
	m.editingPartID = line.PartID

	m.fields = make([]textinput.Model, 2)
	m.fields[0] = textinput.New()
	m.fields[0].Placeholder = "1"
	m.fields[0].CharLimit = 4
	m.fields[0].Width = 6
	m.fields[0].SetValue(strconv.Itoa(line.Quantity))

	m.fields[1] = textinput.New()
	m.fields[1].Placeholder = "0.00"
	m.fields[1].CharLimit = 10
	m.fields[1].Width = 12
	m.fields[1].SetValue(fmt.Sprintf("%.2f", line.UnitPriceAtTime))

	m.fieldFocus = 0
}

func (m *MaintenanceModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.fields)

	switch msg.String() {
	case "esc":
		if m.form == formAdHocLabor {
			// Cancel a freshly added empty line
			line := m.wz.Draft().LaborLines[m.editingLaborIdx]
			if line.IsNewDefinition && strings.TrimSpace(line.Name) == "" {
				m.wz.Service().RemoveLabor(m.editingLaborIdx)
			}
		}
		m.form = formNone
		m.err = nil
		return m, m.focusAfterForm()

	case "tab", "down":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % count
		return m, m.fields[m.fieldFocus].Focus()

	case "shift+tab", "up":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus - 1 + count) % count
		return m, m.fields[m.fieldFocus].Focus()

	case "enter":
		if m.fieldFocus < count-1 {
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()
		}
		return m.submitForm()

	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *MaintenanceModel) submitForm() (tea.Model, tea.Cmd) {
	switch m.form {
	case formNewClient:
		return m, m.saveClient()

	case formNewVehicle:
		return m, m.saveVehicle()

	case formAdHocLabor:
		name := m.fields[0].Value()
		cost, err := strconv.ParseFloat(m.fields[1].Value(), 64)
		if err != nil && m.fields[1].Value() != "" {
			m.err = fmt.Errorf("invalid cost: %s", m.fields[1].Value())
			return m, nil
		}
		if err := m.wz.Service().SetLaborName(m.editingLaborIdx, name); err != nil {
			m.err = err
			return m, nil
		}
		if err := m.wz.Service().SetLaborCost(m.editingLaborIdx, cost); err != nil {
			m.err = err
			return m, nil
		}
		m.form = formNone
		m.err = nil
		return m, m.focusAfterForm()

	case formEditLine:
		qty, err := strconv.Atoi(m.fields[0].Value())
		if err != nil {
			m.err = fmt.Errorf("invalid quantity: %s", m.fields[0].Value())
			return m, nil
		}
		price, err := strconv.ParseFloat(m.fields[1].Value(), 64)
		if err != nil {
			m.err = fmt.Errorf("invalid price: %s", m.fields[1].Value())
			return m, nil
		}
		if err := m.wz.Service().SetQuantity(m.editingPartID, qty); err != nil {
			m.err = err
			return m, nil
		}
		if err := m.wz.Service().SetUnitPrice(m.editingPartID, price); err != nil {
			m.err = err
			return m, nil
		}
		m.form = formNone
		m.err = nil
		return m, m.focusAfterForm()
	}
	return m, nil
}

func (m *MaintenanceModel) focusAfterForm() tea.Cmd {
	switch m.wz.Stage() {
	case wizard.StageClientSelection:
		return m.searchInput.Focus()
	case wizard.StageServiceComposition:
		return m.focusServiceInput()
	}
	return nil
}

func (m *MaintenanceModel) View() string {
	s := m.renderStageBar() + "\n\n"

	if m.form != formNone {
		return s + m.renderForm()
	}
	if m.submitted != nil {
		return s + m.renderDone()
	}

	switch m.wz.Stage() {
	case wizard.StageClientSelection:
		s += m.renderClientStage()
	case wizard.StageVehicleSelection:
		s += m.renderVehicleStage()
	case wizard.StageServiceComposition:
		s += m.renderServiceStage()
	case wizard.StageSummaryConfirmation:
		s += m.renderSummaryStage()
	default:
		s += subtitleStyle.Render("  Draft discarded. Press enter to start a new one.")
	}

	if m.statusMsg != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(successColor).Render("  "+m.statusMsg)
	}
	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("  %v", m.err))
	}

	return s
}

// renderStageBar shows the four stages with the current one highlighted
func (m *MaintenanceModel) renderStageBar() string {
	stages := []wizard.Stage{
		wizard.StageClientSelection,
		wizard.StageVehicleSelection,
		wizard.StageServiceComposition,
		wizard.StageSummaryConfirmation,
	}
	var parts []string
	for i, st := range stages {
		label := fmt.Sprintf("%d. %s", i+1, st)
		switch {
		case st == m.wz.Stage():
			parts = append(parts, stageActiveStyle.Render(label))
		case st < m.wz.Stage():
			parts = append(parts, stageDoneStyle.Render(label))
		default:
			parts = append(parts, subtitleStyle.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  →  ")
}

func (m *MaintenanceModel) renderClientStage() string {
	s := titleStyle.Render("Who is the client?") + "\n\n"
	s += "  " + m.searchInput.View() + "\n\n"

	if len(m.clientHits) == 0 {
		if len(strings.TrimSpace(m.searchInput.Value())) >= 3 {
			s += subtitleStyle.Render("  No matches. Press ctrl+n to register a new client.") + "\n"
		}
	} else {
		for i, c := range m.clientHits {
			indicator := "  "
			style := lipgloss.NewStyle()
			if i == m.clientIdx {
				indicator = "> "
				style = style.Bold(true).Foreground(primaryColor)
			}
			s += style.Render(fmt.Sprintf("%s%-30s %s", indicator, truncateStr(c.Name, 30), c.NationalID)) + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  enter: select  ctrl+n: new client  esc: cancel")
	return s
}

func (m *MaintenanceModel) renderVehicleStage() string {
	client := m.wz.Draft().Client
	s := titleStyle.Render(fmt.Sprintf("Which of %s's vehicles?", client.Name)) + "\n\n"

	if len(m.vehicles) == 0 {
		s += subtitleStyle.Render("  No vehicles registered for this client. Press n to add one.") + "\n"
	} else {
		for i, v := range m.vehicles {
			indicator := "  "
			style := lipgloss.NewStyle()
			if i == m.vehicleIdx {
				indicator = "> "
				style = style.Bold(true).Foreground(primaryColor)
			}
			s += style.Render(fmt.Sprintf("%s%-35s %s", indicator, truncateStr(v.Label(), 35), formatKm(v.OdometerKm))) + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  enter: select  n: new vehicle  esc: back")
	return s
}

func (m *MaintenanceModel) renderServiceStage() string {
	d := m.wz.Draft()
	s := titleStyle.Render(fmt.Sprintf("Service for %s", d.Vehicle.Label())) + "\n\n"

	// Parts pane
	s += m.paneTitle("Parts", focusParts) + "  " + m.partInput.View() + "\n"
	for i, p := range m.partHits {
		marker := "   "
		if m.focus == focusParts && i == m.partIdx {
			marker = " > "
		}
		s += subtitleStyle.Render(fmt.Sprintf("%s%-28s %8s  stock %d", marker, truncateStr(p.Name, 28), formatMoney(p.UnitPrice), p.StockQty)) + "\n"
	}
	for i, line := range d.PartLines {
		cursor := "  "
		if m.focus == focusParts && i == m.lineIdx {
			cursor = "* "
		}
		s += fmt.Sprintf("  %s%-26s x%-3d %8s = %s\n",
			cursor, truncateStr(line.Name, 26), line.Quantity, formatMoney(line.UnitPriceAtTime), formatMoney(line.Subtotal()))
	}

	// Labors pane
	s += "\n" + m.paneTitle("Labors", focusLabors) + "  " + m.laborInput.View() + "\n"
	for i, l := range m.laborHits {
		marker := "   "
		if m.focus == focusLabors && i == m.laborIdx {
			marker = " > "
		}
		s += subtitleStyle.Render(fmt.Sprintf("%s%-28s %8s", marker, truncateStr(l.Name, 28), formatMoney(l.StandardPrice))) + "\n"
	}
	for i, line := range d.LaborLines {
		cursor := "  "
		if m.focus == focusLabors && i == m.lineIdx {
			cursor = "* "
		}
		name := line.Name
		if name == "" {
			name = "(unnamed)"
		}
		tag := ""
		if line.IsNewDefinition {
			tag = " (new)"
		}
		s += fmt.Sprintf("  %s%-30s %8s%s\n", cursor, truncateStr(name, 30), formatMoney(line.CostAtTime), tag)
	}

	// Details pane
	s += "\n" + m.paneTitle("Details", focusDetails) + "\n"
	s += fmt.Sprintf("  Odometer: %s   (last recorded: %s)\n", m.odometerInput.View(), formatKm(d.Vehicle.OdometerKm))
	s += fmt.Sprintf("  Notes:    %s\n", m.notesInput.View())

	s += "\n" + fmt.Sprintf("  Parts %s + Labor %s = %s\n",
		formatMoney(d.PartsSubtotal()), formatMoney(d.LaborSubtotal()), totalStyle.Render(formatMoney(d.Total())))

	s += "\n" + helpStyle.Render("  tab: switch pane  enter: add  ctrl+n: free-text labor  ctrl+e: edit line  ctrl+x: remove line\n  ctrl+j/ctrl+k: move line cursor  ctrl+d: continue  esc: back")
	return s
}

func (m *MaintenanceModel) paneTitle(name string, f serviceFocus) string {
	if m.focus == f {
		return stageActiveStyle.Render("  " + name)
	}
	return subtitleStyle.Render("  " + name)
}

func (m *MaintenanceModel) renderSummaryStage() string {
	d := m.wz.Draft()
	totals := m.wz.Summary().Totals()

	s := titleStyle.Render("Review and confirm") + "\n\n"
	s += fmt.Sprintf("  Client:   %s (%s)\n", d.Client.Name, d.Client.NationalID)
	s += fmt.Sprintf("  Vehicle:  %s\n", d.Vehicle.Label())
	s += fmt.Sprintf("  Odometer: %s (was %s)\n", d.EnteredOdometerKm+" km", formatKm(d.Vehicle.OdometerKm))
	if d.Notes != "" {
		s += fmt.Sprintf("  Notes:    %s\n", truncateStr(d.Notes, 60))
	}

	if len(d.PartLines) > 0 {
		s += "\n  Parts\n"
		for _, line := range d.PartLines {
			s += fmt.Sprintf("    %-28s x%-3d %8s = %s\n",
				truncateStr(line.Name, 28), line.Quantity, formatMoney(line.UnitPriceAtTime), formatMoney(line.Subtotal()))
		}
	}
	if len(d.LaborLines) > 0 {
		s += "\n  Labor\n"
		for _, line := range d.LaborLines {
			tag := ""
			if line.IsNewDefinition {
				tag = subtitleStyle.Render("  (will be added to the catalog)")
			}
			s += fmt.Sprintf("    %-32s %8s%s\n", truncateStr(line.Name, 32), formatMoney(line.CostAtTime), tag)
		}
	}

	s += "\n" + fmt.Sprintf("  Parts %s + Labor %s = %s\n",
		formatMoney(totals.Parts), formatMoney(totals.Labor), totalStyle.Render(formatMoney(totals.Total)))

	if m.submitting {
		s += "\n" + subtitleStyle.Render("  Submitting...")
	} else {
		s += "\n" + helpStyle.Render("  enter: confirm and record  esc: back")
	}
	return s
}

func (m *MaintenanceModel) renderDone() string {
	s := stageActiveStyle.Render(fmt.Sprintf("  Maintenance #%d recorded", m.submitted.ID)) + "\n\n"
	s += helpStyle.Render("  enter: start another")
	return s
}

func (m *MaintenanceModel) renderForm() string {
	var title string
	var labels []string
	switch m.form {
	case formNewClient:
		title = "New Client"
		labels = []string{"Name:", "National id:", "Phone:"}
	case formNewVehicle:
		title = "New Vehicle"
		labels = []string{"Brand:", "Model:", "Year:", "Plate:", "Odometer (km):"}
	case formAdHocLabor:
		title = "Labor Line"
		labels = []string{"Description:", "Cost:"}
	case formEditLine:
		title = "Edit Part Line"
		labels = []string{"Quantity:", "Unit price:"}
	}

	s := titleStyle.Render(title) + "\n\n"
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}
