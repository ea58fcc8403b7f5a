package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvalarezo/taller/internal/app"
	"github.com/mvalarezo/taller/internal/config"
	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

// quietGateway satisfies gateway.API for screens that must not reach the
// backend during these tests. Commands returned by Update are not executed,
// so only the methods called synchronously need real bodies.
type quietGateway struct{ gateway.API }

func (quietGateway) ListClients(ctx context.Context) ([]*domain.Client, error) { return nil, nil }

func newTestApp() *app.App {
	return &app.App{Config: config.DefaultConfig(), Gateway: quietGateway{}}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFreshComposerEscReturnsToDashboard(t *testing.T) {
	root := New(newTestApp())

	model, _ := root.Update(keyRune('m'))
	m := model.(Model)
	require.Equal(t, ScreenMaintenance, m.currentScreen)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(Model)
	require.NotNil(t, cmd)

	model, _ = m.Update(cmd())
	m = model.(Model)
	assert.Equal(t, ScreenDashboard, m.currentScreen)

	// Navigation keys work again once the composer is released
	model, _ = m.Update(keyRune('c'))
	m = model.(Model)
	assert.Equal(t, ScreenClients, m.currentScreen)
}

func TestQuitWorksAfterLeavingFreshComposer(t *testing.T) {
	root := New(newTestApp())

	model, _ := root.Update(keyRune('m'))
	m := model.(Model)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(Model)
	require.NotNil(t, cmd)
	model, _ = m.Update(cmd())
	m = model.(Model)

	_, quitCmd := m.Update(keyRune('q'))
	require.NotNil(t, quitCmd)
	assert.IsType(t, tea.QuitMsg{}, quitCmd())
}

func TestComposerEscWithSearchTextOnlyClearsIt(t *testing.T) {
	root := New(newTestApp())

	model, _ := root.Update(keyRune('m'))
	m := model.(Model)

	for _, r := range "mar" {
		model, _ = m.Update(keyRune(r))
		m = model.(Model)
	}
	comp := m.maintenance.(*MaintenanceModel)
	require.Equal(t, "mar", comp.searchInput.Value())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(Model)
	assert.Equal(t, ScreenMaintenance, m.currentScreen)
	assert.Equal(t, "", comp.searchInput.Value())
}

func TestComposerShowsFallbackForTransportFailures(t *testing.T) {
	comp := NewMaintenanceModel(newTestApp()).(*MaintenanceModel)

	wrapped := fmt.Errorf("load part catalog: %w",
		&gateway.TransportError{Err: errors.New("dial tcp 127.0.0.1:8000: connection refused")})
	model, _ := comp.Update(wzCatalogsMsg{err: wrapped})
	comp = model.(*MaintenanceModel)

	require.Error(t, comp.err)
	assert.Equal(t, gateway.FallbackMessage, comp.err.Error())
}

func TestComposerShowsBackendValidationMessages(t *testing.T) {
	comp := NewMaintenanceModel(newTestApp()).(*MaintenanceModel)

	apiErr := &gateway.APIError{
		StatusCode: 422,
		Message:    "The given data was invalid.",
		Fields:     map[string][]string{"plate": {"The plate has already been taken."}},
	}
	model, _ := comp.Update(wzVehicleSavedMsg{err: apiErr})
	comp = model.(*MaintenanceModel)

	require.Error(t, comp.err)
	assert.Equal(t, "The plate has already been taken.", comp.err.Error())
}

func TestComposerKeepsLocalValidationMessages(t *testing.T) {
	comp := NewMaintenanceModel(newTestApp()).(*MaintenanceModel)

	model, _ := comp.Update(wzClientSavedMsg{err: errors.New("name and national id are required")})
	comp = model.(*MaintenanceModel)

	require.Error(t, comp.err)
	assert.Equal(t, "name and national id are required", comp.err.Error())
}
