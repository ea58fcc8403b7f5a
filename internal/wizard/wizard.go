// Package wizard implements the four-stage new-maintenance composer: resolve
// a client, resolve one of their vehicles, compose the service's part and
// labor lines, then confirm and commit the record through the gateway.
package wizard

import (
	"errors"

	"github.com/mvalarezo/taller/internal/gateway"
)

// Stage is one state of the composer's state machine.
type Stage int

const (
	StageClientSelection Stage = iota
	StageVehicleSelection
	StageServiceComposition
	StageSummaryConfirmation

	// Terminal states
	StageSubmitted
	StageAbandoned
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageClientSelection:
		return "Client"
	case StageVehicleSelection:
		return "Vehicle"
	case StageServiceComposition:
		return "Service"
	case StageSummaryConfirmation:
		return "Summary"
	case StageSubmitted:
		return "Submitted"
	case StageAbandoned:
		return "Abandoned"
	default:
		return "Unknown"
	}
}

var (
	ErrNoClientSelected  = errors.New("select or register a client to continue")
	ErrNoVehicleSelected = errors.New("select or register a vehicle to continue")
	ErrWizardFinished    = errors.New("this maintenance draft is already closed")
)

// Wizard owns the shared draft and sequences the stages. It is the only
// component with cross-stage visibility: stage components receive the draft
// by handle and never hold private copies.
type Wizard struct {
	draft *Draft
	stage Stage

	clients  *ClientResolver
	vehicles *VehicleResolver
	service  *ServiceComposer
	summary  *SummaryFinalizer
}

// New creates a wizard positioned at the client-selection stage
func New(gw gateway.API) *Wizard {
	w := &Wizard{
		draft: &Draft{},
		stage: StageClientSelection,
	}
	w.clients = &ClientResolver{w: w, gw: gw}
	w.vehicles = &VehicleResolver{w: w, gw: gw}
	w.service = &ServiceComposer{w: w, gw: gw}
	w.summary = &SummaryFinalizer{w: w, gw: gw}
	return w
}

// Stage returns the current stage
func (w *Wizard) Stage() Stage { return w.stage }

// Draft exposes the shared draft for read-only display
func (w *Wizard) Draft() *Draft { return w.draft }

// Clients returns the client-selection stage component
func (w *Wizard) Clients() *ClientResolver { return w.clients }

// Vehicles returns the vehicle-selection stage component
func (w *Wizard) Vehicles() *VehicleResolver { return w.vehicles }

// Service returns the service-composition stage component
func (w *Wizard) Service() *ServiceComposer { return w.service }

// Summary returns the summary/commit stage component
func (w *Wizard) Summary() *SummaryFinalizer { return w.summary }

// Advance moves to the next stage if the current stage's exit guard passes.
// A guard failure leaves the stage unchanged and describes what is missing.
func (w *Wizard) Advance() error {
	switch w.stage {
	case StageClientSelection:
		if w.draft.Client == nil {
			return ErrNoClientSelected
		}
		w.stage = StageVehicleSelection
	case StageVehicleSelection:
		if w.draft.Vehicle == nil {
			return ErrNoVehicleSelected
		}
		w.stage = StageServiceComposition
	case StageServiceComposition:
		if err := w.service.Validate(); err != nil {
			return err
		}
		w.stage = StageSummaryConfirmation
	case StageSummaryConfirmation:
		return errors.New("confirm the summary to finish")
	default:
		return ErrWizardFinished
	}
	return nil
}

// Retreat moves back one stage. It is always permitted and never clears
// previously entered data.
func (w *Wizard) Retreat() {
	if w.stage > StageClientSelection && w.stage <= StageSummaryConfirmation {
		w.stage--
	}
}

// Abandon discards the draft and closes the wizard
func (w *Wizard) Abandon() {
	w.stage = StageAbandoned
	w.draft = &Draft{}
}

// clientChanged is called by the client resolver when a different client is
// selected: any previously chosen vehicle no longer applies and the vehicle
// candidates must be re-fetched scoped to the new client.
func (w *Wizard) clientChanged() {
	w.draft.Vehicle = nil
	w.vehicles.invalidate()
}
