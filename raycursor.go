// Package raycursor implements a ray-casting pointer for VR hand controllers: a ray is projected from the controller,
// the touchpad moves a cursor along it through a transfer function, and the registered Selectable nearest to the
// cursor is highlighted and can be selected.
//
// Everything runs on a single goroutine, one Tick() per rendered frame.
package raycursor

import (
	"errors"
	"log/slog"
)

// ErrNoInput is returned by New when no Input is given.
var ErrNoInput = errors.New("no input provider")

// Input provides the controller's input for a tick.
type Input interface {
	// SelectPressed returns true only on the tick the select button went down.
	SelectPressed() bool
	// Touching returns true as long as the touchpad is touched.
	Touching() bool
	// TouchY returns the vertical position of the finger on the touchpad, from -1 to 1.
	TouchY() float64
}

// Sink receives the visual state of the ray and cursor, and highlight changes, so the host can render them.
type Sink interface {
	DrawCursor(state CursorState)
	DrawRay(state PointerState)
	SetHighlight(selectable *Selectable, highlighted bool)
}

type nopSink struct{}

func (nopSink) DrawCursor(CursorState) {}

func (nopSink) DrawRay(PointerState) {}

func (nopSink) SetHighlight(*Selectable, bool) {}

// Option customizes a RayCursor on creation.
type Option func(rc *RayCursor)

// WithLogger sets the structured logger used by the RayCursor and its Registry. By default, logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(rc *RayCursor) {
		if logger != nil {
			rc.logger = logger
		}
	}
}

// WithSink sets the Sink that receives the RayCursor's visual state.
func WithSink(sink Sink) Option {
	return func(rc *RayCursor) {
		if sink != nil {
			rc.sink = sink
		}
	}
}

// WithRegistry sets the Registry of Selectables the RayCursor picks from. By default, a new, empty Registry is used.
func WithRegistry(registry *Registry) Option {
	return func(rc *RayCursor) {
		if registry != nil {
			rc.registry = registry
		}
	}
}

// WithRaycaster sets what the semi-automatic mode casts the ray against. By default, it's the RayCursor's Registry.
func WithRaycaster(raycaster Raycaster) Option {
	return func(rc *RayCursor) {
		rc.raycaster = raycaster
	}
}

// WithOrientationFilter sets the function creating the filter used to smooth the ray's orientation when filtering
// is enabled. By default, a 1€ filter is used.
func WithOrientationFilter(newFilter func(minCutoff, beta float64) OrientationFilter) Option {
	return func(rc *RayCursor) {
		rc.newFilter = newFilter
	}
}

type runState int

const (
	stateNew runState = iota
	stateRunning
	stateStopped
)

// RayCursor is a ray pointer session: it owns the pointer, the cursor, the cursor modes and the transfer functions,
// and picks the nearest Selectable from its Registry every tick. Create one with New().
type RayCursor struct {
	config Config
	input  Input
	sink   Sink
	logger *slog.Logger

	registry  *Registry
	raycaster Raycaster
	newFilter func(minCutoff, beta float64) OrientationFilter

	pointer *Pointer
	cursor  *Cursor

	modes         map[ModeKind]Mode
	currentMode   ModeKind
	requestedMode ModeKind

	transfers    map[TransferKind]*TransferFunction
	transferKind TransferKind

	highlightMaterial *Material

	nearest         *Selectable
	nearestDistance float64
	previousNearest *Selectable

	state runState
}

// New creates a new RayCursor for the input given, returning an error if the Config is invalid. The RayCursor starts
// on its first Tick(), or when Start() is called.
func New(config Config, input Input, options ...Option) (*RayCursor, error) {

	if input == nil {
		return nil, ErrNoInput
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	rc := &RayCursor{
		input:    input,
		sink:     nopSink{},
		logger:   discardLogger,
		registry: NewRegistry(),
	}

	for _, opt := range options {
		opt(rc)
	}

	if rc.raycaster == nil {
		rc.raycaster = rc.registry
	}

	rc.registry.SetLogger(rc.logger)
	rc.configure(config)

	return rc, nil

}

func (rc *RayCursor) configure(config Config) {

	rc.config = config

	rc.pointer = NewPointer(config.Ray.FilterMinCutoff, config.Ray.FilterBeta, rc.newFilter)
	rc.pointer.SetFilterEnabled(config.Ray.Filtered)

	rc.cursor = NewCursor(
		colorOrWhite(config.Cursor.Color),
		colorOrWhite(config.Cursor.AutoColor),
		config.Cursor.LightIntensity,
		config.Cursor.Radius,
	)

	rc.highlightMaterial = NewHighlightMaterial("highlight", colorOrWhite(config.Highlight.Color))

	rc.modes = map[ModeKind]Mode{
		ModeManual:   newManualMode(rc, config.Cursor.InitialDistance),
		ModeSemiAuto: newSemiAutoMode(rc, config.Cursor.InitialDistance, config.SemiAuto.Timeout, config.SemiAuto.AutoVisibility),
	}
	rc.currentMode = config.Mode
	rc.requestedMode = config.Mode

	rc.transfers = map[TransferKind]*TransferFunction{
		TransferLerp:         NewTransferFunction(TransferLerp, config.Lerp),
		TransferLerpDistance: NewTransferFunction(TransferLerpDistance, config.LerpDistance),
	}
	rc.transferKind = config.TransferFunction

}

// Start activates the RayCursor's current mode. Starting an already running RayCursor does nothing.
func (rc *RayCursor) Start(now float64) {
	if rc.state == stateRunning {
		return
	}
	rc.state = stateRunning
	rc.ActiveMode().Init(now)
	rc.logger.Debug("ray cursor started", "mode", rc.currentMode.String(), "transfer_function", rc.transferKind.String())
}

// Shutdown deactivates the current mode, hiding the ray and cursor, and clears the current highlight. Ticking a
// RayCursor that was shut down does nothing until it's started again.
func (rc *RayCursor) Shutdown(now float64) {

	if rc.state != stateRunning {
		rc.state = stateStopped
		return
	}

	rc.ActiveMode().Deinit(now)
	rc.setNearest(nil)
	rc.state = stateStopped

	rc.sink.DrawCursor(rc.CursorState())
	rc.sink.DrawRay(rc.PointerState())

	rc.logger.Debug("ray cursor shut down")

}

// Running returns if the RayCursor is started.
func (rc *RayCursor) Running() bool {
	return rc.state == stateRunning
}

// Reconfigure shuts the RayCursor down, applies the new Config (resetting cursor distances and transfer function
// history) and starts it again if it was running; a RayCursor that was never started or was shut down stays so.
// The Config is validated first; if it's invalid, nothing changes.
func (rc *RayCursor) Reconfigure(config Config, now float64) error {

	if err := config.Validate(); err != nil {
		return err
	}

	previousState := rc.state
	rc.Shutdown(now)

	pose, rot := rc.pointer.position, rc.pointer.rawRot
	rc.configure(config)
	rc.pointer.SetPose(pose, rot)
	rc.pointer.update(now)

	rc.logger.Debug("ray cursor reconfigured", "mode", config.Mode.String(), "transfer_function", config.TransferFunction.String())

	if previousState == stateRunning {
		rc.Start(now)
	} else {
		rc.state = previousState
	}

	return nil

}

// Config returns the Config the RayCursor was last configured with.
func (rc *RayCursor) Config() Config {
	return rc.config
}

// Registry returns the RayCursor's Registry of Selectables.
func (rc *RayCursor) Registry() *Registry {
	return rc.registry
}

// Pointer returns the RayCursor's pointer (the ray).
func (rc *RayCursor) Pointer() *Pointer {
	return rc.pointer
}

// Cursor returns the RayCursor's cursor.
func (rc *RayCursor) Cursor() *Cursor {
	return rc.cursor
}

// HighlightMaterial returns the Material set on highlighted Selectables.
func (rc *RayCursor) HighlightMaterial() *Material {
	return rc.highlightMaterial
}

// SetPose sets the world position and orientation of the tracked controller the ray is projected from.
func (rc *RayCursor) SetPose(position Vector, rotation Quaternion) {
	rc.pointer.SetPose(position, rotation)
}

// SetMode requests a switch to another cursor mode; it's applied at the start of the next tick.
func (rc *RayCursor) SetMode(kind ModeKind) {
	rc.requestedMode = kind
}

// Mode returns the kind of the active cursor mode.
func (rc *RayCursor) Mode() ModeKind {
	return rc.currentMode
}

// ActiveMode returns the active cursor mode.
func (rc *RayCursor) ActiveMode() Mode {
	return rc.modes[rc.currentMode]
}

// SetTransferFunction changes which transfer function moves the cursor.
func (rc *RayCursor) SetTransferFunction(kind TransferKind) {
	if _, exists := rc.transfers[kind]; exists {
		rc.transferKind = kind
	}
}

// Transfer returns the active transfer function.
func (rc *RayCursor) Transfer() *TransferFunction {
	return rc.transfers[rc.transferKind]
}

// SetRayFiltered turns smoothing of the ray's orientation on or off.
func (rc *RayCursor) SetRayFiltered(filtered bool) {
	rc.pointer.SetFilterEnabled(filtered)
}

// Nearest returns the Selectable nearest to the cursor as of the last tick, along with its signed distance to the
// cursor. It returns nil if there's none.
func (rc *RayCursor) Nearest() (*Selectable, float64) {
	return rc.nearest, rc.nearestDistance
}

// CursorPosition returns the world position of the cursor.
func (rc *RayCursor) CursorPosition() Vector {
	return rc.pointer.Ray().PointAt(rc.cursor.Distance())
}

// CursorState returns the cursor's visual state.
func (rc *RayCursor) CursorState() CursorState {
	state := rc.cursor.State(rc.pointer.Ray())
	state.Highlight = rc.nearest
	return state
}

// PointerState returns the ray's visual state.
func (rc *RayCursor) PointerState() PointerState {
	return rc.pointer.State()
}

// Tick runs one frame of the RayCursor at the time given (in seconds): it applies a requested mode switch, samples
// the input through the transfer function, moves the cursor with the active mode, highlights the Selectable nearest
// to the cursor, and selects it if the select button was just pressed.
func (rc *RayCursor) Tick(now float64) {

	switch rc.state {
	case stateStopped:
		return
	case stateNew:
		rc.Start(now)
	}

	if rc.requestedMode != rc.currentMode {
		if _, exists := rc.modes[rc.requestedMode]; exists {
			rc.ActiveMode().Deinit(now)
			rc.logger.Debug("cursor mode switched", "from", rc.currentMode.String(), "to", rc.requestedMode.String())
			rc.currentMode = rc.requestedMode
			rc.ActiveMode().Init(now)
		} else {
			rc.requestedMode = rc.currentMode
		}
	}

	rc.Transfer().Update(rc.input, now)

	rc.pointer.update(now)

	mode := rc.ActiveMode()
	mode.Update(now)

	nearest, distance, _ := rc.registry.Nearest(rc.CursorPosition())
	rc.nearestDistance = distance
	rc.setNearest(nearest)

	if rc.input.SelectPressed() && nearest != nil {
		nearest.Select()
		mode.OnSelect(now)
	}

	rc.sink.DrawCursor(rc.CursorState())
	rc.sink.DrawRay(rc.PointerState())

}

func (rc *RayCursor) setNearest(nearest *Selectable) {

	rc.nearest = nearest
	if nearest == nil {
		rc.nearestDistance = 0
	}

	if rc.previousNearest == nearest {
		// Disabling and enabling a Selectable again clears its highlight
		if nearest != nil && nearest.highlightable && !nearest.Highlighted() {
			nearest.SetHighlighted(true, rc.highlightMaterial)
			rc.sink.SetHighlight(nearest, true)
		}
		return
	}

	if prev := rc.previousNearest; prev != nil {
		prev.SetHighlighted(false, nil)
		rc.sink.SetHighlight(prev, false)
	}

	if nearest != nil {
		nearest.SetHighlighted(true, rc.highlightMaterial)
		rc.sink.SetHighlight(nearest, nearest.Highlighted())
	}

	rc.previousNearest = nearest

}
