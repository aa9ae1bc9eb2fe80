package raycursor

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ModeKind identifies a cursor mode.
type ModeKind int

const (
	// ModeManual moves the cursor only through the touchpad.
	ModeManual ModeKind = iota
	// ModeSemiAuto snaps the cursor to whatever the ray points at, until the touchpad is used; the touchpad then
	// takes over until it's been left alone for a while.
	ModeSemiAuto
)

func (kind ModeKind) String() string {
	switch kind {
	case ModeSemiAuto:
		return "semi-auto"
	}
	return "manual"
}

// ParseModeKind parses the name of a ModeKind ("manual" or "semi-auto", case-insensitive).
func ParseModeKind(name string) (ModeKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "manual":
		return ModeManual, nil
	case "semi-auto", "semiauto":
		return ModeSemiAuto, nil
	}
	return ModeManual, fmt.Errorf("%w: unknown cursor mode %q", ErrInvalidConfig, name)
}

// MarshalText implements encoding.TextMarshaler.
func (kind ModeKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (kind *ModeKind) UnmarshalText(text []byte) error {
	k, err := ParseModeKind(string(text))
	if err != nil {
		return err
	}
	*kind = k
	return nil
}

// Mode is a cursor mode: it decides where the cursor sits along the ray every tick and how the ray and cursor look.
// Times are given in seconds.
type Mode interface {
	Kind() ModeKind
	// Init is called when the mode becomes active.
	Init(now float64)
	// Deinit is called when the mode stops being active.
	Deinit(now float64)
	// Update moves the cursor; it's called once per tick while the mode is active.
	Update(now float64)
	// OnSelect is called after the nearest Selectable has been selected.
	OnSelect(now float64)
	// Distance returns the cursor's distance along the ray.
	Distance() float64
}

// showPointer shows the ray and the cursor at the given distance, with the ray extending past the cursor.
func showPointer(rc *RayCursor, distance float64) {
	rc.pointer.SetDistance(distance)
	rc.pointer.SetHideRayAfterCursor(false)
	rc.cursor.SetDistance(distance)
	rc.pointer.SetVisible(true)
	rc.cursor.SetVisible(true)
}

func hidePointer(rc *RayCursor) {
	rc.pointer.SetVisible(false)
	rc.cursor.SetVisible(false)
}

func placeCursor(rc *RayCursor, distance float64) {
	rc.pointer.SetDistance(distance)
	rc.cursor.SetDistance(distance)
}

func transferDistance(rc *RayCursor, distance float64) float64 {
	return clamp(rc.Transfer().ComputeDistance(distance), 0, MaxCursorDistance)
}

// ManualMode moves the cursor along the ray with the touchpad alone.
type ManualMode struct {
	rc       *RayCursor
	distance float64
}

func newManualMode(rc *RayCursor, initialDistance float64) *ManualMode {
	return &ManualMode{rc: rc, distance: clamp(initialDistance, 0, MaxCursorDistance)}
}

// Kind implements Mode.
func (m *ManualMode) Kind() ModeKind { return ModeManual }

// Distance implements Mode.
func (m *ManualMode) Distance() float64 { return m.distance }

// Init implements Mode.
func (m *ManualMode) Init(now float64) {
	showPointer(m.rc, m.distance)
}

// Deinit implements Mode.
func (m *ManualMode) Deinit(now float64) {
	hidePointer(m.rc)
}

// Update implements Mode.
func (m *ManualMode) Update(now float64) {
	m.distance = transferDistance(m.rc, m.distance)
	placeCursor(m.rc, m.distance)
}

// OnSelect implements Mode.
func (m *ManualMode) OnSelect(now float64) {}

// SemiAutoMode snaps the cursor onto the Selectable the ray points at. Touching the touchpad switches to manual
// control, with the cursor fading back to its automatic look over Timeout seconds after the finger leaves the pad.
type SemiAutoMode struct {
	rc       *RayCursor
	distance float64

	timeout        float64
	autoVisibility float64

	lastTouch float64
	automatic bool
	hit       RayHit
	hasHit    bool
	fade      *gween.Tween
}

func newSemiAutoMode(rc *RayCursor, initialDistance, timeout, autoVisibility float64) *SemiAutoMode {
	return &SemiAutoMode{
		rc:             rc,
		distance:       clamp(initialDistance, 0, MaxCursorDistance),
		timeout:        timeout,
		autoVisibility: autoVisibility,
		fade:           gween.New(1, 0, float32(timeout), ease.Linear),
	}
}

// Timeout returns how long, in seconds, manual control lasts after the touchpad was last touched.
func (m *SemiAutoMode) Timeout() float64 { return m.timeout }

// SetTimeout changes how long manual control lasts after the touchpad was last touched. Non-positive values are
// ignored.
func (m *SemiAutoMode) SetTimeout(timeout float64) {
	if !(timeout > 0) {
		return
	}
	m.timeout = timeout
	m.fade = gween.New(1, 0, float32(timeout), ease.Linear)
}

// AutoVisibility returns the cursor's visibility while it's automatically placed.
func (m *SemiAutoMode) AutoVisibility() float64 { return m.autoVisibility }

// SetAutoVisibility sets the cursor's visibility while it's automatically placed, clamped from 0 to 1.
func (m *SemiAutoMode) SetAutoVisibility(visibility float64) {
	m.autoVisibility = clamp(visibility, 0, 1)
}

// Kind implements Mode.
func (m *SemiAutoMode) Kind() ModeKind { return ModeSemiAuto }

// Distance implements Mode.
func (m *SemiAutoMode) Distance() float64 { return m.distance }

// Automatic returns if the cursor was placed automatically on the last update (as opposed to being under manual
// control).
func (m *SemiAutoMode) Automatic() bool { return m.automatic }

// Hit returns the Selectable struck by the ray on the last update, if any.
func (m *SemiAutoMode) Hit() (RayHit, bool) { return m.hit, m.hasHit }

// Init implements Mode. The mode starts out timed out, so the cursor is placed automatically right away.
func (m *SemiAutoMode) Init(now float64) {
	m.lastTouch = now - m.timeout
	m.automatic = true
	showPointer(m.rc, m.distance)
}

// Deinit implements Mode.
func (m *SemiAutoMode) Deinit(now float64) {
	m.rc.cursor.SetVisibility(1, false)
	hidePointer(m.rc)
}

// Update implements Mode.
func (m *SemiAutoMode) Update(now float64) {

	m.hit, m.hasHit = m.rc.raycaster.RayTest(m.rc.pointer.Ray(), FarDistance)

	if m.rc.Transfer().InputActivation() {
		m.lastTouch = now
		m.distance = transferDistance(m.rc, m.distance)
	}

	elapsed := now - m.lastTouch

	if elapsed < m.timeout {

		// Manual control; the cursor fades from fully visible towards its automatic look
		m.automatic = false
		m.rc.pointer.SetHideRayAfterCursor(false)
		visibility, _ := m.fade.Set(float32(elapsed))
		m.rc.cursor.SetVisibility(float64(visibility), false)

	} else {

		m.automatic = true

		if m.hasHit {
			m.distance = clamp(m.hit.Distance(), 0, MaxCursorDistance)
			m.rc.pointer.SetHideRayAfterCursor(true)
		} else {
			m.rc.pointer.SetHideRayAfterCursor(false) // keep the cursor where it was
		}
		m.rc.cursor.SetVisibility(m.autoVisibility, false)

	}

	placeCursor(m.rc, m.distance)

}

// OnSelect implements Mode; selecting hands control back to automatic placement immediately.
func (m *SemiAutoMode) OnSelect(now float64) {
	m.lastTouch = now - m.timeout
}
