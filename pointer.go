package raycursor

import (
	"github.com/solarlune/raycursor/oneeuro"
)

// FarDistance is the length of the ray when it isn't clipped at the cursor.
const FarDistance = 1000.0

// OrientationFilter smooths the orientation of the pointer over time.
type OrientationFilter interface {
	// Filter returns the filtered orientation for the raw orientation sampled at the timestamp given (in seconds).
	Filter(rotation Quaternion, timestamp float64) Quaternion
	// SetParams changes the filter's minimum cutoff frequency and speed coefficient.
	SetParams(minCutoff, beta float64)
}

// OneEuroOrientationFilter is an OrientationFilter that runs a 1€ filter over each component of the orientation.
type OneEuroOrientationFilter struct {
	filter *oneeuro.VectorFilter
	last   Quaternion
	has    bool
	values [4]float64
}

// NewOneEuroOrientationFilter creates a new OneEuroOrientationFilter expecting samples at the frequency given (in Hz).
func NewOneEuroOrientationFilter(freq, minCutoff, beta float64) *OneEuroOrientationFilter {
	return &OneEuroOrientationFilter{
		filter: oneeuro.NewVector(4, freq, minCutoff, beta, oneeuro.DefaultDerivativeCutoff),
	}
}

// Filter implements OrientationFilter.
func (f *OneEuroOrientationFilter) Filter(rotation Quaternion, timestamp float64) Quaternion {

	rotation = rotation.Unit()

	// q and -q are the same rotation; keep to the hemisphere of the last output so components don't jump
	if f.has && rotation.Dot(f.last) < 0 {
		rotation = Quaternion{-rotation.X, -rotation.Y, -rotation.Z, -rotation.W}
	}

	f.values = [4]float64{rotation.X, rotation.Y, rotation.Z, rotation.W}
	out := f.filter.Filter(f.values[:], timestamp)

	f.last = NewQuaternion(out[0], out[1], out[2], out[3]).Unit()
	f.has = true
	return f.last

}

// SetParams implements OrientationFilter.
func (f *OneEuroOrientationFilter) SetParams(minCutoff, beta float64) {
	f.filter.UpdateParams(0, minCutoff, beta, 0)
}

// PointerState is a snapshot of the ray's visual state, handed to the Sink every tick.
type PointerState struct {
	Origin    Vector  // World position the ray starts from.
	Direction Vector  // Normalized direction of the ray.
	Length    float64 // Length of the drawn ray; the cursor's distance when clipped, otherwise FarDistance.
	Clipped   bool    // If the ray stops at the cursor.
	Filtered  bool    // If the ray's orientation is being smoothed.
	Visible   bool    // If the ray should be drawn at all.
}

// Pointer is the ray projected from the hand controller.
type Pointer struct {
	position Vector
	rawRot   Quaternion
	rotation Quaternion

	filter        OrientationFilter
	filterEnabled bool
	newFilter     func(minCutoff, beta float64) OrientationFilter
	minCutoff     float64
	beta          float64

	distance           float64
	hideRayAfterCursor bool
	visible            bool
}

// NewPointer creates a new Pointer at the origin, facing WorldForward. newFilter creates the orientation filter when
// filtering is turned on; if it's nil, a 1€ filter sampling at 90Hz is used.
func NewPointer(minCutoff, beta float64, newFilter func(minCutoff, beta float64) OrientationFilter) *Pointer {
	if newFilter == nil {
		newFilter = func(minCutoff, beta float64) OrientationFilter {
			return NewOneEuroOrientationFilter(90, minCutoff, beta)
		}
	}
	return &Pointer{
		rawRot:    NewQuaternionIdentity(),
		rotation:  NewQuaternionIdentity(),
		newFilter: newFilter,
		minCutoff: minCutoff,
		beta:      beta,
	}
}

// SetPose sets the tracked controller's world position and orientation. It takes effect on the next update.
func (p *Pointer) SetPose(position Vector, rotation Quaternion) {
	p.position = position
	p.rawRot = rotation
}

// update applies the last pose given, filtering the orientation if filtering is enabled.
func (p *Pointer) update(now float64) {
	if p.filterEnabled {
		p.rotation = p.filter.Filter(p.rawRot, now)
	} else {
		p.rotation = p.rawRot
	}
}

// Ray returns the pointer's ray in world space.
func (p *Pointer) Ray() Line {
	rot := p.rotation
	if rot.IsZero() {
		rot = NewQuaternionIdentity()
	}
	return NewLine(p.position, rot.Unit().Forward())
}

// FilterEnabled returns if the pointer's orientation is being smoothed.
func (p *Pointer) FilterEnabled() bool {
	return p.filterEnabled
}

// SetFilterEnabled turns orientation smoothing on or off. Turning it on starts with a fresh filter.
func (p *Pointer) SetFilterEnabled(enabled bool) {
	if enabled == p.filterEnabled {
		return
	}
	p.filterEnabled = enabled
	if enabled {
		p.filter = p.newFilter(p.minCutoff, p.beta)
	} else {
		p.filter = nil
		p.rotation = p.rawRot
	}
}

// FilterParams returns the minimum cutoff frequency and speed coefficient of the orientation filter.
func (p *Pointer) FilterParams() (minCutoff, beta float64) {
	return p.minCutoff, p.beta
}

// SetFilterParams changes the minimum cutoff frequency and speed coefficient of the orientation filter, updating the
// running filter if there is one.
func (p *Pointer) SetFilterParams(minCutoff, beta float64) {
	p.minCutoff = minCutoff
	p.beta = beta
	if p.filter != nil {
		p.filter.SetParams(minCutoff, beta)
	}
}

// Distance returns the cursor distance the ray was last told about.
func (p *Pointer) Distance() float64 {
	return p.distance
}

// SetDistance sets the cursor distance, used as the ray's length when it's clipped at the cursor.
func (p *Pointer) SetDistance(distance float64) {
	p.distance = distance
}

// HideRayAfterCursor returns if the ray is clipped at the cursor.
func (p *Pointer) HideRayAfterCursor() bool {
	return p.hideRayAfterCursor
}

// SetHideRayAfterCursor sets if the ray should stop at the cursor instead of extending to FarDistance.
func (p *Pointer) SetHideRayAfterCursor(hide bool) {
	p.hideRayAfterCursor = hide
}

// Length returns the drawn length of the ray.
func (p *Pointer) Length() float64 {
	if p.hideRayAfterCursor {
		return p.distance
	}
	return FarDistance
}

// Visible returns if the ray is shown.
func (p *Pointer) Visible() bool {
	return p.visible
}

// SetVisible shows or hides the ray.
func (p *Pointer) SetVisible(visible bool) {
	p.visible = visible
}

// State returns the pointer's visual state.
func (p *Pointer) State() PointerState {
	ray := p.Ray()
	return PointerState{
		Origin:    ray.Origin,
		Direction: ray.Direction,
		Length:    p.Length(),
		Clipped:   p.hideRayAfterCursor,
		Filtered:  p.filterEnabled,
		Visible:   p.visible,
	}
}
