// Package oneeuro implements the 1€ filter, a low-pass filter for noisy, real-time signals (like tracked controller
// orientations) that smooths heavily at low speeds and lags little at high speeds.
package oneeuro

import "math"

// DefaultDerivativeCutoff is the cutoff frequency (in Hz) used to filter the signal's derivative by default.
const DefaultDerivativeCutoff = 1.0

type lowPass struct {
	value       float64
	initialized bool
}

func (lp *lowPass) filter(value, alpha float64) float64 {
	if !lp.initialized {
		lp.value = value
		lp.initialized = true
		return value
	}
	lp.value = alpha*value + (1-alpha)*lp.value
	return lp.value
}

// Filter is a 1€ filter for a single value. Its zero value isn't usable; create one with New().
type Filter struct {
	freq      float64
	minCutoff float64
	beta      float64
	dCutoff   float64

	x  lowPass
	dx lowPass

	lastRaw  float64
	lastTime float64
	hasLast  bool
}

// New returns a new Filter. freq is the expected sampling frequency in Hz (it's re-estimated from the timestamps
// given to Filter()), minCutoff the minimum cutoff frequency in Hz, beta the speed coefficient, and dCutoff the
// cutoff frequency for the derivative in Hz.
func New(freq, minCutoff, beta, dCutoff float64) *Filter {
	f := &Filter{}
	f.UpdateParams(freq, minCutoff, beta, dCutoff)
	return f
}

// UpdateParams changes the filter's parameters without resetting its state. Non-positive frequencies are ignored.
func (f *Filter) UpdateParams(freq, minCutoff, beta, dCutoff float64) {
	if freq > 0 {
		f.freq = freq
	}
	if minCutoff > 0 {
		f.minCutoff = minCutoff
	}
	if dCutoff > 0 {
		f.dCutoff = dCutoff
	}
	f.beta = beta
}

// Freq returns the filter's current sampling frequency estimate, in Hz.
func (f *Filter) Freq() float64 { return f.freq }

// MinCutoff returns the filter's minimum cutoff frequency, in Hz.
func (f *Filter) MinCutoff() float64 { return f.minCutoff }

// Beta returns the filter's speed coefficient.
func (f *Filter) Beta() float64 { return f.beta }

// DerivativeCutoff returns the cutoff frequency of the filter's derivative, in Hz.
func (f *Filter) DerivativeCutoff() float64 { return f.dCutoff }

func (f *Filter) alpha(cutoff float64) float64 {
	te := 1.0 / f.freq
	tau := 1.0 / (2 * math.Pi * cutoff)
	return 1.0 / (1.0 + tau/te)
}

// Filter filters the value sampled at the timestamp given (in seconds) and returns the filtered value.
func (f *Filter) Filter(value, timestamp float64) float64 {

	if f.hasLast && timestamp > f.lastTime {
		f.freq = 1.0 / (timestamp - f.lastTime)
	}

	dValue := 0.0
	if f.hasLast {
		dValue = (value - f.lastRaw) * f.freq
	}

	f.lastRaw = value
	f.lastTime = timestamp
	f.hasLast = true

	edValue := f.dx.filter(dValue, f.alpha(f.dCutoff))
	cutoff := f.minCutoff + f.beta*math.Abs(edValue)
	return f.x.filter(value, f.alpha(cutoff))

}

// Reset clears the filter's history, keeping its parameters.
func (f *Filter) Reset() {
	f.x = lowPass{}
	f.dx = lowPass{}
	f.hasLast = false
}

// VectorFilter filters values with several components (like vectors or quaternions), one 1€ filter per component.
type VectorFilter struct {
	filters []*Filter
	out     []float64
}

// NewVector returns a new VectorFilter for values with the given number of components; see New() for the parameters.
func NewVector(components int, freq, minCutoff, beta, dCutoff float64) *VectorFilter {
	vf := &VectorFilter{
		filters: make([]*Filter, components),
		out:     make([]float64, components),
	}
	for i := range vf.filters {
		vf.filters[i] = New(freq, minCutoff, beta, dCutoff)
	}
	return vf
}

// UpdateParams changes the parameters of every component's filter.
func (vf *VectorFilter) UpdateParams(freq, minCutoff, beta, dCutoff float64) {
	for _, f := range vf.filters {
		f.UpdateParams(freq, minCutoff, beta, dCutoff)
	}
}

// Filter filters the components sampled at the timestamp given. The returned slice is reused by the next call.
// Components beyond the filter's count are ignored.
func (vf *VectorFilter) Filter(values []float64, timestamp float64) []float64 {
	for i, f := range vf.filters {
		if i < len(values) {
			vf.out[i] = f.Filter(values[i], timestamp)
		}
	}
	return vf.out
}

// Reset clears the history of every component's filter.
func (vf *VectorFilter) Reset() {
	for _, f := range vf.filters {
		f.Reset()
	}
}
