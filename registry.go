package raycursor

import (
	"log/slog"
	"math"
)

// Registry is the live set of enabled Selectables that the cursor can find. Selectables are kept in the order they
// were registered, and appear at most once.
type Registry struct {
	selectables []*Selectable
	index       map[*Selectable]int
	logger      *slog.Logger
}

// NewRegistry creates a new, empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		index: map[*Selectable]int{},
	}
}

// SetLogger sets the logger used by the Registry and the Selectables registered in it. Passing nil discards logs.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// Register adds the Selectable to the Registry, returning false if it was already registered.
// Selectables should usually be registered by calling Selectable.Enable().
func (r *Registry) Register(s *Selectable) bool {
	if s == nil {
		return false
	}
	if _, exists := r.index[s]; exists {
		return false
	}
	r.index[s] = len(r.selectables)
	r.selectables = append(r.selectables, s)
	return true
}

// Unregister removes the Selectable from the Registry, returning false if it wasn't registered.
// Selectables should usually be unregistered by calling Selectable.Disable().
func (r *Registry) Unregister(s *Selectable) bool {

	i, exists := r.index[s]
	if !exists {
		return false
	}

	copy(r.selectables[i:], r.selectables[i+1:])
	r.selectables[len(r.selectables)-1] = nil
	r.selectables = r.selectables[:len(r.selectables)-1]
	delete(r.index, s)

	for j := i; j < len(r.selectables); j++ {
		r.index[r.selectables[j]] = j
	}

	return true

}

// Contains returns if the Selectable is registered.
func (r *Registry) Contains(s *Selectable) bool {
	_, exists := r.index[s]
	return exists
}

// Len returns how many Selectables are registered.
func (r *Registry) Len() int {
	return len(r.selectables)
}

// ForEach calls the function given for each registered Selectable in registration order. If the function returns
// false, the iteration stops. The Registry shouldn't be modified while iterating.
func (r *Registry) ForEach(forEachFunc func(s *Selectable) bool) {
	for _, s := range r.selectables {
		if !forEachFunc(s) {
			break
		}
	}
}

// Selectables returns a copy of the registered Selectables, in registration order.
func (r *Registry) Selectables() []*Selectable {
	return append([]*Selectable(nil), r.selectables...)
}

// Nearest returns the registered Selectable closest to the point given along with its signed distance. As distances
// are signed, a Selectable containing the point wins over one merely touching it, and the deepest containing one wins
// overall. Ties go to the earliest registered Selectable. If no Selectable is registered (or none is at a finite
// distance), ok is false.
func (r *Registry) Nearest(point Vector) (nearest *Selectable, distance float64, ok bool) {

	distance = math.Inf(1)

	for _, s := range r.selectables {
		if d := s.Distance(point); d < distance {
			nearest = s
			distance = d
		}
	}

	return nearest, distance, nearest != nil

}

// RayTest casts the ray against every registered Selectable, returning the closest hit along the ray within
// maxDistance.
func (r *Registry) RayTest(ray Line, maxDistance float64) (RayHit, bool) {

	var closest RayHit
	found := false

	for _, s := range r.selectables {
		if hit, ok := s.RayTest(ray, maxDistance); ok && (!found || hit.Distance() < closest.Distance()) {
			closest = hit
			found = true
		}
	}

	return closest, found

}
