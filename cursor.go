package raycursor

// MaxCursorDistance is the farthest the cursor can travel along the ray, in meters.
const MaxCursorDistance = 100.0

// CursorState is a snapshot of the cursor's visual state, handed to the Sink every tick.
type CursorState struct {
	Distance       float64     // Distance along the ray, in meters.
	Position       Vector      // World position of the cursor.
	Radius         float64     // Radius of the cursor's sphere.
	Color          Color       // Color of the cursor, including its alpha.
	LightIntensity float64     // Intensity of the light the cursor emits.
	Visibility     float64     // Visibility, from 0 (hidden) to 1 (fully visible).
	Visible        bool        // If the cursor should be drawn at all.
	Highlight      *Selectable // The Selectable currently nearest to the cursor; nil if there's none.
}

// Cursor is the point along the ray used to pick the nearest Selectable.
type Cursor struct {
	BaseColor          Color   // Color of the cursor when fully visible.
	AutoColor          Color   // Color the cursor fades towards as its visibility drops.
	BaseLightIntensity float64 // Light intensity of the cursor when fully visible.
	Radius             float64

	distance       float64
	color          Color
	lightIntensity float64
	visibility     float64
	visible        bool
}

// NewCursor creates a new Cursor, fully visible, with the colors and light intensity given.
func NewCursor(baseColor, autoColor Color, lightIntensity, radius float64) *Cursor {
	c := &Cursor{
		BaseColor:          baseColor,
		AutoColor:          autoColor,
		BaseLightIntensity: lightIntensity,
		Radius:             radius,
	}
	c.SetVisibility(1, false)
	return c
}

// Distance returns the cursor's distance along the ray.
func (c *Cursor) Distance() float64 {
	return c.distance
}

// SetDistance sets the cursor's distance along the ray.
func (c *Cursor) SetDistance(distance float64) {
	c.distance = distance
}

// Visible returns if the cursor is shown.
func (c *Cursor) Visible() bool {
	return c.visible
}

// SetVisible shows or hides the cursor without changing its visibility level.
func (c *Cursor) SetVisible(visible bool) {
	c.visible = visible
}

// Visibility returns the cursor's visibility level, from 0 to 1.
func (c *Cursor) Visibility() float64 {
	return c.visibility
}

// SetVisibility sets the cursor's visibility level (0 to 1), fading its color from AutoColor to BaseColor and its
// light from off to BaseLightIntensity. If transparent is true, the cursor's alpha fades as well. The cursor is
// shown for any visibility above 0.
func (c *Cursor) SetVisibility(visibility float64, transparent bool) {

	visibility = clamp(visibility, 0, 1)
	c.visibility = visibility

	c.color = c.AutoColor.Lerp(c.BaseColor, visibility)
	c.color.A = 1
	if transparent {
		c.color.A = float32(visibility)
	}

	c.lightIntensity = lerp(0, c.BaseLightIntensity, visibility)
	c.visible = visibility > 0

}

// State returns the cursor's visual state, placed along the ray given.
func (c *Cursor) State(ray Line) CursorState {
	state := CursorState{
		Distance:       c.distance,
		Position:       ray.Origin,
		Radius:         c.Radius,
		Color:          c.color,
		LightIntensity: c.lightIntensity,
		Visibility:     c.visibility,
		Visible:        c.visible,
	}
	if !ray.Degenerate() {
		state.Position = ray.PointAt(c.distance)
	}
	return state
}
