package raycursor

// Material represents the look of a Selectable (or of the highlight overlaid onto one). Materials aren't rendered by
// this package; they're handed to the Sink so the host can apply them.
type Material struct {
	Name      string // Name is the name of the Material.
	Color     Color  // The overall color of the Material.
	Emission  Color  // The color the Material emits, added on top of lighting.
	Shadeless bool   // If the Material ignores lighting.
}

// NewMaterial creates a new, opaque white Material with the name given.
func NewMaterial(name string) *Material {
	return &Material{
		Name:  name,
		Color: NewColor(1, 1, 1, 1),
	}
}

// NewHighlightMaterial creates a shadeless, translucent Material of the given color, suitable for drawing over a
// highlighted Selectable.
func NewHighlightMaterial(name string, color Color) *Material {
	return &Material{
		Name:      name,
		Color:     color.WithAlpha(0.5),
		Emission:  color.MultiplyRGB(0.75),
		Shadeless: true,
	}
}

// Clone creates a clone of the specified Material.
func (material *Material) Clone() *Material {
	newMat := NewMaterial(material.Name)
	newMat.Color = material.Color
	newMat.Emission = material.Emission
	newMat.Shadeless = material.Shadeless
	return newMat
}
