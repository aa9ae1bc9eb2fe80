// Package colors contains functions to quickly and easily generate raycursor.Color instances by name (i.e. "White()", "Blue()", "Green()", etc).
package colors

import (
	"sort"

	"github.com/solarlune/raycursor"
	"golang.org/x/image/colornames"
)

// Transparent generates a raycursor.Color instance of the provided name.
func Transparent() raycursor.Color {
	return raycursor.NewColor(0, 0, 0, 0)
}

// White generates a raycursor.Color instance of the provided name.
func White() raycursor.Color {
	return raycursor.NewColor(1, 1, 1, 1)
}

// Black generates a raycursor.Color instance of the provided name.
func Black() raycursor.Color {
	return raycursor.NewColor(0, 0, 0, 1)
}

// Gray generates a raycursor.Color instance of the provided name.
func Gray() raycursor.Color {
	return raycursor.NewColor(0.5, 0.5, 0.5, 1)
}

// LightGray generates a raycursor.Color instance of the provided name.
func LightGray() raycursor.Color {
	return raycursor.NewColor(0.8, 0.8, 0.8, 1)
}

// DarkGray generates a raycursor.Color instance of the provided name.
func DarkGray() raycursor.Color {
	return raycursor.NewColor(0.2, 0.2, 0.2, 1)
}

// DarkestGray generates a raycursor.Color instance of the provided name.
func DarkestGray() raycursor.Color {
	return raycursor.NewColor(0.05, 0.05, 0.05, 1)
}

// Red generates a raycursor.Color instance of the provided name.
func Red() raycursor.Color {
	return raycursor.NewColor(1, 0, 0, 1)
}

// PaleRed generates a raycursor.Color instance of the provided name.
func PaleRed() raycursor.Color {
	return raycursor.NewColor(0.678, 0.172, 0.384, 1)
}

// Orange generates a raycursor.Color instance of the provided name.
func Orange() raycursor.Color {
	return raycursor.NewColor(1, 0.5, 0, 1)
}

// Yellow generates a raycursor.Color instance of the provided name.
func Yellow() raycursor.Color {
	return raycursor.NewColor(1, 1, 0, 1)
}

// Green generates a raycursor.Color instance of the provided name.
func Green() raycursor.Color {
	return raycursor.NewColor(0, 1, 0, 1)
}

// SkyBlue generates a raycursor.Color instance of the provided name.
func SkyBlue() raycursor.Color {
	return raycursor.NewColor(0, 0.5, 1, 1)
}

// Turquoise generates a raycursor.Color instance of the provided name.
func Turquoise() raycursor.Color {
	return raycursor.NewColor(0, 1, 1, 1)
}

// Blue generates a raycursor.Color instance of the provided name.
func Blue() raycursor.Color {
	return raycursor.NewColor(0, 0, 1, 1)
}

// Pink generates a raycursor.Color instance of the provided name.
func Pink() raycursor.Color {
	return raycursor.NewColor(1, 0, 1, 1)
}

// Purple generates a raycursor.Color instance of the provided name.
func Purple() raycursor.Color {
	return raycursor.NewColor(0.5, 0, 1, 1)
}

// CursorBlue generates the default cursor color.
func CursorBlue() raycursor.Color {
	return Named("deepskyblue")
}

// Highlight generates the default highlight color.
func Highlight() raycursor.Color {
	return Yellow()
}

// Named returns the color of the given CSS / SVG name (like "tomato" or "slategray"), or transparent black if the
// name is unknown.
func Named(name string) raycursor.Color {
	c, err := raycursor.ParseColor(name)
	if err != nil {
		return Transparent()
	}
	return c
}

// Names returns the names of every color Named() knows, sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
