package raycursor

import "math"

// ToRadians is a helper function to easily convert degrees to radians.
func ToRadians(degrees float64) float64 {
	return math.Pi * degrees / 180
}

// ToDegrees is a helper function to easily convert radians to degrees for human readability.
func ToDegrees(radians float64) float64 {
	return radians / math.Pi * 180
}

func clamp[V float64 | float32 | int](value, min, max V) V {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// inverseLerp returns where value lies between a and b, clamped to [0, 1].
func inverseLerp(a, b, value float64) float64 {
	if a == b {
		return 0
	}
	return clamp((value-a)/(b-a), 0, 1)
}
