package raycursor

import (
	"fmt"
	"math"
	"strings"
)

// TransferKind selects the gain curve of a TransferFunction.
type TransferKind int

const (
	// TransferLerp uses a flat gain, linearly interpolated between K1 (at V1 and slower) and K2 (at V2 and faster).
	TransferLerp TransferKind = iota
	// TransferLerpDistance uses the same gain curve as TransferLerp, scaled by the distance between the cursor and the
	// user's head, so the cursor's apparent speed doesn't depend on how far away it is.
	TransferLerpDistance
)

func (kind TransferKind) String() string {
	switch kind {
	case TransferLerpDistance:
		return "lerp-distance"
	}
	return "lerp"
}

// ParseTransferKind parses the name of a TransferKind ("lerp" or "lerp-distance", case-insensitive).
func ParseTransferKind(name string) (TransferKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lerp":
		return TransferLerp, nil
	case "lerp-distance", "lerpdistance":
		return TransferLerpDistance, nil
	}
	return TransferLerp, fmt.Errorf("%w: unknown transfer function %q", ErrInvalidConfig, name)
}

// MarshalText implements encoding.TextMarshaler.
func (kind TransferKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (kind *TransferKind) UnmarshalText(text []byte) error {
	k, err := ParseTransferKind(string(text))
	if err != nil {
		return err
	}
	*kind = k
	return nil
}

// TransferConfig holds the parameters of a TransferFunction's gain curve.
type TransferConfig struct {
	V1 float64 `toml:"v1"` // Finger speed (m/s) at and under which the gain is K1.
	V2 float64 `toml:"v2"` // Finger speed (m/s) at and over which the gain is K2.
	K1 float64 `toml:"k1"` // Gain for slow finger movements.
	K2 float64 `toml:"k2"` // Gain for fast finger movements.

	// TouchpadRadius converts touchpad axis units (-1 to 1) to meters.
	TouchpadRadius float64 `toml:"touchpad_radius"`
	// ReferenceDistance is the average distance (in meters) between the user's head and the controller, used by
	// TransferLerpDistance.
	ReferenceDistance float64 `toml:"reference_distance"`
}

// DefaultTransferConfig returns the default gain curve for the given kind of transfer function.
func DefaultTransferConfig(kind TransferKind) TransferConfig {
	cfg := TransferConfig{
		V1:                0.05,
		V2:                0.15,
		K1:                30,
		K2:                150,
		TouchpadRadius:    0.02,
		ReferenceDistance: 0.55,
	}
	if kind == TransferLerpDistance {
		cfg.K1 = 20
		cfg.K2 = 100
	}
	return cfg
}

// Validate returns an error wrapping ErrInvalidConfig if the gain curve can't be used.
func (cfg TransferConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"v1", cfg.V1},
		{"v2", cfg.V2},
		{"k1", cfg.K1},
		{"k2", cfg.K2},
		{"touchpad_radius", cfg.TouchpadRadius},
		{"reference_distance", cfg.ReferenceDistance},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: transfer function %s must be a finite, non-negative number (got %v)", ErrInvalidConfig, f.name, f.value)
		}
	}
	if cfg.V2 <= cfg.V1 {
		return fmt.Errorf("%w: transfer function v2 (%v) must be greater than v1 (%v)", ErrInvalidConfig, cfg.V2, cfg.V1)
	}
	return nil
}

// TransferFunction maps the vertical speed of the user's finger on the touchpad to a speed for the cursor along the
// ray (velocity control). It samples the input once per tick through Update().
type TransferFunction struct {
	Kind   TransferKind
	Config TransferConfig

	previousY     float64
	previousTouch bool
	previousTime  float64
	sampled       bool

	deltaTime float64
	speed     float64
}

// NewTransferFunction creates a new TransferFunction with the given gain curve.
func NewTransferFunction(kind TransferKind, config TransferConfig) *TransferFunction {
	return &TransferFunction{
		Kind:   kind,
		Config: config,
	}
}

// Update samples the input at the time given (in seconds). The finger speed is reset to 0 unless the touchpad was
// touched both on this sample and the previous one.
func (tf *TransferFunction) Update(input Input, now float64) {

	touching := input.Touching()
	y := input.TouchY()

	tf.deltaTime = 0
	if tf.sampled {
		tf.deltaTime = now - tf.previousTime
	}

	if !touching || !tf.previousTouch || tf.deltaTime <= 0 {
		tf.speed = 0
	} else {
		tf.speed = (y - tf.previousY) * -tf.Config.TouchpadRadius / tf.deltaTime
	}

	tf.previousTouch = touching
	tf.previousY = y
	tf.previousTime = now
	tf.sampled = true

}

// Reset forgets all previous samples.
func (tf *TransferFunction) Reset() {
	*tf = TransferFunction{Kind: tf.Kind, Config: tf.Config}
}

// Speed returns the finger's vertical speed on the touchpad from the last sample, in m/s (positive moves the cursor
// away, negative brings it closer).
func (tf *TransferFunction) Speed() float64 {
	return tf.speed
}

// DeltaTime returns the time elapsed, in seconds, between the last two samples.
func (tf *TransferFunction) DeltaTime() float64 {
	return tf.deltaTime
}

// InputActivation returns if the touchpad was touched on the last sample.
func (tf *TransferFunction) InputActivation() bool {
	return tf.previousTouch
}

// Gain returns the gain applied to the finger speed given (in m/s), for a cursor currently at previousDistance meters.
func (tf *TransferFunction) Gain(speed, previousDistance float64) float64 {

	cfg := tf.Config
	speed = math.Abs(speed)

	gain := lerp(cfg.K1, cfg.K2, inverseLerp(cfg.V1, cfg.V2, speed))

	if tf.Kind == TransferLerpDistance {
		gain *= math.Hypot(previousDistance, cfg.ReferenceDistance)
	}

	return gain

}

// CursorSpeed returns the cursor's speed along the ray (in m/s) for the finger speed given.
func (tf *TransferFunction) CursorSpeed(speed, previousDistance float64) float64 {
	return speed * tf.Gain(speed, previousDistance)
}

// ComputeDistance returns the cursor's new distance along the ray, moved from previousDistance by the cursor speed
// derived from the last sample over the time between the last two samples.
func (tf *TransferFunction) ComputeDistance(previousDistance float64) float64 {
	return previousDistance + tf.CursorSpeed(tf.speed, previousDistance)*tf.deltaTime
}
