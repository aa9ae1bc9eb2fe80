package raycursor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned (wrapped) when a Config can't be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of a RayCursor. It can be loaded from TOML with LoadConfig() or ParseConfig().
type Config struct {
	Mode             ModeKind     `toml:"mode"`              // The initial cursor mode.
	TransferFunction TransferKind `toml:"transfer_function"` // The initial transfer function.

	Lerp         TransferConfig `toml:"lerp"`          // Gain curve of the TransferLerp transfer function.
	LerpDistance TransferConfig `toml:"lerp_distance"` // Gain curve of the TransferLerpDistance transfer function.

	SemiAuto  SemiAutoConfig  `toml:"semi_auto"`
	Cursor    CursorConfig    `toml:"cursor"`
	Ray       RayConfig       `toml:"ray"`
	Highlight HighlightConfig `toml:"highlight"`
}

// SemiAutoConfig holds the settings of the semi-automatic cursor mode.
type SemiAutoConfig struct {
	Timeout        float64 `toml:"timeout"`         // Seconds of manual control after the touchpad was last touched.
	AutoVisibility float64 `toml:"auto_visibility"` // Cursor visibility (0 to 1) while the cursor is automatically placed.
}

// CursorConfig holds the look of the cursor.
type CursorConfig struct {
	InitialDistance float64 `toml:"initial_distance"` // Starting distance along the ray, in meters.
	Radius          float64 `toml:"radius"`
	LightIntensity  float64 `toml:"light_intensity"`
	Color           string  `toml:"color"`      // Color name or hex string of the fully visible cursor.
	AutoColor       string  `toml:"auto_color"` // Color name or hex string the cursor fades towards.
}

// RayConfig holds the settings of the pointer's ray.
type RayConfig struct {
	Filtered        bool    `toml:"filtered"`          // If the ray's orientation is smoothed with a 1€ filter.
	FilterMinCutoff float64 `toml:"filter_min_cutoff"` // Minimum cutoff frequency of the filter, in Hz.
	FilterBeta      float64 `toml:"filter_beta"`       // Speed coefficient of the filter.
}

// HighlightConfig holds the look of highlighted Selectables.
type HighlightConfig struct {
	Color string `toml:"color"`
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeSemiAuto,
		TransferFunction: TransferLerp,
		Lerp:             DefaultTransferConfig(TransferLerp),
		LerpDistance:     DefaultTransferConfig(TransferLerpDistance),
		SemiAuto: SemiAutoConfig{
			Timeout:        1,
			AutoVisibility: 0.5,
		},
		Cursor: CursorConfig{
			InitialDistance: 1,
			Radius:          0.01,
			LightIntensity:  1,
			Color:           "deepskyblue",
			AutoColor:       "gray",
		},
		Ray: RayConfig{
			FilterMinCutoff: 0.1,
			FilterBeta:      50,
		},
		Highlight: HighlightConfig{
			Color: "yellow",
		},
	}
}

// LoadConfig loads a Config from the TOML file at the path given. Settings missing from the file keep their default
// values, and unknown settings are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses a Config from TOML data; see LoadConfig().
func ParseConfig(data []byte) (Config, error) {
	return ReadConfig(bytes.NewReader(data))
}

// ReadConfig reads a Config as TOML from the reader given; see LoadConfig().
func ReadConfig(r io.Reader) (Config, error) {

	cfg := DefaultConfig()

	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strictErr.String())
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil

}

// Marshal returns the Config encoded as TOML.
func (cfg Config) Marshal() ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate returns an error wrapping ErrInvalidConfig if any setting is out of range.
func (cfg Config) Validate() error {

	if cfg.Mode != ModeManual && cfg.Mode != ModeSemiAuto {
		return fmt.Errorf("%w: unknown cursor mode %d", ErrInvalidConfig, cfg.Mode)
	}

	if cfg.TransferFunction != TransferLerp && cfg.TransferFunction != TransferLerpDistance {
		return fmt.Errorf("%w: unknown transfer function %d", ErrInvalidConfig, cfg.TransferFunction)
	}

	if err := cfg.Lerp.Validate(); err != nil {
		return fmt.Errorf("lerp: %w", err)
	}

	if err := cfg.LerpDistance.Validate(); err != nil {
		return fmt.Errorf("lerp_distance: %w", err)
	}

	if !(cfg.SemiAuto.Timeout > 0) || math.IsInf(cfg.SemiAuto.Timeout, 0) {
		return fmt.Errorf("%w: semi_auto timeout must be a positive number of seconds (got %v)", ErrInvalidConfig, cfg.SemiAuto.Timeout)
	}

	if !(cfg.SemiAuto.AutoVisibility >= 0 && cfg.SemiAuto.AutoVisibility <= 1) {
		return fmt.Errorf("%w: semi_auto auto_visibility must range from 0 to 1 (got %v)", ErrInvalidConfig, cfg.SemiAuto.AutoVisibility)
	}

	if !(cfg.Cursor.InitialDistance >= 0 && cfg.Cursor.InitialDistance <= MaxCursorDistance) {
		return fmt.Errorf("%w: cursor initial_distance must range from 0 to %v (got %v)", ErrInvalidConfig, MaxCursorDistance, cfg.Cursor.InitialDistance)
	}

	if !(cfg.Cursor.Radius >= 0) || !(cfg.Cursor.LightIntensity >= 0) {
		return fmt.Errorf("%w: cursor radius and light_intensity can't be negative", ErrInvalidConfig)
	}

	for name, colorName := range map[string]string{"cursor color": cfg.Cursor.Color, "cursor auto_color": cfg.Cursor.AutoColor, "highlight color": cfg.Highlight.Color} {
		if _, err := ParseColor(colorName); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}

	if !(cfg.Ray.FilterMinCutoff > 0) || !(cfg.Ray.FilterBeta >= 0) {
		return fmt.Errorf("%w: ray filter_min_cutoff must be positive and filter_beta non-negative", ErrInvalidConfig)
	}

	return nil

}

// TransferConfig returns the gain curve configured for the given kind of transfer function.
func (cfg Config) TransferConfig(kind TransferKind) TransferConfig {
	if kind == TransferLerpDistance {
		return cfg.LerpDistance
	}
	return cfg.Lerp
}

func colorOrWhite(name string) Color {
	c, err := ParseColor(name)
	if err != nil {
		return NewColor(1, 1, 1, 1)
	}
	return c
}
