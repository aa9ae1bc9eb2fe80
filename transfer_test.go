package raycursor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testInput is a scripted controller input.
type testInput struct {
	pressed  bool
	touching bool
	y        float64
}

func (in *testInput) SelectPressed() bool { return in.pressed }
func (in *testInput) Touching() bool      { return in.touching }
func (in *testInput) TouchY() float64     { return in.y }

func TestTransferIdle(t *testing.T) {

	tf := NewTransferFunction(TransferLerp, DefaultTransferConfig(TransferLerp))
	input := &testInput{}

	tf.Update(input, 0)
	assert.Equal(t, 0.0, tf.Speed())
	assert.Equal(t, 0.0, tf.DeltaTime(), "first sample")
	assert.False(t, tf.InputActivation())

	tf.Update(input, 0.1)
	assert.Equal(t, 0.0, tf.Speed())
	assert.InDelta(t, 0.1, tf.DeltaTime(), 1e-12)
	assert.InDelta(t, 2, tf.ComputeDistance(2), 1e-12)

}

func TestTransferSwipe(t *testing.T) {

	tf := NewTransferFunction(TransferLerp, DefaultTransferConfig(TransferLerp))
	input := &testInput{touching: true}

	// The first touch only starts tracking the finger
	tf.Update(input, 0)
	assert.Equal(t, 0.0, tf.Speed())
	assert.True(t, tf.InputActivation())

	// Swiping down moves the cursor away: 0.5 units * 0.02 m over 0.1s
	input.y = -0.5
	tf.Update(input, 0.1)
	assert.InDelta(t, 0.1, tf.Speed(), 1e-12)
	assert.InDelta(t, 90, tf.Gain(tf.Speed(), 1), 1e-9)
	assert.InDelta(t, 9, tf.CursorSpeed(tf.Speed(), 1), 1e-9)
	assert.InDelta(t, 1.9, tf.ComputeDistance(1), 1e-9)

	// Swiping up brings it back
	input.y = 0.5
	tf.Update(input, 0.2)
	assert.InDelta(t, -0.2, tf.Speed(), 1e-12)
	assert.InDelta(t, 1-0.2*150*0.1, tf.ComputeDistance(1), 1e-9)

	// Lifting the finger stops the cursor
	input.touching = false
	tf.Update(input, 0.3)
	assert.Equal(t, 0.0, tf.Speed())
	assert.False(t, tf.InputActivation())

	// Touching again doesn't jump, even far from where the finger left
	input.touching = true
	input.y = -1
	tf.Update(input, 0.4)
	assert.Equal(t, 0.0, tf.Speed())

	// Samples without elapsed time don't move the cursor
	input.y = 1
	tf.Update(input, 0.4)
	assert.Equal(t, 0.0, tf.Speed())

	tf.Reset()
	assert.False(t, tf.InputActivation())
	assert.Equal(t, 0.0, tf.DeltaTime())
	assert.Equal(t, TransferLerp, tf.Kind)

}

func TestTransferGain(t *testing.T) {

	lerp := NewTransferFunction(TransferLerp, DefaultTransferConfig(TransferLerp))

	assert.Equal(t, 30.0, lerp.Gain(0, 1))
	assert.Equal(t, 30.0, lerp.Gain(0.05, 1))
	assert.Equal(t, 150.0, lerp.Gain(0.15, 1))
	assert.Equal(t, 150.0, lerp.Gain(0.2, 1))
	assert.Equal(t, 150.0, lerp.Gain(-0.2, 1))
	assert.InDelta(t, 60, lerp.Gain(0.075, 50), 1e-9, "the distance doesn't matter")

	distance := NewTransferFunction(TransferLerpDistance, DefaultTransferConfig(TransferLerpDistance))

	assert.InDelta(t, 20*0.55, distance.Gain(0, 0), 1e-9)
	assert.InDelta(t, 100*0.55, distance.Gain(0.2, 0), 1e-9)
	assert.InDelta(t, 100*math.Hypot(3, 0.55), distance.Gain(0.2, 3), 1e-9)
	assert.Greater(t, distance.Gain(0.1, 10), distance.Gain(0.1, 1))

}

func TestTransferConfig(t *testing.T) {

	require.NoError(t, DefaultTransferConfig(TransferLerp).Validate())
	require.NoError(t, DefaultTransferConfig(TransferLerpDistance).Validate())

	cfg := DefaultTransferConfig(TransferLerp)
	cfg.V2 = cfg.V1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultTransferConfig(TransferLerp)
	cfg.K1 = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	// With several bad fields, the first one in order is always the one reported
	cfg = DefaultTransferConfig(TransferLerp)
	cfg.K1 = -1
	cfg.K2 = math.Inf(1)
	cfg.ReferenceDistance = -2
	first := cfg.Validate()
	require.ErrorIs(t, first, ErrInvalidConfig)
	assert.Contains(t, first.Error(), "k1")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Error(), cfg.Validate().Error())
	}

	kind, err := ParseTransferKind("Lerp-Distance")
	require.NoError(t, err)
	assert.Equal(t, TransferLerpDistance, kind)

	_, err = ParseTransferKind("cubic")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	text, err := TransferLerpDistance.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "lerp-distance", string(text))

	require.NoError(t, kind.UnmarshalText([]byte("lerp")))
	assert.Equal(t, TransferLerp, kind)

}
