package raycursor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorMath(t *testing.T) {

	a := NewVector(1, 2, 3)
	b := NewVector(-2, 0.5, 4)

	assert.Equal(t, NewVector(-1, 2.5, 7), a.Add(b))
	assert.Equal(t, NewVector(3, 1.5, -1), a.Sub(b))
	assert.Equal(t, NewVector(6.5, -10, 4.5), a.Cross(b))
	assert.InDelta(t, 11, a.Dot(b), testDelta)
	assert.InDelta(t, 0, a.Cross(b).Dot(a), testDelta)

	assert.InDelta(t, math.Sqrt(14), a.Magnitude(), testDelta)
	assert.InDelta(t, 14, a.MagnitudeSquared(), testDelta)
	assert.InDelta(t, 1, a.Unit().Magnitude(), testDelta)
	assert.Equal(t, Vector{}, Vector{}.Unit())

	assert.Equal(t, NewVector(-0.5, 1.25, 3.5), a.Lerp(b, 0.5))
	assert.Equal(t, NewVector(-2, 0.5, 3), a.Min(b))
	assert.Equal(t, NewVector(1, 2, 4), a.Max(b))
	assert.Equal(t, NewVector(0, 1, 3), a.Clamp(NewVector(-1, 0, 0), NewVector(0, 1, 5)))
	assert.Equal(t, NewVector(-2, 1, 12), a.MultComp(b))

	assert.True(t, a.Equals(NewVector(1, 2, 3+1e-10)))
	assert.False(t, a.Equals(NewVector(1, 2, 3.1)))
	assert.True(t, NewVectorZero().IsZero())
	assert.False(t, NewVector(math.NaN(), 0, 0).IsFinite())
	assert.Equal(t, a, a.ClosestPoint(b))

}

func BenchmarkAllocateVectorStructs(b *testing.B) {

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		vecs := make([]Vector, 0, 100)
		vecs = append(vecs, Vector{0, 0, 0})
		_ = vecs
	}

}

func BenchmarkMathInternalVector(b *testing.B) {

	b.StopTimer()

	maxSize := 1200

	vecs := make([]Vector, 0, maxSize)

	for i := 0; i < maxSize; i++ {
		vecs = append(vecs, Vector{X: rand.Float64(), Y: rand.Float64(), Z: rand.Float64()})
	}

	b.ReportAllocs()
	b.StartTimer()

	// Main point of benchmarking
	for z := 0; z < b.N; z++ {
		for i := 0; i < maxSize-1; i++ {
			vecs[i] = vecs[i].Add(vecs[i+1]).Cross(vecs[i+1])
		}
	}

}
