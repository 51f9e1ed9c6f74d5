package vec3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddDoesNotMutateOperands(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	got := a.Add(b)

	assert.Equal(t, Vec3{5, 7, 9}, got)
	assert.Equal(t, Vec3{1, 2, 3}, a)
	assert.Equal(t, Vec3{4, 5, 6}, b)
}

func TestCrossIsRightHanded(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)

	got := x.Cross(y)

	assert.Equal(t, New(0, 0, 1), got)
}

func TestNormalizedProducesUnitVector(t *testing.T) {
	v := New(3, 0, 4)

	got := v.Normalized()

	assert.InDelta(t, 1.0, got.Length(), 1e-12)
	assert.InDelta(t, 0.6, got.X, 1e-12)
	assert.InDelta(t, 0.8, got.Z, 1e-12)
}

func TestNormalizedOfZeroIsZero(t *testing.T) {
	got := Zero.Normalized()
	assert.Equal(t, Zero, got)
}

func TestDistanceMatchesEuclideanNorm(t *testing.T) {
	a := New(0, 0, 0)
	b := New(1, 1, 1)

	assert.InDelta(t, math.Sqrt(3), a.Distance(b), 1e-12)
}

func TestAngleBetweenOrthogonalVectorsIsHalfPi(t *testing.T) {
	a := New(1, 0, 0)
	b := New(0, 2, 0)

	assert.InDelta(t, math.Pi/2, a.Angle(b), 1e-12)
}

func TestRotateZByHalfPiMapsXOntoY(t *testing.T) {
	v := New(1, 0, 0)

	got := v.RotateZ(math.Pi / 2)

	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, 1, got.Y, 1e-9)
	assert.InDelta(t, 0, got.Z, 1e-9)
}

func TestRotateXByHalfPiMapsYOntoZ(t *testing.T) {
	v := New(0, 1, 0)

	got := v.RotateX(math.Pi / 2)

	assert.InDelta(t, 0, got.Y, 1e-9)
	assert.InDelta(t, 1, got.Z, 1e-9)
}

func TestRotateYByHalfPiMapsZOntoX(t *testing.T) {
	v := New(0, 0, 1)

	got := v.RotateY(math.Pi / 2)

	assert.InDelta(t, 1, got.X, 1e-9)
	assert.InDelta(t, 0, got.Z, 1e-9)
}
