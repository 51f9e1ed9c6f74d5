package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare(t *testing.T) Polygon2D {
	t.Helper()
	p, err := NewPolygon2D([]float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
	require.NoError(t, err)
	return p
}

// property 8
func TestPolygonInsideUnitSquare(t *testing.T) {
	p := unitSquare(t)

	assert.True(t, p.Inside(0.5, 0.5))
	assert.False(t, p.Inside(1.5, 0.5))
}

func TestPolygonOrientationIndependent(t *testing.T) {
	ccw, err := NewPolygon2D([]float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
	require.NoError(t, err)
	cw, err := NewPolygon2D([]float64{0, 0, 1, 1}, []float64{0, 1, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, ccw.Inside(0.5, 0.5), cw.Inside(0.5, 0.5))
}

func TestNewPolygon2DRejectsMismatchedLengths(t *testing.T) {
	_, err := NewPolygon2D([]float64{0, 1, 2}, []float64{0, 1})
	assert.Error(t, err)
}

func TestNewPolygon2DRejectsTooFewVertices(t *testing.T) {
	_, err := NewPolygon2D([]float64{0, 1}, []float64{0, 1})
	assert.Error(t, err)
}
