package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/itohio/wallflux/pkg/vec3"
)

func squareMeshAt(z float64) []Triangle {
	a := vec3.New(0, 0, z)
	b := vec3.New(1, 0, z)
	c := vec3.New(1, 1, z)
	d := vec3.New(0, 1, z)
	return []Triangle{New(a, b, c), New(a, c, d)}
}

func TestNewMeshRejectsEmpty(t *testing.T) {
	_, err := NewMesh(nil)
	assert.ErrorIs(t, err, ErrEmptyMesh)
}

// S5 / property 5
func TestEvaluateHitReturnsNearerTriangle(t *testing.T) {
	tris := append(squareMeshAt(0), squareMeshAt(-1)...)
	m, err := NewMesh(tris)
	require.NoError(t, err)

	// (0.75,0.25) lies inside one facet of each square, off the shared
	// diagonal, so no tie arises within either plane.
	h := m.EvaluateHit(vec3.New(0.75, 0.25, 2), vec3.New(0, 0, -1))

	require.True(t, h.Hit)
	assert.InDelta(t, 0, h.Point.Z, 1e-9)
	assert.Less(t, h.Element, 2)
}

// property 6: coplanar triangles sharing an edge, ray hits the shared
// edge exactly -> miss.
func TestEvaluateHitSharedEdgeTieMisses(t *testing.T) {
	a := vec3.New(0, 0, 0)
	b := vec3.New(1, 0, 0)
	c := vec3.New(1, 1, 0)
	d := vec3.New(0, 1, 0)
	// two triangles sharing edge (a,c); ray aimed exactly at the
	// midpoint of that shared edge intersects both facets at the same
	// distance.
	tris := []Triangle{New(a, b, c), New(a, c, d)}
	m, err := NewMesh(tris)
	require.NoError(t, err)

	mid := a.Add(c).Scale(0.5)
	origin := mid.Add(vec3.New(0, 0, 1))
	h := m.EvaluateHit(origin, vec3.New(0, 0, -1))

	assert.False(t, h.Hit)
}

func TestEvaluateHitTieBreakByIndexOption(t *testing.T) {
	a := vec3.New(0, 0, 0)
	b := vec3.New(1, 0, 0)
	c := vec3.New(1, 1, 0)
	d := vec3.New(0, 1, 0)
	tris := []Triangle{New(a, b, c), New(a, c, d)}
	m, err := NewMesh(tris, WithTieBreakByIndex())
	require.NoError(t, err)

	mid := a.Add(c).Scale(0.5)
	origin := mid.Add(vec3.New(0, 0, 1))
	h := m.EvaluateHit(origin, vec3.New(0, 0, -1))

	assert.True(t, h.Hit)
	assert.Equal(t, 0, h.Element)
}

func TestEvaluateHitNoTriangleHitIsMiss(t *testing.T) {
	m, err := NewMesh(squareMeshAt(0))
	require.NoError(t, err)

	h := m.EvaluateHit(vec3.New(5, 5, 2), vec3.New(0, 0, -1))

	assert.False(t, h.Hit)
	assert.Equal(t, -1, h.Element)
}

// the two facets of the unit square have areas summing to 1.
func TestAreasSumToUnitSquare(t *testing.T) {
	m, err := NewMesh(squareMeshAt(0))
	require.NoError(t, err)

	areas := m.Areas()
	require.Len(t, areas, 2)
	sum := areas[0] + areas[1]
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestEmissivityDefaultsToOne(t *testing.T) {
	m, err := NewMesh(squareMeshAt(0))
	require.NoError(t, err)

	for _, e := range m.Emissivity() {
		assert.Equal(t, 1.0, e)
	}
}

func TestEvaluateHitsBatch(t *testing.T) {
	m, err := NewMesh(squareMeshAt(0))
	require.NoError(t, err)

	origins := []vec3.Vec3{vec3.New(0.7, 0.2, 1), vec3.New(5, 5, 1)}
	dirs := []vec3.Vec3{vec3.New(0, 0, -1), vec3.New(0, 0, -1)}

	hits := m.EvaluateHits(origins, dirs)

	require.Len(t, hits, 2)
	assert.True(t, hits[0].Hit)
	assert.False(t, hits[1].Hit)
}
