package geom

import (
	"errors"

	"github.com/itohio/wallflux/pkg/vec3"
)

// ErrEmptyMesh is returned by NewMesh when constructed with zero
// triangles: a mesh with no facets can never receive a hit, which
// spec.md §7 treats as a construction-time domain error, not a
// silently-empty engine.
var ErrEmptyMesh = errors.New("geom: mesh has zero triangles")

// Option configures a Mesh at construction time.
type Option func(*Mesh)

// WithEmissivity supplies a per-triangle emissivity array (reserved
// field, defaulting to 1.0 for every element; see Mesh.Emissivity).
// len(emissivity) must equal the number of triangles or it is
// ignored.
func WithEmissivity(emissivity []float64) Option {
	return func(m *Mesh) {
		if len(emissivity) == len(m.triangles) {
			m.emissivity = append([]float64(nil), emissivity...)
		}
	}
}

// WithTieBreakByIndex switches EvaluateHit's degenerate-tie policy
// from spec.md's default (exact distance tie -> miss) to breaking the
// tie deterministically in favor of the lowest element index. This is
// the alternative explicitly noted as a design option in spec.md §9;
// it is off by default so the package's default behavior matches the
// spec exactly.
func WithTieBreakByIndex() Option {
	return func(m *Mesh) { m.tieBreakByIndex = true }
}

// Mesh is an ordered, stable-indexed sequence of triangles.
type Mesh struct {
	triangles       []Triangle
	emissivity      []float64
	tieBreakByIndex bool
}

// NewMesh constructs a Mesh from triangles already in memory (the
// programmatic `Mesh(triangles)` constructor of spec.md §6; file
// ingest lives in the gmsh package, an external collaborator per
// spec.md §1).
func NewMesh(triangles []Triangle, opts ...Option) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	m := &Mesh{triangles: append([]Triangle(nil), triangles...)}
	m.emissivity = make([]float64, len(m.triangles))
	for i := range m.emissivity {
		m.emissivity[i] = 1.0
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Len is the number of triangles, and the required length of any
// per-element histogram or area array.
func (m *Mesh) Len() int {
	return len(m.triangles)
}

// Triangle returns the i-th triangle by its stable element index.
func (m *Mesh) Triangle(i int) Triangle {
	return m.triangles[i]
}

// Emissivity returns the per-element emissivity array. Reserved by
// spec.md §3: populated here (default 1.0, or as supplied via
// WithEmissivity) but not read by EvaluateHit or RadiationLoad.
func (m *Mesh) Emissivity() []float64 {
	return append([]float64(nil), m.emissivity...)
}

// Areas returns the per-element triangle areas, used by
// RadiationLoad.HeatFlux for normalization.
func (m *Mesh) Areas() []float64 {
	areas := make([]float64, len(m.triangles))
	for i, t := range m.triangles {
		areas[i] = t.Area()
	}
	return areas
}

// Intersect returns every raw per-triangle hit along the ray, each
// tagged with its owning element index. Most callers want
// EvaluateHit's single nearest-hit result instead; Intersect exists
// for diagnostics and testing against the per-triangle candidate set.
func (m *Mesh) Intersect(origin, direction vec3.Vec3) []HitResult {
	var hits []HitResult
	for i, t := range m.triangles {
		h := t.Intersect(origin, direction)
		if h.Hit {
			h.Element = i
			hits = append(hits, h)
		}
	}
	return hits
}

// EvaluateHit resolves the single nearest hit along the ray across
// the whole mesh. It tracks the running nearest candidate rather than
// materializing the full candidate list (§5's hot-path guidance), so
// it allocates nothing beyond the returned HitResult.
//
// Degenerate-tie rule: if more than one triangle reports a hit at
// exactly the minimum distance from origin, the result's Hit flag is
// forced to false (unless the mesh was built WithTieBreakByIndex, in
// which case the lowest-index tied triangle wins deterministically).
// An exact tie indicates the ray grazes a shared edge or vertex;
// rather than arbitrarily assigning the sample to one facet, the
// engine discards it and relies on resampling.
func (m *Mesh) EvaluateHit(origin, direction vec3.Vec3) HitResult {
	best := miss()
	bestDist := 0.0
	tied := 0

	for i, t := range m.triangles {
		h := t.Intersect(origin, direction)
		if !h.Hit {
			continue
		}
		d := origin.DistanceSqr(h.Point)
		switch {
		case tied == 0:
			best, bestDist, tied = h, d, 1
			best.Element = i
		case d < bestDist:
			best, bestDist, tied = h, d, 1
			best.Element = i
		case d == bestDist:
			tied++
			if m.tieBreakByIndex {
				// lowest index already kept: candidates arrive in
				// increasing index order, so the first writer wins.
				tied = 1
			}
		}
	}

	if tied == 0 {
		return miss()
	}
	if tied > 1 {
		best.Hit = false
	}
	return best
}

// EvaluateHits resolves the nearest hit for each (origin, direction)
// pair in parallel slices, restoring the original implementation's
// batch form (see SPEC_FULL.md §4). len(origins) must equal
// len(directions); extra elements on the longer slice are ignored.
func (m *Mesh) EvaluateHits(origins, directions []vec3.Vec3) []HitResult {
	n := len(origins)
	if len(directions) < n {
		n = len(directions)
	}
	out := make([]HitResult, n)
	for i := 0; i < n; i++ {
		out[i] = m.EvaluateHit(origins[i], directions[i])
	}
	return out
}
