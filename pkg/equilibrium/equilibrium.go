// Package equilibrium holds a reconstructed poloidal magnetic flux
// ψ(R,z) on a rectangular grid and the bilinear interpolation and
// normalized-radius formula built on top of it, grounded on the
// teacher module's grid indexing style
// (pkg/core/math/grid/raycast.go) and its flat-array lerp helper
// (pkg/core/math/interpolation/lerp.go), generalized from a 1-D
// occupancy ray cast to a 2-D scalar field lookup.
package equilibrium

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerate is returned when ψ_axis equals ψ_edge: the ρ formula
// divides by (ψ_axis - ψ_edge) and cannot be evaluated.
var ErrDegenerate = errors.New("equilibrium: psiAxis equals psiEdge, degenerate equilibrium")

// Equilibrium is a rectangular (R,z) grid of poloidal flux ψ, with the
// scalars needed to derive a normalized flux radius from it.
type Equilibrium struct {
	comment string

	r, z []float64
	psi  []float64 // NR*Nz, row-major, R fastest

	r0, z0           float64
	psiAxis, psiEdge float64
	btor, ip         float64
}

// New constructs an Equilibrium from an explicit (R,z) grid and a
// row-major (R fastest) ψ array. It is the shared validation path
// behind the eqdsk ingest and behind synthetic equilibria built
// directly by tests.
func New(comment string, r, z []float64, psi []float64, r0, z0, psiAxis, psiEdge, btor, ip float64) (*Equilibrium, error) {
	if len(r) < 2 || len(z) < 2 {
		return nil, fmt.Errorf("equilibrium: grid needs at least 2 points per axis, got NR=%d Nz=%d", len(r), len(z))
	}
	if len(psi) != len(r)*len(z) {
		return nil, fmt.Errorf("equilibrium: psi has %d values, want NR*Nz=%d", len(psi), len(r)*len(z))
	}
	for i := 1; i < len(r); i++ {
		if r[i] <= r[i-1] {
			return nil, fmt.Errorf("equilibrium: R grid is not strictly increasing at index %d", i)
		}
	}
	for j := 1; j < len(z); j++ {
		if z[j] <= z[j-1] {
			return nil, fmt.Errorf("equilibrium: z grid is not strictly increasing at index %d", j)
		}
	}
	if psiAxis == psiEdge {
		return nil, ErrDegenerate
	}

	return &Equilibrium{
		comment: comment,
		r:       append([]float64(nil), r...),
		z:       append([]float64(nil), z...),
		psi:     append([]float64(nil), psi...),
		r0:      r0,
		z0:      z0,
		psiAxis: psiAxis,
		psiEdge: psiEdge,
		btor:    btor,
		ip:      ip,
	}, nil
}

func (e *Equilibrium) Comment() string { return e.comment }

// Shape returns (NR, Nz).
func (e *Equilibrium) Shape() (int, int) { return len(e.r), len(e.z) }

func (e *Equilibrium) R() []float64 { return append([]float64(nil), e.r...) }
func (e *Equilibrium) Z() []float64 { return append([]float64(nil), e.z...) }

func (e *Equilibrium) R0() float64      { return e.r0 }
func (e *Equilibrium) Z0() float64      { return e.z0 }
func (e *Equilibrium) PsiAxis() float64 { return e.psiAxis }
func (e *Equilibrium) PsiEdge() float64 { return e.psiEdge }
func (e *Equilibrium) Btor() float64    { return e.btor }
func (e *Equilibrium) Ip() float64      { return e.ip }

func (e *Equilibrium) Rmin() float64 { return e.r[0] }
func (e *Equilibrium) Rmax() float64 { return e.r[len(e.r)-1] }
func (e *Equilibrium) Zmin() float64 { return e.z[0] }
func (e *Equilibrium) Zmax() float64 { return e.z[len(e.z)-1] }

// at returns the stored ψ value at grid indices (i,j), R fastest.
func (e *Equilibrium) at(i, j int) float64 {
	return e.psi[j*len(e.r)+i]
}

// Psi bilinearly interpolates ψ at (R,z), returning 0 when the point
// lies outside the grid rectangle. This is a deliberate silent
// out-of-domain return, not an error: callers (the rejection sampler)
// rely on it to reject the point.
func (e *Equilibrium) Psi(R, z float64) float64 {
	if R < e.Rmin() || R > e.Rmax() || z < e.Zmin() || z > e.Zmax() {
		return 0
	}

	i := upperBound(e.r, R)
	j := upperBound(e.z, z)
	if i == 0 {
		i = 1
	}
	if j == 0 {
		j = 1
	}

	r0, r1 := e.r[i-1], e.r[i]
	z0, z1 := e.z[j-1], e.z[j]

	tr := 0.0
	if r1 != r0 {
		tr = (R - r0) / (r1 - r0)
	}
	tz := 0.0
	if z1 != z0 {
		tz = (z - z0) / (z1 - z0)
	}

	q00 := e.at(i-1, j-1)
	q10 := e.at(i, j-1)
	q01 := e.at(i-1, j)
	q11 := e.at(i, j)

	lo := q00 + (q10-q00)*tr
	hi := q01 + (q11-q01)*tr
	return lo + (hi-lo)*tz
}

// Rho returns the normalized poloidal flux radius
// sqrt((psiAxis - psi(R,z)) / (psiAxis - psiEdge)), clamping the
// radicand to [0, +inf) to absorb interpolation noise at the
// boundary. Points outside the grid yield Psi=0 and are left to the
// caller (the rejection sampler silently discards them via Rho
// falling outside the profile's support).
func (e *Equilibrium) Rho(R, z float64) float64 {
	psi := e.Psi(R, z)
	radicand := (e.psiAxis - psi) / (e.psiAxis - e.psiEdge)
	if radicand < 0 {
		radicand = 0
	}
	return math.Sqrt(radicand)
}

// upperBound returns the index i such that x[i-1] <= v <= x[i], via
// linear scan (grid sizes here are small: tens to low hundreds of
// points per axis).
func upperBound(x []float64, v float64) int {
	for i := 1; i < len(x); i++ {
		if v <= x[i] {
			return i
		}
	}
	return len(x) - 1
}
