package radiation

import (
	"math"
	"math/rand"

	"github.com/itohio/wallflux/pkg/vec3"
)

// DirectionGenerator draws unit vectors, one per worker RNG stream.
// The zero value is not usable; construct with NewDirectionGenerator.
type DirectionGenerator struct {
	rng *rand.Rand
}

// NewDirectionGenerator builds a generator seeded from seed. Each
// worker in a concurrent run should own its own generator with a
// distinct seed, never a shared one.
func NewDirectionGenerator(seed int64) *DirectionGenerator {
	return &DirectionGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Sample draws a direction uniformly distributed over the unit
// sphere: u is drawn in [-1,1], v in [0,2*pi), and the result is
// (sqrt(1-u^2)*cos(v), sqrt(1-u^2)*sin(v), u). This is the
// design-correct, unbiased form.
func (g *DirectionGenerator) Sample() vec3.Vec3 {
	u := 2*g.rng.Float64() - 1
	v := 2 * math.Pi * g.rng.Float64()
	s := math.Sqrt(1 - u*u)
	return vec3.New(s*math.Cos(v), s*math.Sin(v), u)
}

// SampleBiased draws alpha in [0,2*pi) and beta in [0,pi) independently
// and returns (sin(beta)*cos(alpha), sin(beta)*sin(alpha), cos(beta)).
// This over-samples the poles and is NOT uniform on the sphere; it is
// kept only for comparison against the unbiased Sample, never called
// by RadiationLoad.
func (g *DirectionGenerator) SampleBiased() vec3.Vec3 {
	alpha := 2 * math.Pi * g.rng.Float64()
	beta := math.Pi * g.rng.Float64()
	sinB, cosB := math.Sincos(beta)
	return vec3.New(sinB*math.Cos(alpha), sinB*math.Sin(alpha), cosB)
}

// Samples draws n directions via Sample.
func (g *DirectionGenerator) Samples(n int) []vec3.Vec3 {
	out := make([]vec3.Vec3, n)
	for i := range out {
		out[i] = g.Sample()
	}
	return out
}

// DiffuseScatter produces a cosine-distributed candidate direction
// off a surface, grounded on diffuseScatter.hpp. It is implemented
// faithfully, including the original's quirk of not actually rotating
// the candidate direction into the normal's local frame; the normal
// is accepted but unused, exactly as upstream. RadiationLoad never
// calls this type (reflection is out of scope for the current
// tracer), so the quirk has no observable effect on results.
type DiffuseScatter struct {
	rng *rand.Rand
}

// NewDiffuseScatter builds a scatterer seeded from seed.
func NewDiffuseScatter(seed int64) *DiffuseScatter {
	return &DiffuseScatter{rng: rand.New(rand.NewSource(seed))}
}

// Direction draws a cosine-weighted candidate direction. normal is
// accepted for interface parity with a future reflection pass but is
// not consumed.
func (d *DiffuseScatter) Direction(normal vec3.Vec3) vec3.Vec3 {
	_ = normal
	alpha := 2 * math.Pi * d.rng.Float64()
	beta := math.Asin(d.rng.Float64())
	sinB, cosB := math.Sincos(beta)
	return vec3.New(sinB*math.Cos(alpha), sinB*math.Sin(alpha), cosB)
}
