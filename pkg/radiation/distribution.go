package radiation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/itohio/wallflux/pkg/equilibrium"
	"github.com/itohio/wallflux/pkg/geom"
	"github.com/itohio/wallflux/pkg/pdf"
	"github.com/itohio/wallflux/pkg/vec3"
)

// ErrRejectionStall is returned when the rejection sampler cannot find
// an acceptable point within maxRejectionTrials attempts, e.g. because
// a contour excludes the entire emission volume or the profile is
// zero everywhere the envelope allows.
var ErrRejectionStall = errors.New("radiation: rejection sampler stalled, no acceptable point found")

// maxRejectionTrials bounds a single SampleToroidalPoint/SamplePoloidalPoint
// call so a degenerate configuration (all probabilities zero) is
// surfaced as ErrRejectionStall instead of hanging forever.
const maxRejectionTrials = 10_000_000

// Option configures a RadiationDistribution.
type Option func(*RadiationDistribution)

// WithContour restricts accepted emission points to those inside the
// given poloidal contour.
func WithContour(contour geom.Polygon2D) Option {
	return func(d *RadiationDistribution) {
		d.hasContour = true
		d.contour = contour
	}
}

// WithR0Envelope reverts the rejection envelope to the original
// source's K = R0*M, instead of the strictly-dominating K = Rmax*M
// used by default. R0*M only dominates sup(P) when R0 >= Rmax, which
// does not generally hold; this option exists for bit-for-bit parity
// with the original physics code, not for general correctness.
func WithR0Envelope() Option {
	return func(d *RadiationDistribution) {
		d.envelopeAtR0 = true
	}
}

// RadiationDistribution is a rejection sampler over the emission
// volume of a tokamak, weighted by the toroidal Jacobian and the
// equilibrium's radial emissivity profile.
type RadiationDistribution struct {
	equi    *equilibrium.Equilibrium
	density pdf.PDF1D
	max     float64

	hasContour bool
	contour    geom.Polygon2D

	envelopeAtR0 bool

	rng *rand.Rand
}

// New constructs a RadiationDistribution from an equilibrium, a
// radiation profile, a seed, and optional contour/envelope overrides.
func New(equi *equilibrium.Equilibrium, profile pdf.RadiationProfile, seed int64, opts ...Option) (*RadiationDistribution, error) {
	density, err := profile.ToPDF()
	if err != nil {
		return nil, err
	}

	d := &RadiationDistribution{
		equi:    equi,
		density: density,
		max:     density.Max(),
		rng:     rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// withSeed returns a shallow copy of d with a fresh, independently
// seeded RNG stream, sharing the (immutable after construction)
// equilibrium, density, and contour. Used to give each AddSamples
// worker its own stream without re-deriving the PDF.
func (d *RadiationDistribution) withSeed(seed int64) *RadiationDistribution {
	clone := *d
	clone.rng = rand.New(rand.NewSource(seed))
	return &clone
}

// envelope returns the rejection envelope K used by the acceptance
// test u < P/K: Rmax*M by default, which bounds P from above, or R0*M
// under WithR0Envelope, which bounds P only where R <= R0.
func (d *RadiationDistribution) envelope() float64 {
	if d.envelopeAtR0 {
		return d.equi.R0() * d.max
	}
	return d.equi.Rmax() * d.max
}

// weight evaluates P(R,z) = p_hat(rho(R,z)) * R, the toroidal Jacobian
// weighted emission density, zeroing it out when a contour is set and
// (R,z) falls outside it.
func (d *RadiationDistribution) weight(R, z float64) float64 {
	rho := d.equi.Rho(R, z)
	p := d.density.Value(rho) * R
	if d.hasContour && !d.contour.Inside(R, z) {
		return 0
	}
	return p
}

// SampleToroidalPoint draws one accepted emission point in full 3-D
// toroidal coordinates (R*cos(phi), R*sin(phi), z). Returns
// ErrRejectionStall if no point is accepted within maxRejectionTrials
// attempts.
func (d *RadiationDistribution) SampleToroidalPoint() (vec3.Vec3, error) {
	K := d.envelope()
	for trial := 0; trial < maxRejectionTrials; trial++ {
		R := uniform(d.rng, d.equi.Rmin(), d.equi.Rmax())
		z := uniform(d.rng, d.equi.Zmin(), d.equi.Zmax())
		u := d.rng.Float64()

		P := d.weight(R, z)
		if u < P/K {
			phi := 2 * math.Pi * d.rng.Float64()
			return vec3.New(R*math.Cos(phi), R*math.Sin(phi), z), nil
		}
	}
	return vec3.Zero, ErrRejectionStall
}

// SamplePoloidalPoint is identical to SampleToroidalPoint but skips
// the toroidal rotation, returning (R, 0, z).
func (d *RadiationDistribution) SamplePoloidalPoint() (vec3.Vec3, error) {
	K := d.envelope()
	for trial := 0; trial < maxRejectionTrials; trial++ {
		R := uniform(d.rng, d.equi.Rmin(), d.equi.Rmax())
		z := uniform(d.rng, d.equi.Zmin(), d.equi.Zmax())
		u := d.rng.Float64()

		P := d.weight(R, z)
		if u < P/K {
			return vec3.New(R, 0, z), nil
		}
	}
	return vec3.Zero, ErrRejectionStall
}

// GenerateToroidalPoints draws n accepted toroidal points, stopping at
// the first ErrRejectionStall.
func (d *RadiationDistribution) GenerateToroidalPoints(n int) ([]vec3.Vec3, error) {
	out := make([]vec3.Vec3, n)
	for i := range out {
		p, err := d.SampleToroidalPoint()
		if err != nil {
			return nil, fmt.Errorf("point %d of %d: %w", i, n, err)
		}
		out[i] = p
	}
	return out, nil
}

// GeneratePoints draws n accepted poloidal points, stopping at the
// first ErrRejectionStall.
func (d *RadiationDistribution) GeneratePoints(n int) ([]vec3.Vec3, error) {
	out := make([]vec3.Vec3, n)
	for i := range out {
		p, err := d.SamplePoloidalPoint()
		if err != nil {
			return nil, fmt.Errorf("point %d of %d: %w", i, n, err)
		}
		out[i] = p
	}
	return out, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
