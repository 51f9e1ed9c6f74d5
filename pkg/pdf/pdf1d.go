// Package pdf implements a piecewise-linear 1-D probability density,
// its cumulative distribution, and inverse-CDF sampling, grounded on
// the teacher module's table-driven interpolation helpers
// (pkg/core/math/interpolation/lerp.go) but specialized to the
// trapezoidal-CDF construction and bin search the radiation engine's
// rejection sampler depends on.
package pdf

import (
	"errors"
	"fmt"
)

// ErrNonPositiveIntegral is returned when the area under y(x) is not
// strictly positive; a PDF cannot be normalized in that case.
var ErrNonPositiveIntegral = errors.New("pdf: non-positive integral, cannot normalize")

// PDF1D is a piecewise-linear density sampled at strictly increasing
// x, together with its normalized trapezoidal CDF.
type PDF1D struct {
	x, y, cdf []float64
}

// New constructs a PDF1D from (x, y) samples. x must be strictly
// increasing with at least 2 points; y must be non-negative and not
// identically zero.
func New(x, y []float64) (PDF1D, error) {
	if len(x) != len(y) {
		return PDF1D{}, fmt.Errorf("pdf: x and y have different lengths (%d vs %d)", len(x), len(y))
	}
	if len(x) < 2 {
		return PDF1D{}, fmt.Errorf("pdf: need at least 2 points, got %d", len(x))
	}
	for i, v := range y {
		if v < 0 {
			return PDF1D{}, fmt.Errorf("pdf: y[%d] = %g is negative", i, v)
		}
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return PDF1D{}, fmt.Errorf("pdf: x is not strictly increasing at index %d (%g <= %g)", i, x[i], x[i-1])
		}
	}

	cdf := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		cdf[i] = cdf[i-1] + 0.5*(y[i]+y[i-1])*(x[i]-x[i-1])
	}
	z := cdf[len(cdf)-1]
	if z <= 0 {
		return PDF1D{}, ErrNonPositiveIntegral
	}
	for i := range cdf {
		cdf[i] /= z
	}

	return PDF1D{
		x:   append([]float64(nil), x...),
		y:   append([]float64(nil), y...),
		cdf: cdf,
	}, nil
}

// Value evaluates the piecewise-linear density at x, returning 0
// outside [x[0], x[N-1]].
func (p PDF1D) Value(x float64) float64 {
	if x < p.x[0] || x > p.x[len(p.x)-1] {
		return 0
	}
	i := p.upperBound(x)
	if i == 0 {
		return p.y[0]
	}
	x0, x1 := p.x[i-1], p.x[i]
	y0, y1 := p.y[i-1], p.y[i]
	tau := (x - x0) / (x1 - x0)
	return y0 + tau*(y1-y0)
}

// Max is the maximum of the density samples, used by the rejection
// sampler's envelope.
func (p PDF1D) Max() float64 {
	m := p.y[0]
	for _, v := range p.y[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Sample maps u to x by linear interpolation within the CDF bin
// [cdf[i-1], cdf[i]) containing u, running from x[i] at u = cdf[i-1]
// towards x[i-1] as u approaches cdf[i]. Each bin receives its CDF
// mass, but within a bin the result is uniform rather than following
// the linear density. u is expected in [0,1); if numerical
// drift leaves u outside every bin (e.g. u very slightly >= 1), 0 is
// returned as a tolerated boundary case rather than a fatal error.
func (p PDF1D) Sample(u float64) float64 {
	for i := 1; i < len(p.cdf); i++ {
		if p.cdf[i-1] <= u && u < p.cdf[i] {
			tau := (p.cdf[i] - u) / (p.cdf[i] - p.cdf[i-1])
			return (1-tau)*p.x[i-1] + tau*p.x[i]
		}
	}
	return 0
}

// upperBound returns the index i such that p.x[i-1] <= x <= p.x[i],
// via linear scan (the tables involved are small: radial profiles and
// equilibrium grids, not fine-grained spectra).
func (p PDF1D) upperBound(x float64) int {
	for i := 1; i < len(p.x); i++ {
		if x <= p.x[i] {
			return i
		}
	}
	return len(p.x) - 1
}
