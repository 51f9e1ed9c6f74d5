package pdf

import "fmt"

// RadiationProfile is a radial (rho, p(rho)) emissivity table.
type RadiationProfile struct {
	rho, p []float64
}

// NewRadiationProfile validates and stores the profile table. rho
// must be strictly increasing with at least 2 points; p must be
// non-negative.
func NewRadiationProfile(rho, p []float64) (RadiationProfile, error) {
	if len(rho) != len(p) {
		return RadiationProfile{}, fmt.Errorf("pdf: rho and p have different lengths (%d vs %d)", len(rho), len(p))
	}
	if len(rho) < 2 {
		return RadiationProfile{}, fmt.Errorf("pdf: need at least 2 points, got %d", len(rho))
	}
	for i := 1; i < len(rho); i++ {
		if rho[i] <= rho[i-1] {
			return RadiationProfile{}, fmt.Errorf("pdf: rho is not strictly increasing at index %d (%g <= %g)", i, rho[i], rho[i-1])
		}
	}
	for i, v := range p {
		if v < 0 {
			return RadiationProfile{}, fmt.Errorf("pdf: p[%d] = %g is negative", i, v)
		}
	}
	return RadiationProfile{
		rho: append([]float64(nil), rho...),
		p:   append([]float64(nil), p...),
	}, nil
}

// ToPDF computes the trapezoidal integral of p over rho, divides p by
// it, and returns the resulting normalized PDF1D.
func (r RadiationProfile) ToPDF() (PDF1D, error) {
	integral := 0.0
	for i := 1; i < len(r.rho); i++ {
		integral += 0.5 * (r.p[i] + r.p[i-1]) * (r.rho[i] - r.rho[i-1])
	}
	if integral <= 0 {
		return PDF1D{}, ErrNonPositiveIntegral
	}
	normalized := make([]float64, len(r.p))
	for i, v := range r.p {
		normalized[i] = v / integral
	}
	return New(r.rho, normalized)
}
