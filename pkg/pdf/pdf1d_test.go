package pdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

// property 1
func TestNewNormalizesCDFMonotoneAndBounded(t *testing.T) {
	p, err := New([]float64{0, 1, 2, 3}, []float64{1, 2, 0, 1})
	require.NoError(t, err)

	assert.InDelta(t, 0, p.cdf[0], 1e-12)
	assert.InDelta(t, 1, p.cdf[len(p.cdf)-1], 1e-12)
	for i := 1; i < len(p.cdf); i++ {
		assert.GreaterOrEqual(t, p.cdf[i], p.cdf[i-1])
	}
}

func TestNewRejectsNonIncreasingX(t *testing.T) {
	_, err := New([]float64{0, 1, 1}, []float64{1, 1, 1})
	assert.Error(t, err)
}

func TestNewRejectsAllZeroY(t *testing.T) {
	_, err := New([]float64{0, 1, 2}, []float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrNonPositiveIntegral)
}

// S4
func TestSampleTriangularProfile(t *testing.T) {
	p, err := New([]float64{0, 1, 2}, []float64{0, 1, 0})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, p.Max(), 1e-12)

	// cdf = [0, 0.5, 1]; u=0.25 falls in bin [0,0.5) of x=[0,1], tau=0.5
	// -> 0.5. u=0.75 falls in bin [0.5,1) of x=[1,2], tau=0.5 -> 1.5.
	// Linear interpolation within the CDF bin, not exact quadratic
	// inversion, matching probabilityDistribution.hpp's get_random_number.
	got := p.Sample(0.25)
	want := 0.5
	assert.InDelta(t, want, got, 1e-9)

	got2 := p.Sample(0.75)
	want2 := 1.5
	assert.InDelta(t, want2, got2, 1e-9)
}

func TestValueOutsideSupportIsZero(t *testing.T) {
	p, err := New([]float64{0, 1, 2}, []float64{0, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.Value(-1))
	assert.Equal(t, 0.0, p.Value(3))
	assert.InDelta(t, 1.0, p.Value(1), 1e-12)
}

// property 2: large-sample reproduction of y(x)=x on [0,1].
func TestSampleReproducesLinearDistribution(t *testing.T) {
	p, err := New([]float64{0, 1}, []float64{0, 1})
	require.NoError(t, err)

	const bins = 20
	const n = 200000
	counts := make([]float64, bins)

	rngState := uint64(88172645463325252)
	nextUniform := func() float64 {
		// xorshift64*, deterministic and allocation-free; good enough
		// for a reproducible statistical smoke test.
		rngState ^= rngState << 13
		rngState ^= rngState >> 7
		rngState ^= rngState << 17
		return float64(rngState%1_000_000_007) / 1_000_000_007
	}

	for i := 0; i < n; i++ {
		x := p.Sample(nextUniform())
		bin := int(x * bins)
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
	}

	// expected count in bin k for density y(x)=x (normalized to
	// integral 1 already, since p/(int p) = 2x over [0,1])... here we
	// fed y=x directly, New renormalizes so density integrates to 1.
	expected := make([]float64, bins)
	for k := range expected {
		lo, hi := float64(k)/bins, float64(k+1)/bins
		// integral of 2x over [lo,hi] = hi^2 - lo^2
		expected[k] = (hi*hi - lo*lo) * n
	}

	mean := stat.Mean(expected, nil)
	require.Greater(t, mean, 0.0)

	for k := range counts {
		sigma := math.Sqrt(expected[k])
		assert.InDelta(t, expected[k], counts[k], 4*sigma+1, "bin %d", k)
	}
}
