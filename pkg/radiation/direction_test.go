package radiation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/itohio/wallflux/pkg/vec3"
)

func TestSampleProducesUnitVectors(t *testing.T) {
	g := NewDirectionGenerator(1)
	for i := 0; i < 1000; i++ {
		d := g.Sample()
		assert.InDelta(t, 1.0, d.Length(), 1e-9)
	}
}

// the unbiased form's z-component (cos of polar angle) must be
// uniform on [-1,1], unlike the biased form below.
func TestSampleZComponentIsUniform(t *testing.T) {
	g := NewDirectionGenerator(42)
	const n = 200000
	const bins = 20
	counts := make([]int, bins)
	for i := 0; i < n; i++ {
		z := g.Sample().Z
		bin := int((z + 1) / 2 * bins)
		if bin == bins {
			bin = bins - 1
		}
		counts[bin]++
	}
	expected := float64(n) / bins
	sigma := math.Sqrt(expected * (1 - 1.0/bins))
	for _, c := range counts {
		assert.InDelta(t, expected, float64(c), 4*sigma+1)
	}
}

// the biased form over-samples the poles: its z-component density is
// NOT uniform, it peaks near +/-1 because beta ~ U(0,pi) makes
// cos(beta) concentrate near +/-1 more than a true uniform-on-sphere
// draw does. This test checks the two forms diverge, not any specific
// analytic shape for the biased one.
func TestSampleBiasedDivergesFromUnbiased(t *testing.T) {
	g := NewDirectionGenerator(7)
	const n = 200000
	var sumUnbiased, sumBiased float64
	for i := 0; i < n; i++ {
		sumUnbiased += math.Abs(g.Sample().Z)
		sumBiased += math.Abs(g.SampleBiased().Z)
	}
	meanUnbiased := sumUnbiased / n
	meanBiased := sumBiased / n

	// unbiased |Z| is uniform on [0,1] -> E=0.5. Biased beta~U(0,pi)
	// gives E[|cos(beta)|] = 2/pi =~ 0.637, concentrating mass near the
	// poles (|Z| close to 1) relative to the unbiased draw.
	assert.InDelta(t, 0.5, meanUnbiased, 0.01)
	assert.Greater(t, meanBiased, meanUnbiased+0.05)
}

func TestSamplesBatchLength(t *testing.T) {
	g := NewDirectionGenerator(3)
	out := g.Samples(50)
	assert.Len(t, out, 50)
}

func TestDiffuseScatterProducesUnitVectors(t *testing.T) {
	d := NewDiffuseScatter(5)
	normal := vec3.New(0, 0, 1)
	for i := 0; i < 100; i++ {
		v := d.Direction(normal)
		assert.InDelta(t, 1.0, v.Length(), 1e-9)
	}
}
