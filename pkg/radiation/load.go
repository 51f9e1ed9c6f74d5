// Package radiation implements the Monte Carlo emission-and-tracing
// loop: direction sampling, the rejection-sampled emission volume, and
// the histogram/heat-flux accumulation driving it, grounded on
// original_source/include/wallLoad/core/{directionGenerator,
// radiationDistribution,radiationLoad,diffuseScatter}.hpp and on the
// teacher module's worker fan-out idiom
// (pkg/core/pipeline/steps/fan.out.go) generalized from a channel
// pipeline stage to an errgroup-based sample-count fan-out.
package radiation

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itohio/wallflux/pkg/geom"
	"github.com/itohio/wallflux/pkg/logger"
)

var log = logger.Component("radiation")

// RadiationLoad owns a mesh and an emission distribution, and
// accumulates a per-element hit histogram across Monte Carlo samples.
type RadiationLoad struct {
	mesh         *geom.Mesh
	distribution *RadiationDistribution
	seed         int64

	histogram []uint64
}

// NewRadiationLoad constructs a RadiationLoad over mesh and
// distribution. seed seeds the derivation of per-worker RNG streams
// in AddSamples; the same seed with the same mesh/distribution
// reproduces identical histograms (property: reproducibility).
func NewRadiationLoad(mesh *geom.Mesh, distribution *RadiationDistribution, seed int64) *RadiationLoad {
	return &RadiationLoad{
		mesh:         mesh,
		distribution: distribution,
		seed:         seed,
		histogram:    make([]uint64, mesh.Len()),
	}
}

// AddSamples runs until n successful hits have been recorded (misses
// do not count toward n), splitting the target across workers
// deterministic per-worker RNG streams. workers <= 1 runs the
// single-threaded loop directly. The histogram is only written to
// after all workers complete: no partially-updated state is ever
// visible to a concurrent reader of HeatFlux/TotalHits.
func (l *RadiationLoad) AddSamples(ctx context.Context, n int, workers int) error {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()
	log.Info().Int("n", n).Int("workers", workers).Msg("addSamples: start")
	defer func() {
		log.Info().Int("n", n).Str("elapsed", time.Since(start).String()).Msg("addSamples: done")
	}()

	if workers == 1 {
		shadow := make([]uint64, len(l.histogram))
		if err := l.runWorker(derivedSeeds(l.seed, 1)[0], n, shadow); err != nil {
			return err
		}
		for i, v := range shadow {
			l.histogram[i] += v
		}
		return nil
	}

	shadows := make([][]uint64, workers)
	seeds := derivedSeeds(l.seed, workers)
	counts := splitCount(n, workers)

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		shadows[w] = make([]uint64, len(l.histogram))
		g.Go(func() error {
			return l.runWorker(seeds[w], counts[w], shadows[w])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, shadow := range shadows {
		for i, v := range shadow {
			l.histogram[i] += v
		}
	}
	return nil
}

// runWorker draws samples with its own distribution/direction RNG
// streams (seeded from seed, independent of l.distribution's shared
// stream) until count hits have landed in shadow.
func (l *RadiationLoad) runWorker(seed int64, count int, shadow []uint64) error {
	dist := l.distribution.withSeed(seed)
	dirGen := NewDirectionGenerator(seed ^ int64(0x9E3779B97F4A7C15))

	hits := 0
	for hits < count {
		o, err := dist.SampleToroidalPoint()
		if err != nil {
			return err
		}
		d := dirGen.Sample()
		h := l.mesh.EvaluateHit(o, d)
		if h.Hit {
			shadow[h.Element]++
			hits++
		}
	}
	return nil
}

// Clear resets the histogram to zero; the mesh and distribution are
// untouched.
func (l *RadiationLoad) Clear() {
	for i := range l.histogram {
		l.histogram[i] = 0
	}
}

// TotalHits is the sum of the histogram.
func (l *RadiationLoad) TotalHits() uint64 {
	var total uint64
	for _, v := range l.histogram {
		total += v
	}
	return total
}

// Histogram returns a defensive copy of the per-element hit counts.
func (l *RadiationLoad) Histogram() []uint64 {
	return append([]uint64(nil), l.histogram...)
}

// Mesh returns the underlying mesh.
func (l *RadiationLoad) Mesh() *geom.Mesh { return l.mesh }

// HeatFlux returns the per-element heat flux for the given total
// radiated power: heatFlux[i] = (histogram[i]/totalHits) * PTotal /
// area[i]. If no hits have been recorded, a zero-filled array is
// returned rather than an error.
func (l *RadiationLoad) HeatFlux(pTotal float64) []float64 {
	out := make([]float64, len(l.histogram))
	total := l.TotalHits()
	if total == 0 {
		return out
	}
	areas := l.mesh.Areas()
	for i, h := range l.histogram {
		out[i] = (float64(h) / float64(total)) * pTotal / areas[i]
	}
	return out
}

// derivedSeeds expands a single master seed into `workers` independent
// stream seeds via a dedicated RNG, so reruns with the same master
// seed reproduce the same per-worker streams regardless of goroutine
// scheduling order.
func derivedSeeds(seed int64, workers int) []int64 {
	r := rand.New(rand.NewSource(seed))
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = r.Int63()
	}
	return seeds
}

// splitCount divides n samples as evenly as possible across workers,
// distributing the remainder to the first workers.
func splitCount(n, workers int) []int {
	base := n / workers
	rem := n % workers
	counts := make([]int, workers)
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}
