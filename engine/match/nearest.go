package match

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// NearestSteps is the number of intervals NearestT samples between t=0 and t=1.
	NearestSteps = 1000

	// nearestChunk is the number of samples one pool task scans.
	nearestChunk = 125
)

// chunkResult is the best sample found by one pool task.
type chunkResult struct {
	index   int
	distSqr float64
}

// scanSamples returns the sample in [from, to) closest to p. Earlier samples win ties.
func scanSamples(r Route, p mgl64.Vec3, from, to int) chunkResult {
	best := chunkResult{index: from, distSqr: math.Inf(1)}
	for i := from; i < to; i++ {
		d := r.Point(float64(i) / NearestSteps).Sub(p).LenSqr()
		if d < best.distSqr {
			best = chunkResult{index: i, distSqr: d}
		}
	}
	return best
}

// NearestT returns the sampled route parameter whose point is closest to p.
// Samples are taken at every 1/NearestSteps from 0 to 1 inclusive. When pool is non-nil the
// samples are split into chunks scanned concurrently; the result is identical to a sequential
// scan, including ties which resolve to the smallest t.
//
// Parameters:
//   - pool: worker pool for the chunk scans, or nil to scan on the calling goroutine
//   - r: the route to search
//   - p: the world-space point
//
// Returns:
//   - float64: the nearest sampled parameter in [0, 1]
func NearestT(pool worker.DynamicWorkerPool, r Route, p mgl64.Vec3) float64 {
	const samples = NearestSteps + 1
	if pool == nil {
		return float64(scanSamples(r, p, 0, samples).index) / NearestSteps
	}

	chunks := (samples + nearestChunk - 1) / nearestChunk
	results := make([]chunkResult, chunks)

	// pool.Wait blocks until workers idle out, so a WaitGroup is the per-call barrier.
	var wg sync.WaitGroup
	for c := range chunks {
		from := c * nearestChunk
		to := min(from+nearestChunk, samples)
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: c,
			Do: func() (any, error) {
				defer wg.Done()
				results[c] = scanSamples(r, p, from, to)
				return nil, nil
			},
		})
	}
	wg.Wait()

	best := results[0]
	for _, res := range results[1:] {
		if res.distSqr < best.distSqr {
			best = res
		}
	}
	return float64(best.index) / NearestSteps
}
