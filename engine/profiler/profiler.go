package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one profiler report.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger *slog.Logger

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Stats
}

// NewProfiler creates a new Profiler reporting once per interval.
// A non-positive interval defaults to 1 second; a nil logger uses slog.Default.
//
// Parameters:
//   - logger: destination for reports
//   - interval: time between reports
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger, interval time.Duration) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		logger:         logger,
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	return p.tickAt(time.Now())
}

// Last returns the most recent report.
//
// Returns:
//   - Stats: the last logged statistics, zero before the first report
func (p *Profiler) Last() Stats {
	return p.last
}

func (p *Profiler) tickAt(now time.Time) bool {
	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)

	s := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.logger.Info("profiler",
		"fps", s.FPS,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb_s", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_pause_us", s.LastPauseUs,
		"gc_max_pause_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
