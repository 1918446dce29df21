package profiler

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stats is one reporting interval's worth of frame and memory statistics.
type Stats struct {
	FPS          float64
	DrawsPerSec  float64
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
	FrameErrors  int
	IntervalSecs float64
}

// Profiler tracks frame rate, draw count and memory statistics for performance monitoring.
// Outputs stats to its logger at a configurable interval.
// Safe for concurrent use: the render loop ticks it while input goroutines may toggle it.
type Profiler struct {
	mu *sync.Mutex

	logger         *zap.Logger
	frameCount     int
	drawCount      int
	frameErrors    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler reporting to logger every interval.
// A nil logger disables output; an interval <= 0 defaults to 1 second.
//
// Parameters:
//   - logger: the destination for stats lines
//   - interval: the reporting interval
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *zap.Logger, interval time.Duration) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		mu:             &sync.Mutex{},
		logger:         logger,
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Tick should be called once per frame with the number of draw calls the frame issued.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - draws: draw calls issued this frame
//   - frameErr: whether the frame failed
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(draws int, frameErr bool) bool {
	stats, ok := p.tick(time.Now(), draws, frameErr)
	if !ok {
		return false
	}
	p.logger.Info("profiler",
		zap.Float64("fps", stats.FPS),
		zap.Float64("drawsPerSec", stats.DrawsPerSec),
		zap.Float64("heapMB", stats.HeapMB),
		zap.Float64("allocRateMBps", stats.AllocRateMB),
		zap.Uint32("gc", stats.GCCount),
		zap.Uint64("lastPauseUs", stats.LastPauseUs),
		zap.Uint64("maxPauseUs", stats.MaxPauseUs),
		zap.Float64("sysMB", stats.SysMB),
		zap.Int("frameErrors", stats.FrameErrors),
	)
	return true
}

// tick accumulates one frame and returns the interval's stats once it has elapsed at now.
func (p *Profiler) tick(now time.Time, draws int, frameErr bool) (Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	p.drawCount += draws
	if frameErr {
		p.frameErrors++
	}
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	secs := elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)

	stats := Stats{
		FPS:          float64(p.frameCount) / secs,
		DrawsPerSec:  float64(p.drawCount) / secs,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:        float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / secs,
		GCCount:      p.memStats.NumGC,
		FrameErrors:  p.frameErrors,
		IntervalSecs: secs,
	}

	gcCount := p.memStats.NumGC
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.frameCount = 0
	p.drawCount = 0
	p.frameErrors = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats, true
}
