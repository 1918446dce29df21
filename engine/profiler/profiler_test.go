package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTick_ReportsPerInterval(t *testing.T) {
	p := NewProfiler(nil, time.Second)
	start := p.lastTime

	for i := 1; i <= 59; i++ {
		_, ok := p.tick(start.Add(time.Duration(i)*time.Millisecond), 8, false)
		require.False(t, ok)
	}
	stats, ok := p.tick(start.Add(2*time.Second), 8, true)
	require.True(t, ok)

	assert.InDelta(t, 30, stats.FPS, 1e-9)
	assert.InDelta(t, 240, stats.DrawsPerSec, 1e-9)
	assert.Equal(t, 1, stats.FrameErrors)
	assert.InDelta(t, 2, stats.IntervalSecs, 1e-9)

	// Counters restart after a report.
	_, ok = p.tick(start.Add(2500*time.Millisecond), 8, false)
	assert.False(t, ok)
}

func TestTick_LogsToLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewProfiler(zap.New(core), time.Nanosecond)

	time.Sleep(time.Millisecond)
	require.True(t, p.Tick(3, false))

	entries := logs.FilterMessage("profiler").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "fps")
	assert.Contains(t, entries[0].ContextMap(), "drawsPerSec")
}

func TestNewProfiler_DefaultInterval(t *testing.T) {
	p := NewProfiler(nil, 0)
	assert.Equal(t, time.Second, p.updateInterval)
}
