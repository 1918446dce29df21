package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/session"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow records the callbacks the engine installs.
type fakeWindow struct {
	resize    func(width, height int)
	scroll    func(yoff float64, mods int)
	keyDown   func(keyCode uint32, mods int)
	mouseDown func(x, y float64)
	mouseUp   func(x, y float64)
	mouseMove func(x, y float64)
}

func (w *fakeWindow) SetUpdateCallback(func()) {}
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.resize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(yoff float64, mods int)) { w.scroll = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32, mods int)) { w.keyDown = cb }
func (w *fakeWindow) SetMouseDownCallback(cb func(x, y float64)) { w.mouseDown = cb }
func (w *fakeWindow) SetMouseUpCallback(cb func(x, y float64)) { w.mouseUp = cb }
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y float64)) { w.mouseMove = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool { return false }
func (w *fakeWindow) Close() error { return nil }
func (w *fakeWindow) ProcessMessages() {}
func (w *fakeWindow) Width() int { return 1024 }
func (w *fakeWindow) Height() int { return 768 }

func TestNewEngine_RoutesInputToSession(t *testing.T) {
	w := &fakeWindow{}
	s := session.NewSession()
	NewEngine(WithWindow(w), WithSession(s))

	require.NotNil(t, w.keyDown)
	w.keyDown(common.KeyP, 0)
	assert.True(t, s.Options().Phong)

	require.NotNil(t, w.scroll)
	w.scroll(1, 0)
	w.resize(1000, 500)
	require.NoError(t, s.Edit(func(st session.State) error {
		assert.InDelta(t, 99, st.Camera.Fovy(), 1e-4)
		assert.Equal(t, float32(2), st.Camera.Aspect())
		return nil
	}))

	w.mouseDown(0, 0)
	w.mouseMove(10, 0)
	w.mouseUp(10, 0)
	require.NoError(t, s.Edit(func(st session.State) error {
		assert.NotEqual(t, float32(0), st.Camera.Eye().X())
		return nil
	}))
}

func TestRun_RequiresComponents(t *testing.T) {
	e := NewEngine(WithWindow(&fakeWindow{}))
	assert.ErrorIs(t, e.Run(), ErrMissingComponent)
}

func TestQuit_IsIdempotent(t *testing.T) {
	e := NewEngine()
	assert.NotPanics(t, func() {
		e.Quit()
		e.Quit()
	})
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(60)).(*engine)
	assert.Positive(t, e.renderFrameLimit)
	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  float64
		want time.Duration
	}{
		{0, 0},
		{-5, 0},
		{0.5, 2 * time.Second},
		{0.25, 4 * time.Second},
		{1, time.Second},
		{50, 20 * time.Millisecond},
	}
	for _, tt := range tests {
		e := NewEngine(WithRenderFrameLimit(tt.fps)).(*engine)
		assert.Equal(t, tt.want, e.renderFrameLimit, "option fps=%v", tt.fps)

		e.SetRenderFrameLimit(tt.fps)
		assert.Equal(t, tt.want, e.renderFrameLimit, "setter fps=%v", tt.fps)
	}
}
