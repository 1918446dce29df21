package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/session"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"go.uber.org/zap"
)

// ErrMissingComponent is returned by Run when the window, renderer or session is unset.
var ErrMissingComponent = errors.New("engine: missing component")

// engine implements the Engine interface.
// Coordinates the render goroutine with the window's message loop.
type engine struct {
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	session  session.Session
	loader   loader.Loader
	logger   *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point of the viewer.
// It wires window input into the session, uploads the scene and drives the render loop.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// Renderer returns the renderer.
	Renderer() renderer.Renderer

	// Session returns the viewer session.
	Session() session.Session

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called after each render frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run uploads meshes, registers every pipeline variant, initializes the scene's uniform
	// providers and then blocks in the window message loop until the window closes.
	// GPU resources are released before it returns.
	//
	// Returns:
	//   - error: ErrMissingComponent or a setup error
	Run() error

	// Quit signals the render goroutine to stop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine with the provided options and wires the window's input
// callbacks into the session.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		logger:           zap.NewNop(),
		profilingEnabled: false,
	}

	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(e.logger.Named("profiler"), time.Second)

	if e.window != nil && e.session != nil {
		e.bindInput()
	}
	return e
}

// bindInput routes window events to the session and the renderer.
func (e *engine) bindInput() {
	s := e.session
	e.window.SetResizeCallback(func(width, height int) {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		s.Resize(width, height)
	})
	e.window.SetMouseDownCallback(s.MouseDown)
	e.window.SetMouseUpCallback(func(x, y float64) { s.MouseUp() })
	e.window.SetMouseMoveCallback(s.MouseMove)
	e.window.SetScrollCallback(s.Scroll)
	e.window.SetKeyDownCallback(s.KeyDown)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Session() session.Session {
	return e.session
}

func (e *engine) Run() error {
	if e.window == nil || e.renderer == nil || e.session == nil {
		return ErrMissingComponent
	}
	if err := e.setup(); err != nil {
		return err
	}

	e.session.Resize(e.window.Width(), e.window.Height())
	e.running = true
	e.handle()
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.session.Scene().Release()
	e.renderer.Release()
	return nil
}

// setup uploads every scene mesh, registers all pipeline variants and creates the scene's
// uniform providers.
func (e *engine) setup() error {
	scn := e.session.Scene()
	if e.loader == nil {
		e.loader = loader.NewLoader(loader.BackendTypeGLTF, loader.WithRenderer(e.renderer), loader.WithLogger(e.logger))
	}
	for _, entry := range scn.Entries() {
		if m := entry.Model(); m != nil {
			if err := e.loader.InitMeshGPU(m); err != nil {
				return fmt.Errorf("engine: %w", err)
			}
		}
	}

	variants := e.session.Switch().Variants()
	pipelines := make([]pipeline.Pipeline, 0, len(variants))
	for _, v := range variants {
		pipelines = append(pipelines, v.Program.Pipeline(v.Cull, v.Depth))
	}
	if err := e.renderer.RegisterPipelines(pipelines...); err != nil {
		return fmt.Errorf("engine: register pipelines: %w", err)
	}
	e.logger.Info("pipelines registered", zap.Int("count", len(pipelines)))

	// Both programs share one uniform layout, so either can seed the providers.
	if err := scn.InitGPU(variants[0].Program); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// Quit signals all engine goroutines to stop and closes the window.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.window != nil && e.window.IsRunning() {
		_ = e.window.Close()
	}
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the render goroutine, tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(1)
	go e.handleRender()
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render goroutine recovered from panic", zap.Any("panic", r), zap.Stack("stack"))
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			draws, err := e.renderFrame()
			if err != nil {
				e.logger.Debug("frame skipped", zap.Error(err))
			}

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled {
				e.profiler.Tick(draws, err != nil)
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderFrame takes the session snapshot, uploads its uniforms and records one render pass.
// The session lock is held only while the snapshot is taken.
func (e *engine) renderFrame() (int, error) {
	snap, err := e.session.Frame()
	if err != nil {
		return 0, err
	}
	scn := e.session.Scene()
	if err := scn.WriteFrame(snap.Camera, snap.Lights, snap.Items); err != nil {
		return 0, err
	}
	if err := e.renderer.BeginFrame(); err != nil {
		return 0, err
	}
	drawErr := scn.DrawCalls(snap.PipelineKey, snap.Items)
	e.renderer.EndFrame()
	e.renderer.Present()
	if drawErr != nil {
		return 0, drawErr
	}
	return len(snap.Items), nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

// frameInterval converts a frame rate cap into the time between frames. Rates at or below
// zero mean uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
