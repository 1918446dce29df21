package session

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// FrameSnapshot is everything the render step needs for one frame, captured under the
// session lock so rendering can proceed without it.
type FrameSnapshot struct {
	Options     Options
	PipelineKey string
	Program     shading.Program
	View        mgl32.Mat4
	Projection  mgl32.Mat4
	Camera      camera.GPUCameraUniform
	Lights      light.FrameLights
	Items       []scene.DrawItem
}

// State is the mutable viewer state handed to Edit callbacks.
type State struct {
	Camera    camera.Camera
	Lights    light.LightSet
	Materials material.Table
	Options   *Options
}

// Session owns the viewer's camera, lights, materials, options and scene behind one lock.
// Input handlers and config reloads mutate through it; Frame reads a consistent snapshot.
type Session interface {
	// Scene returns the assembled scene.
	Scene() scene.Scene

	// Switch returns the shading mode switch.
	Switch() shading.Switch

	// Options returns a copy of the current options.
	Options() Options

	// SetOptions replaces the options.
	SetOptions(opts Options)

	// SelectedLight returns the light slot the type-cycling key acts on.
	SelectedLight() int

	// Edit runs fn with the session locked. Edits are not rolled back on error, so fn
	// should resolve everything that can fail before writing.
	//
	// Parameters:
	//   - fn: the edit; its error is returned unchanged
	//
	// Returns:
	//   - error: fn's error
	Edit(fn func(st State) error) error

	// MouseDown starts an orbit drag.
	MouseDown(x, y float64)

	// MouseUp ends an orbit drag.
	MouseUp()

	// MouseMove orbits while dragging.
	MouseMove(x, y float64)

	// Scroll zooms or dollies per the modifier bits.
	//
	// Parameters:
	//   - yoff: scroll offset, positive when scrolling up
	//   - mods: modifier key bitmask (common.Mod*)
	Scroll(yoff float64, mods int)

	// KeyDown applies a keyboard toggle. Unbound keys are ignored.
	//
	// Parameters:
	//   - keyCode: the key (common.Key*)
	//   - mods: modifier key bitmask; shift reverses the T cycle
	KeyDown(keyCode uint32, mods int)

	// Resize sets the camera aspect to width/height. A zero height is ignored.
	Resize(width, height int)

	// Frame captures the frame: the program for the current options, view and projection,
	// view-space lights and the assembled scene.
	//
	// Returns:
	//   - FrameSnapshot: the frame's data
	//   - error: a scene assembly error
	Frame() (FrameSnapshot, error)
}

type session struct {
	mu *sync.Mutex

	logger     *zap.Logger
	cam        camera.Camera
	controller camera.CameraController
	lights     light.LightSet
	materials  material.Table
	options    Options
	selected   int
	sw         shading.Switch
	scn        scene.Scene

	meshes       *scene.Meshes
	sceneOptions []scene.SceneBuilderOption
}

var _ Session = &session{}

// NewSession creates a Session. Components not supplied by options are built from their
// stock defaults, and the scene is built last from the session's lights and materials.
//
// Parameters:
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the newly created session
func NewSession(options ...SessionBuilderOption) Session {
	s := &session{
		mu:      &sync.Mutex{},
		logger:  zap.NewNop(),
		options: DefaultOptions(),
	}
	for _, option := range options {
		option(s)
	}

	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.lights == nil {
		s.lights = light.NewLightSet(light.DefaultLights())
	}
	if s.materials == nil {
		s.materials = material.NewTable()
	}
	if s.sw == nil {
		s.sw = shading.MustSwitch()
	}
	meshes := scene.DefaultMeshes(nil)
	if s.meshes != nil {
		meshes = *s.meshes
	}
	s.controller = camera.NewCameraController(s.cam)

	sceneOpts := append([]scene.SceneBuilderOption{
		scene.WithLogger(s.logger),
		scene.WithMaterials(s.materials),
		scene.WithEntries(scene.DefaultEntries(meshes, s.lights)...),
	}, s.sceneOptions...)
	s.scn = scene.NewScene(sceneOpts...)
	return s
}

func (s *session) Scene() scene.Scene {
	return s.scn
}

func (s *session) Switch() shading.Switch {
	return s.sw
}

func (s *session) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

func (s *session) SetOptions(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = opts
}

func (s *session) SelectedLight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *session) Edit(fn func(st State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(State{
		Camera:    s.cam,
		Lights:    s.lights,
		Materials: s.materials,
		Options:   &s.options,
	})
}

func (s *session) MouseDown(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.MouseDown(x, y)
}

func (s *session) MouseUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.MouseUp()
}

func (s *session) MouseMove(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.MouseMove(x, y)
}

func (s *session) Scroll(yoff float64, mods int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Scroll(yoff, mods)
}

func (s *session) KeyDown(keyCode uint32, mods int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch keyCode {
	case common.KeyP:
		s.options.Phong = !s.options.Phong
		s.logger.Debug("shading", zap.Stringer("mode", shading.ModeOf(s.options.Phong)))
	case common.KeyC:
		s.options.BackfaceCulling = !s.options.BackfaceCulling
		s.logger.Debug("backface culling", zap.Bool("enabled", s.options.BackfaceCulling))
	case common.KeyZ:
		s.options.DepthTest = !s.options.DepthTest
		s.logger.Debug("depth test", zap.Bool("enabled", s.options.DepthTest))
	case common.Key1, common.Key2, common.Key3:
		s.selected = int(keyCode - common.Key1)
		l := s.mustLight(s.selected)
		l.SetEnabled(!l.Enabled())
		s.logger.Debug("light toggled", zap.Int("slot", s.selected), zap.Bool("enabled", l.Enabled()))
	case common.KeyT:
		l := s.mustLight(s.selected)
		if mods&common.ModShift != 0 {
			l.SetType(l.Type().Prev())
		} else {
			l.SetType(l.Type().Next())
		}
		s.logger.Debug("light type", zap.Int("slot", s.selected), zap.Stringer("type", l.Type()))
	case common.KeyR:
		s.cam.Reset()
		s.logger.Debug("camera reset")
	}
}

// mustLight returns slot i, which the key bindings keep in range.
func (s *session) mustLight(i int) light.Light {
	l, err := s.lights.Light(i)
	if err != nil {
		panic(fmt.Sprintf("session: %v", err))
	}
	return l
}

func (s *session) Resize(width, height int) {
	if height == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam.SetAspect(float32(width) / float32(height))
}

func (s *session) Frame() (FrameSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	program := s.sw.Select(s.options.Phong)
	view := s.cam.ViewMatrix()
	projection := s.cam.ProjectionMatrix()
	lights := s.lights.PrepareFrameUniforms(view)
	items, err := s.scn.Assemble(view)
	if err != nil {
		return FrameSnapshot{}, fmt.Errorf("session: %w", err)
	}

	return FrameSnapshot{
		Options:     s.options,
		PipelineKey: program.PipelineKey(s.options.BackfaceCulling, s.options.DepthTest),
		Program:     program,
		View:        view,
		Projection:  projection,
		Camera: camera.GPUCameraUniform{
			View:       [16]float32(view),
			Projection: [16]float32(projection),
		},
		Lights: lights,
		Items:  items,
	}, nil
}
