// Package config loads viewer settings from TOML or YAML and applies them to a live session.
// Every field is optional; anything a file leaves out keeps the value already in effect.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/session"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrTooManyLights is returned when a config lists more lights than the viewer has.
	ErrTooManyLights = errors.New("config: too many lights")
)

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from a file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the encoding
//   - error: ErrUnsupportedFormat for unknown extensions
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Vec3 is an RGB triple or a position.
type Vec3 [3]float32

func (v Vec3) vec() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

// WindowConfig holds startup-only window and renderer settings. Zero values fall back to
// the window and renderer defaults.
type WindowConfig struct {
	Title          string `toml:"title,omitempty" yaml:"title,omitempty"`
	Width          int    `toml:"width,omitempty" yaml:"width,omitempty"`
	Height         int    `toml:"height,omitempty" yaml:"height,omitempty"`
	PresentMode    string `toml:"present_mode,omitempty" yaml:"present_mode,omitempty"`
	ComputeWorkers int    `toml:"compute_workers,omitempty" yaml:"compute_workers,omitempty"`
}

// CameraConfig overrides camera state. Aspect is absent since only resizes set it.
type CameraConfig struct {
	Eye  *Vec3    `toml:"eye,omitempty" yaml:"eye,omitempty"`
	At   *Vec3    `toml:"at,omitempty" yaml:"at,omitempty"`
	Up   *Vec3    `toml:"up,omitempty" yaml:"up,omitempty"`
	Fovy *float32 `toml:"fovy,omitempty" yaml:"fovy,omitempty"`
	Near *float32 `toml:"near,omitempty" yaml:"near,omitempty"`
	Far  *float32 `toml:"far,omitempty" yaml:"far,omitempty"`
}

// LightConfig overrides one light slot. Intensities are 0-255.
type LightConfig struct {
	Type     *string  `toml:"type,omitempty" yaml:"type,omitempty"`
	Enabled  *bool    `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Position *Vec3    `toml:"position,omitempty" yaml:"position,omitempty"`
	Axis     *Vec3    `toml:"axis,omitempty" yaml:"axis,omitempty"`
	Ambient  *Vec3    `toml:"ambient,omitempty" yaml:"ambient,omitempty"`
	Diffuse  *Vec3    `toml:"diffuse,omitempty" yaml:"diffuse,omitempty"`
	Specular *Vec3    `toml:"specular,omitempty" yaml:"specular,omitempty"`
	Aperture *float32 `toml:"aperture,omitempty" yaml:"aperture,omitempty"`
	Cutoff   *float32 `toml:"cutoff,omitempty" yaml:"cutoff,omitempty"`
}

// MaterialConfig overrides the editable bunny material.
type MaterialConfig struct {
	Ka        *Vec3    `toml:"ka,omitempty" yaml:"ka,omitempty"`
	Kd        *Vec3    `toml:"kd,omitempty" yaml:"kd,omitempty"`
	Ks        *Vec3    `toml:"ks,omitempty" yaml:"ks,omitempty"`
	Shininess *float32 `toml:"shininess,omitempty" yaml:"shininess,omitempty"`
}

// OptionsConfig overrides the render toggles.
type OptionsConfig struct {
	BackfaceCulling *bool `toml:"backface_culling,omitempty" yaml:"backface_culling,omitempty"`
	DepthTest       *bool `toml:"depth_test,omitempty" yaml:"depth_test,omitempty"`
	Phong           *bool `toml:"phong,omitempty" yaml:"phong,omitempty"`
}

// Config is the full viewer configuration.
type Config struct {
	// BunnyPath is a glTF/GLB file for the bunny entry. Empty uses the fallback mesh.
	BunnyPath string         `toml:"bunny_path,omitempty" yaml:"bunny_path,omitempty"`
	Window    WindowConfig   `toml:"window" yaml:"window"`
	Camera    CameraConfig   `toml:"camera" yaml:"camera"`
	Options   OptionsConfig  `toml:"options" yaml:"options"`
	Bunny     MaterialConfig `toml:"bunny" yaml:"bunny"`
	// Lights are applied to slots in order. Fewer than light.NumLights leaves the rest alone.
	Lights []LightConfig `toml:"lights,omitempty" yaml:"lights,omitempty"`
}

// Load reads and validates a config file, choosing the decoder by extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the decoded config
//   - error: a read, format, decode or validation error
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

// Decode reads and validates a config in the given format.
func Decode(r io.Reader, format Format) (*Config, error) {
	cfg := &Config{}
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes the config in the given format.
func (c *Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Validate checks the fields that setters cannot clamp.
func (c *Config) Validate() error {
	if len(c.Lights) > light.NumLights {
		return fmt.Errorf("%w: %d > %d", ErrTooManyLights, len(c.Lights), light.NumLights)
	}
	for i, lc := range c.Lights {
		if lc.Type == nil {
			continue
		}
		if _, err := light.ParseLightType(*lc.Type); err != nil {
			return fmt.Errorf("config: lights[%d]: %w", i, err)
		}
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("config: negative window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() (*Config, error) {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("config: clone: %w", err)
	}
	return out, nil
}

// CameraDefaults overlays the camera section onto base. The result is used as the camera's
// reset snapshot, so R returns to the configured view.
//
// Parameters:
//   - base: the defaults to start from
//
// Returns:
//   - camera.Defaults: base with configured fields replaced
func (c *Config) CameraDefaults(base camera.Defaults) camera.Defaults {
	cc := c.Camera
	if cc.Eye != nil {
		base.Eye = cc.Eye.vec()
	}
	if cc.At != nil {
		base.At = cc.At.vec()
	}
	if cc.Up != nil {
		base.Up = cc.Up.vec()
	}
	if cc.Fovy != nil {
		base.Fovy = common.Clamp(*cc.Fovy, camera.MinFovy, camera.MaxFovy)
	}
	if cc.Near != nil {
		base.Near = *cc.Near
	}
	if cc.Far != nil {
		base.Far = *cc.Far
	}
	base.Near, base.Far = camera.ClampDepth(base.Near, base.Far)
	return base
}

// Apply writes the config into a session under its lock. Values pass through the session's
// setters, so every clamp applies. Light slots and the bunny material are resolved before
// anything is written, so a failed Apply leaves the session untouched.
//
// Parameters:
//   - s: the session to update
//
// Returns:
//   - error: a validation or material lookup error
func (c *Config) Apply(s session.Session) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.Edit(func(st session.State) error {
		lights := make([]light.Light, len(c.Lights))
		for i := range c.Lights {
			l, err := st.Lights.Light(i)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			lights[i] = l
		}
		var bunny material.Material
		if c.Bunny.set() {
			m, err := st.Materials.Get(material.Bunny)
			if err != nil {
				return fmt.Errorf("config: bunny material: %w", err)
			}
			if !m.Editable() {
				return fmt.Errorf("config: bunny material: %w", material.ErrReadOnly)
			}
			bunny = m
		}

		applyCamera(c.Camera, st.Camera)
		for i, lc := range c.Lights {
			applyLight(lc, lights[i])
		}
		if bunny != nil {
			if err := applyBunny(c.Bunny, bunny); err != nil {
				return err
			}
		}
		applyOptions(c.Options, st.Options)
		return nil
	})
}

func applyCamera(cc CameraConfig, cam camera.Camera) {
	if cc.Eye != nil {
		cam.SetEye(cc.Eye.vec())
	}
	if cc.At != nil {
		cam.SetAt(cc.At.vec())
	}
	if cc.Up != nil {
		cam.SetUp(cc.Up.vec())
	}
	if cc.Fovy != nil {
		cam.SetFovy(*cc.Fovy)
	}
	// Far first so a near plane beyond the old far is not pulled back.
	if cc.Far != nil {
		cam.SetFar(*cc.Far)
	}
	if cc.Near != nil {
		cam.SetNear(*cc.Near)
	}
}

func applyLight(lc LightConfig, l light.Light) {
	if lc.Type != nil {
		// Validated already.
		t, _ := light.ParseLightType(*lc.Type)
		l.SetType(t)
	}
	if lc.Enabled != nil {
		l.SetEnabled(*lc.Enabled)
	}
	if lc.Position != nil {
		l.SetPosition(lc.Position.vec())
	}
	if lc.Axis != nil {
		l.SetAxis(lc.Axis.vec())
	}
	if lc.Ambient != nil || lc.Diffuse != nil || lc.Specular != nil {
		ambient, diffuse, specular := l.Ambient(), l.Diffuse(), l.Specular()
		if lc.Ambient != nil {
			ambient = lc.Ambient.vec()
		}
		if lc.Diffuse != nil {
			diffuse = lc.Diffuse.vec()
		}
		if lc.Specular != nil {
			specular = lc.Specular.vec()
		}
		l.SetIntensities(ambient, diffuse, specular)
	}
	if lc.Aperture != nil {
		l.SetAperture(*lc.Aperture)
	}
	if lc.Cutoff != nil {
		l.SetCutoff(*lc.Cutoff)
	}
}

// set reports whether any bunny field is given.
func (mc MaterialConfig) set() bool {
	return mc.Ka != nil || mc.Kd != nil || mc.Ks != nil || mc.Shininess != nil
}

// applyBunny writes the given fields. bunny has been checked to be editable, so the setters
// only clamp.
func applyBunny(mc MaterialConfig, bunny material.Material) error {
	edits := []struct {
		set bool
		fn  func() error
	}{
		{mc.Ka != nil, func() error { return bunny.SetKa(mc.Ka.vec()) }},
		{mc.Kd != nil, func() error { return bunny.SetKd(mc.Kd.vec()) }},
		{mc.Ks != nil, func() error { return bunny.SetKs(mc.Ks.vec()) }},
		{mc.Shininess != nil, func() error { return bunny.SetShininess(*mc.Shininess) }},
	}
	for _, e := range edits {
		if !e.set {
			continue
		}
		if err := e.fn(); err != nil {
			return fmt.Errorf("config: bunny material: %w", err)
		}
	}
	return nil
}

func applyOptions(oc OptionsConfig, opts *session.Options) {
	if oc.BackfaceCulling != nil {
		opts.BackfaceCulling = *oc.BackfaceCulling
	}
	if oc.DepthTest != nil {
		opts.DepthTest = *oc.DepthTest
	}
	if oc.Phong != nil {
		opts.Phong = *oc.Phong
	}
}

// FromSession captures the session's current state as a fully populated Config.
// Startup-only sections are left zero.
//
// Parameters:
//   - s: the session to read
//
// Returns:
//   - *Config: the captured config
func FromSession(s session.Session) *Config {
	cfg := &Config{}
	_ = s.Edit(func(st session.State) error {
		cam := st.Camera
		cfg.Camera = CameraConfig{
			Eye:  ptr(Vec3(cam.Eye())),
			At:   ptr(Vec3(cam.At())),
			Up:   ptr(Vec3(cam.Up())),
			Fovy: ptr(cam.Fovy()),
			Near: ptr(cam.Near()),
			Far:  ptr(cam.Far()),
		}
		for _, l := range st.Lights.Lights() {
			cfg.Lights = append(cfg.Lights, LightConfig{
				Type:     ptr(l.Type().String()),
				Enabled:  ptr(l.Enabled()),
				Position: ptr(Vec3(l.Position())),
				Axis:     ptr(Vec3(l.Axis())),
				Ambient:  ptr(Vec3(l.Ambient())),
				Diffuse:  ptr(Vec3(l.Diffuse())),
				Specular: ptr(Vec3(l.Specular())),
				Aperture: ptr(l.Aperture()),
				Cutoff:   ptr(l.Cutoff()),
			})
		}
		if bunny, err := st.Materials.Get(material.Bunny); err == nil {
			cfg.Bunny = MaterialConfig{
				Ka:        ptr(Vec3(bunny.Ka())),
				Kd:        ptr(Vec3(bunny.Kd())),
				Ks:        ptr(Vec3(bunny.Ks())),
				Shininess: ptr(bunny.Shininess()),
			}
		}
		cfg.Options = OptionsConfig{
			BackfaceCulling: ptr(st.Options.BackfaceCulling),
			DepthTest:       ptr(st.Options.DepthTest),
			Phong:           ptr(st.Options.Phong),
		}
		return nil
	})
	return cfg
}

func ptr[T any](v T) *T {
	return &v
}
