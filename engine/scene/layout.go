package scene

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrMissingUniform is returned when a shader does not declare a binding the scene feeds.
var ErrMissingUniform = errors.New("scene: shader is missing a uniform binding")

// slot addresses one @group/@binding pair.
type slot struct {
	group   int
	binding int
}

// uniformLayout records where each uniform the scene writes lives in the programs' bind groups.
type uniformLayout struct {
	camera      slot
	lightHeader slot
	lights      slot
	material    slot
	draw        slot
	descriptors map[int]wgpu.BindGroupLayoutDescriptor
}

func (l uniformLayout) descriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return l.descriptors[group]
}

// resolveUniformLayout reads the group annotations of sh and locates every uniform the scene
// writes. Provider annotations must agree with the struct that group carries.
func resolveUniformLayout(sh shader.Shader) (uniformLayout, error) {
	found := make(map[shader.AnnotationArg]slot)
	providers := make(map[shader.AnnotationArg]int)
	for _, decl := range sh.Declarations() {
		if decl.Group == nil {
			continue
		}
		switch decl.Type {
		case shader.AnnotationTypeBindingGroup:
			if decl.Binding != nil {
				found[decl.StructType()] = slot{group: *decl.Group, binding: *decl.Binding}
			}
		case shader.AnnotationTypeProvider:
			providers[decl.Args[0]] = *decl.Group
		}
	}

	l := uniformLayout{descriptors: sh.BindGroupLayoutDescriptors()}
	targets := []struct {
		arg shader.AnnotationArg
		dst *slot
	}{
		{shader.AnnotationArgCamera, &l.camera},
		{shader.AnnotationArgLightHeader, &l.lightHeader},
		{shader.AnnotationArgLight, &l.lights},
		{shader.AnnotationArgMaterial, &l.material},
		{shader.AnnotationArgDraw, &l.draw},
	}
	for _, t := range targets {
		s, ok := found[t.arg]
		if !ok {
			return uniformLayout{}, fmt.Errorf("%w: %s in %q", ErrMissingUniform, t.arg, sh.Key())
		}
		*t.dst = s
	}

	if l.lightHeader.group != l.lights.group {
		return uniformLayout{}, fmt.Errorf("scene: light header and light array must share a group in %q", sh.Key())
	}
	if l.material.group != l.draw.group {
		return uniformLayout{}, fmt.Errorf("scene: material and draw uniforms must share a group in %q", sh.Key())
	}

	expect := map[shader.AnnotationArg]int{
		shader.AnnotationArgCamera:   l.camera.group,
		shader.AnnotationArgLights:   l.lights.group,
		shader.AnnotationArgMaterial: l.material.group,
	}
	for identity, group := range providers {
		if want, ok := expect[identity]; ok && want != group {
			return uniformLayout{}, fmt.Errorf("scene: provider %s declared on group %d, uniforms live on group %d", identity, group, want)
		}
	}
	return l, nil
}
