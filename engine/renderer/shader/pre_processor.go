package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// registryEntry pairs a WGSL struct source with the type name used in generated declarations.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source and records binding declarations.
type PreProcessor interface {
	// Process replaces include annotations with struct sources and group annotations with
	// @group/@binding declarations. Provider annotations emit nothing but are recorded.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error if any annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations from the last Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the collected declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor whose struct registry is populated from the engine's GPU types.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:      {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			annotationArgVertex:      {Source: model.GPUVertexSource, Type: "VertexInput"},
			AnnotationArgLight:       {Source: light.GPULightSource, Type: "Light"},
			AnnotationArgLightHeader: {Source: light.GPULightHeaderSource, Type: "LightHeader"},
			AnnotationArgMaterial:    {Source: material.GPUMaterialSource, Type: "Material"},
			AnnotationArgDraw:        {Source: game_object.GPUDrawUniformSource, Type: "DrawUniform"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform:   "var<uniform>",
			annotationArgStorageTypeRead:      "var<storage, read>",
			annotationArgStorageTypeReadWrite: "var<storage, read_write>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			out = append(out, p.structRegistry[a.Args[0]].Source)
		case AnnotationTypeBindingGroup:
			wgslType := p.structRegistry[a.StructType()].Type
			if strings.HasPrefix(string(a.Args[2]), "array<") {
				wgslType = fmt.Sprintf("array<%s>", wgslType)
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], wgslType))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
