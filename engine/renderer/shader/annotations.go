// annotations.go defines the @oxy: annotation grammar understood by the WGSL pre-processor.
// Annotations are single-line WGSL comments. They inject the canonical struct definitions
// owned by the Go GPU types, generate @group/@binding declarations, and record which
// scene-level provider owns each bind group so draw calls can be wired without name lookups.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct.
	//
	// Syntax: //@oxy:include <struct_type>
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration and records it.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 1 1 storage_read lights array<light>
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider records the provider identity owning a group without emitting WGSL.
	//
	// Syntax: //@oxy:provider <group> <binding> <provider_identity>
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation is one parsed @oxy: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - include:  [0] = struct type key
	//   - group:    [0] = address space, [1] = var name, [2] = struct type key, optionally array<...>
	//   - provider: [0] = provider identity
	Args []AnnotationArg

	// Line is the 1-based source line, for error reporting.
	Line int

	// Group is the @group index. Nil for include annotations.
	Group *int

	// Binding is the @binding index. Nil for include annotations.
	Binding *int
}

// StructType returns the struct type key of a group annotation with any array<> wrapper removed.
// It returns "" for other annotation types.
func (a Annotation) StructType() AnnotationArg {
	if a.Type != AnnotationTypeBindingGroup || len(a.Args) < 3 {
		return ""
	}
	t := string(a.Args[2])
	if inner, ok := strings.CutPrefix(t, "array<"); ok {
		t = strings.TrimSuffix(inner, ">")
	}
	return AnnotationArg(t)
}

// AnnotationArg is a typed annotation argument.
type AnnotationArg string

// Struct type arguments. Each maps to a Go GPU type with an embedded .wgsl asset.
const (
	// AnnotationArgCamera identifies CameraUniform (engine/camera/assets/camera_uniform.wgsl).
	AnnotationArgCamera AnnotationArg = "camera"

	// annotationArgVertex identifies VertexInput (engine/model/assets/vertex.wgsl).
	annotationArgVertex AnnotationArg = "vertex"

	// AnnotationArgLight identifies Light (engine/light/assets/light.wgsl).
	AnnotationArgLight AnnotationArg = "light"

	// AnnotationArgLightHeader identifies LightHeader (engine/light/assets/light_header.wgsl).
	AnnotationArgLightHeader AnnotationArg = "light_header"

	// AnnotationArgMaterial identifies Material (engine/renderer/material/assets/material.wgsl).
	// It doubles as the provider identity of the per-entry group.
	AnnotationArgMaterial AnnotationArg = "material"

	// AnnotationArgDraw identifies DrawUniform (engine/game_object/assets/draw_uniform.wgsl).
	// It doubles as the provider identity of the per-entry group.
	AnnotationArgDraw AnnotationArg = "draw"
)

// Address space arguments for @oxy:group.
const (
	annotationArgStorageTypeUniform   AnnotationArg = "storage_uniform"
	annotationArgStorageTypeRead      AnnotationArg = "storage_read"
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"
)

// AnnotationArgLights identifies the lights provider (header uniform plus light array).
const AnnotationArgLights AnnotationArg = "lights"

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	annotationArgVertex,
	AnnotationArgLight,
	AnnotationArgLightHeader,
	AnnotationArgMaterial,
	AnnotationArgDraw,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
	annotationArgStorageTypeReadWrite,
}

var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgLights,
	AnnotationArgMaterial,
	AnnotationArgDraw,
}

// parseAnnotation parses one WGSL source line. Lines without the prefix yield (nil, nil).
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	_, after, ok := strings.Cut(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include takes exactly one struct type", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include", lineNum, args[1])
		}
		return &Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil

	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group takes group, binding, address space, var name and struct type", lineNum)
		}
		group, binding, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group", lineNum, args[3])
		}
		a := &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}
		if !slices.Contains(validStructTypes, a.StructType()) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group", lineNum, args[5])
		}
		return a, nil

	case AnnotationTypeProvider:
		if len(args) != 4 {
			return nil, fmt.Errorf("line %d: @oxy provider takes group, binding and provider identity", lineNum)
		}
		group, binding, err := parseGroupBinding(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @oxy provider", lineNum, args[3])
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    []AnnotationArg{AnnotationArg(args[3])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil

	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}

func parseGroupBinding(groupArg, bindingArg string, lineNum int) (int, int, error) {
	group, err := strconv.Atoi(groupArg)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, groupArg, err)
	}
	binding, err := strconv.Atoi(bindingArg)
	if err != nil {
		return 0, 0, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, bindingArg, err)
	}
	return group, binding, nil
}
