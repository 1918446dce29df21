package light

import "errors"

var (
	// ErrUnknownLightType is returned when a light type name cannot be parsed.
	ErrUnknownLightType = errors.New("light: unknown light type")

	// ErrLightIndex is returned when a light index is outside the fixed set.
	ErrLightIndex = errors.New("light: index out of range")
)
