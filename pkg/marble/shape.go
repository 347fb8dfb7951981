package marble

import (
	"strings"

	"github.com/matzehuels/marbles/pkg/errors"
)

// Shape is the outline used to draw marbles.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeSquare Shape = "square"
)

// DefaultShapes is the alternation order used when none is configured.
var DefaultShapes = []Shape{ShapeCircle, ShapeSquare}

// ParseShape converts a configured shape name.
func ParseShape(s string) (Shape, error) {
	switch sh := Shape(strings.ToLower(strings.TrimSpace(s))); sh {
	case ShapeCircle, ShapeSquare:
		return sh, nil
	}
	return "", errors.New(errors.ErrCodeInvalidShape, "unknown marble shape: %q (valid: %s, %s)", s, ShapeCircle, ShapeSquare)
}

// ParseShapes converts a list of shape names. The list must not be empty.
func ParseShapes(names []string) ([]Shape, error) {
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "at least one marble shape is required")
	}
	shapes := make([]Shape, 0, len(names))
	for _, n := range names {
		sh, err := ParseShape(n)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, sh)
	}
	return shapes, nil
}

func (s Shape) String() string { return string(s) }

// Strings returns shape names, for configuration output.
func Strings(shapes []Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = string(s)
	}
	return out
}
