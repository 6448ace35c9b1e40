package render

import (
	"errors"
	"math"

	"github.com/taigrr/asciiview/pkg/math3d"
)

// DefaultRamp lists shading symbols from darkest to brightest.
const DefaultRamp = ".,':;!+*=#$@"

var (
	// DynamicLight is the light direction fixed to the viewer.
	DynamicLight = math3d.V3(1, -1, 0)
	// StaticLight is the light direction fixed to the model.
	StaticLight = math3d.V3(0.75, -1, -0.5)
)

// ErrEmptyRamp is returned when a shader has no symbols to choose from.
var ErrEmptyRamp = errors.New("luminance ramp is empty")

// Shader picks a symbol for a face from its normal using a single
// directional light.
type Shader struct {
	Ramp   []rune      // Symbols from darkest to brightest
	Light  math3d.Vec3 // Unit light direction
	Static bool        // Shade with model-space normals so the light turns with the model
}

// NewShader creates a shader over ramp. With static set the light is
// attached to the model instead of the viewer.
func NewShader(ramp string, static bool) (*Shader, error) {
	runes := []rune(ramp)
	if len(runes) == 0 {
		return nil, ErrEmptyRamp
	}
	light := DynamicLight
	if static {
		light = StaticLight
	}
	return &Shader{
		Ramp:   runes,
		Light:  light.Normalize(),
		Static: static,
	}, nil
}

// Symbol returns the ramp symbol for a face with the given normal. Faces
// whose outward side looks into the light get the brightest symbols.
func (s *Shader) Symbol(normal math3d.Vec3) rune {
	n := len(s.Ramp)
	sim := normal.Negate().CosSimilarity(s.Light)*0.5 + 0.5
	idx := int(math.Round(float64(n-1) * sim))
	idx = max(0, min(idx, n-1))
	return s.Ramp[idx]
}
