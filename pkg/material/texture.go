package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	Evaluate(uv core.Vec2, point core.Point) core.Color
}

// ConstantTexture provides a uniform color
type ConstantTexture struct {
	Color core.Color
}

// NewConstantTexture creates a new solid color texture
func NewConstantTexture(color core.Color) *ConstantTexture {
	return &ConstantTexture{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (c *ConstantTexture) Evaluate(uv core.Vec2, point core.Point) core.Color {
	return c.Color
}

// CheckerTexture alternates between two textures in a 3D sinusoidal pattern
type CheckerTexture struct {
	Odd   Texture
	Even  Texture
	Scale float64 // Spatial frequency, 10 by default
}

// NewCheckerTexture creates a checker pattern of odd and even textures
func NewCheckerTexture(odd, even Texture) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even, Scale: 10}
}

// Evaluate picks Odd where sin(sx)·sin(sy)·sin(sz) is negative, Even otherwise
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Point) core.Color {
	sines := math.Sin(c.Scale*point.X) * math.Sin(c.Scale*point.Y) * math.Sin(c.Scale*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
