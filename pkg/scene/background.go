package scene

import "github.com/df07/go-pathtracer/pkg/core"

// Background provides the radiance of rays that escape the scene
type Background interface {
	Color(ray core.Ray) core.Color
}

// GradientBackground blends vertically between two colors by ray direction
type GradientBackground struct {
	Top    core.Color
	Bottom core.Color
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(top, bottom core.Color) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// NewSkyBackground returns the white to light blue sky used by open scenes
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Color returns the gradient color based on ray direction
func (g *GradientBackground) Color(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}

// SolidBackground returns the same color in every direction.
// Closed scenes use black so nothing leaks in through the walls.
type SolidBackground struct {
	Emission core.Color
}

// NewSolidBackground creates a constant background
func NewSolidBackground(color core.Color) *SolidBackground {
	return &SolidBackground{Emission: color}
}

// Color returns the constant emission
func (s *SolidBackground) Color(ray core.Ray) core.Color {
	return s.Emission
}
