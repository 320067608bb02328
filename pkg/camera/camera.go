// Package camera turns normalized screen coordinates into primary rays.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidConfig is returned for camera parameters that cannot form a view
var ErrInvalidConfig = errors.New("invalid camera configuration")

// Config describes a look-from/look-at camera
type Config struct {
	LookFrom      core.Point
	LookAt        core.Point
	Up            core.Vec3
	VFov          float64 // Vertical field of view in degrees
	AspectRatio   float64 // Width / height
	Aperture      float64 // Lens diameter; 0 disables depth of field
	FocusDistance float64 // Distance to the plane in focus; 0 means |LookFrom - LookAt|
	Time0, Time1  float64 // Shutter interval
}

// DefaultConfig returns a camera at the origin looking down -z with a 90° field of view
func DefaultConfig() Config {
	return Config{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Point
	lowerLeftCorner core.Point
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	time0, time1    float64
}

// New creates a camera from config, rejecting degenerate setups
func New(config Config) (*Camera, error) {
	if config.VFov <= 0 || config.VFov >= 180 || math.IsNaN(config.VFov) {
		return nil, fmt.Errorf("%w: vertical field of view %g must lie in (0, 180)", ErrInvalidConfig, config.VFov)
	}
	if !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 0) {
		return nil, fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidConfig, config.AspectRatio)
	}
	if config.Aperture < 0 || config.FocusDistance < 0 {
		return nil, fmt.Errorf("%w: aperture %g and focus distance %g must not be negative", ErrInvalidConfig, config.Aperture, config.FocusDistance)
	}
	if config.Time1 < config.Time0 {
		return nil, fmt.Errorf("%w: shutter closes at %g before it opens at %g", ErrInvalidConfig, config.Time1, config.Time0)
	}

	view := config.LookFrom.Subtract(config.LookAt)
	if view.NearZero() {
		return nil, fmt.Errorf("%w: look-from and look-at coincide", ErrInvalidConfig)
	}
	w := view.Normalize()
	u := config.Up.Cross(w)
	if u.NearZero() {
		return nil, fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidConfig)
	}
	u = u.Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = view.Length()
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1 and t = 0 is the bottom edge.
// The origin is jittered across the lens and the time across the shutter interval.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	time := c.time0
	if c.time1 > c.time0 {
		time = c.time0 + sampler.Get1D()*(c.time1-c.time0)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRayAtTime(origin, direction, time)
}

// Forward returns the unit direction the camera looks along
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
