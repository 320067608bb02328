package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cylinder is a capped cylinder aligned with the y axis
type Cylinder struct {
	Center   core.Point // Midpoint of the axis
	Height   float64
	Radius   float64
	Material material.Material
}

// NewCylinder creates a capped y-axis cylinder centered on center
func NewCylinder(center core.Point, height, radius float64, mat material.Material) *Cylinder {
	return &Cylinder{Center: center, Height: height, Radius: radius, Material: mat}
}

// BoundingBox returns the cylinder's extent
func (c *Cylinder) BoundingBox() *core.AABB {
	extent := core.NewVec3(c.Radius, c.Height/2, c.Radius)
	return core.NewAABB(c.Center.Subtract(extent), c.Center.Add(extent))
}

// Hit returns the nearest of the two caps and the curved side inside (tMin, tMax)
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if tMax <= tMin {
		return nil, false
	}

	var best *material.HitRecord
	closest := tMax

	// Caps
	if math.Abs(ray.Direction.Y) >= 1e-8 {
		for _, side := range []float64{1, -1} {
			capY := c.Center.Y + side*c.Height/2
			t := (capY - ray.Origin.Y) / ray.Direction.Y
			if t <= tMin || t >= closest {
				continue
			}
			point := ray.At(t)
			dx, dz := point.X-c.Center.X, point.Z-c.Center.Z
			if dx*dx+dz*dz >= c.Radius*c.Radius {
				continue
			}
			closest = t
			best = &material.HitRecord{
				T:        t,
				Point:    point,
				Normal:   core.NewVec3(0, side, 0),
				UV:       core.NewVec2((dx/c.Radius+1)/2, (dz/c.Radius+1)/2),
				Material: c.Material,
			}
		}
	}

	// Side: solve the circle equation in the xz plane
	dx, dz := ray.Direction.X, ray.Direction.Z
	a := dx*dx + dz*dz
	if a >= 1e-12 {
		ox, oz := ray.Origin.X-c.Center.X, ray.Origin.Z-c.Center.Z
		halfB := ox*dx + oz*dz
		cc := ox*ox + oz*oz - c.Radius*c.Radius
		discriminant := halfB*halfB - a*cc
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			for _, t := range []float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
				if t <= tMin || t >= closest {
					continue
				}
				point := ray.At(t)
				h := point.Y - c.Center.Y
				if math.Abs(h) > c.Height/2 {
					continue
				}
				normal := core.NewVec3(point.X-c.Center.X, 0, point.Z-c.Center.Z).Divide(c.Radius)
				closest = t
				best = &material.HitRecord{
					T:        t,
					Point:    point,
					Normal:   normal,
					UV:       core.NewVec2((math.Atan2(normal.Z, normal.X)+math.Pi)/(2*math.Pi), h/c.Height+0.5),
					Material: c.Material,
				}
				break
			}
		}
	}

	if best == nil {
		return nil, false
	}
	best.SetFrontFace(ray)
	return best, true
}
