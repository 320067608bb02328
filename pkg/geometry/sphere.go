package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Point
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, s.Center, s.Radius, s.Material)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() *core.AABB {
	radius := core.Splat(math.Abs(s.Radius))
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}

// PDFValue returns the density of direction from origin: the reciprocal of
// the subtended cone's solid angle outside the sphere. Inside, Random aims at a
// uniform surface point, so the density is that point's area density.
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := s.Hit(core.NewRay(origin, direction), samplingTMin, math.Inf(1))
	if !ok {
		return 0
	}

	distanceSquared := s.Center.Subtract(origin).LengthSquared()
	radiusSquared := s.Radius * s.Radius
	if distanceSquared <= radiusSquared {
		return areaDensity(direction, hit.Normal, hit.T, 4*math.Pi*radiusSquared)
	}

	cosThetaMax := math.Sqrt(1 - radiusSquared/distanceSquared)
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1 / solidAngle
}

// Random returns a direction from origin inside the cone the sphere subtends,
// or toward a uniform surface point when origin is inside the sphere
func (s *Sphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	toCenter := s.Center.Subtract(origin)
	distanceSquared := toCenter.LengthSquared()
	radiusSquared := s.Radius * s.Radius

	if distanceSquared <= radiusSquared {
		point := s.Center.Add(core.SampleOnUnitSphere(sampler.Get2D()).Multiply(s.Radius))
		return point.Subtract(origin)
	}

	cosThetaMax := math.Sqrt(1 - radiusSquared/distanceSquared)
	return core.NewONB(toCenter).Local(core.SampleCone(cosThetaMax, sampler.Get2D()))
}

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0 to Center1 at Time1
type MovingSphere struct {
	Center0, Center1 core.Point
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a sphere moving between two centers over a shutter interval
func NewMovingSphere(center0, center1 core.Point, time0, time1, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
}

// CenterAt returns the sphere center at the given time
func (m *MovingSphere) CenterAt(time float64) core.Point {
	if m.Time1 == m.Time0 {
		return m.Center0
	}
	return m.Center0.Lerp(m.Center1, (time-m.Time0)/(m.Time1-m.Time0))
}

// Hit tests the ray against the sphere at the ray's time
func (m *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, m.CenterAt(ray.Time), m.Radius, m.Material)
}

// BoundingBox encloses the sphere at both ends of its motion
func (m *MovingSphere) BoundingBox() *core.AABB {
	radius := core.Splat(math.Abs(m.Radius))
	box0 := core.NewAABB(m.Center0.Subtract(radius), m.Center0.Add(radius))
	box1 := core.NewAABB(m.Center1.Subtract(radius), m.Center1.Add(radius))
	return core.SurroundingBox(box0, box1)
}

// hitSphere solves a·t² + 2·halfB·t + c = 0 and keeps the nearest root strictly inside (tMin, tMax)
func hitSphere(ray core.Ray, tMin, tMax float64, center core.Point, radius float64, mat material.Material) (*material.HitRecord, bool) {
	if tMax <= tMin || radius == 0 {
		return nil, false
	}

	oc := ray.Origin.Subtract(center)
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return nil, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hit := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: mat,
	}
	// Dividing by the signed radius lets a negative radius model an inward-facing shell
	hit.Normal = hit.Point.Subtract(center).Divide(radius)
	hit.UV = sphereUV(hit.Point.Subtract(center).Divide(math.Abs(radius)))
	hit.SetFrontFace(ray)

	return hit, true
}

// sphereUV maps a point on the unit sphere to [0,1]² by longitude and latitude
func sphereUV(p core.Vec3) core.Vec2 {
	phi := math.Atan2(p.Z, p.X)
	theta := math.Asin(math.Max(-1, math.Min(1, p.Y)))
	return core.NewVec2(1-(phi+math.Pi)/(2*math.Pi), (theta+math.Pi/2)/math.Pi)
}
