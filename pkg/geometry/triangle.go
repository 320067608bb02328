package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// triangleTMin keeps a ray leaving a triangle from re-hitting it
const triangleTMin = 1e-5

// Triangle represents a single triangle with counter-clockwise front face
type Triangle struct {
	V0, V1, V2 core.Point
	Material   material.Material

	normal core.Vec3
	area   float64
	bbox   *core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Point, mat material.Material) *Triangle {
	cross := v1.Subtract(v0).Cross(v2.Subtract(v0))
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   cross.Normalize(),
		area:     cross.Length() / 2,
		bbox:     core.NewAABBFromPoints(v0, v1, v2),
	}
}

// Normal returns the triangle's unit normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	return t.area
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// If determinant is near zero, ray lies in plane of triangle
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam <= math.Max(tMin, triangleTMin) || tParam >= tMax {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		Normal:   t.normal,
		UV:       core.NewVec2(u, v),
		Material: t.Material,
	}
	hit.SetFrontFace(ray)
	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() *core.AABB {
	return t.bbox
}

// PDFValue returns dist²/(cosθ·area) for the point direction hits, 0 on a miss
func (t *Triangle) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := t.Hit(core.NewRay(origin, direction), samplingTMin, math.Inf(1))
	if !ok {
		return 0
	}
	return areaDensity(direction, t.normal, hit.T, t.area)
}

// Random returns the direction from origin to a uniform point on the triangle
func (t *Triangle) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.SampleTriangle(t.V0, t.V1, t.V2, sampler.Get2D()).Subtract(origin)
}
