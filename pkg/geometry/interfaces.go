package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrTooFewVertices is returned when a polygon is built from fewer than three points
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
	// ErrEmptyBVH is returned when a BVH is built over no objects
	ErrEmptyBVH = errors.New("cannot build BVH over no objects")
	// ErrNoBoundingBox is returned when a BVH input has no bounding box
	ErrNoBoundingBox = errors.New("object has no bounding box")
)

// Hittable is anything a ray can intersect.
// Hit returns the nearest intersection with t strictly inside (tMin, tMax).
// A nil bounding box means the object is unbounded or empty.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() *core.AABB
}

// Sampleable is a Hittable that can be importance sampled from a point, typically a light
type Sampleable interface {
	Hittable
	// PDFValue returns the solid-angle density of sampling direction from origin
	PDFValue(origin, direction core.Vec3) float64
	// Random returns a direction from origin toward a random point on the object
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// pdfValueOf delegates to h when it supports sampling and returns 0 otherwise
func pdfValueOf(h Hittable, origin, direction core.Vec3) float64 {
	if s, ok := h.(Sampleable); ok {
		return s.PDFValue(origin, direction)
	}
	return 0
}

// randomOf delegates to h when it supports sampling and returns the zero vector otherwise
func randomOf(h Hittable, origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if s, ok := h.(Sampleable); ok {
		return s.Random(origin, sampler)
	}
	return core.Vec3{}
}

// areaDensity converts an area sample at distance t along direction into a solid-angle density
func areaDensity(direction, normal core.Vec3, t, area float64) float64 {
	distanceSquared := t * t * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(normal)) / direction.Length()
	if cosine < 1e-12 || area <= 0 {
		return 0
	}
	return distanceSquared / (cosine * area)
}

// samplingTMin is the lower bound used when probing a light along a sampled direction
const samplingTMin = 0.001
