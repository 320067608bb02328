package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Wrappers below pass PDFValue and Random straight to their child without
// transforming origin or direction. Lights registered for importance sampling
// should therefore be untransformed or only flipped.

// FlipNormals reverses the normal its child reports
type FlipNormals struct {
	Object Hittable
}

// NewFlipNormals wraps object so its normals point the other way
func NewFlipNormals(object Hittable) *FlipNormals {
	return &FlipNormals{Object: object}
}

// Hit returns the child's hit with the normal negated
func (f *FlipNormals) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	flipped := *hit
	flipped.Normal = hit.Normal.Negate()
	flipped.FrontFace = !hit.FrontFace
	return &flipped, true
}

// BoundingBox returns the child's box
func (f *FlipNormals) BoundingBox() *core.AABB {
	return f.Object.BoundingBox()
}

// PDFValue delegates to the child
func (f *FlipNormals) PDFValue(origin, direction core.Vec3) float64 {
	return pdfValueOf(f.Object, origin, direction)
}

// Random delegates to the child
func (f *FlipNormals) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return randomOf(f.Object, origin, sampler)
}

// Translate moves its child by Offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, delegates, then moves the hit point back
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	hit, ok := t.Object.Hit(moved, tMin, tMax)
	if !ok {
		return nil, false
	}
	translated := *hit
	translated.Point = hit.Point.Add(t.Offset)
	return &translated, true
}

// BoundingBox returns the child's box shifted by Offset
func (t *Translate) BoundingBox() *core.AABB {
	box := t.Object.BoundingBox()
	if box == nil {
		return nil
	}
	return box.Translate(t.Offset)
}

// PDFValue delegates to the child unchanged
func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return pdfValueOf(t.Object, origin, direction)
}

// Random delegates to the child unchanged
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return randomOf(t.Object, origin, sampler)
}

// Axis selects the axis a Rotate turns around
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Rotate turns its child by a fixed angle around a coordinate axis
type Rotate struct {
	Object  Hittable
	Axis    Axis
	Degrees float64

	sinTheta, cosTheta float64
	bbox               *core.AABB
}

// NewRotate wraps object rotated by degrees around axis
func NewRotate(object Hittable, axis Axis, degrees float64) *Rotate {
	radians := degrees * math.Pi / 180
	r := &Rotate{
		Object:   object,
		Axis:     axis,
		Degrees:  degrees,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Conservative box: the extent of the child's rotated corners
	if box := object.BoundingBox(); box != nil {
		corners := box.Corners()
		for i, c := range corners {
			corners[i] = r.toWorld(c)
		}
		r.bbox = core.NewAABBFromPoints(corners[:]...)
	}
	return r
}

// NewRotateX rotates object around the x axis
func NewRotateX(object Hittable, degrees float64) *Rotate {
	return NewRotate(object, AxisX, degrees)
}

// NewRotateY rotates object around the y axis
func NewRotateY(object Hittable, degrees float64) *Rotate {
	return NewRotate(object, AxisY, degrees)
}

// NewRotateZ rotates object around the z axis
func NewRotateZ(object Hittable, degrees float64) *Rotate {
	return NewRotate(object, AxisZ, degrees)
}

// toWorld rotates an object-space vector by +θ
func (r *Rotate) toWorld(v core.Vec3) core.Vec3 {
	return rotateAround(v, r.Axis, r.sinTheta, r.cosTheta)
}

// toObject rotates a world-space vector by -θ
func (r *Rotate) toObject(v core.Vec3) core.Vec3 {
	return rotateAround(v, r.Axis, -r.sinTheta, r.cosTheta)
}

func rotateAround(v core.Vec3, axis Axis, sin, cos float64) core.Vec3 {
	switch axis {
	case AxisX:
		return core.NewVec3(v.X, cos*v.Y-sin*v.Z, sin*v.Y+cos*v.Z)
	case AxisY:
		return core.NewVec3(cos*v.X+sin*v.Z, v.Y, -sin*v.X+cos*v.Z)
	default:
		return core.NewVec3(cos*v.X-sin*v.Y, sin*v.X+cos*v.Y, v.Z)
	}
}

// Hit rotates the ray into object space, delegates, then rotates the point and normal back
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(rotated, tMin, tMax)
	if !ok {
		return nil, false
	}
	world := *hit
	world.Point = r.toWorld(hit.Point)
	world.Normal = r.toWorld(hit.Normal)
	return &world, true
}

// BoundingBox returns the box computed at construction
func (r *Rotate) BoundingBox() *core.AABB {
	return r.bbox
}

// PDFValue delegates to the child unchanged
func (r *Rotate) PDFValue(origin, direction core.Vec3) float64 {
	return pdfValueOf(r.Object, origin, direction)
}

// Random delegates to the child unchanged
func (r *Rotate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return randomOf(r.Object, origin, sampler)
}
