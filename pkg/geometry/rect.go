package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Plane names the axis-aligned plane a rectangle lies in
type Plane int

const (
	PlaneXY Plane = iota // normal +z, u from x, v from y
	PlaneXZ              // normal +y, u from x, v from z
	PlaneYZ              // normal +x, u from z, v from y
)

// rectPadding keeps a flat rectangle's bounding box from collapsing to zero thickness
const rectPadding = 0.0001

// Rect is an axis-aligned rectangle at a fixed coordinate K of its plane's normal axis.
// Its normal always points along the positive normal axis; wrap it in FlipNormals to face the other way.
type Rect struct {
	Plane    Plane
	A0, A1   float64 // extent along the first in-plane axis
	B0, B1   float64 // extent along the second in-plane axis
	K        float64
	Material material.Material

	normalAxis, aAxis, bAxis int
	normal                   core.Vec3
}

// NewXYRect creates a rectangle [x0,x1]×[y0,y1] at z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *Rect {
	return newRect(PlaneXY, x0, x1, y0, y1, k, mat)
}

// NewXZRect creates a rectangle [x0,x1]×[z0,z1] at y = k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *Rect {
	return newRect(PlaneXZ, x0, x1, z0, z1, k, mat)
}

// NewYZRect creates a rectangle [y0,y1]×[z0,z1] at x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *Rect {
	return newRect(PlaneYZ, y0, y1, z0, z1, k, mat)
}

func newRect(plane Plane, a0, a1, b0, b1, k float64, mat material.Material) *Rect {
	r := &Rect{Plane: plane, A0: a0, A1: a1, B0: b0, B1: b1, K: k, Material: mat}
	switch plane {
	case PlaneXY:
		r.normalAxis, r.aAxis, r.bAxis = 2, 0, 1
		r.normal = core.NewVec3(0, 0, 1)
	case PlaneXZ:
		r.normalAxis, r.aAxis, r.bAxis = 1, 0, 2
		r.normal = core.NewVec3(0, 1, 0)
	default:
		r.normalAxis, r.aAxis, r.bAxis = 0, 1, 2
		r.normal = core.NewVec3(1, 0, 0)
	}
	return r
}

// Area returns the rectangle's surface area
func (r *Rect) Area() float64 {
	return math.Abs((r.A1 - r.A0) * (r.B1 - r.B0))
}

// Hit intersects the rectangle's plane and bound-checks the in-plane coordinates
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := ray.Direction.Axis(r.normalAxis)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (r.K - ray.Origin.Axis(r.normalAxis)) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	point := ray.At(t)
	a := point.Axis(r.aAxis)
	b := point.Axis(r.bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	u := (a - r.A0) / (r.A1 - r.A0)
	v := (b - r.B0) / (r.B1 - r.B0)
	if r.Plane == PlaneYZ {
		// YZ rectangles map u along z and v along y
		u, v = v, u
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Normal:   r.normal,
		UV:       core.NewVec2(u, v),
		Material: r.Material,
	}
	hit.SetFrontFace(ray)
	return hit, true
}

// BoundingBox returns the rectangle's extent, padded along the normal axis
func (r *Rect) BoundingBox() *core.AABB {
	var min, max [3]float64
	min[r.aAxis], max[r.aAxis] = r.A0, r.A1
	min[r.bAxis], max[r.bAxis] = r.B0, r.B1
	min[r.normalAxis], max[r.normalAxis] = r.K-rectPadding, r.K+rectPadding
	return core.NewAABB(core.NewVec3(min[0], min[1], min[2]), core.NewVec3(max[0], max[1], max[2]))
}

// PDFValue returns dist²/(cosθ·area) for the point direction hits, 0 on a miss
func (r *Rect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), samplingTMin, math.Inf(1))
	if !ok {
		return 0
	}
	return areaDensity(direction, hit.Normal, hit.T, r.Area())
}

// Random returns the direction from origin to a uniform point on the rectangle
func (r *Rect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	var p [3]float64
	p[r.aAxis] = r.A0 + sample.X*(r.A1-r.A0)
	p[r.bAxis] = r.B0 + sample.Y*(r.B1-r.B0)
	p[r.normalAxis] = r.K
	return core.NewVec3(p[0], p[1], p[2]).Subtract(origin)
}

// XZDisk is a horizontal disk facing +y
type XZDisk struct {
	Center   core.Point
	Radius   float64
	Material material.Material
}

// NewXZDisk creates a disk of the given radius in the plane y = center.Y
func NewXZDisk(center core.Point, radius float64, mat material.Material) *XZDisk {
	return &XZDisk{Center: center, Radius: radius, Material: mat}
}

// Area returns πr²
func (d *XZDisk) Area() float64 {
	return math.Pi * d.Radius * d.Radius
}

// Hit intersects the disk's plane and tests the radial distance from the center
func (d *XZDisk) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if math.Abs(ray.Direction.Y) < 1e-8 {
		return nil, false
	}

	t := (d.Center.Y - ray.Origin.Y) / ray.Direction.Y
	if t <= tMin || t >= tMax {
		return nil, false
	}

	point := ray.At(t)
	if point.Subtract(d.Center).Length() >= d.Radius {
		return nil, false
	}

	corner := d.Center.Subtract(core.NewVec3(d.Radius, 0, d.Radius))
	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Normal:   core.NewVec3(0, 1, 0),
		UV:       core.NewVec2((point.X-corner.X)/(2*d.Radius), (point.Z-corner.Z)/(2*d.Radius)),
		Material: d.Material,
	}
	hit.SetFrontFace(ray)
	return hit, true
}

// BoundingBox returns the square enclosing the disk, padded vertically
func (d *XZDisk) BoundingBox() *core.AABB {
	extent := core.NewVec3(d.Radius, rectPadding, d.Radius)
	return core.NewAABB(d.Center.Subtract(extent), d.Center.Add(extent))
}

// PDFValue returns dist²/(cosθ·πr²) for the point direction hits, 0 on a miss
func (d *XZDisk) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := d.Hit(core.NewRay(origin, direction), samplingTMin, math.Inf(1))
	if !ok {
		return 0
	}
	return areaDensity(direction, hit.Normal, hit.T, d.Area())
}

// Random returns the direction from origin to a uniform point on the disk
func (d *XZDisk) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(d.Radius)
	point := d.Center.Add(core.NewVec3(p.X, 0, p.Y))
	return point.Subtract(origin)
}
