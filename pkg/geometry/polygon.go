package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// XZPolygon is a convex horizontal polygon facing +y, stored as a fan of triangles
type XZPolygon struct {
	Y        float64
	Material material.Material

	triangles []*Triangle
	list      *HittableList
	areas     []float64 // cumulative triangle areas
	area      float64
}

// NewXZPolygon creates a polygon from (x, z) vertices at height y.
// Returns ErrTooFewVertices for fewer than three vertices.
func NewXZPolygon(vertices [][2]float64, y float64, mat material.Material) (*XZPolygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}

	p := &XZPolygon{Y: y, Material: mat}
	first := core.NewVec3(vertices[0][0], y, vertices[0][1])
	objects := make([]Hittable, 0, len(vertices)-2)
	for i := 1; i+1 < len(vertices); i++ {
		b := core.NewVec3(vertices[i][0], y, vertices[i][1])
		c := core.NewVec3(vertices[i+1][0], y, vertices[i+1][1])

		// Order each fan triangle so its normal faces +y
		tri := NewTriangle(first, b, c, mat)
		if tri.Normal().Y < 0 {
			tri = NewTriangle(first, c, b, mat)
		}

		p.triangles = append(p.triangles, tri)
		objects = append(objects, tri)
		p.area += tri.Area()
		p.areas = append(p.areas, p.area)
	}
	p.list = NewHittableList(objects...)

	return p, nil
}

// Area returns the polygon's surface area
func (p *XZPolygon) Area() float64 {
	return p.area
}

// Hit delegates to the fan of triangles
func (p *XZPolygon) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return p.list.Hit(ray, tMin, tMax)
}

// BoundingBox returns the fan's bounding box
func (p *XZPolygon) BoundingBox() *core.AABB {
	return p.list.BoundingBox()
}

// PDFValue returns dist²/(cosθ·area) over the whole polygon, 0 on a miss
func (p *XZPolygon) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := p.Hit(core.NewRay(origin, direction), samplingTMin, math.Inf(1))
	if !ok {
		return 0
	}
	return areaDensity(direction, hit.Normal, hit.T, p.area)
}

// Random picks a triangle with probability proportional to its area, then a uniform point on it
func (p *XZPolygon) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	r := sampler.Get1D() * p.area
	for i, bound := range p.areas {
		if r < bound || i == len(p.areas)-1 {
			return p.triangles[i].Random(origin, sampler)
		}
	}
	return core.Vec3{}
}
