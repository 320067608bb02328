package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box is an axis-aligned box made of six rectangles with outward normals
type Box struct {
	Min, Max core.Point
	faces    *HittableList
}

// NewBox creates a box spanning pMin to pMax
func NewBox(pMin, pMax core.Point, mat material.Material) *Box {
	faces := NewHittableList(
		NewXYRect(pMin.X, pMax.X, pMin.Y, pMax.Y, pMax.Z, mat),
		NewFlipNormals(NewXYRect(pMin.X, pMax.X, pMin.Y, pMax.Y, pMin.Z, mat)),
		NewXZRect(pMin.X, pMax.X, pMin.Z, pMax.Z, pMax.Y, mat),
		NewFlipNormals(NewXZRect(pMin.X, pMax.X, pMin.Z, pMax.Z, pMin.Y, mat)),
		NewYZRect(pMin.Y, pMax.Y, pMin.Z, pMax.Z, pMax.X, mat),
		NewFlipNormals(NewYZRect(pMin.Y, pMax.Y, pMin.Z, pMax.Z, pMin.X, mat)),
	)
	return &Box{Min: pMin, Max: pMax, faces: faces}
}

// Hit delegates to the six faces
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox() *core.AABB {
	return core.NewAABB(b.Min, b.Max)
}

// Pyramid is a tetrahedron made of the four triangles its corners span, each facing outward
type Pyramid struct {
	Points [4]core.Point
	faces  *HittableList
}

// NewPyramid creates a tetrahedron from four corners
func NewPyramid(p1, p2, p3, p4 core.Point, mat material.Material) *Pyramid {
	points := [4]core.Point{p1, p2, p3, p4}
	center := p1.Add(p2).Add(p3).Add(p4).Divide(4)

	var faces []Hittable
	for skip := 3; skip >= 0; skip-- {
		var corners []core.Point
		for i, p := range points {
			if i != skip {
				corners = append(corners, p)
			}
		}

		tri := NewTriangle(corners[0], corners[1], corners[2], mat)
		faceCenter := corners[0].Add(corners[1]).Add(corners[2]).Divide(3)
		if tri.Normal().Dot(center.Subtract(faceCenter)) > 0 {
			tri = NewTriangle(corners[0], corners[2], corners[1], mat)
		}
		faces = append(faces, tri)
	}

	return &Pyramid{Points: points, faces: NewHittableList(faces...)}
}

// Hit delegates to the four faces
func (p *Pyramid) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return p.faces.Hit(ray, tMin, tMax)
}

// BoundingBox bounds the four corners
func (p *Pyramid) BoundingBox() *core.AABB {
	return core.NewAABBFromPoints(p.Points[:]...)
}
