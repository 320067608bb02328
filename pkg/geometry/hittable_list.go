package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is an ordered collection scanned linearly for the nearest hit
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list over objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the nearest hit among all objects, shrinking the window as hits are found
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar); ok {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox is the union of every object's box; nil for an empty list
func (l *HittableList) BoundingBox() *core.AABB {
	var box *core.AABB
	for _, object := range l.Objects {
		box = core.SurroundingBox(box, object.BoundingBox())
	}
	return box
}

// PDFValue treats the list as a light group sampled uniformly: the mean of member densities
func (l *HittableList) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.Objects) == 0 {
		return 0
	}
	sum := 0.0
	for _, object := range l.Objects {
		sum += pdfValueOf(object, origin, direction)
	}
	return sum / float64(len(l.Objects))
}

// Random samples a uniformly chosen member
func (l *HittableList) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if len(l.Objects) == 0 {
		return core.Vec3{}
	}
	return randomOf(l.Objects[core.SampleIndex(sampler, len(l.Objects))], origin, sampler)
}
