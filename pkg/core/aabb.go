package core

import "math"

// AABB represents an axis-aligned bounding box.
// A nil *AABB stands for "no box" and is the identity of SurroundingBox.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) *AABB {
	return &AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points.
// Returns nil when no points are given.
func NewAABBFromPoints(points ...Vec3) *AABB {
	if len(points) == 0 {
		return nil
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return &AABB{Min: min, Max: max}
}

// Hit tests if a ray overlaps this AABB within (tMin, tMax) using the slab method
func (aabb *AABB) Hit(ray Ray, tMin, tMax float64) bool {
	if tMax <= tMin {
		return false
	}

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Ray is parallel to this slab: it overlaps for every t or for none
		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if invDirection < 0 {
			t1, t2 = t2, t1
		}

		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		// A single-point overlap still counts: flat boxes have t1 == t2
		if tMin > tMax {
			return false
		}
	}

	return true
}

// SurroundingBox returns the smallest box enclosing both boxes.
// A nil box is treated as empty: SurroundingBox(nil, b) == b.
func SurroundingBox(a, b *AABB) *AABB {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Translate returns the box shifted by offset
func (aabb *AABB) Translate(offset Vec3) *AABB {
	return &AABB{Min: aabb.Min.Add(offset), Max: aabb.Max.Add(offset)}
}

// Corners returns the eight corners of the box
func (aabb *AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	n := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corners[n] = Vec3{
					X: pick(i, aabb.Min.X, aabb.Max.X),
					Y: pick(j, aabb.Min.Y, aabb.Max.Y),
					Z: pick(k, aabb.Min.Z, aabb.Max.Z),
				}
				n++
			}
		}
	}
	return corners
}

func pick(i int, lo, hi float64) float64 {
	if i == 0 {
		return lo
	}
	return hi
}

// Center returns the center point of the AABB
func (aabb *AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb *AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb *AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
