package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidMesh is returned for face lists that are not triples of valid vertex indices
var ErrInvalidMesh = errors.New("invalid triangle mesh")

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH for fast intersection tests
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVHNode
	area      float64
}

// NewTriangleMesh creates a mesh from vertices and face indices.
// Each group of three indices forms one counter-clockwise triangle.
func NewTriangleMesh(vertices []core.Point, faces []int, mat material.Material, sampler core.Sampler) (*TriangleMesh, error) {
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a positive multiple of 3", ErrInvalidMesh, len(faces))
	}

	mesh := &TriangleMesh{}
	objects := make([]Hittable, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, index := range []int{i0, i1, i2} {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i/3, index, len(vertices))
			}
		}

		tri := NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat)
		mesh.triangles = append(mesh.triangles, tri)
		mesh.area += tri.Area()
		objects = append(objects, tri)
	}

	bvh, err := NewBVHNode(objects, sampler)
	if err != nil {
		return nil, fmt.Errorf("while building mesh BVH: %w", err)
	}
	mesh.bvh = bvh

	return mesh, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() *core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Area returns the total surface area of the mesh
func (tm *TriangleMesh) Area() float64 {
	return tm.area
}
