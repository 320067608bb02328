package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaves are the input objects themselves; a single-object node has both children alias it.
type BVHNode struct {
	Left   Hittable
	Right  Hittable
	single bool // Left and Right are the same object
	box    *core.AABB
}

// NewBVHNode builds a hierarchy over objects. Every object must have a bounding box.
// The split axis at each level is drawn from sampler.
func NewBVHNode(objects []Hittable, sampler core.Sampler) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}
	for i, object := range objects {
		if object.BoundingBox() == nil {
			return nil, fmt.Errorf("%w: object %d (%T)", ErrNoBoundingBox, i, object)
		}
	}

	// Work on a copy so the caller's ordering is untouched
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, sampler), nil
}

// buildBVH sorts by the minimum of a random axis and splits into [0,n/2) and [n/2,n)
func buildBVH(objects []Hittable, sampler core.Sampler) *BVHNode {
	axis := core.SampleIndex(sampler, 3)
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Min.Axis(axis) < objects[j].BoundingBox().Min.Axis(axis)
	})

	node := &BVHNode{}
	switch n := len(objects); n {
	case 1:
		node.Left, node.Right = objects[0], objects[0]
		node.single = true
	case 2:
		node.Left, node.Right = objects[0], objects[1]
	default:
		mid := n / 2
		node.Left = buildBVH(objects[:mid], sampler)
		node.Right = buildBVH(objects[mid:], sampler)
	}

	node.box = core.SurroundingBox(node.Left.BoundingBox(), node.Right.BoundingBox())
	return node
}

// Hit tests the node's box, then both children over the full window, keeping the nearer hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !n.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if n.single {
		return leftHit, hitLeft
	}
	rightHit, hitRight := n.Right.Hit(ray, tMin, tMax)

	switch {
	case hitLeft && hitRight:
		if leftHit.T <= rightHit.T {
			return leftHit, true
		}
		return rightHit, true
	case hitLeft:
		return leftHit, true
	case hitRight:
		return rightHit, true
	default:
		return nil, false
	}
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox() *core.AABB {
	return n.box
}
