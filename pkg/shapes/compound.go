package shapes

import (
	"github.com/kaelrun/go-bvh-accel/pkg/core"
)

// Compound is a fixed list of primitives presented as a single primitive:
// its bbox is the union of its children's, and an intersection test walks
// every child linearly and keeps the nearest hit. It is the "composite
// primitives sum their cost" case referenced alongside the primitive
// capability contract — a Compound's CountIntersectionTests is the sum of
// its children's, not 1.
type Compound struct {
	Children []core.Primitive
}

// NewCompound builds a Compound over the given children.
func NewCompound(children ...core.Primitive) Compound {
	return Compound{Children: children}
}

// BoundingBox returns the union of every child's bbox.
func (c Compound) BoundingBox() core.AABB {
	box := core.Empty()
	for _, child := range c.Children {
		box = box.Union(child.BoundingBox())
	}
	return box
}

// Intersect tests every child and returns the nearest hit within
// [tMin, tMax].
func (c Compound) Intersect(ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	var best core.Hit
	found := false
	localMax := tMax
	for _, child := range c.Children {
		if hit, ok := child.Intersect(ray, tMin, localMax); ok {
			best = hit
			localMax = hit.T
			found = true
		}
	}
	return best, found
}

// CountIntersectionTests sums the cost reported by every child, restricted
// to the same [tMin, tMax] range used by Intersect.
func (c Compound) CountIntersectionTests(ray core.Ray, tMin, tMax float64) int {
	total := 0
	for _, child := range c.Children {
		total += child.CountIntersectionTests(ray, tMin, tMax)
	}
	return total
}
