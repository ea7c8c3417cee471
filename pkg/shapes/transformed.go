package shapes

import (
	"github.com/kaelrun/go-bvh-accel/pkg/core"
	"github.com/kaelrun/go-bvh-accel/pkg/xform"
)

// Transformed instances an inner shape under an affine transform. It holds
// shared ownership of the inner shape, so N instances of a large mesh
// remain O(|mesh| + N*|transform|) in memory rather than O(N*|mesh|).
type Transformed struct {
	Inner     core.Primitive
	Transform xform.Transform
}

// NewTransformed instances shape under the given transform.
func NewTransformed(shape core.Primitive, transform xform.Transform) Transformed {
	return Transformed{Inner: shape, Transform: transform}
}

// BoundingBox returns the conservative image of the inner shape's bbox
// under the transform: the axis-aligned union of its eight transformed
// corners. This is not the tightest possible envelope for a rotated box,
// but it is guaranteed to contain the actual transformed geometry.
func (t Transformed) BoundingBox() core.AABB {
	return t.Transform.Bbox(t.Inner.BoundingBox())
}

// Intersect pushes the ray through the inverse transform into the inner
// shape's local frame, then lifts the resulting normal back by the
// inverse-transpose and renormalizes. The hit's t is preserved unchanged:
// the inverse transform carries the ray's direction through without
// renormalizing it, so t still measures the same parametric distance along
// the original ray.
func (t Transformed) Intersect(ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	localRay := t.Transform.InverseRay(ray)
	hit, ok := t.Inner.Intersect(localRay, tMin, tMax)
	if !ok {
		return core.Hit{}, false
	}
	hit.Point = t.Transform.Point(hit.Point)
	hit.Normal = t.Transform.Normal(hit.Normal)
	return hit, true
}

// CountIntersectionTests delegates to the inner shape under the inverse-
// transformed ray.
func (t Transformed) CountIntersectionTests(ray core.Ray, tMin, tMax float64) int {
	localRay := t.Transform.InverseRay(ray)
	return t.Inner.CountIntersectionTests(localRay, tMin, tMax)
}
