package core

import "math"

// EpsHit is the minimum valid ray parameter; intersections below this are
// treated as grazing/self-intersection and rejected.
const EpsHit = 1e-6

// AABB is an axis-aligned bounding box, given by its minimum and maximum corners.
// The zero value is not a valid empty box; use Empty() for the union identity.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Empty returns the identity AABB for Union: an inverted box that, unioned
// with any other box or point, yields that box or point unchanged.
func Empty() AABB {
	return AABB{
		Min: Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// NewAABB creates an AABB from explicit min/max corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the smallest AABB containing every given point.
func NewAABBFromPoints(points ...Vec3) AABB {
	box := Empty()
	for _, p := range points {
		box = box.UnionPoint(p)
	}
	return box
}

// IsEmpty reports whether this is the identity (no finite point inside it).
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// IsFinite reports whether every coordinate of the box is a finite number.
// An empty box (built from Empty()) is considered finite for this purpose;
// it carries intentional infinities as its union identity.
func (aabb AABB) IsFinite() bool {
	if aabb.IsEmpty() {
		return true
	}
	vals := [...]float64{aabb.Min.X, aabb.Min.Y, aabb.Min.Z, aabb.Max.X, aabb.Max.Y, aabb.Max.Z}
	for _, v := range vals {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Union returns the smallest AABB containing both this box and other.
// Union is commutative and associative, with Empty() as identity.
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// UnionPoint returns the smallest AABB containing this box and the given point.
func (aabb AABB) UnionPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, p.X),
			Y: math.Min(aabb.Min.Y, p.Y),
			Z: math.Min(aabb.Min.Z, p.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, p.X),
			Y: math.Max(aabb.Max.Y, p.Y),
			Z: math.Max(aabb.Max.Z, p.Z),
		},
	}
}

// Centroid returns the midpoint of the box.
func (aabb AABB) Centroid() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Extent returns the size of the box along each axis.
func (aabb AABB) Extent() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the total area of the box's six faces. The empty box has area 0.
func (aabb AABB) SurfaceArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	e := aabb.Extent()
	return 2.0 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// LongestAxis returns the axis with the greatest extent, ties broken X < Y < Z.
func (aabb AABB) LongestAxis() Axis {
	e := aabb.Extent()
	best := AxisX
	bestExtent := e.X
	if e.Y > bestExtent {
		best = AxisY
		bestExtent = e.Y
	}
	if e.Z > bestExtent {
		best = AxisZ
	}
	return best
}

// Corners returns the eight corners of the box, used by affine transforms to
// build a conservative image of the box under a linear map.
func (aabb AABB) Corners() [8]Vec3 {
	return [8]Vec3{
		{aabb.Min.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Max.Z},
	}
}

// RayIntersect performs the three-slab test and returns the entry t-value at
// which the ray enters the box, or false if it misses.
//
// Both conservative conditions from the reference implementation are kept:
// a miss is t0 > t1 (the slabs don't overlap) OR t1 <= EpsHit (the box is
// entirely behind the ray, or only grazed right at the origin). The
// returned entry is max(t0, 0) so that rays starting inside the box are
// reported as entering at 0 rather than at a negative t.
//
// Rays parallel to a slab axis produce +-Inf from (plane-origin)/direction;
// IEEE float semantics carry those through min/max correctly, so no
// zero-division guard is introduced here.
func (aabb AABB) RayIntersect(ray Ray) (float64, bool) {
	t0, t1 := 0.0, math.Inf(1)

	for axis := AxisX; axis <= AxisZ; axis++ {
		min := aabb.Min.Component(axis)
		max := aabb.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		invD := 1.0 / direction
		tNear := (min - origin) * invD
		tFar := (max - origin) * invD
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}

		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return 0, false
		}
	}

	if t1 <= EpsHit {
		return 0, false
	}

	return math.Max(t0, 0), true
}
