package core

// Hit records the result of a ray intersecting a primitive.
type Hit struct {
	T        float64  // ray parameter at the intersection
	Point    Vec3     // intersection point in the coordinate frame the ray was given in
	Normal   Vec3     // surface normal at the intersection, not guaranteed to be normalized by every primitive
	UV       Vec2     // surface parameterization; mesh faces without texture coordinates report barycentric (beta, gamma)
	Material Material // opaque material handle carried from the geometric object
}

// Primitive is the flat capability contract the BVH dispatches against.
// It is intentionally non-generic: the accelerator stores a heterogeneous
// mix of spheres, mesh triangles, transformed instances, and compounds
// behind this single interface rather than a type-parameterized tree.
type Primitive interface {
	// BoundingBox returns the primitive's AABB in its own coordinate frame.
	BoundingBox() AABB

	// Intersect tests the ray against the primitive, restricted to the
	// parametric range [tMin, tMax]. It returns the nearest hit within
	// that range, if any.
	Intersect(ray Ray, tMin, tMax float64) (Hit, bool)

	// CountIntersectionTests returns how many leaf-level intersection
	// tests would be performed for this ray, restricted to [tMin, tMax].
	// A simple primitive returns 1; a composite returns the sum over its
	// children that are actually visited.
	CountIntersectionTests(ray Ray, tMin, tMax float64) int
}

// Material is an opaque handle the core stores and returns in a Hit but
// never interprets. Shading, BRDFs, and emission all live in an external
// collaborator package; the accelerator only ever needs to carry this
// handle through to the caller.
type Material interface{}

// GeometricObject pairs a shape with the material it is rendered with,
// matching the "geometric object" described alongside the primitive
// contract. It wraps any Primitive and is itself a Primitive; the shapes in
// pkg/shapes carry no material of their own.
type GeometricObject struct {
	Shape    Primitive
	Material Material
}

// BoundingBox delegates to the wrapped shape.
func (g GeometricObject) BoundingBox() AABB {
	return g.Shape.BoundingBox()
}

// Intersect delegates to the wrapped shape and stamps the result with
// this object's material.
func (g GeometricObject) Intersect(ray Ray, tMin, tMax float64) (Hit, bool) {
	hit, ok := g.Shape.Intersect(ray, tMin, tMax)
	if !ok {
		return Hit{}, false
	}
	hit.Material = g.Material
	return hit, true
}

// CountIntersectionTests delegates to the wrapped shape.
func (g GeometricObject) CountIntersectionTests(ray Ray, tMin, tMax float64) int {
	return g.Shape.CountIntersectionTests(ray, tMin, tMax)
}
