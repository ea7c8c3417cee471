// Package shapes implements the concrete primitives the accelerator
// indexes: spheres, triangle meshes (flat and smooth shaded), affine
// instances, and fixed compounds of other primitives.
package shapes

import (
	"math"

	"github.com/kaelrun/go-bvh-accel/pkg/core"
)

// Sphere is a geometric sphere, the reference primitive used throughout
// the accelerator's own test suite.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a sphere with the given center and radius.
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// BoundingBox returns the axis-aligned box enclosing the sphere.
func (s Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Intersect solves the sphere quadratic and returns the nearest root in
// [tMin, tMax], with a spherical UV parameterization.
func (s Sphere) Intersect(ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.Hit{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return core.Hit{}, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	theta := math.Acos(-normal.Y)
	phi := math.Atan2(-normal.Z, normal.X) + math.Pi
	uv := core.NewVec2(phi/(2.0*math.Pi), theta/math.Pi)

	return core.Hit{T: root, Point: point, Normal: normal, UV: uv}, true
}

// CountIntersectionTests reports the cost of one sphere test.
func (s Sphere) CountIntersectionTests(ray core.Ray, tMin, tMax float64) int {
	return 1
}
