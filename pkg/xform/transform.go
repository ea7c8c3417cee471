// Package xform implements the affine transform used to instance a shared
// shape at many different positions, orientations, and scales without
// duplicating its geometry.
package xform

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kaelrun/go-bvh-accel/pkg/core"
)

// Transform is a 4x4 affine matrix paired with its inverse. Both are kept
// around at construction time since every instanced ray/normal needs the
// inverse and every instanced point/bbox needs the forward matrix, and
// inverting a 4x4 matrix on every query would be wasted work.
type Transform struct {
	mat mgl64.Mat4
	inv mgl64.Mat4
}

// Identity returns the transform that leaves points, vectors, and rays
// unchanged.
func Identity() Transform {
	return Transform{mat: mgl64.Ident4(), inv: mgl64.Ident4()}
}

// NewTransform builds a Transform from an explicit matrix, inverting it
// once up front. It panics if the matrix is singular, since a non-invertible
// affine transform cannot map a ray back into the shape's local frame.
func NewTransform(mat mgl64.Mat4) Transform {
	if mgl64.FloatEqual(mat.Det(), 0) {
		panic("xform: singular matrix has no inverse")
	}
	inv := mat.Inv()
	return Transform{mat: mat, inv: inv}
}

// Translate returns a transform that translates by the given offset.
func Translate(offset core.Vec3) Transform {
	return NewTransform(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
}

// Scale returns a transform that scales independently along each axis.
func Scale(factors core.Vec3) Transform {
	return NewTransform(mgl64.Scale3D(factors.X, factors.Y, factors.Z))
}

// RotateX returns a transform that rotates by angle radians around the X axis.
func RotateX(angle float64) Transform {
	return NewTransform(mgl64.HomogRotate3DX(angle))
}

// RotateY returns a transform that rotates by angle radians around the Y axis.
func RotateY(angle float64) Transform {
	return NewTransform(mgl64.HomogRotate3DY(angle))
}

// RotateZ returns a transform that rotates by angle radians around the Z axis.
func RotateZ(angle float64) Transform {
	return NewTransform(mgl64.HomogRotate3DZ(angle))
}

// Then composes this transform with next, so that applying the result to a
// point is equivalent to applying this transform first, then next: i.e.
// next.mat * t.mat.
func (t Transform) Then(next Transform) Transform {
	return NewTransform(next.mat.Mul4(t.mat))
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	return Transform{mat: t.inv, inv: t.mat}
}

func vec3From4(v mgl64.Vec4) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Point transforms a point by the affine matrix, including translation.
func (t Transform) Point(p core.Vec3) core.Vec3 {
	return vec3From4(t.mat.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// InversePoint transforms a point by the inverse matrix.
func (t Transform) InversePoint(p core.Vec3) core.Vec3 {
	return vec3From4(t.inv.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// Vector transforms a direction vector by the linear part of the matrix,
// ignoring translation.
func (t Transform) Vector(v core.Vec3) core.Vec3 {
	return vec3From4(t.mat.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}))
}

// InverseVector transforms a direction vector by the linear part of the
// inverse matrix, ignoring translation.
func (t Transform) InverseVector(v core.Vec3) core.Vec3 {
	return vec3From4(t.inv.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}))
}

// Normal transforms a surface normal by the inverse-transpose of the linear
// part of the matrix, the correct map for normals under a non-uniform scale
// or shear, then renormalizes.
func (t Transform) Normal(n core.Vec3) core.Vec3 {
	invT := t.inv.Transpose()
	return vec3From4(invT.Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0})).Normalize()
}

// InverseNormal transforms a surface normal by the transpose of the forward
// matrix's linear part — the inverse of Normal.
func (t Transform) InverseNormal(n core.Vec3) core.Vec3 {
	fwdT := t.mat.Transpose()
	return vec3From4(fwdT.Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0})).Normalize()
}

// Ray transforms a ray's origin and direction into the outer frame.
func (t Transform) Ray(r core.Ray) core.Ray {
	return core.NewRay(t.Point(r.Origin), t.Vector(r.Direction))
}

// InverseRay transforms a ray's origin and direction into the shape's local
// frame, the operation a Transformed wrapper applies before delegating to
// its inner shape.
func (t Transform) InverseRay(r core.Ray) core.Ray {
	return core.NewRay(t.InversePoint(r.Origin), t.InverseVector(r.Direction))
}

// Bbox maps an AABB through the transform conservatively: it transforms all
// eight corners and returns their axis-aligned union. This is not tight for
// rotated boxes, matching the reference implementation's own approach.
func (t Transform) Bbox(box core.AABB) core.AABB {
	result := core.Empty()
	for _, corner := range box.Corners() {
		result = result.UnionPoint(t.Point(corner))
	}
	return result
}
