package xform

import (
	"math"
	"testing"

	"github.com/kaelrun/go-bvh-accel/pkg/core"
)

func TestIdentityPoint(t *testing.T) {
	p := core.NewVec3(1, 2, 3)
	got := Identity().Point(p)
	if !got.Equals(p) {
		t.Errorf("Identity().Point(%v) = %v, want %v", p, got, p)
	}
}

func TestTranslatePoint(t *testing.T) {
	tr := Translate(core.NewVec3(1, 2, 3))
	got := tr.Point(core.NewVec3(0, 0, 0))
	want := core.NewVec3(1, 2, 3)
	if !got.Equals(want) {
		t.Errorf("Translate.Point(origin) = %v, want %v", got, want)
	}
}

func TestTranslateVectorIgnoresOffset(t *testing.T) {
	tr := Translate(core.NewVec3(1, 2, 3))
	v := core.NewVec3(1, 0, 0)
	got := tr.Vector(v)
	if !got.Equals(v) {
		t.Errorf("Translate.Vector(%v) = %v, want %v (translation must not affect vectors)", v, got, v)
	}
}

func TestInverseUndoesTransform(t *testing.T) {
	tr := Scale(core.NewVec3(2, 3, 4)).Then(Translate(core.NewVec3(5, -1, 2))).Then(RotateZ(0.7))
	p := core.NewVec3(3, -2, 7)
	roundTrip := tr.Inverse().Point(tr.Point(p))
	if !roundTrip.Equals(p) {
		t.Errorf("Inverse().Point(Point(%v)) = %v, want %v", p, roundTrip, p)
	}
}

func TestInverseRayRoundTrip(t *testing.T) {
	tr := RotateY(0.3).Then(Translate(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	local := tr.InverseRay(ray)
	back := tr.Ray(local)
	if !back.Origin.Equals(ray.Origin) {
		t.Errorf("round-tripped ray origin = %v, want %v", back.Origin, ray.Origin)
	}
	if !back.Direction.Equals(ray.Direction) {
		t.Errorf("round-tripped ray direction = %v, want %v", back.Direction, ray.Direction)
	}
}

func TestNormalUnderNonUniformScale(t *testing.T) {
	// Scaling X by 2 while leaving Y,Z unchanged should map the normal
	// (1,0,0) to keep pointing along X despite the non-uniform scale
	// (the inverse-transpose map cancels the stretch on the normal).
	tr := Scale(core.NewVec3(2, 1, 1))
	n := core.NewVec3(1, 0, 0)
	got := tr.Normal(n)
	want := core.NewVec3(1, 0, 0)
	if !got.Equals(want) {
		t.Errorf("Normal(%v) under scale(2,1,1) = %v, want %v", n, got, want)
	}
	if math.Abs(got.Length()-1.0) > 1e-9 {
		t.Errorf("Normal() result not unit length: %v", got)
	}
}

func TestBboxAxisAlignedUnderTranslation(t *testing.T) {
	box := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	tr := Translate(core.NewVec3(5, 0, 0))
	got := tr.Bbox(box)
	want := core.NewAABB(core.NewVec3(4, -1, -1), core.NewVec3(6, 1, 1))
	if !got.Min.Equals(want.Min) || !got.Max.Equals(want.Max) {
		t.Errorf("Bbox under translation = %v, want %v", got, want)
	}
}

func TestThenComposesInApplicationOrder(t *testing.T) {
	// t.Then(next) applies t first, then next: here the point is
	// translated first, then scaled.
	t1 := Translate(core.NewVec3(1, 0, 0))
	t2 := Scale(core.NewVec3(2, 2, 2))
	composed := t1.Then(t2)
	p := core.NewVec3(0, 0, 0)
	got := composed.Point(p)
	want := core.NewVec3(2, 0, 0) // (0,0,0) -> translate -> (1,0,0) -> scale -> (2,0,0)
	if !got.Equals(want) {
		t.Errorf("composed.Point(%v) = %v, want %v", p, got, want)
	}
}
