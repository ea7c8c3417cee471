package loaders

import (
	"math"
	"strings"
	"testing"

	"github.com/kaelrun/go-bvh-accel/pkg/core"
	"github.com/kaelrun/go-bvh-accel/pkg/shapes"
)

const sampleOBJ = `
# a single triangle
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
vn 0 0 1
vn 0 0 1
f 1/1/1 2/2/2 3/3/3
`

func TestLoadOBJParsesSingleTriangle(t *testing.T) {
	mesh, err := LoadOBJ(strings.NewReader(sampleOBJ))
	if err != nil {
		t.Fatalf("LoadOBJ error: %v", err)
	}
	if mesh.FaceCount() != 1 {
		t.Fatalf("FaceCount() = %d, want 1", mesh.FaceCount())
	}

	prims := shapes.BuildFlatPrimitives(mesh)
	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, ok := prims[0].Intersect(ray, core.EpsHit, math.Inf(1))
	if !ok {
		t.Fatalf("expected hit on loaded triangle")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("T = %f, want 1", hit.T)
	}
}

func TestLoadOBJRejectsQuad(t *testing.T) {
	const input = `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`
	if _, err := LoadOBJ(strings.NewReader(input)); err == nil {
		t.Errorf("expected error for a non-triangulated (quad) face")
	}
}

func TestLoadOBJRejectsMissingNormalIndex(t *testing.T) {
	const input = `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	if _, err := LoadOBJ(strings.NewReader(input)); err == nil {
		t.Errorf("expected error for a face corner missing vt/vn")
	}
}

func TestLoadOBJRejectsUnrecognizedLine(t *testing.T) {
	const input = `
v 0 0 0
g groupname
`
	if _, err := LoadOBJ(strings.NewReader(input)); err == nil {
		t.Errorf("expected error for an unrecognized line type")
	}
}

func TestLoadOBJRejectsUnparseableNumber(t *testing.T) {
	const input = `
v 0 abc 0
`
	if _, err := LoadOBJ(strings.NewReader(input)); err == nil {
		t.Errorf("expected error for an unparseable vertex component")
	}
}

func TestLoadOBJRejectsOutOfRangeFaceIndex(t *testing.T) {
	const input = `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 9/1/1
`
	if _, err := LoadOBJ(strings.NewReader(input)); err == nil {
		t.Errorf("expected error for a face index beyond the vertex array")
	}
}
