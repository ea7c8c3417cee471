package shapes

import (
	"github.com/pkg/errors"

	"github.com/kaelrun/go-bvh-accel/pkg/accel"
	"github.com/kaelrun/go-bvh-accel/pkg/core"
)

// noIndex marks a missing normal or UV index on a Corner.
const noIndex = -1

// Corner is one triangle corner's index triple into a Mesh's shared vertex,
// normal, and UV arrays. NormalIndex and UVIndex may be noIndex when a face
// was not given that attribute, matching real OBJ `f v/t/n` lines where
// each corner carries its own vertex/texture/normal index rather than a
// single shared index for the whole face.
type Corner struct {
	VertexIndex int
	NormalIndex int
	UVIndex     int
}

// NewCorner builds a Corner with no normal or UV attribute.
func NewCorner(vertexIndex int) Corner {
	return Corner{VertexIndex: vertexIndex, NormalIndex: noIndex, UVIndex: noIndex}
}

type face struct {
	corners [3]Corner
	normal  core.Vec3 // precomputed face normal, used by Flat and as Smooth's fallback
}

// Mesh stores the shared vertex/normal/UV arrays of an indexed triangle
// mesh plus one face record per triangle. It is not itself a core.Primitive
// — BuildFlatPrimitives/BuildSmoothPrimitives hand back one primitive per
// face, sharing this storage, which callers feed into accel.Build (directly,
// or wrapped as a single nested BVH via NewMeshBVH for instancing).
type Mesh struct {
	vertices []core.Vec3
	normals  []core.Vec3
	uvs      []core.Vec2
	faces    []face
}

// NewMesh validates and constructs a Mesh from shared attribute arrays and
// one corner triple per triangle corner (len(faceCorners) must be a
// multiple of 3).
func NewMesh(vertices, normals []core.Vec3, uvs []core.Vec2, faceCorners []Corner) (*Mesh, error) {
	if len(faceCorners)%3 != 0 {
		return nil, errors.Errorf("mesh: %d corners is not a multiple of 3", len(faceCorners))
	}

	numFaces := len(faceCorners) / 3
	faces := make([]face, numFaces)

	for i := 0; i < numFaces; i++ {
		var f face
		for c := 0; c < 3; c++ {
			corner := faceCorners[i*3+c]
			if corner.VertexIndex < 0 || corner.VertexIndex >= len(vertices) {
				return nil, errors.Errorf("mesh: face %d vertex index %d out of range", i, corner.VertexIndex)
			}
			if corner.NormalIndex != noIndex && (corner.NormalIndex < 0 || corner.NormalIndex >= len(normals)) {
				return nil, errors.Errorf("mesh: face %d normal index %d out of range", i, corner.NormalIndex)
			}
			if corner.UVIndex != noIndex && (corner.UVIndex < 0 || corner.UVIndex >= len(uvs)) {
				return nil, errors.Errorf("mesh: face %d uv index %d out of range", i, corner.UVIndex)
			}
			f.corners[c] = corner
		}

		v0 := vertices[f.corners[0].VertexIndex]
		v1 := vertices[f.corners[1].VertexIndex]
		v2 := vertices[f.corners[2].VertexIndex]
		f.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()

		faces[i] = f
	}

	return &Mesh{vertices: vertices, normals: normals, uvs: uvs, faces: faces}, nil
}

// FaceCount returns the number of triangles in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

func (m *Mesh) vertex(faceIndex, corner int) core.Vec3 {
	return m.vertices[m.faces[faceIndex].corners[corner].VertexIndex]
}

// intersectBarycentric runs the Möller-Trumbore ray/triangle test, returning
// the hit distance and barycentric (beta, gamma) on success.
func intersectBarycentric(ray core.Ray, v0, v1, v2 core.Vec3, tMin, tMax float64) (t, beta, gamma float64, ok bool) {
	const epsilon = 1e-8

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	beta = f * s.Dot(h)
	if beta < 0 || beta > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	gamma = f * ray.Direction.Dot(q)
	if gamma < 0 || beta+gamma > 1 {
		return 0, 0, 0, false
	}

	t = f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return 0, 0, 0, false
	}

	return t, beta, gamma, true
}

// Flat is a façade over one Mesh triangle whose reported normal is the
// precomputed, constant face normal.
type Flat struct {
	mesh      *Mesh
	faceIndex int
}

// Smooth is a façade over the same triangle storage as Flat, but reports a
// normal interpolated from per-vertex normals via the hit's barycentrics.
// Corners without a normal index fall back to the face normal's
// contribution.
type Smooth struct {
	mesh      *Mesh
	faceIndex int
}

// BuildFlatPrimitives returns one Flat primitive per face in the mesh.
func BuildFlatPrimitives(mesh *Mesh) []core.Primitive {
	prims := make([]core.Primitive, len(mesh.faces))
	for i := range mesh.faces {
		prims[i] = Flat{mesh: mesh, faceIndex: i}
	}
	return prims
}

// BuildSmoothPrimitives returns one Smooth primitive per face in the mesh.
func BuildSmoothPrimitives(mesh *Mesh) []core.Primitive {
	prims := make([]core.Primitive, len(mesh.faces))
	for i := range mesh.faces {
		prims[i] = Smooth{mesh: mesh, faceIndex: i}
	}
	return prims
}

// NewMeshBVH builds an accelerator over every face of mesh using the given
// façade (smooth or flat) and config, so a large shared mesh can be
// instanced behind a single nested core.Primitive — the pattern Transformed
// relies on to keep N instances at O(N) rather than O(N*|mesh|).
func NewMeshBVH(mesh *Mesh, smooth bool, cfg accel.Config) (*accel.BVH, error) {
	var prims []core.Primitive
	if smooth {
		prims = BuildSmoothPrimitives(mesh)
	} else {
		prims = BuildFlatPrimitives(mesh)
	}
	return accel.Build(prims, cfg)
}

func (f Flat) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(f.mesh.vertex(f.faceIndex, 0), f.mesh.vertex(f.faceIndex, 1), f.mesh.vertex(f.faceIndex, 2))
}

func (f Flat) Intersect(ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	v0, v1, v2 := f.mesh.vertex(f.faceIndex, 0), f.mesh.vertex(f.faceIndex, 1), f.mesh.vertex(f.faceIndex, 2)
	t, beta, gamma, ok := intersectBarycentric(ray, v0, v1, v2, tMin, tMax)
	if !ok {
		return core.Hit{}, false
	}
	return core.Hit{
		T:      t,
		Point:  ray.At(t),
		Normal: f.mesh.faces[f.faceIndex].normal,
		UV:     f.interpolatedUV(beta, gamma),
	}, true
}

func (f Flat) CountIntersectionTests(ray core.Ray, tMin, tMax float64) int {
	return 1
}

func (f Flat) interpolatedUV(beta, gamma float64) core.Vec2 {
	return interpolatedUV(f.mesh, f.faceIndex, beta, gamma)
}

func (s Smooth) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(s.mesh.vertex(s.faceIndex, 0), s.mesh.vertex(s.faceIndex, 1), s.mesh.vertex(s.faceIndex, 2))
}

func (s Smooth) Intersect(ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	v0, v1, v2 := s.mesh.vertex(s.faceIndex, 0), s.mesh.vertex(s.faceIndex, 1), s.mesh.vertex(s.faceIndex, 2)
	t, beta, gamma, ok := intersectBarycentric(ray, v0, v1, v2, tMin, tMax)
	if !ok {
		return core.Hit{}, false
	}
	return core.Hit{
		T:      t,
		Point:  ray.At(t),
		Normal: s.interpolatedNormal(beta, gamma),
		UV:     interpolatedUV(s.mesh, s.faceIndex, beta, gamma),
	}, true
}

func (s Smooth) CountIntersectionTests(ray core.Ray, tMin, tMax float64) int {
	return 1
}

// interpolatedNormal computes beta*n1 + gamma*n2 + (1-beta-gamma)*n0, one
// per corner, falling back to the precomputed face normal for any corner
// that has no normal index.
func (s Smooth) interpolatedNormal(beta, gamma float64) core.Vec3 {
	f := s.mesh.faces[s.faceIndex]
	n0 := s.cornerNormal(f, 0)
	n1 := s.cornerNormal(f, 1)
	n2 := s.cornerNormal(f, 2)

	alpha := 1 - beta - gamma
	return n0.Multiply(alpha).Add(n1.Multiply(beta)).Add(n2.Multiply(gamma)).Normalize()
}

func (s Smooth) cornerNormal(f face, corner int) core.Vec3 {
	idx := f.corners[corner].NormalIndex
	if idx == noIndex {
		return f.normal
	}
	return s.mesh.normals[idx]
}

// interpolatedUV blends the three corners' texture coordinates by the hit's
// barycentrics. If any corner has no UV index, there is nothing to
// interpolate, so the raw barycentric (beta, gamma) is reported as the UV
// instead — the same fallback the teacher's triangle intersector uses.
func interpolatedUV(mesh *Mesh, faceIndex int, beta, gamma float64) core.Vec2 {
	f := mesh.faces[faceIndex]
	uv0, ok0 := cornerUV(mesh, f, 0)
	uv1, ok1 := cornerUV(mesh, f, 1)
	uv2, ok2 := cornerUV(mesh, f, 2)
	if !ok0 || !ok1 || !ok2 {
		return core.NewVec2(beta, gamma)
	}
	alpha := 1 - beta - gamma
	return uv0.Multiply(alpha).Add(uv1.Multiply(beta)).Add(uv2.Multiply(gamma))
}

func cornerUV(mesh *Mesh, f face, corner int) (core.Vec2, bool) {
	idx := f.corners[corner].UVIndex
	if idx == noIndex {
		return core.Vec2{}, false
	}
	return mesh.uvs[idx], true
}
