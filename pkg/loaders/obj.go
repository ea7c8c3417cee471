// Package loaders implements the minimal asset readers the core consumes:
// currently a triangulated OBJ reader feeding pkg/shapes.Mesh.
package loaders

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kaelrun/go-bvh-accel/pkg/core"
	"github.com/kaelrun/go-bvh-accel/pkg/shapes"
)

// LoadOBJ reads a minimal triangulated OBJ stream: `v x y z`, `vt u v`,
// `vn x y z`, and `f v/t/n v/t/n v/t/n` lines with 1-based indices.
// Anything else — quads, missing vt/vn on a face corner, unparseable
// numbers, unrecognized line types — is rejected.
func LoadOBJ(r io.Reader) (*shapes.Mesh, error) {
	var vertices []core.Vec3
	var uvs []core.Vec2
	var normals []core.Vec3
	var corners []shapes.Corner

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "obj: line %d: invalid vertex", lineNo)
			}
			vertices = append(vertices, v)

		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "obj: line %d: invalid texture coordinate", lineNo)
			}
			uvs = append(uvs, uv)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "obj: line %d: invalid normal", lineNo)
			}
			normals = append(normals, n)

		case "f":
			faceCorners, err := parseFace(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "obj: line %d: invalid face", lineNo)
			}
			corners = append(corners, faceCorners...)

		default:
			return nil, errors.Errorf("obj: line %d: unrecognized line type %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "obj: reading input")
	}

	mesh, err := shapes.NewMesh(vertices, normals, uvs, corners)
	if err != nil {
		return nil, errors.Wrap(err, "obj: building mesh")
	}
	return mesh, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) != 3 {
		return core.Vec3{}, errors.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

func parseVec2(fields []string) (core.Vec2, error) {
	if len(fields) != 2 {
		return core.Vec2{}, errors.Errorf("expected 2 components, got %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.NewVec2(u, v), nil
}

// parseFace parses exactly three "v/vt/vn" corners — anything else
// (quads, or a missing vt/vn) is rejected, matching the reference loader.
func parseFace(fields []string) ([]shapes.Corner, error) {
	if len(fields) != 3 {
		return nil, errors.Errorf("expected a triangulated face (3 corners), got %d", len(fields))
	}
	result := make([]shapes.Corner, 3)
	for i, field := range fields {
		corner, err := parseCorner(field)
		if err != nil {
			return nil, err
		}
		result[i] = corner
	}
	return result, nil
}

func parseCorner(field string) (shapes.Corner, error) {
	parts := strings.Split(field, "/")
	if len(parts) != 3 {
		return shapes.Corner{}, errors.Errorf("corner %q must be of the form v/vt/vn", field)
	}
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return shapes.Corner{}, errors.Wrapf(err, "corner %q: invalid vertex index", field)
	}
	vt, err := strconv.Atoi(parts[1])
	if err != nil {
		return shapes.Corner{}, errors.Wrapf(err, "corner %q: invalid texture index", field)
	}
	vn, err := strconv.Atoi(parts[2])
	if err != nil {
		return shapes.Corner{}, errors.Wrapf(err, "corner %q: invalid normal index", field)
	}
	return shapes.Corner{VertexIndex: v - 1, UVIndex: vt - 1, NormalIndex: vn - 1}, nil
}
