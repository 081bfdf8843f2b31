package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"rabbitview/engine/assets"
	"rabbitview/engine/core"
)

// ModelLoader parses triangulated Wavefront OBJ files. Only positions,
// texture coordinates and faces are consumed; normals and material
// statements are ignored. Face corners are deduplicated by exact attribute
// equality, so the produced vertex list has one entry per distinct
// (position, texcoord) pair, in first-seen order.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, params interface{}) (*assets.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	defer f.Close()

	var positions []mgl32.Vec3
	var texcoords []mgl32.Vec2

	mesh := &assets.MeshData{}
	uniqueVertices := make(map[assets.Vertex]uint32)

	lineno := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				core.LogWarn("%s:%d: bad vertex position: %v", path, lineno, err)
				continue
			}
			positions = append(positions, mgl32.Vec3{p[0], p[1], p[2]})
		case "vt":
			t, err := parseFloats(fields[1:], 2)
			if err != nil {
				core.LogWarn("%s:%d: bad texture coordinate: %v", path, lineno, err)
				continue
			}
			texcoords = append(texcoords, mgl32.Vec2{t[0], t[1]})
		case "f":
			if err := appendFace(mesh, uniqueVertices, fields[1:], positions, texcoords); err != nil {
				core.LogWarn("%s:%d: bad face: %v", path, lineno, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("model %s: %w", path, core.ErrEmptyMesh)
	}

	core.LogDebug("loaded %s: %d vertices, %d indices (%d corner references)",
		path, len(mesh.Vertices), len(mesh.Indices), len(mesh.Indices))

	return &assets.Resource{
		ID:       uuid.New(),
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     assets.ResourceTypeMesh,
		Data:     mesh,
	}, nil
}

func (ml *ModelLoader) Unload(*assets.Resource) error {
	return nil
}

// appendFace resolves one face statement. Faces with more than three
// corners are fan-triangulated.
func appendFace(mesh *assets.MeshData, unique map[assets.Vertex]uint32, corners []string, positions []mgl32.Vec3, texcoords []mgl32.Vec2) error {
	if len(corners) < 3 {
		return fmt.Errorf("face has %d corners", len(corners))
	}

	// Resolve every corner before touching the mesh, so a face rejected
	// halfway through leaves no orphan vertices behind.
	vertices := make([]assets.Vertex, len(corners))
	for i, corner := range corners {
		vertex, err := cornerVertex(corner, positions, texcoords)
		if err != nil {
			return err
		}
		vertices[i] = vertex
	}

	resolved := make([]uint32, len(vertices))
	for i, vertex := range vertices {
		index, ok := unique[vertex]
		if !ok {
			index = uint32(len(mesh.Vertices))
			unique[vertex] = index
			mesh.Vertices = append(mesh.Vertices, vertex)
		}
		resolved[i] = index
	}

	for i := 1; i+1 < len(resolved); i++ {
		mesh.Indices = append(mesh.Indices, resolved[0], resolved[i], resolved[i+1])
	}
	return nil
}

// cornerVertex builds the candidate vertex for one "v", "v/vt", "v/vt/vn"
// or "v//vn" face corner. Color is constant opaque white.
func cornerVertex(corner string, positions []mgl32.Vec3, texcoords []mgl32.Vec2) (assets.Vertex, error) {
	var vertex assets.Vertex

	parts := strings.Split(corner, "/")

	vi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return vertex, fmt.Errorf("position index %q: %w", parts[0], err)
	}
	pos := positions[vi]
	vertex.Position = mgl32.Vec4{pos.X(), pos.Y(), pos.Z(), 1.0}
	vertex.Color = mgl32.Vec4{1.0, 1.0, 1.0, 1.0}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(texcoords))
		if err != nil {
			return vertex, fmt.Errorf("texcoord index %q: %w", parts[1], err)
		}
		vertex.Texcoord = texcoords[ti]
	}

	return vertex, nil
}

// resolveIndex turns a one-based OBJ index (possibly negative, meaning
// relative to the end) into a zero-based slice index.
func resolveIndex(field string, count int) (int, error) {
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		idx += count
	} else {
		idx--
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index out of range (have %d entries)", count)
	}
	return idx, nil
}

func parseFloats(fields []string, want int) ([]float32, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("want %d values, have %d", want, len(fields))
	}
	out := make([]float32, want)
	for i := 0; i < want; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
