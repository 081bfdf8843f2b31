package assets

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type ResourceType int

const (
	ResourceTypeMesh ResourceType = iota
	ResourceTypeImage
)

// Vertex is one deduplicated mesh vertex as it is laid out in GPU memory:
// vec4 position (w fixed at 1), vec4 color, vec2 texcoord padded out to a
// 16-byte multiple for std430. The type is comparable; dedup relies on
// exact field-wise equality.
type Vertex struct {
	Position mgl32.Vec4
	Color    mgl32.Vec4
	Texcoord mgl32.Vec2
	_        [2]float32
}

// MeshData is the output of the geometry loader: a vertex list with no two
// entries equal, and indices into it, three per triangle.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// ImageData holds decoded, vertically flipped pixel rows, tightly packed at
// ChannelCount bytes per pixel.
type ImageData struct {
	Width        uint32
	Height       uint32
	ChannelCount uint8
	Pixels       []uint8
}

// ImageResourceParams controls decoding of an image asset.
type ImageResourceParams struct {
	// Channel layout to convert to: 1 grey, 2 grey+alpha, 3 RGB, 4 RGBA.
	Channels uint8
	// FlipY flips rows so row 0 is the visual bottom, matching mesh UVs.
	FlipY bool
}

type Resource struct {
	ID       uuid.UUID
	Name     string
	FullPath string
	Type     ResourceType
	Data     interface{}
}

type Loader interface {
	Load(path string, params interface{}) (*Resource, error)
	Unload(resource *Resource) error
}
