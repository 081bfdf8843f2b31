package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"rabbitview/engine/assets"
	"rabbitview/engine/core"
)

// RenderPacket carries everything the renderer needs for one frame.
type RenderPacket struct {
	DeltaTime float64
	Transform mgl32.Mat4
}

type Renderer struct {
	backend    Backend
	indexCount uint32
}

func New(backend Backend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(width, height uint32) error {
	return r.backend.Initialize(width, height)
}

// UploadMesh validates the loaded mesh and hands it to the backend. The
// index list must describe whole triangles and stay within the vertex list.
func (r *Renderer) UploadMesh(mesh *assets.MeshData) error {
	if len(mesh.Indices) == 0 {
		return core.ErrEmptyMesh
	}
	if len(mesh.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(mesh.Indices))
	}
	for _, idx := range mesh.Indices {
		if idx >= uint32(len(mesh.Vertices)) {
			return fmt.Errorf("index %d: %w", idx, core.ErrIndexOOB)
		}
	}

	if err := r.backend.CreateGeometry(mesh.Vertices, mesh.Indices); err != nil {
		return err
	}
	r.indexCount = uint32(len(mesh.Indices))
	core.LogInfo("mesh uploaded: %d vertices, %d triangles", len(mesh.Vertices), len(mesh.Indices)/3)
	return nil
}

func (r *Renderer) UploadTexture(image *assets.ImageData) error {
	return r.backend.CreateTexture(image)
}

// DrawFrame executes the per-frame sequence: transform write and clear,
// one draw over the uploaded geometry, frame end.
func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if err := r.backend.BeginFrame(packet.Transform); err != nil {
		return err
	}
	if err := r.backend.DrawGeometry(); err != nil {
		return err
	}
	return r.backend.EndFrame()
}

func (r *Renderer) IndexCount() uint32 {
	return r.indexCount
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}
