package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"rabbitview/engine/assets"
)

// Backend is the device-facing half of the renderer. The OpenGL
// implementation lives in the opengl package; tests substitute a recording
// fake. All methods must be called from the thread owning the GL context.
type Backend interface {
	Initialize(width, height uint32) error
	Shutdown() error

	// CreateGeometry uploads the immutable vertex and index buffers.
	CreateGeometry(vertices []assets.Vertex, indices []uint32) error
	// CreateTexture uploads pixel data, replacing any previous texture.
	CreateTexture(image *assets.ImageData) error

	// BeginFrame writes the transform for this frame and clears the
	// color and depth targets.
	BeginFrame(transform mgl32.Mat4) error
	// DrawGeometry binds pipeline, vertex array, texture and buffers and
	// issues one indexed draw over the full index buffer.
	DrawGeometry() error
	EndFrame() error
}
