package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"rabbitview/engine/assets"
)

// fakeBackend records calls instead of touching a GPU.
type fakeBackend struct {
	vertices   []assets.Vertex
	indices    []uint32
	textures   int
	transforms []mgl32.Mat4
	drawCalls  int
	endFrames  int
}

func (f *fakeBackend) Initialize(width, height uint32) error { return nil }
func (f *fakeBackend) Shutdown() error                       { return nil }

func (f *fakeBackend) CreateGeometry(vertices []assets.Vertex, indices []uint32) error {
	f.vertices = vertices
	f.indices = indices
	return nil
}

func (f *fakeBackend) CreateTexture(image *assets.ImageData) error {
	f.textures++
	return nil
}

func (f *fakeBackend) BeginFrame(transform mgl32.Mat4) error {
	f.transforms = append(f.transforms, transform)
	return nil
}

func (f *fakeBackend) DrawGeometry() error {
	f.drawCalls++
	return nil
}

func (f *fakeBackend) EndFrame() error {
	f.endFrames++
	return nil
}

func triangleMesh() *assets.MeshData {
	return &assets.MeshData{
		Vertices: []assets.Vertex{
			{Position: mgl32.Vec4{0, 0, 0, 1}, Color: mgl32.Vec4{1, 1, 1, 1}},
			{Position: mgl32.Vec4{1, 0, 0, 1}, Color: mgl32.Vec4{1, 1, 1, 1}},
			{Position: mgl32.Vec4{0, 1, 0, 1}, Color: mgl32.Vec4{1, 1, 1, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func TestFrameSequence(t *testing.T) {
	backend := &fakeBackend{}
	r := New(backend)

	if err := r.UploadMesh(triangleMesh()); err != nil {
		t.Fatal(err)
	}
	if r.IndexCount() != 3 {
		t.Fatalf("index count = %d, want 3", r.IndexCount())
	}

	cam := NewCameraState()
	packet := &RenderPacket{
		Transform: ViewProjection(cam.Zoom, cam.Rotation, testAspect),
	}
	if err := r.DrawFrame(packet); err != nil {
		t.Fatal(err)
	}

	if backend.drawCalls != 1 {
		t.Errorf("draw calls = %d, want exactly 1", backend.drawCalls)
	}
	if backend.endFrames != 1 {
		t.Errorf("end frames = %d, want 1", backend.endFrames)
	}
	if len(backend.transforms) != 1 {
		t.Fatalf("transform writes = %d, want 1", len(backend.transforms))
	}
	if backend.transforms[0] != ViewProjection(40, mgl32.Vec2{0, 0}, testAspect) {
		t.Error("frame transform does not match camera matrix")
	}

	// Rendering must not touch camera state.
	if cam.Zoom != 40 || cam.Rotation != (mgl32.Vec2{0, 0}) {
		t.Errorf("camera state changed: zoom=%v rotation=%v", cam.Zoom, cam.Rotation)
	}
}

func TestUploadMeshValidation(t *testing.T) {
	tests := []struct {
		name string
		mesh *assets.MeshData
	}{
		{"empty", &assets.MeshData{}},
		{"partial triangle", &assets.MeshData{
			Vertices: triangleMesh().Vertices,
			Indices:  []uint32{0, 1},
		}},
		{"index out of bounds", &assets.MeshData{
			Vertices: triangleMesh().Vertices,
			Indices:  []uint32{0, 1, 3},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			r := New(backend)
			if err := r.UploadMesh(tt.mesh); err == nil {
				t.Error("expected validation error")
			}
			if backend.vertices != nil {
				t.Error("invalid mesh reached the backend")
			}
		})
	}
}
