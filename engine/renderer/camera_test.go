package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testAspect = float32(1920.0 / 1080.0)

func matricesClose(a, b mgl32.Mat4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-6 {
			return false
		}
	}
	return true
}

func TestViewProjectionPure(t *testing.T) {
	first := ViewProjection(40, mgl32.Vec2{33, -7}, testAspect)
	second := ViewProjection(40, mgl32.Vec2{33, -7}, testAspect)
	if first != second {
		t.Error("identical inputs produced different matrices")
	}
}

func TestViewProjectionZeroRotation(t *testing.T) {
	// With no rotation and an identity model matrix the result reduces to
	// projection x translate(0,0,-zoom).
	for _, zoom := range []float32{0, 1, 40, 99.5} {
		got := ViewProjection(zoom, mgl32.Vec2{0, 0}, testAspect)
		want := PerspectiveZO(mgl32.DegToRad(45), testAspect, 0.1, 100).
			Mul4(mgl32.Translate3D(0, 0, -zoom))
		if !matricesClose(got, want) {
			t.Errorf("zoom=%v:\ngot  %v\nwant %v", zoom, got, want)
		}
	}
}

func TestViewProjectionRotationOrder(t *testing.T) {
	// Mouse X maps to a rotation about the Y axis and vice versa.
	rotated := ViewProjection(10, mgl32.Vec2{90, 0}, testAspect)
	want := PerspectiveZO(mgl32.DegToRad(45), testAspect, 0.1, 100).
		Mul4(mgl32.Translate3D(0, 0, -10)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))
	if !matricesClose(rotated, want) {
		t.Errorf("rotation (90,0) should rotate about Y only:\ngot  %v\nwant %v", rotated, want)
	}
}

func TestPerspectiveZODepthRange(t *testing.T) {
	proj := PerspectiveZO(mgl32.DegToRad(45), 1, 0.1, 100)

	// A point on the near plane must land at depth 0, far plane at 1.
	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	if d := near.Z() / near.W(); math.Abs(float64(d)) > 1e-5 {
		t.Errorf("near plane depth = %v, want 0", d)
	}
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	if d := far.Z() / far.W(); math.Abs(float64(d-1)) > 1e-5 {
		t.Errorf("far plane depth = %v, want 1", d)
	}
}

func TestNewCameraState(t *testing.T) {
	cam := NewCameraState()
	if cam.Zoom != 40 {
		t.Errorf("initial zoom = %v, want 40", cam.Zoom)
	}
	if cam.Rotation != (mgl32.Vec2{0, 0}) {
		t.Errorf("initial rotation = %v, want zero", cam.Rotation)
	}
}
