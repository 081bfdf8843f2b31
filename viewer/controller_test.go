package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"rabbitview/engine/core"
	"rabbitview/engine/renderer"
)

type fakeGrabber struct {
	captured bool
	x, y     float64
}

func (f *fakeGrabber) SetCursorCaptured(captured bool) { f.captured = captured }
func (f *fakeGrabber) CursorPosition() (float64, float64) {
	return f.x, f.y
}

func newTestController(t *testing.T) (*OrbitController, *fakeGrabber) {
	t.Helper()
	if err := core.InputInitialize(); err != nil {
		t.Fatal(err)
	}
	if !core.EventInitialize() {
		t.Fatal("event system failed to initialize")
	}

	grabber := &fakeGrabber{}
	controller := NewOrbitController(grabber, renderer.NewCameraState())
	controller.Register()
	t.Cleanup(func() {
		controller.Unregister()
		core.InputShutdown()
	})
	return controller, grabber
}

func TestDragRotates(t *testing.T) {
	controller, grabber := newTestController(t)
	cam := controller.Camera()

	grabber.x, grabber.y = 100, 200
	core.InputProcessButton(core.BUTTON_LEFT, true)
	if !grabber.captured {
		t.Error("cursor not captured on drag start")
	}

	core.InputProcessMouseMove(130, 180)
	// Deltas scale by 1/10; mouse X drives rotation.x, mouse Y rotation.y.
	if want := (mgl32.Vec2{3, -2}); cam.Rotation != want {
		t.Errorf("rotation = %v, want %v", cam.Rotation, want)
	}

	// Deltas accumulate from the last cursor position.
	core.InputProcessMouseMove(140, 180)
	if want := (mgl32.Vec2{4, -2}); cam.Rotation != want {
		t.Errorf("rotation = %v, want %v", cam.Rotation, want)
	}

	core.InputProcessButton(core.BUTTON_LEFT, false)
	if grabber.captured {
		t.Error("cursor still captured after release")
	}

	// Moves outside a drag are ignored.
	core.InputProcessMouseMove(500, 500)
	if want := (mgl32.Vec2{4, -2}); cam.Rotation != want {
		t.Errorf("rotation changed without drag: %v", cam.Rotation)
	}
}

func TestRightButtonIgnored(t *testing.T) {
	controller, grabber := newTestController(t)
	cam := controller.Camera()

	core.InputProcessButton(core.BUTTON_RIGHT, true)
	if grabber.captured {
		t.Error("right button must not start a drag")
	}
	core.InputProcessMouseMove(50, 50)
	if cam.Rotation != (mgl32.Vec2{0, 0}) {
		t.Errorf("rotation = %v, want zero", cam.Rotation)
	}
}

func TestScrollZooms(t *testing.T) {
	controller, _ := newTestController(t)
	cam := controller.Camera()

	core.InputProcessMouseWheel(0, -4)
	if cam.Zoom != 39 {
		t.Errorf("zoom = %v, want 39", cam.Zoom)
	}
	core.InputProcessMouseWheel(0, 8)
	if cam.Zoom != 41 {
		t.Errorf("zoom = %v, want 41", cam.Zoom)
	}
}

func TestZoomNeverNegative(t *testing.T) {
	controller, _ := newTestController(t)
	cam := controller.Camera()

	for i := 0; i < 100; i++ {
		core.InputProcessMouseWheel(0, -10)
		if cam.Zoom < 0 {
			t.Fatalf("zoom went negative: %v", cam.Zoom)
		}
	}
	if cam.Zoom != 0 {
		t.Errorf("zoom = %v, want clamped to 0", cam.Zoom)
	}
}
