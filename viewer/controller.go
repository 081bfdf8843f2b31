package viewer

import (
	"rabbitview/engine/core"
	"rabbitview/engine/renderer"
)

const (
	// Input units to degrees of rotation.
	rotateScale = 1.0 / 10.0
	// Scroll units to distance.
	zoomScale = 1.0 / 4.0
)

// pointerGrabber is the slice of the platform the controller needs: cursor
// capture during a drag and the position to anchor the drag at.
type pointerGrabber interface {
	SetCursorCaptured(captured bool)
	CursorPosition() (float64, float64)
}

// OrbitController owns the camera state and mutates it from input events:
// left-drag rotates, scroll zooms. It is the only writer of CameraState.
type OrbitController struct {
	window   pointerGrabber
	camera   *renderer.CameraState
	dragging bool
	lastX    float64
	lastY    float64
}

func NewOrbitController(window pointerGrabber, camera *renderer.CameraState) *OrbitController {
	return &OrbitController{
		window: window,
		camera: camera,
	}
}

// Register subscribes the controller to the mouse events it consumes.
func (c *OrbitController) Register() {
	core.EventRegister(core.EVENT_CODE_BUTTON_PRESSED, c, c.onButton)
	core.EventRegister(core.EVENT_CODE_BUTTON_RELEASED, c, c.onButton)
	core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, c, c.onMouseMove)
	core.EventRegister(core.EVENT_CODE_MOUSE_WHEEL, c, c.onMouseWheel)
}

func (c *OrbitController) Unregister() {
	core.EventUnregister(core.EVENT_CODE_BUTTON_PRESSED, c)
	core.EventUnregister(core.EVENT_CODE_BUTTON_RELEASED, c)
	core.EventUnregister(core.EVENT_CODE_MOUSE_MOVED, c)
	core.EventUnregister(core.EVENT_CODE_MOUSE_WHEEL, c)
}

func (c *OrbitController) Camera() *renderer.CameraState {
	return c.camera
}

func (c *OrbitController) onButton(ctx core.EventContext, listener interface{}) bool {
	event, ok := ctx.Data.(*core.MouseEvent)
	if !ok || event.Button != core.BUTTON_LEFT {
		return false
	}
	if ctx.Type == core.EVENT_CODE_BUTTON_PRESSED {
		c.dragging = true
		c.window.SetCursorCaptured(true)
		c.lastX, c.lastY = c.window.CursorPosition()
	} else {
		c.dragging = false
		c.window.SetCursorCaptured(false)
	}
	return true
}

func (c *OrbitController) onMouseMove(ctx core.EventContext, listener interface{}) bool {
	if !c.dragging {
		return false
	}
	event, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	c.camera.Rotation[0] += float32((event.PosX - c.lastX) * rotateScale)
	c.camera.Rotation[1] += float32((event.PosY - c.lastY) * rotateScale)
	c.lastX = event.PosX
	c.lastY = event.PosY
	return true
}

func (c *OrbitController) onMouseWheel(ctx core.EventContext, listener interface{}) bool {
	event, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	c.camera.Zoom += float32(event.WheelY * zoomScale)
	if c.camera.Zoom < 0 {
		c.camera.Zoom = 0
	}
	return true
}
