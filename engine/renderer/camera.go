package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultZoom float32 = 40.0
	cameraFovY  float32 = 45.0
	cameraNear  float32 = 0.1
	cameraFar   float32 = 100.0
)

// CameraState is the orbit camera's full state: a distance from the origin
// and accumulated drag rotation in degrees. Mutated only by the input
// controller; the frame loop reads it once per frame.
type CameraState struct {
	Zoom     float32
	Rotation mgl32.Vec2
}

func NewCameraState() *CameraState {
	return &CameraState{
		Zoom:     DefaultZoom,
		Rotation: mgl32.Vec2{0, 0},
	}
}

// ViewProjection builds the combined projection-view-model matrix for an
// orbit camera. The view transform pulls the eye back along the view axis
// by zoom, then rotates about X by rotation.Y and about Y by rotation.X
// (degrees); the cross-mapping of mouse axes to rotation axes is what makes
// the drag feel like orbiting. The model matrix is identity. Pure function.
func ViewProjection(zoom float32, rotation mgl32.Vec2, aspect float32) mgl32.Mat4 {
	projection := PerspectiveZO(mgl32.DegToRad(cameraFovY), aspect, cameraNear, cameraFar)

	view := mgl32.Translate3D(0, 0, -zoom)
	view = view.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rotation.Y())))
	view = view.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rotation.X())))

	model := mgl32.Ident4()

	return projection.Mul4(view).Mul4(model)
}

// PerspectiveZO is a right-handed perspective projection mapping depth to
// [0,1] rather than the [-1,1] of mgl32.Perspective.
func PerspectiveZO(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1.0 / math.Tan(float64(fovy)/2.0))
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, -(far * near) / (far - near), 0,
	}
}
