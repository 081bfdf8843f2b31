/*
Package viewer assembles the model viewer application on top of the engine:
it loads the mesh and texture, uploads them, and drives the orbit camera
from mouse input.
*/
package viewer

import (
	"rabbitview/engine"
	"rabbitview/engine/assets"
	"rabbitview/engine/renderer"
)

type Viewer struct {
	*engine.Application

	camera     *renderer.CameraState
	controller *OrbitController
}

func New(config *engine.ApplicationConfig) *Viewer {
	v := &Viewer{
		Application: &engine.Application{
			Config: config,
		},
		camera: renderer.NewCameraState(),
	}

	v.FnInitialize = v.initialize
	v.FnUpdate = v.update
	v.FnShutdown = v.shutdown

	return v
}

func (v *Viewer) initialize(e *engine.Engine) error {
	mesh, err := e.Assets().LoadAsset(v.Config.ModelPath, assets.ResourceTypeMesh, nil)
	if err != nil {
		return err
	}
	if err := e.Renderer().UploadMesh(mesh.Data.(*assets.MeshData)); err != nil {
		return err
	}

	image, err := e.Assets().LoadAsset(v.Config.TexturePath, assets.ResourceTypeImage,
		&assets.ImageResourceParams{Channels: 4, FlipY: true})
	if err != nil {
		return err
	}
	if err := e.Renderer().UploadTexture(image.Data.(*assets.ImageData)); err != nil {
		return err
	}

	v.controller = NewOrbitController(e.Platform(), v.camera)
	v.controller.Register()

	return nil
}

func (v *Viewer) update(deltaTime float64) (*renderer.RenderPacket, error) {
	return &renderer.RenderPacket{
		Transform: renderer.ViewProjection(v.camera.Zoom, v.camera.Rotation, v.Config.AspectRatio()),
	}, nil
}

func (v *Viewer) shutdown() error {
	if v.controller != nil {
		v.controller.Unregister()
	}
	return nil
}
