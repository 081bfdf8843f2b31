package engine

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"rabbitview/engine/assets"
	"rabbitview/engine/assets/loaders"
	"rabbitview/engine/core"
	"rabbitview/engine/platform"
	"rabbitview/engine/renderer"
	"rabbitview/engine/renderer/opengl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	app          *Application
	isRunning    bool
	stopRequest  atomic.Bool
	platform     *platform.Platform
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
	clock        *core.Clock
	lastTime     float64
}

func New(app *Application) (*Engine, error) {
	if app.Config == nil {
		app.Config = DefaultApplicationConfig()
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	am.RegisterLoader(assets.ResourceTypeMesh, &loaders.ModelLoader{})
	am.RegisterLoader(assets.ResourceTypeImage, &loaders.ImageLoader{})

	return &Engine{
		currentStage: EngineStageUninitialized,
		app:          app,
		clock:        core.NewClock(),
		platform:     platform.New(),
		assetManager: am,
		renderer:     renderer.New(opengl.New()),
		isRunning:    false,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	core.SetLogLevel(e.app.Config.LogLevel)

	if e.app.FnUpdate == nil {
		return fmt.Errorf("application has no update hook")
	}

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)

	if err := e.platform.Startup(e.app.Config.Name, e.app.Config.Width, e.app.Config.Height); err != nil {
		return err
	}

	if err := e.renderer.Initialize(e.app.Config.Width, e.app.Config.Height); err != nil {
		return err
	}

	watchDirs := uniqueDirs(e.app.Config.ModelPath, e.app.Config.TexturePath)
	if err := e.assetManager.Initialize(watchDirs...); err != nil {
		// Hot reload is a convenience; run without it.
		core.LogWarn("asset watching disabled: %v", err)
	}

	if e.app.FnInitialize != nil {
		if err := e.app.FnInitialize(e); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop: pump events, update metrics and the FPS
// title, ask the application for this frame's packet, draw, present.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
			break
		}
		if e.stopRequest.Load() {
			e.isRunning = false
			break
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		core.MetricsUpdate(delta)
		if core.MetricsTicked() {
			e.platform.SetWindowTitle(fmt.Sprintf("FPS: %d", int(core.MetricsFPS())))
		}

		e.drainAssetChanges()

		packet, err := e.app.FnUpdate(delta)
		if err != nil {
			core.LogError("application update failed, shutting down: %v", err)
			e.isRunning = false
			break
		}
		packet.DeltaTime = delta

		if err := e.renderer.DrawFrame(packet); err != nil {
			core.LogError("draw frame failed, shutting down: %v", err)
			e.isRunning = false
			break
		}

		e.platform.SwapBuffers()
		core.InputUpdate(delta)
	}

	return e.Shutdown()
}

// Stop requests a loop exit from another goroutine (signal handler).
func (e *Engine) Stop() {
	e.stopRequest.Store(true)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	core.LogInfo("shutting down")

	if e.app.FnShutdown != nil {
		if err := e.app.FnShutdown(); err != nil {
			core.LogError("application shutdown: %v", err)
		}
	}

	if err := e.assetManager.Shutdown(); err != nil {
		core.LogError("asset manager shutdown: %v", err)
	}
	if err := e.renderer.Shutdown(); err != nil {
		core.LogError("renderer shutdown: %v", err)
	}
	if err := e.platform.Shutdown(); err != nil {
		core.LogError("platform shutdown: %v", err)
	}

	core.InputShutdown()
	return core.EventShutdown()
}

func (e *Engine) Platform() *platform.Platform {
	return e.platform
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

// drainAssetChanges re-uploads the texture when its file changed on disk.
// Mesh edits only log; geometry buffers are immutable storage.
func (e *Engine) drainAssetChanges() {
	for {
		select {
		case path := <-e.assetManager.Changes():
			switch path {
			case e.app.Config.TexturePath:
				core.LogInfo("texture %s changed, reloading", path)
				resource, err := e.assetManager.LoadAsset(path, assets.ResourceTypeImage,
					&assets.ImageResourceParams{Channels: 4, FlipY: true})
				if err != nil {
					core.LogWarn("texture reload failed: %v", err)
					continue
				}
				if err := e.renderer.UploadTexture(resource.Data.(*assets.ImageData)); err != nil {
					core.LogWarn("texture re-upload failed: %v", err)
				}
			case e.app.Config.ModelPath:
				core.LogInfo("model %s changed on disk; restart to reload geometry", path)
			}
		default:
			return
		}
	}
}

func (e *Engine) onEvent(ctx core.EventContext, listener interface{}) bool {
	if ctx.Type == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("quit event received")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(ctx core.EventContext, listener interface{}) bool {
	key, ok := ctx.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	if key.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	return false
}

func uniqueDirs(paths ...string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
