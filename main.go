/*
Real-time OBJ model viewer: loads a mesh and a texture, renders them under
an orbit/zoom camera. Left-drag rotates, scroll zooms, Escape quits.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"rabbitview/engine"
	"rabbitview/engine/core"
	"rabbitview/viewer"
)

func main() {
	config, err := engine.LoadApplicationConfig(engine.DefaultConfigPath)
	if err != nil {
		core.LogFatal("config: %v", err)
	}

	v := viewer.New(config)

	e, err := engine.New(v.Application)
	if err != nil {
		core.LogFatal("engine: %v", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("initialize: %v", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		e.Stop()
	}()

	if err := e.Run(); err != nil {
		core.LogFatal("run: %v", err)
	}
}
