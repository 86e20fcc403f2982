/*
hellotriangle opens a window and draws a single orange triangle that spins
about the view axis while sliding towards and away from the camera.
It takes no arguments; settings come from hellotriangle.toml when present.
*/
package main

import (
	"os"
	"path/filepath"

	"github.com/spaghettifunk/hellotriangle/engine"
	"github.com/spaghettifunk/hellotriangle/engine/core"
)

func main() {
	os.Exit(run())
}

func run() int {
	wd, err := os.Getwd()
	if err != nil {
		core.LogError("%s", err)
		return -1
	}

	config, err := engine.LoadApplicationConfig(filepath.Join(wd, engine.ConfigFileName))
	if err != nil {
		core.LogError("%s", err)
		return -1
	}

	e, err := engine.New(config)
	if err != nil {
		core.LogError("%s", err)
		return -1
	}
	defer func() {
		_ = e.Shutdown()
	}()

	if err := e.Initialize(); err != nil {
		core.LogError("%s", err)
		return -1
	}

	if err := e.Run(); err != nil {
		core.LogError("%s", err)
		return -1
	}
	return 0
}
