package main

import (
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/sepiropht/webgl-water-tutorial/internal/app"
	"github.com/sepiropht/webgl-water-tutorial/internal/config"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderer"
	"github.com/sepiropht/webgl-water-tutorial/internal/profiling"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

// GameLoop renders one frame per iteration until the window closes.
type GameLoop struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	reloader *app.Reloader
	watcher  *meshmodel.Watcher

	fpsLimiter *app.FPSLimiter
	lastTime   time.Time
}

// NewGameLoop wires a frame loop. watcher may be nil when hot reload is off.
func NewGameLoop(window *glfw.Window, r *renderer.Renderer, reloader *app.Reloader, watcher *meshmodel.Watcher) *GameLoop {
	return &GameLoop{
		window:     window,
		renderer:   r,
		reloader:   reloader,
		watcher:    watcher,
		fpsLimiter: app.NewFPSLimiter(),
		lastTime:   time.Now(),
	}
}

func (l *GameLoop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
}

func (l *GameLoop) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(l.lastTime).Seconds()
	l.lastTime = startTick

	glfw.PollEvents()

	if l.watcher != nil {
		l.reloader.Drain(l.watcher.Changes)
	}

	l.renderer.Render(dt)
	l.window.SwapBuffers()

	if d := time.Since(startTick); d > config.GetSlowFrameThreshold() {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	l.fpsLimiter.Wait(l.window.GetAttrib(glfw.Iconified) == glfw.True)
}

// RefreshRender repaints during a window resize.
func (l *GameLoop) RefreshRender() {
	l.renderer.Render(0)
	l.window.SwapBuffers()
}
