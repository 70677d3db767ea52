package main

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderables/mesh"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderer"
)

const (
	orbitSensitivity = 0.3
	zoomStep         = 1.0
)

func setupInputHandlers(window *glfw.Window, loop *GameLoop, r *renderer.Renderer, meshes *mesh.Meshes) {
	var dragging bool
	var lastX, lastY float64

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		dragging = action == glfw.Press
		lastX, lastY = w.GetCursorPos()
	})

	// Dragging orbits the camera around its target
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !dragging {
			return
		}
		dx, dy := xpos-lastX, ypos-lastY
		lastX, lastY = xpos, ypos
		r.GetCamera().Orbit(float32(dx*orbitSensitivity), float32(dy*orbitSensitivity))
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		r.GetCamera().Zoom(float32(-yoff * zoomStep))
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyR:
			if err := meshes.ReloadShader(); err != nil {
				log.Printf("shader reload: %v", err)
			} else {
				log.Printf("shader reloaded")
			}
		}
	})

	// Framebuffer size callback
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		r.UpdateViewport(fbWidth, fbHeight)
	})

	// Refresh callback (called during window resize to prevent visual glitches)
	window.SetRefreshCallback(func(w *glfw.Window) {
		loop.RefreshRender()
	})
}
