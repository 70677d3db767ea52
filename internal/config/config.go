package config

import (
	"sync"
	"time"
)

// RenderSettings holds render configuration
type RenderSettings struct {
	mu            sync.RWMutex
	fpsLimit      int // 0 disables the limiter
	slowFrame     time.Duration
	clearColor    [4]float32
	watchMeshes bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:      120,
	slowFrame:     16 * time.Millisecond,
	clearColor:    [4]float32{0.53, 0.81, 0.92, 1.0},
	watchMeshes: true,
}

// GetFPSLimit returns the frame rate cap, or 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Values below zero disable the cap.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetSlowFrameThreshold returns the frame time above which a frame is logged
func GetSlowFrameThreshold() time.Duration {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.slowFrame
}

// SetSlowFrameThreshold sets the slow frame logging threshold
func SetSlowFrameThreshold(d time.Duration) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.slowFrame = d
}

// GetClearColor returns the sky color every pass clears to
func GetClearColor() [4]float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.clearColor
}

// SetClearColor sets the sky color
func SetClearColor(c [4]float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.clearColor = c
}

// GetWatchMeshes reports whether mesh files are reloaded when they change
func GetWatchMeshes() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.watchMeshes
}

// SetWatchMeshes enables or disables mesh hot reload
func SetWatchMeshes(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.watchMeshes = enabled
}
