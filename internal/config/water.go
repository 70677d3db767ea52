package config

import "sync"

// WaterSettings holds the water plane and its offscreen target sizes
type WaterSettings struct {
	mu               sync.RWMutex
	height           float32
	reflectionWidth  int
	reflectionHeight int
	refractionWidth  int
	refractionHeight int
}

var globalWaterSettings = &WaterSettings{
	height:           0.0,
	reflectionWidth:  320,
	reflectionHeight: 180,
	refractionWidth:  1280,
	refractionHeight: 720,
}

// GetWaterHeight returns the world-space y of the water surface
func GetWaterHeight() float32 {
	globalWaterSettings.mu.RLock()
	defer globalWaterSettings.mu.RUnlock()
	return globalWaterSettings.height
}

// SetWaterHeight sets the water surface height
func SetWaterHeight(h float32) {
	globalWaterSettings.mu.Lock()
	defer globalWaterSettings.mu.Unlock()
	globalWaterSettings.height = h
}

// GetReflectionSize returns the reflection texture size
func GetReflectionSize() (int, int) {
	globalWaterSettings.mu.RLock()
	defer globalWaterSettings.mu.RUnlock()
	return globalWaterSettings.reflectionWidth, globalWaterSettings.reflectionHeight
}

// GetRefractionSize returns the refraction texture size
func GetRefractionSize() (int, int) {
	globalWaterSettings.mu.RLock()
	defer globalWaterSettings.mu.RUnlock()
	return globalWaterSettings.refractionWidth, globalWaterSettings.refractionHeight
}

// SetTargetSizes sets both offscreen texture sizes. Non-positive sizes are ignored.
func SetTargetSizes(reflectionW, reflectionH, refractionW, refractionH int) {
	globalWaterSettings.mu.Lock()
	defer globalWaterSettings.mu.Unlock()
	if reflectionW > 0 && reflectionH > 0 {
		globalWaterSettings.reflectionWidth = reflectionW
		globalWaterSettings.reflectionHeight = reflectionH
	}
	if refractionW > 0 && refractionH > 0 {
		globalWaterSettings.refractionWidth = refractionW
		globalWaterSettings.refractionHeight = refractionH
	}
}
