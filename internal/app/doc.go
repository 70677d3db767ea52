// Package app holds the frame-loop helpers shared by cmd/water: frame pacing
// and mesh hot reload.
package app
