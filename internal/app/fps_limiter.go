package app

import (
	"time"

	"github.com/sepiropht/webgl-water-tutorial/internal/config"
)

// idleFPS caps the frame rate while the window is minimized.
const idleFPS = 30

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next  time.Time
	sleep func(time.Duration)
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{sleep: time.Sleep}
}

// Wait blocks until the next frame is due under the configured limit.
// Sleeps most of the interval and spins for the final few microseconds.
func (f *FPSLimiter) Wait(idle bool) {
	effectiveLimit := config.GetFPSLimit()
	if idle {
		effectiveLimit = idleFPS
	}

	if effectiveLimit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(effectiveLimit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// Resync after a hitch instead of racing to catch up.
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
