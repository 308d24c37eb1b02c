package planar

import "math"

// Global tuning constants. Collision and solver tolerances are chosen to be
// numerically significant but visually insignificant.

const maxFloat = math.MaxFloat64
const epsilon = 1e-12

// The maximum number of contact points between two convex shapes.
const maxManifoldPoints = 2

// A small length used as a collision and constraint tolerance.
const linearSlop = 0.05

// A velocity threshold for elastic collisions. Any collision with a relative
// normal velocity below this threshold is treated as inelastic.
const velocityThreshold = 1.0

// This scale factor controls how fast overlap is resolved. Values close to 1
// tend to overshoot.
const baumgarte = 0.2

// The time a body must be still before it goes to sleep.
const timeToSleep = 0.5

// A body cannot sleep while its linear or angular speed is above these.
const linearSleepTolerance = 0.01
const angularSleepTolerance = 0.01

// Defaults used when the caller passes zero or a negative value.
const defaultCellSize = 64.0
const defaultIterations = 8

func clamp(a, low, high float64) float64 {
	if a < low {
		return low
	}
	if a > high {
		return high
	}
	return a
}
