package canvas

import "math"

// Snap rounds v to the nearest multiple of grid. Round-to-nearest, not floor,
// so snapping is idempotent: Snap(Snap(v)) == Snap(v).
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// ClampAxis keeps v within [0, max]. When max collapses below zero (widget
// larger than the canvas) the only legal coordinate is 0.
func ClampAxis(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ClampedPosition constrains pos so the widget's full bounding box stays
// inside the canvas.
func ClampedPosition(pos Position, size Size, canvas Size) Position {
	return Position{
		X: ClampAxis(pos.X, canvas.Width-size.Width),
		Y: ClampAxis(pos.Y, canvas.Height-size.Height),
	}
}

// snapPosition grid-aligns both axes.
func snapPosition(pos Position, grid float64) Position {
	return Position{X: Snap(pos.X, grid), Y: Snap(pos.Y, grid)}
}

// validCoordinate rejects NaN and infinities parsed from user text.
func validCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
