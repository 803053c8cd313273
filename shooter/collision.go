package shooter

import "math"

// Collide reports whether two centred boxes overlap. Boxes that only touch
// along an edge do not collide.
func Collide(aPos, aSize, bPos, bSize Vec2) bool {
	aMinX, aMaxX := aPos.X-aSize.X/2, aPos.X+aSize.X/2
	aMinY, aMaxY := aPos.Y-aSize.Y/2, aPos.Y+aSize.Y/2
	bMinX, bMaxX := bPos.X-bSize.X/2, bPos.X+bSize.X/2
	bMinY, bMaxY := bPos.Y-bSize.Y/2, bPos.Y+bSize.Y/2

	return aMinX < bMaxX && bMinX < aMaxX && aMinY < bMaxY && bMinY < aMaxY
}

// Overlaps is Collide on two transforms.
func Overlaps(a, b *Transform) bool {
	return Collide(a.Position, a.Scale, b.Position, b.Scale)
}

// Aim returns the unit vector from one point to another. Coincident points
// aim straight down.
func Aim(from, to Vec2) Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	squared := dx*dx + dy*dy
	if squared == 0 {
		return Direction{X: 0, Y: -1}
	}

	inv := float32(1 / math.Sqrt(float64(squared)))
	return Direction{X: dx * inv, Y: dy * inv}
}
