package shooter_test

import (
	"math"
	"testing"

	"github.com/plus3/spaceshooter/shooter"
	"github.com/stretchr/testify/assert"
)

func TestCollide(t *testing.T) {
	square := shooter.Vec2{X: 10, Y: 10}

	tests := []struct {
		name string
		a, b shooter.Vec2
		want bool
	}{
		{"same centre", shooter.Vec2{}, shooter.Vec2{}, true},
		{"partial overlap", shooter.Vec2{}, shooter.Vec2{X: 9, Y: 9}, true},
		{"touching on x", shooter.Vec2{}, shooter.Vec2{X: 10}, false},
		{"touching on y", shooter.Vec2{}, shooter.Vec2{Y: -10}, false},
		{"apart", shooter.Vec2{}, shooter.Vec2{X: 30, Y: 30}, false},
		{"overlap on x only", shooter.Vec2{}, shooter.Vec2{X: 5, Y: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shooter.Collide(tt.a, square, tt.b, square))
			assert.Equal(t, tt.want, shooter.Collide(tt.b, square, tt.a, square))
		})
	}
}

func TestCollideDifferentSizes(t *testing.T) {
	ship := &shooter.Transform{Scale: shooter.Vec2{X: 6, Y: 6}}
	foe := &shooter.Transform{Position: shooter.Vec2{X: 0, Y: 17.9}, Scale: shooter.Vec2{X: 30, Y: 30}}
	assert.True(t, shooter.Overlaps(ship, foe))

	foe.Position.Y = 18
	assert.False(t, shooter.Overlaps(ship, foe))
}

func TestAim(t *testing.T) {
	dir := shooter.Aim(shooter.Vec2{X: 0, Y: 100}, shooter.Vec2{X: 0, Y: 0})
	assert.InDelta(t, 0, dir.X, 1e-6)
	assert.InDelta(t, -1, dir.Y, 1e-6)

	dir = shooter.Aim(shooter.Vec2{}, shooter.Vec2{X: 3, Y: 4})
	assert.InDelta(t, 0.6, dir.X, 1e-6)
	assert.InDelta(t, 0.8, dir.Y, 1e-6)

	length := math.Hypot(float64(dir.X), float64(dir.Y))
	assert.InDelta(t, 1.0, length, 1e-6)
}

func TestAimAtSamePointFiresDown(t *testing.T) {
	at := shooter.Vec2{X: 12, Y: -4}
	assert.Equal(t, shooter.Direction{X: 0, Y: -1}, shooter.Aim(at, at))
}
