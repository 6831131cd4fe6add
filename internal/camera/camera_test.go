package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestDirections(t *testing.T) {
	c := New(rl.Vector3{})
	c.Yaw, c.Pitch = 0, 0

	f := c.Forward()
	assert.InDelta(t, 1, f.X, 1e-6)
	assert.InDelta(t, 0, f.Y, 1e-6)
	assert.InDelta(t, 0, f.Z, 1e-6)

	r := c.Right()
	assert.InDelta(t, 0, r.X, 1e-6)
	assert.InDelta(t, 1, r.Z, 1e-6)

	c.Pitch = 90
	assert.InDelta(t, 1, c.Forward().Y, 1e-6)
}

func TestLookClampsPitch(t *testing.T) {
	c := New(rl.Vector3{})
	c.Look(rl.Vector2{X: 100, Y: -10000})
	assert.Equal(t, float32(89), c.Pitch)
	assert.InDelta(t, -135+10, c.Yaw, 1e-4)

	c.Look(rl.Vector2{Y: 10000})
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestMove(t *testing.T) {
	c := New(rl.Vector3{})
	c.Yaw, c.Pitch = 0, 0
	c.MoveSpeed = 2

	c.Move(Input{Forward: 1}, 0.5)
	assert.InDelta(t, 1, c.Position.X, 1e-6)

	c.Move(Input{Forward: 1, Right: 1}, 1)
	assert.InDelta(t, 1+2/1.41421356, c.Position.X, 1e-5)
	assert.InDelta(t, 2/1.41421356, c.Position.Z, 1e-5)

	c.Position = rl.Vector3{}
	c.Move(Input{Up: 1, Fast: true}, 1)
	assert.InDelta(t, 6, c.Position.Y, 1e-6)

	c.Move(Input{}, 1)
	assert.InDelta(t, 6, c.Position.Y, 1e-6)
}
