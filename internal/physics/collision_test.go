package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollisionHeadOn(t *testing.T) {
	moving := NewAABBFromCenter(rl.Vector3{Z: 10}, rl.Vector3{X: 2, Y: 2, Z: 2})
	static := SweepCandidate{AABB: box(-1, -1, -1, 1, 1, 1)}

	c := NewCollision(ColliderID{}, moving, static, rl.Vector3{Z: -10}, DefaultEpsilon)
	require.False(t, c.Failed)
	assert.InDelta(t, 0.8, c.TimeStep, 1e-5)
	assert.Equal(t, rl.Vector3{Z: 1}, c.Normal)
	assert.InDelta(t, 2, c.Point.Z, 1e-5)
}

func TestNewCollisionMisses(t *testing.T) {
	moving := NewAABBFromCenter(rl.Vector3{Z: 10}, rl.Vector3{X: 2, Y: 2, Z: 2})
	static := SweepCandidate{AABB: box(-1, -1, -1, 1, 1, 1)}

	c := NewCollision(ColliderID{}, moving, static, rl.Vector3{Z: -5}, DefaultEpsilon)
	assert.True(t, c.Failed, "stops short")

	c = NewCollision(ColliderID{}, moving, static, rl.Vector3{Z: 10}, DefaultEpsilon)
	assert.True(t, c.Failed, "moving away")

	c = NewCollision(ColliderID{}, moving, static, rl.Vector3{}, DefaultEpsilon)
	assert.True(t, c.Failed, "no motion")
}

func TestNewCollisionKeepsTriggerFlag(t *testing.T) {
	moving := NewAABBFromCenter(rl.Vector3{X: -5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	static := SweepCandidate{AABB: box(-1, -1, -1, 1, 1, 1), Trigger: true}

	c := NewCollision(ColliderID{}, moving, static, rl.Vector3{X: 10}, DefaultEpsilon)
	require.False(t, c.Failed)
	assert.True(t, c.Trigger)
	assert.Equal(t, rl.Vector3{X: -1}, c.Normal)
	assert.InDelta(t, 0.35, c.TimeStep, 1e-5)
}

func TestReflect(t *testing.T) {
	v := rl.Vector3{X: 1, Y: -2}
	n := rl.Vector3{Y: 1}

	assert.Equal(t, rl.Vector3{X: 1}, Reflect(v, n, 0))
	assert.Equal(t, rl.Vector3{X: 1, Y: 2}, Reflect(v, n, 1))
}
