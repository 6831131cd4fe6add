package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{
		Min: rl.Vector3{X: minX, Y: minY, Z: minZ},
		Max: rl.Vector3{X: maxX, Y: maxY, Z: maxZ},
	}
}

func TestAABBOverlapsIsSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b AABB
		want bool
	}{
		{"disjoint", box(0, 0, 0, 1, 1, 1), box(2, 2, 2, 3, 3, 3), false},
		{"touching face", box(0, 0, 0, 1, 1, 1), box(1, 0, 0, 2, 1, 1), true},
		{"nested", box(0, 0, 0, 10, 10, 10), box(4, 4, 4, 5, 5, 5), true},
		{"separated on z only", box(0, 0, 0, 1, 1, 1), box(0, 0, 1.5, 1, 1, 2), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestNewAABBFromCenterFoldsNegativeSize(t *testing.T) {
	b := NewAABBFromCenter(rl.Vector3{X: 1}, rl.Vector3{X: -2, Y: 4, Z: 2})
	assert.Equal(t, box(0, -2, -1, 2, 2, 1), b)
	assert.Equal(t, rl.Vector3{X: 1}, b.Center())
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 1}, b.HalfExtents())
}

func TestAABBContainsBox(t *testing.T) {
	outer := box(-5, -5, -5, 5, 5, 5)
	assert.True(t, outer.ContainsBox(box(-5, -5, -5, 0, 0, 0)))
	assert.False(t, outer.ContainsBox(box(4, 4, 4, 6, 6, 6)))
}

func TestAABBSwept(t *testing.T) {
	b := box(0, 0, 0, 1, 1, 1)
	assert.Equal(t, box(-3, 0, 0, 1, 1, 2), b.Swept(rl.Vector3{X: -3, Z: 1}))
}

func TestIntersectSegmentFromInside(t *testing.T) {
	r := NewRay(rl.Vector3{}, rl.Vector3{X: 1})
	hit, point, frac := r.IntersectSegment(box(-1, -1, -1, 1, 1, 1), 5)
	require.True(t, hit)
	assert.Equal(t, float32(0), frac)
	assert.Equal(t, rl.Vector3{}, point)
}

func TestIntersectSegment(t *testing.T) {
	target := box(4, -1, -1, 6, 1, 1)

	r := NewRay(rl.Vector3{}, rl.Vector3{X: 1})
	hit, point, frac := r.IntersectSegment(target, 8)
	require.True(t, hit)
	assert.InDelta(t, 0.5, frac, 1e-6)
	assert.InDelta(t, 4, point.X, 1e-6)

	hit, _, _ = r.IntersectSegment(target, 3)
	assert.False(t, hit, "segment ends before the box")

	parallel := NewRay(rl.Vector3{Y: 2}, rl.Vector3{X: 1})
	hit, _, _ = parallel.IntersectSegment(target, 10)
	assert.False(t, hit, "parallel ray outside the y slab")

	away := NewRay(rl.Vector3{}, rl.Vector3{X: -1})
	hit, _, _ = away.IntersectSegment(target, 10)
	assert.False(t, hit)
}

func TestFaceNormalPrefersFaceOpposingMotion(t *testing.T) {
	b := box(-1, -1, -1, 1, 1, 1)
	corner := rl.Vector3{X: 1, Y: 1, Z: 0}

	n, ok := faceNormal(b, corner, rl.Vector3{Y: -1}, DefaultEpsilon)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{Y: 1}, n)

	n, ok = faceNormal(b, corner, rl.Vector3{X: -1}, DefaultEpsilon)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 1}, n)

	_, ok = faceNormal(b, rl.Vector3{}, rl.Vector3{X: 1}, DefaultEpsilon)
	assert.False(t, ok, "center is on no face")
}
