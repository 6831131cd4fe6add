package world

import (
	"fmt"
	"math/rand"

	"boxphys/internal/components"
	"boxphys/internal/engine"
	"boxphys/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ArenaHalfSize is half the width of the floor BuildArena lays out.
const ArenaHalfSize = 30

// BuildArena lays out a walled floor with a few pillars and a trigger zone,
// then drops n crates from random heights. The same seed gives the same
// layout. It returns the crates in spawn order.
func (w *World) BuildArena(n int, seed int64) []*engine.GameObject {
	rng := rand.New(rand.NewSource(seed))
	const half = ArenaHalfSize

	w.SpawnStatic("Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 2 * half, Y: 1, Z: 2 * half})
	for i, wall := range []struct{ center, size rl.Vector3 }{
		{rl.Vector3{X: -half - 0.5, Y: 5}, rl.Vector3{X: 1, Y: 10, Z: 2 * half}},
		{rl.Vector3{X: half + 0.5, Y: 5}, rl.Vector3{X: 1, Y: 10, Z: 2 * half}},
		{rl.Vector3{Y: 5, Z: -half - 0.5}, rl.Vector3{X: 2 * half, Y: 10, Z: 1}},
		{rl.Vector3{Y: 5, Z: half + 0.5}, rl.Vector3{X: 2 * half, Y: 10, Z: 1}},
	} {
		w.SpawnStatic(fmt.Sprintf("Wall_%d", i), wall.center, wall.size)
	}

	for i := 0; i < 12; i++ {
		x := rng.Float32()*50 - 25
		z := rng.Float32()*50 - 25
		h := 1 + rng.Float32()*4
		w.SpawnStatic(fmt.Sprintf("Pillar_%d", i), rl.Vector3{X: x, Y: h / 2, Z: z}, rl.Vector3{X: 2, Y: h, Z: 2})
	}

	w.SpawnTrigger("Zone", rl.Vector3{Y: 1}, rl.Vector3{X: 6, Y: 2, Z: 6})

	crates := make([]*engine.GameObject, 0, n)
	for i := 0; i < n; i++ {
		pos := rl.Vector3{
			X: rng.Float32()*50 - 25,
			Y: 5 + rng.Float32()*20,
			Z: rng.Float32()*50 - 25,
		}
		vel := rl.Vector3{
			X: (rng.Float32() - 0.5) * 0.2,
			Z: (rng.Float32() - 0.5) * 0.2,
		}
		s := 0.5 + rng.Float32()
		crates = append(crates, w.SpawnBody(fmt.Sprintf("Crate_%d", i), pos, rl.Vector3{X: s, Y: s, Z: s}, vel))
	}
	return crates
}

// ObjectAt returns the GameObject owning the collider closest along ray
// within maxDistance, ignoring the given object's colliders.
func (w *World) ObjectAt(ray physics.Ray, maxDistance float32, ignore *engine.GameObject) (*engine.GameObject, physics.RaycastHit, bool) {
	var skip []physics.ColliderID
	if ignore != nil {
		for _, c := range engine.GetComponents[*components.BoxCollider](ignore) {
			skip = append(skip, c.ID())
		}
	}
	hit, ok := w.Physics.RaycastIgnoring(ray, maxDistance, skip...)
	if !ok {
		return nil, hit, false
	}
	return components.Owner(w.Physics, hit.Collider), hit, true
}
