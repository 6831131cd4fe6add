package components

import (
	"boxphys/internal/engine"
	"boxphys/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ownerTransform lets physics read and move a GameObject in world space.
type ownerTransform struct {
	g *engine.GameObject
}

func (t ownerTransform) Position() rl.Vector3 { return t.g.WorldPosition() }

func (t ownerTransform) SetPosition(p rl.Vector3) { t.g.SetWorldPosition(p) }

func (t ownerTransform) Scale() rl.Vector3 { return t.g.WorldScale() }

// ownerOf returns the GameObject behind a physics transform, or nil for
// fixed geometry registered without one.
func ownerOf(t any) *engine.GameObject {
	if ot, ok := t.(ownerTransform); ok {
		return ot.g
	}
	return nil
}

// Owner returns the GameObject holding collider id in world, or nil when the
// handle is stale or the collider was registered outside this package.
func Owner(world *physics.World, id physics.ColliderID) *engine.GameObject {
	c, ok := world.Collider(id)
	if !ok {
		return nil
	}
	return ownerOf(c.Owner)
}
