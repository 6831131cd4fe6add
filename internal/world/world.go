// Package world drives a Scene and its physics World on a fixed tick.
package world

import (
	"fmt"

	"boxphys/internal/components"
	"boxphys/internal/engine"
	"boxphys/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// MaxStepsPerFrame caps catch-up ticks after a stall so a slow frame cannot
// snowball into an ever longer one.
const MaxStepsPerFrame = 5

type World struct {
	Scene   *engine.Scene
	Physics *physics.World

	log         *zap.Logger
	tick        float32 // seconds per physics tick
	accumulator float32
	ticks       uint64
	dropped     uint64
}

// New wraps p; the tick rate comes from p's config.
func New(p *physics.World, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	rate := p.Config().TickRate
	if rate <= 0 {
		rate = 60
	}
	return &World{
		Scene:   engine.NewScene("Main"),
		Physics: p,
		log:     logger,
		tick:    1 / float32(rate),
	}
}

// TickSeconds is the fixed step length.
func (w *World) TickSeconds() float32 { return w.tick }

// Ticks counts physics updates run so far.
func (w *World) Ticks() uint64 { return w.ticks }

// Dropped counts ticks skipped because a frame fell too far behind.
func (w *World) Dropped() uint64 { return w.dropped }

func (w *World) Start() {
	w.Scene.Start()
}

// Step advances by a frame of dt seconds and returns how many fixed ticks ran.
// Each tick updates every GameObject, then the physics world.
func (w *World) Step(dt float32) int {
	if dt < 0 {
		dt = 0
	}
	w.accumulator += dt

	steps := 0
	for w.accumulator >= w.tick {
		if steps == MaxStepsPerFrame {
			skipped := uint64(w.accumulator / w.tick)
			w.dropped += skipped
			w.accumulator -= float32(skipped) * w.tick
			w.log.Debug("physics falling behind, dropping ticks", zap.Uint64("dropped", skipped))
			break
		}
		w.Scene.Update(w.tick)
		w.Physics.Update()
		w.ticks++
		steps++
		w.accumulator -= w.tick
	}
	return steps
}

// Reset destroys every GameObject and clears the physics world.
func (w *World) Reset() {
	w.Scene.Clear()
	w.Physics.Reset()
	w.accumulator = 0
}

// SpawnStatic adds fixed geometry with a box collider.
func (w *World) SpawnStatic(name string, center, size rl.Vector3) *engine.GameObject {
	g := w.newObject(name, center)
	g.AddComponent(components.NewBoxCollider(w.Physics, size))
	return w.add(g)
}

// SpawnTrigger adds a trigger volume.
func (w *World) SpawnTrigger(name string, center, size rl.Vector3) *engine.GameObject {
	g := w.newObject(name, center)
	c := components.NewBoxCollider(w.Physics, size)
	c.IsTrigger = true
	g.AddComponent(c)
	return w.add(g)
}

// SpawnBody adds a gravity-affected box moving at velocity (units per tick).
func (w *World) SpawnBody(name string, center, size, velocity rl.Vector3) *engine.GameObject {
	g := w.newObject(name, center)
	g.AddComponent(components.NewBoxCollider(w.Physics, size))
	rb := components.NewRigidbody(w.Physics)
	rb.InitialVelocity = velocity
	g.AddComponent(rb)
	return w.add(g)
}

func (w *World) newObject(name string, center rl.Vector3) *engine.GameObject {
	if name == "" {
		name = fmt.Sprintf("Object_%d", len(w.Scene.GameObjects))
	}
	g := engine.NewGameObject(name)
	g.Transform.Position = center
	return g
}

// add starts g immediately so its colliders exist before the next tick.
func (w *World) add(g *engine.GameObject) *engine.GameObject {
	w.Scene.AddGameObject(g)
	g.Start()
	return g
}
