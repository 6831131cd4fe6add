package components

import (
	"boxphys/internal/engine"
	"boxphys/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// BoxCollider registers an axis-aligned box for its GameObject with a physics
// World on Start and removes it on destroy. Contacts are forwarded to sibling
// CollisionHandler and TriggerHandler components and to the events below.
type BoxCollider struct {
	engine.BaseComponent
	Size       rl.Vector3
	Offset     rl.Vector3
	IsTrigger  bool
	Bounciness float32
	Friction   float32

	CollisionEnter engine.EventWithArg[*engine.GameObject]
	CollisionStay  engine.EventWithArg[*engine.GameObject]
	CollisionExit  engine.EventWithArg[*engine.GameObject]
	TriggerEnter   engine.EventWithArg[*engine.GameObject]
	TriggerStay    engine.EventWithArg[*engine.GameObject]
	TriggerExit    engine.EventWithArg[*engine.GameObject]

	world    *physics.World
	collider *physics.BoxCollider
	id       physics.ColliderID
}

func NewBoxCollider(world *physics.World, size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:  size,
		world: world,
	}
}

func (b *BoxCollider) Start() {
	b.register()
}

// register is idempotent so a Rigidbody started first can pull it forward.
func (b *BoxCollider) register() {
	if !b.id.IsZero() || b.world == nil {
		return
	}
	c := physics.NewBoxCollider(ownerTransform{g: b.GetGameObject()}, b.Size)
	c.Center = b.Offset
	c.IsTrigger = b.IsTrigger
	c.Bounciness = b.Bounciness
	c.Friction = b.Friction
	c.Listener = contactForwarder{b}
	b.collider = c
	b.id = b.world.AddCollider(c)
	b.world.Logger().Debug("collider registered",
		zap.String("object", b.GetGameObject().Name),
		zap.Stringer("collider", b.id))
}

func (b *BoxCollider) OnDestroy() {
	if b.id.IsZero() {
		return
	}
	b.world.RemoveCollider(b.id)
	b.id = physics.ColliderID{}
	b.collider = nil
}

// ID is the physics handle, zero until Start.
func (b *BoxCollider) ID() physics.ColliderID { return b.id }

// AABB is the world box as of the last physics tick, or computed from the
// transform before the collider is registered.
func (b *BoxCollider) AABB() physics.AABB {
	if b.collider != nil {
		return b.collider.AABB()
	}
	g := b.GetGameObject()
	scale := g.WorldScale()
	center := rl.Vector3Add(g.WorldPosition(), rl.Vector3Multiply(b.Offset, scale))
	return physics.NewAABBFromCenter(center, rl.Vector3Multiply(b.Size, scale))
}

// contactForwarder adapts physics callbacks, which carry collider handles,
// into GameObject callbacks.
type contactForwarder struct {
	b *BoxCollider
}

func (f contactForwarder) other(id physics.ColliderID) *engine.GameObject {
	return Owner(f.b.world, id)
}

func (f contactForwarder) collision(id physics.ColliderID, ev *engine.EventWithArg[*engine.GameObject], call func(engine.CollisionHandler, *engine.GameObject)) {
	other := f.other(id)
	for _, h := range engine.GetComponents[engine.CollisionHandler](f.b.GetGameObject()) {
		call(h, other)
	}
	ev.Invoke(other)
}

func (f contactForwarder) trigger(id physics.ColliderID, ev *engine.EventWithArg[*engine.GameObject], call func(engine.TriggerHandler, *engine.GameObject)) {
	other := f.other(id)
	for _, h := range engine.GetComponents[engine.TriggerHandler](f.b.GetGameObject()) {
		call(h, other)
	}
	ev.Invoke(other)
}

func (f contactForwarder) OnCollisionEnter(id physics.ColliderID) {
	f.collision(id, &f.b.CollisionEnter, engine.CollisionHandler.OnCollisionEnter)
}

func (f contactForwarder) OnCollisionStay(id physics.ColliderID) {
	f.collision(id, &f.b.CollisionStay, engine.CollisionHandler.OnCollisionStay)
}

func (f contactForwarder) OnCollisionExit(id physics.ColliderID) {
	f.collision(id, &f.b.CollisionExit, engine.CollisionHandler.OnCollisionExit)
}

func (f contactForwarder) OnTriggerEnter(id physics.ColliderID) {
	f.trigger(id, &f.b.TriggerEnter, engine.TriggerHandler.OnTriggerEnter)
}

func (f contactForwarder) OnTriggerStay(id physics.ColliderID) {
	f.trigger(id, &f.b.TriggerStay, engine.TriggerHandler.OnTriggerStay)
}

func (f contactForwarder) OnTriggerExit(id physics.ColliderID) {
	f.trigger(id, &f.b.TriggerExit, engine.TriggerHandler.OnTriggerExit)
}
