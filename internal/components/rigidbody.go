package components

import (
	"boxphys/internal/engine"
	"boxphys/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Rigidbody makes its GameObject's BoxCollider dynamic. It needs a sibling
// BoxCollider on the same World; without one Start logs and does nothing.
type Rigidbody struct {
	engine.BaseComponent
	UseGravity bool
	Drag       float32
	// InitialVelocity is copied into the body on Start, in units per tick.
	InitialVelocity rl.Vector3

	world *physics.World
	body  *physics.RigidBody
	id    physics.BodyID
}

func NewRigidbody(world *physics.World) *Rigidbody {
	return &Rigidbody{
		UseGravity: true,
		world:      world,
	}
}

func (r *Rigidbody) Start() {
	if !r.id.IsZero() || r.world == nil {
		return
	}
	g := r.GetGameObject()
	col := engine.GetComponent[*BoxCollider](g)
	if col == nil {
		r.world.Logger().Warn("rigidbody has no box collider", zap.String("object", g.Name))
		return
	}
	col.register()

	var gravity rl.Vector3
	if r.UseGravity {
		gravity = r.world.Gravity()
	}
	body := physics.NewRigidBody(gravity)
	body.Drag = r.Drag
	body.Velocity = r.InitialVelocity

	id, err := r.world.AddBody(body, col.ID())
	if err != nil {
		r.world.Logger().Warn("rigidbody not registered",
			zap.String("object", g.Name),
			zap.Error(err))
		return
	}
	r.body = body
	r.id = id
}

func (r *Rigidbody) OnDestroy() {
	if r.id.IsZero() {
		return
	}
	r.world.RemoveBody(r.id)
	r.id = physics.BodyID{}
	r.body = nil
}

// ID is the physics handle, zero until Start succeeds.
func (r *Rigidbody) ID() physics.BodyID { return r.id }

func (r *Rigidbody) Velocity() rl.Vector3 {
	if r.body == nil {
		return r.InitialVelocity
	}
	return r.body.Velocity
}

func (r *Rigidbody) SetVelocity(v rl.Vector3) {
	if r.body == nil {
		r.InitialVelocity = v
		return
	}
	r.body.Velocity = v
}

// AddImpulse adds dv to the velocity, e.g. for a jump.
func (r *Rigidbody) AddImpulse(dv rl.Vector3) {
	r.SetVelocity(rl.Vector3Add(r.Velocity(), dv))
}
