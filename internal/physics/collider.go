package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Transform is the owning object's placement, as seen by physics. Positions
// are world space.
type Transform interface {
	Position() rl.Vector3
	SetPosition(p rl.Vector3)
	Scale() rl.Vector3
}

// ContactListener receives contact callbacks for one collider. Calls happen
// synchronously inside World.Update; implementations must not block or add
// and remove colliders or bodies.
type ContactListener interface {
	OnCollisionEnter(other ColliderID)
	OnCollisionStay(other ColliderID)
	OnCollisionExit(other ColliderID)
	OnTriggerEnter(other ColliderID)
	OnTriggerStay(other ColliderID)
	OnTriggerExit(other ColliderID)
}

// BoxCollider is an axis-aligned box bound to an owner transform. The host
// owns it; a World only keeps a reference between AddCollider and
// RemoveCollider.
type BoxCollider struct {
	Center     rl.Vector3 // offset from the owner, scaled with it
	Size       rl.Vector3
	IsTrigger  bool
	Bounciness float32 // 0 = no bounce, 1 = perfect bounce
	Friction   float32 // 0 = ice, 1 = stops immediately

	// Owner may be nil for fixed geometry; Center is then the world position.
	Owner    Transform
	Listener ContactListener

	aabb   AABB
	static bool
	body   BodyID
}

// NewBoxCollider returns a static, solid collider of the given size.
func NewBoxCollider(owner Transform, size rl.Vector3) *BoxCollider {
	c := &BoxCollider{
		Size:   size,
		Owner:  owner,
		static: true,
	}
	c.aabb = c.computeAABB()
	return c
}

// AABB is the world-space box as of the last refresh.
func (c *BoxCollider) AABB() AABB { return c.aabb }

// IsStatic is false while a rigidbody is attached.
func (c *BoxCollider) IsStatic() bool { return c.static }

// Body is the attached rigidbody, or the zero BodyID.
func (c *BoxCollider) Body() BodyID { return c.body }

// WorldCenter is the owner's position plus the scaled center offset.
func (c *BoxCollider) WorldCenter() rl.Vector3 {
	if c.Owner == nil {
		return c.Center
	}
	return rl.Vector3Add(c.Owner.Position(), rl.Vector3Multiply(c.Center, c.Owner.Scale()))
}

// WorldSize is Size scaled by the owner, with negative scales folded.
func (c *BoxCollider) WorldSize() rl.Vector3 {
	size := c.Size
	if c.Owner != nil {
		size = rl.Vector3Multiply(size, c.Owner.Scale())
	}
	return rl.Vector3{X: abs(size.X), Y: abs(size.Y), Z: abs(size.Z)}
}

func (c *BoxCollider) computeAABB() AABB {
	return NewAABBFromCenter(c.WorldCenter(), c.WorldSize())
}

func (c *BoxCollider) refresh() {
	c.aabb = c.computeAABB()
}

// moveCenterTo places the owner so the collider's center lands on p.
func (c *BoxCollider) moveCenterTo(p rl.Vector3) {
	offset := rl.Vector3Subtract(c.WorldCenter(), c.Owner.Position())
	c.Owner.SetPosition(rl.Vector3Subtract(p, offset))
	c.refresh()
}

func (c *BoxCollider) translate(d rl.Vector3) {
	c.Owner.SetPosition(rl.Vector3Add(c.Owner.Position(), d))
	c.refresh()
}

// RigidBody integrates a velocity for the collider it is attached to.
// Velocity and Gravity are world units per tick.
type RigidBody struct {
	Velocity rl.Vector3
	Gravity  rl.Vector3
	Drag     float32 // fraction of velocity removed per tick

	collider ColliderID
}

// NewRigidBody returns a body with the given per-tick gravity.
func NewRigidBody(gravity rl.Vector3) *RigidBody {
	return &RigidBody{Gravity: gravity}
}

// Collider is the attached collider, or the zero ColliderID once detached.
func (rb *RigidBody) Collider() ColliderID { return rb.collider }

func (rb *RigidBody) applyGravity() {
	v := rl.Vector3Add(rb.Velocity, rb.Gravity)
	if rb.Drag != 0 {
		v = rl.Vector3Scale(v, 1-rb.Drag)
	}
	rb.Velocity = v
}
