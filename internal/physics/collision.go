package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// DefaultEpsilon is the face-classification tolerance and the separation kept
// after a resolved contact.
const DefaultEpsilon = 0.001

// Collision is the result of sweeping one moving box against one static box.
// It is built once by NewCollision and never changed afterwards.
type Collision struct {
	Normal   rl.Vector3
	Point    rl.Vector3 // moving collider's center at the moment of contact
	TimeStep float32    // fraction of the queried displacement used before contact, in [0,1]

	Moving ColliderID
	Static ColliderID
	// Trigger is set when either collider is a trigger; such contacts are
	// reported but never resolved.
	Trigger bool
	Failed  bool
}

// SweepCandidate is everything NewCollision needs to know about the static side.
type SweepCandidate struct {
	Collider ColliderID
	AABB     AABB
	Trigger  bool
}

// NewCollision sweeps moving along vel against candidate. The static box is
// inflated by the moving box's half extents and a ray is cast from the moving
// box's center, so the whole test is a point-vs-box sweep.
func NewCollision(movingID ColliderID, moving AABB, candidate SweepCandidate, vel rl.Vector3, epsilon float32) Collision {
	c := Collision{
		Moving:  movingID,
		Static:  candidate.Collider,
		Trigger: candidate.Trigger,
	}

	distance := rl.Vector3Length(vel)
	if distance == 0 {
		c.Failed = true
		return c
	}

	target := candidate.AABB.Inflate(moving.HalfExtents())
	ray := NewRay(moving.Center(), vel)
	hit, point, frac := ray.IntersectSegment(target, distance)
	if !hit {
		c.Failed = true
		return c
	}

	normal, ok := faceNormal(target, point, vel, epsilon)
	if !ok {
		c.Failed = true
		return c
	}

	c.Point = point
	c.TimeStep = frac
	c.Normal = normal
	return c
}

// Reflect bounces v off a surface with normal n: v - n*(v.n)*(1+bounciness).
func Reflect(v, n rl.Vector3, bounciness float32) rl.Vector3 {
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, rl.Vector3DotProduct(v, n)*(1+bounciness)))
}
