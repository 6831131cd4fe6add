package physics

import (
	"errors"
	"time"

	"boxphys/internal/compute"
	"boxphys/internal/config"
	"boxphys/internal/metrics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrInvalidCollider = errors.New("collider handle is not registered")
	ErrColliderHasBody = errors.New("collider already has a rigidbody")
	ErrColliderNoOwner = errors.New("collider has no owner transform")
)

// World tracks colliders and rigidbodies for one simulation session. Create
// one per session, Reset it between scene loads and Close it at shutdown.
//
// Registration, Update and Reset must all happen on one goroutine. Update
// itself fans narrow-phase work out to the world's worker pool.
type World struct {
	cfg     config.Physics
	log     *zap.Logger
	metrics *metrics.Physics
	session string

	tree      *Tree
	colliders arena[*BoxCollider]
	bodies    arena[*RigidBody]
	queue     *compute.WorkQueue
	contacts  contactTracker

	// keeps a looping body from flooding the log every tick
	abortLog *rate.Limiter
}

// NewWorld builds the partition tree over the configured world bounds and
// starts the worker pool. logger and m may be nil.
func NewWorld(cfg config.Physics, logger *zap.Logger, m *metrics.Physics) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 100
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	session := uuid.NewString()
	logger = logger.With(zap.String("session", session))

	w := &World{
		cfg:      cfg,
		log:      logger,
		metrics:  m,
		session:  session,
		queue:    compute.New(cfg.Workers, logger.Named("workqueue")),
		contacts: newContactTracker(),
		abortLog: rate.NewLimiter(rate.Every(time.Second), 5),
	}
	w.tree = w.newTree()

	w.log.Info("physics world ready",
		zap.Float32("world_size", cfg.WorldSize),
		zap.Int("node_capacity", w.tree.Capacity()),
		zap.Int("workers", w.queue.Size()))
	return w
}

func (w *World) newTree() *Tree {
	c := w.cfg.WorldCenter
	return NewTree(worldBoundary(rl.Vector3{X: c.X, Y: c.Y, Z: c.Z}, w.cfg.WorldSize), w.cfg.NodeCapacity)
}

// Close stops the worker pool.
func (w *World) Close() {
	w.queue.Close()
}

// Session identifies this world in logs.
func (w *World) Session() string { return w.session }

func (w *World) Config() config.Physics { return w.cfg }

// Logger is the world's session-scoped logger, for code that registers
// colliders on the world's behalf.
func (w *World) Logger() *zap.Logger { return w.log }

// Gravity is the configured per-tick gravity, for new bodies.
func (w *World) Gravity() rl.Vector3 {
	return rl.Vector3{X: w.cfg.Gravity.X, Y: w.cfg.Gravity.Y, Z: w.cfg.Gravity.Z}
}

func (w *World) Tree() *Tree { return w.tree }

func (w *World) ColliderCount() int { return w.colliders.count }

func (w *World) BodyCount() int { return w.bodies.count }

// AddCollider registers c and inserts a snapshot of its current world box
// into the tree.
func (w *World) AddCollider(c *BoxCollider) ColliderID {
	c.refresh()
	index, gen := w.colliders.insert(c)
	id := ColliderID{index: index, gen: gen}
	w.tree.Insert(ColliderData{AABB: c.aabb, Collider: id, Owner: c.Owner})
	return id
}

// RemoveCollider drops c from the tree and the registry. An attached body
// stays registered but no longer moves.
func (w *World) RemoveCollider(id ColliderID) bool {
	c, ok := w.colliders.get(id.index, id.gen)
	if !ok {
		return false
	}
	if !w.tree.Remove(id) {
		w.log.Warn("collider missing from tree", zap.Stringer("collider", id))
	}
	if rb, ok := w.bodies.get(c.body.index, c.body.gen); ok {
		rb.collider = ColliderID{}
	}
	c.body = BodyID{}
	c.static = true
	w.contacts.forget(id)
	return w.colliders.remove(id.index, id.gen)
}

func (w *World) Collider(id ColliderID) (*BoxCollider, bool) {
	return w.colliders.get(id.index, id.gen)
}

// AddBody attaches rb to collider and registers it. The collider stops being
// static but keeps its place in the tree.
func (w *World) AddBody(rb *RigidBody, collider ColliderID) (BodyID, error) {
	c, ok := w.colliders.get(collider.index, collider.gen)
	if !ok {
		return BodyID{}, ErrInvalidCollider
	}
	if _, taken := w.bodies.get(c.body.index, c.body.gen); taken {
		return BodyID{}, ErrColliderHasBody
	}
	if c.Owner == nil {
		return BodyID{}, ErrColliderNoOwner
	}
	index, gen := w.bodies.insert(rb)
	id := BodyID{index: index, gen: gen}
	rb.collider = collider
	c.body = id
	c.static = false
	return id, nil
}

// RemoveBody deregisters rb; its collider becomes static again.
func (w *World) RemoveBody(id BodyID) bool {
	rb, ok := w.bodies.get(id.index, id.gen)
	if !ok {
		return false
	}
	if c, ok := w.colliders.get(rb.collider.index, rb.collider.gen); ok {
		c.body = BodyID{}
		c.static = true
	}
	rb.collider = ColliderID{}
	return w.bodies.remove(id.index, id.gen)
}

func (w *World) Body(id BodyID) (*RigidBody, bool) {
	return w.bodies.get(id.index, id.gen)
}

// Reset forgets every collider and body and starts over with an empty tree.
// Handles issued before the reset become stale.
func (w *World) Reset() {
	w.colliders.each(func(_, _ uint32, c *BoxCollider) {
		c.body = BodyID{}
		c.static = true
	})
	w.bodies.each(func(_, _ uint32, rb *RigidBody) {
		rb.collider = ColliderID{}
	})
	w.colliders.clear()
	w.bodies.clear()
	w.contacts = newContactTracker()
	w.tree = w.newTree()
	w.log.Debug("physics world reset")
}

// Update runs one fixed tick: colliders are refreshed from their owners,
// gravity is applied to every body, each body is swept and resolved against
// static geometry, then contact callbacks fire.
func (w *World) Update() {
	start := time.Now()

	w.colliders.each(func(_, _ uint32, c *BoxCollider) {
		c.refresh()
	})

	w.bodies.each(func(_, _ uint32, rb *RigidBody) {
		if !rb.collider.IsZero() {
			rb.applyGravity()
		}
	})

	w.bodies.each(func(index, gen uint32, rb *RigidBody) {
		w.resolveBody(BodyID{index: index, gen: gen}, rb)
	})

	w.dispatchContacts()

	w.metrics.ObserveTick(time.Since(start))
	w.metrics.SetPopulation(w.colliders.count, w.bodies.count, w.tree.NodeCount())
}
