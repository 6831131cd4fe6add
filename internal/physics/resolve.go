package physics

import (
	"math"
	"sort"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// minTimeLeft ends a body's sweep once almost nothing of the tick remains.
const minTimeLeft = 1e-6

// resolveBody sweeps one body through the current tick. Each iteration
// queries the tree with the remaining displacement, tests the candidates in
// parallel and resolves the earliest solid contact. Triggers are reported but
// never stop the body or consume time.
func (w *World) resolveBody(id BodyID, rb *RigidBody) {
	col, ok := w.colliders.get(rb.collider.index, rb.collider.gen)
	if !ok {
		return
	}
	// A sweep that starts inside a trigger crosses no face, so triggers the
	// body still overlaps when it comes to rest are recorded separately.
	defer w.recordTriggerOverlaps(rb.collider, col)

	timeLeft := float32(1)
	iterations := 0
	defer func() { w.metrics.ObserveIterations(iterations) }()

	for {
		if iterations >= w.cfg.MaxIterations {
			w.metrics.BodyAborted()
			if w.abortLog.Allow() {
				w.log.Error("body resolution did not converge",
					zap.Stringer("body", id),
					zap.Int("iterations", iterations),
					zap.Float32("time_left", timeLeft))
			}
			return
		}
		iterations++

		disp := rl.Vector3Scale(rb.Velocity, timeLeft)
		if rl.Vector3Length(disp) == 0 {
			return
		}

		box := col.aabb
		candidates := w.candidates(rb.collider, col, box.Swept(disp))
		w.metrics.ObserveCandidates(len(candidates))
		results := w.narrowPhase(rb.collider, box, candidates, disp)

		// Worker completion order is random; equal times fall back to the
		// collider handle so the outcome does not depend on the pool size.
		sort.Slice(results, func(i, j int) bool {
			if results[i].TimeStep != results[j].TimeStep {
				return results[i].TimeStep < results[j].TimeStep
			}
			return less(results[i].Static, results[j].Static)
		})

		blocking := -1
		for i := range results {
			if !results[i].Trigger {
				blocking = i
				break
			}
		}

		reach := float32(1)
		if blocking >= 0 {
			reach = results[blocking].TimeStep
		}
		for _, c := range results {
			if c.Trigger && c.TimeStep <= reach {
				w.contacts.record(c.Moving, c.Static, true)
				w.metrics.Contact(true)
			}
		}

		if blocking < 0 {
			col.translate(disp)
			return
		}

		c := results[blocking]
		bounciness, friction := col.Bounciness, col.Friction
		if other, ok := w.colliders.get(c.Static.index, c.Static.gen); ok {
			bounciness = (bounciness + other.Bounciness) / 2
			friction = (friction + other.Friction) / 2
		}

		col.moveCenterTo(rl.Vector3Add(c.Point, rl.Vector3Scale(c.Normal, w.cfg.Epsilon)))
		rb.Velocity = rl.Vector3Scale(Reflect(rb.Velocity, c.Normal, bounciness), 1-friction)
		w.contacts.record(c.Moving, c.Static, false)
		w.metrics.Contact(false)

		if !finite(rb.Velocity) {
			w.log.Error("body velocity became non-finite", zap.Stringer("body", id))
			rb.Velocity = rl.Vector3{}
			return
		}

		// TimeStep is a fraction of disp, which is already scaled by timeLeft.
		timeLeft -= c.TimeStep * timeLeft
		if timeLeft <= minTimeLeft {
			return
		}
	}
}

// candidates turns the tree's snapshots for region into sweep inputs. Only
// static colliders are swept against; the body's own collider and other
// body-owned colliders are skipped.
func (w *World) candidates(self ColliderID, selfCol *BoxCollider, region AABB) []SweepCandidate {
	found := w.tree.Query(region)
	out := make([]SweepCandidate, 0, len(found))
	for _, d := range found {
		if d.Collider == self {
			continue
		}
		c, ok := w.colliders.get(d.Collider.index, d.Collider.gen)
		if !ok || !c.static {
			continue
		}
		out = append(out, SweepCandidate{
			Collider: d.Collider,
			AABB:     c.aabb,
			Trigger:  c.IsTrigger || selfCol.IsTrigger,
		})
	}
	return out
}

// recordTriggerOverlaps records a trigger pair for every trigger candidate the
// body's final box overlaps.
func (w *World) recordTriggerOverlaps(self ColliderID, col *BoxCollider) {
	for _, cand := range w.candidates(self, col, col.aabb) {
		if cand.Trigger && cand.AABB.Overlaps(col.aabb) {
			w.contacts.record(self, cand.Collider, true)
		}
	}
}

// narrowPhase splits candidates into one contiguous chunk per worker and
// collects every successful sweep. Result order depends on scheduling.
func (w *World) narrowPhase(moving ColliderID, box AABB, candidates []SweepCandidate, disp rl.Vector3) []Collision {
	if len(candidates) == 0 {
		return nil
	}

	var mu sync.Mutex
	results := make([]Collision, 0, len(candidates))
	epsilon := w.cfg.Epsilon

	job := func(data any) error {
		chunk := data.([]SweepCandidate)
		local := make([]Collision, 0, len(chunk))
		for _, cand := range chunk {
			if c := NewCollision(moving, box, cand, disp, epsilon); !c.Failed {
				local = append(local, c)
			}
		}
		mu.Lock()
		results = append(results, local...)
		mu.Unlock()
		return nil
	}

	size := (len(candidates) + w.queue.Size() - 1) / w.queue.Size()
	for start := 0; start < len(candidates); start += size {
		end := min(start+size, len(candidates))
		w.queue.Submit(job, candidates[start:end])
	}

	if err := w.queue.FinishAll(); err != nil {
		errs := multierr.Errors(err)
		w.metrics.JobErrors(len(errs))
		w.log.Warn("narrow phase jobs failed", zap.Int("failed", len(errs)), zap.Error(err))
	}
	return results
}

func finite(v rl.Vector3) bool {
	for _, f := range []float32{v.X, v.Y, v.Z} {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
