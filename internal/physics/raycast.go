package physics

import (
	"slices"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Collider ColliderID
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the closest collider hit within maxDistance. It scans every
// registered collider; the tree is only used for rigidbody sweeps.
func (w *World) Raycast(ray Ray, maxDistance float32) (RaycastHit, bool) {
	return w.raycastClosest(ray, maxDistance, nil)
}

// RaycastIgnoring is Raycast that skips the listed colliders, typically the
// caster's own.
func (w *World) RaycastIgnoring(ray Ray, maxDistance float32, ignore ...ColliderID) (RaycastHit, bool) {
	return w.raycastClosest(ray, maxDistance, ignore)
}

// RaycastAll returns every hit within maxDistance, nearest first.
func (w *World) RaycastAll(ray Ray, maxDistance float32) []RaycastHit {
	var hits []RaycastHit
	w.colliders.each(func(index, gen uint32, c *BoxCollider) {
		if h, ok := raycastBox(ray, c.aabb, maxDistance, w.cfg.Epsilon); ok {
			h.Collider = ColliderID{index: index, gen: gen}
			hits = append(hits, h)
		}
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (w *World) raycastClosest(ray Ray, maxDistance float32, ignore []ColliderID) (RaycastHit, bool) {
	var closest RaycastHit
	closest.Distance = maxDistance
	hit := false

	w.colliders.each(func(index, gen uint32, c *BoxCollider) {
		id := ColliderID{index: index, gen: gen}
		if slices.Contains(ignore, id) {
			return
		}
		if h, ok := raycastBox(ray, c.aabb, maxDistance, w.cfg.Epsilon); ok && (!hit || h.Distance < closest.Distance) {
			closest = h
			closest.Collider = id
			hit = true
		}
	})
	return closest, hit
}

func raycastBox(ray Ray, box AABB, maxDistance, epsilon float32) (RaycastHit, bool) {
	if maxDistance <= 0 {
		return RaycastHit{}, false
	}
	ok, point, frac := ray.IntersectSegment(box, maxDistance)
	if !ok {
		return RaycastHit{}, false
	}

	normal, onFace := faceNormal(box, point, ray.Direction, epsilon)
	if !onFace {
		// Started inside the box.
		normal = rl.Vector3Negate(ray.Direction)
	}
	return RaycastHit{Point: point, Normal: normal, Distance: frac * maxDistance}, true
}
