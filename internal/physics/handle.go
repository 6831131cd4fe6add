package physics

import "fmt"

// ColliderID refers to a collider registered with a World. The zero value is
// never issued. A handle goes stale once its collider is removed or the World
// is reset; lookups through a stale handle fail instead of aliasing a new slot.
type ColliderID struct {
	index uint32
	gen   uint32
}

// BodyID refers to a rigidbody registered with a World.
type BodyID struct {
	index uint32
	gen   uint32
}

func (id ColliderID) IsZero() bool { return id.gen == 0 }
func (id BodyID) IsZero() bool     { return id.gen == 0 }

func (id ColliderID) String() string { return fmt.Sprintf("collider#%d.%d", id.index, id.gen) }
func (id BodyID) String() string     { return fmt.Sprintf("body#%d.%d", id.index, id.gen) }

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// arena stores values behind generation-checked indices.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

func (a *arena[T]) insert(v T) (index, gen uint32) {
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		index = uint32(len(a.slots) - 1)
	}
	s := &a.slots[index]
	s.gen++
	s.value = v
	s.live = true
	a.count++
	return index, s.gen
}

func (a *arena[T]) get(index, gen uint32) (T, bool) {
	var zero T
	if gen == 0 || int(index) >= len(a.slots) {
		return zero, false
	}
	s := a.slots[index]
	if !s.live || s.gen != gen {
		return zero, false
	}
	return s.value, true
}

func (a *arena[T]) remove(index, gen uint32) bool {
	if _, ok := a.get(index, gen); !ok {
		return false
	}
	var zero T
	s := &a.slots[index]
	s.value = zero
	s.live = false
	a.free = append(a.free, index)
	a.count--
	return true
}

// clear frees every live slot. Generations survive so old handles stay stale.
func (a *arena[T]) clear() {
	var zero T
	a.free = a.free[:0]
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			s.value = zero
			s.live = false
			s.gen++
		}
		a.free = append(a.free, uint32(i))
	}
	a.count = 0
}

// each visits live slots in index order.
func (a *arena[T]) each(fn func(index, gen uint32, v T)) {
	for i := range a.slots {
		s := a.slots[i]
		if s.live {
			fn(uint32(i), s.gen, s.value)
		}
	}
}
