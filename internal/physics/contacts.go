package physics

import "sort"

// contactPair is an unordered collider pair; a sorts before b.
type contactPair struct {
	a, b    ColliderID
	trigger bool
}

func makePair(x, y ColliderID, trigger bool) contactPair {
	if less(y, x) {
		x, y = y, x
	}
	return contactPair{a: x, b: y, trigger: trigger}
}

func less(x, y ColliderID) bool {
	if x.index != y.index {
		return x.index < y.index
	}
	return x.gen < y.gen
}

// contactTracker remembers which pairs touched last tick so callbacks can be
// split into enter, stay and exit.
type contactTracker struct {
	previous map[contactPair]struct{}
	current  map[contactPair]struct{}
}

func newContactTracker() contactTracker {
	return contactTracker{
		previous: make(map[contactPair]struct{}),
		current:  make(map[contactPair]struct{}),
	}
}

func (t *contactTracker) record(x, y ColliderID, trigger bool) {
	t.current[makePair(x, y, trigger)] = struct{}{}
}

// forget drops every pair involving id without reporting an exit.
func (t *contactTracker) forget(id ColliderID) {
	for p := range t.previous {
		if p.a == id || p.b == id {
			delete(t.previous, p)
		}
	}
	for p := range t.current {
		if p.a == id || p.b == id {
			delete(t.current, p)
		}
	}
}

type contactPhase uint8

const (
	phaseEnter contactPhase = iota
	phaseStay
	phaseExit
)

// dispatchContacts fires this tick's callbacks in a stable pair order, then
// rolls the current set over to previous.
func (w *World) dispatchContacts() {
	t := &w.contacts

	var ordered []contactPair
	for p := range t.current {
		ordered = append(ordered, p)
	}
	for p := range t.previous {
		if _, still := t.current[p]; !still {
			ordered = append(ordered, p)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].a != ordered[j].a {
			return less(ordered[i].a, ordered[j].a)
		}
		if ordered[i].b != ordered[j].b {
			return less(ordered[i].b, ordered[j].b)
		}
		return !ordered[i].trigger && ordered[j].trigger
	})

	for _, p := range ordered {
		_, now := t.current[p]
		_, before := t.previous[p]
		phase := phaseStay
		switch {
		case now && !before:
			phase = phaseEnter
		case !now:
			phase = phaseExit
		}
		w.notify(p.a, p.b, p.trigger, phase)
		w.notify(p.b, p.a, p.trigger, phase)
	}

	t.previous = t.current
	t.current = make(map[contactPair]struct{}, len(t.previous))
}

func (w *World) notify(self, other ColliderID, trigger bool, phase contactPhase) {
	c, ok := w.colliders.get(self.index, self.gen)
	if !ok || c.Listener == nil {
		return
	}
	l := c.Listener
	switch {
	case trigger && phase == phaseEnter:
		l.OnTriggerEnter(other)
	case trigger && phase == phaseStay:
		l.OnTriggerStay(other)
	case trigger:
		l.OnTriggerExit(other)
	case phase == phaseEnter:
		l.OnCollisionEnter(other)
	case phase == phaseStay:
		l.OnCollisionStay(other)
	default:
		l.OnCollisionExit(other)
	}
}
