package physics

// DebugKind tells a DebugDrawer what a box represents.
type DebugKind uint8

const (
	DebugTreeNode DebugKind = iota
	DebugCollider
	DebugTrigger
	DebugDynamic
)

func (k DebugKind) String() string {
	switch k {
	case DebugTreeNode:
		return "node"
	case DebugCollider:
		return "collider"
	case DebugTrigger:
		return "trigger"
	case DebugDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// DebugDrawer receives boxes to visualize. It must not call back into the World.
type DebugDrawer interface {
	DrawBox(box AABB, kind DebugKind)
}

// DebugDraw pushes every tree node boundary and every collider box to d.
func (w *World) DebugDraw(d DebugDrawer) {
	w.tree.Walk(func(n NodeID, _ int) {
		d.DrawBox(w.tree.Boundary(n), DebugTreeNode)
	})
	w.colliders.each(func(_, _ uint32, c *BoxCollider) {
		kind := DebugCollider
		switch {
		case c.IsTrigger:
			kind = DebugTrigger
		case !c.static:
			kind = DebugDynamic
		}
		d.DrawBox(c.aabb, kind)
	})
}
