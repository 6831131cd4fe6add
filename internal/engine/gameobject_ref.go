package engine

// GameObjectRef names a GameObject by UID so it can be held without keeping
// the object alive, e.g. by a physics collider pointing back at its owner.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// Get resolves the reference in scene. It returns nil for an empty reference
// or an object that is no longer in the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference is set. It does not check the scene.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g; nil clears it.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
