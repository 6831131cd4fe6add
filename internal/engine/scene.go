package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	byUID       map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		byUID:       make(map[uint64]*GameObject),
	}
}

// AddGameObject adds g and its children.
func (s *Scene) AddGameObject(g *GameObject) {
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.byUID[g.UID] = g
	for _, child := range g.Children {
		s.AddGameObject(child)
	}
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	delete(s.byUID, g.UID)
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			g.Scene = nil
			return
		}
	}
}

// FindByUID is the lookup behind GameObjectRef.
func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.byUID[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range append([]*GameObject(nil), s.GameObjects...) {
		g.Update(deltaTime)
	}
}

// Clear destroys every object, so components release their physics
// registrations before the scene is dropped.
func (s *Scene) Clear() {
	for _, g := range append([]*GameObject(nil), s.GameObjects...) {
		g.Destroy()
	}
	s.GameObjects = s.GameObjects[:0]
	clear(s.byUID)
}
