package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Destroyer is implemented by components that hold resources outside the
// GameObject, such as a physics registration.
type Destroyer interface {
	OnDestroy()
}

// CollisionHandler is implemented by components that want solid contact
// callbacks from a sibling collider.
type CollisionHandler interface {
	OnCollisionEnter(other *GameObject)
	OnCollisionStay(other *GameObject)
	OnCollisionExit(other *GameObject)
}

// TriggerHandler is the trigger-volume counterpart of CollisionHandler.
type TriggerHandler interface {
	OnTriggerEnter(other *GameObject)
	OnTriggerStay(other *GameObject)
	OnTriggerExit(other *GameObject)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
