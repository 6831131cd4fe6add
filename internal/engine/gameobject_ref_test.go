package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameObjectRefGet(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Target")
	scene.AddGameObject(obj)

	ref := GameObjectRef{UID: obj.UID}
	assert.Equal(t, obj, ref.Get(scene))
}

func TestGameObjectRefGetNil(t *testing.T) {
	scene := NewScene("Test")

	assert.Nil(t, GameObjectRef{UID: 0}.Get(scene))
	assert.Nil(t, GameObjectRef{UID: 99999}.Get(scene))
	assert.Nil(t, GameObjectRef{UID: 123}.Get(nil))
}

func TestGameObjectRefAfterDestroy(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Crate")
	scene.AddGameObject(obj)

	var ref GameObjectRef
	ref.Set(obj)
	obj.Destroy()

	assert.True(t, ref.IsValid(), "IsValid does not consult the scene")
	assert.Nil(t, ref.Get(scene))
}

func TestGameObjectRefSetAndClear(t *testing.T) {
	obj := NewGameObject("Target")

	var ref GameObjectRef
	assert.False(t, ref.IsValid())

	ref.Set(obj)
	assert.Equal(t, obj.UID, ref.UID)

	ref.Set(nil)
	assert.False(t, ref.IsValid())

	ref.Set(obj)
	ref.Clear()
	assert.Zero(t, ref.UID)
}
