package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	assert.Equal(t, []*GameObject{obj}, scene.GameObjects)
	assert.Equal(t, scene, obj.Scene)
}

func TestSceneAddsChildren(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	parent.AddChild(child)

	scene.AddGameObject(parent)

	assert.Len(t, scene.GameObjects, 2)
	assert.Equal(t, child, scene.FindByUID(child.UID))
	assert.Equal(t, scene, child.Scene)
}

func TestSceneUIDLookup(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")
	scene.AddGameObject(obj)

	assert.Equal(t, obj, scene.FindByUID(obj.UID))
	assert.Nil(t, scene.FindByUID(99999))
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Player")
	obj2 := NewGameObject("Enemy")
	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	scene.RemoveGameObject(obj1)

	assert.Equal(t, []*GameObject{obj2}, scene.GameObjects)
	assert.Nil(t, scene.FindByUID(obj1.UID))
	assert.Nil(t, obj1.Scene)
	assert.Equal(t, obj2, scene.FindByUID(obj2.UID))
}

func TestSceneFindByName(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("UniquePlayer")
	scene.AddGameObject(obj)

	assert.Equal(t, obj, scene.FindByName("UniquePlayer"))
	assert.Nil(t, scene.FindByName("DoesNotExist"))
}

func TestSceneFindByTag(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Crate1")
	obj2 := NewGameObject("Crate2")
	obj3 := NewGameObject("Floor")

	obj1.Tags = []string{"crate", "dynamic"}
	obj2.Tags = []string{"crate"}
	obj3.Tags = []string{"static"}

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)
	scene.AddGameObject(obj3)

	assert.Len(t, scene.FindByTag("crate"), 2)
	assert.Len(t, scene.FindByTag("static"), 1)
	assert.Empty(t, scene.FindByTag("nonexistent"))
}

func TestSceneClearDestroysEverything(t *testing.T) {
	scene := NewScene("Test")
	a := NewGameObject("A")
	b := NewGameObject("B")
	child := NewGameObject("Child")
	b.AddChild(child)
	counter := &destroyCounter{}
	child.AddComponent(counter)

	scene.AddGameObject(a)
	scene.AddGameObject(b)
	scene.Clear()

	assert.Empty(t, scene.GameObjects)
	assert.True(t, a.IsDestroyed())
	assert.Equal(t, 1, counter.destroyed)
	assert.Nil(t, scene.FindByUID(child.UID))
}
