package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testID(i int) ColliderID { return ColliderID{index: uint32(i), gen: 1} }

func unitBoxAt(x, y, z float32) AABB {
	return NewAABBFromCenter(rl.Vector3{X: x, Y: y, Z: z}, rl.Vector3{X: 1, Y: 1, Z: 1})
}

// holders maps each collider to the number of nodes holding it.
func holders(tr *Tree) map[ColliderID]int {
	out := map[ColliderID]int{}
	tr.Walk(func(n NodeID, _ int) {
		for _, c := range tr.Colliders(n) {
			out[c.Collider]++
		}
	})
	return out
}

func TestTreeStaysLeafUnderCapacity(t *testing.T) {
	tr := NewTree(worldBoundary(rl.Vector3{}, 100), 4)
	for i := 0; i < 4; i++ {
		tr.Insert(ColliderData{AABB: unitBoxAt(float32(i*10), 0, 0), Collider: testID(i)})
	}
	assert.True(t, tr.IsLeaf(tr.Root()))
	assert.Equal(t, 1, tr.NodeCount())
	assert.Equal(t, 4, tr.Len())
}

func TestTreeSplitsAndKeepsEachColliderOnce(t *testing.T) {
	tr := NewTree(worldBoundary(rl.Vector3{}, 100), 4)
	n := 0
	for x := -40; x <= 40; x += 10 {
		for z := -40; z <= 40; z += 20 {
			tr.Insert(ColliderData{AABB: unitBoxAt(float32(x), 0, float32(z)), Collider: testID(n)})
			n++
		}
	}

	require.False(t, tr.IsLeaf(tr.Root()))
	assert.Equal(t, n, tr.Len())

	h := holders(tr)
	assert.Len(t, h, n)
	for id, count := range h {
		assert.Equal(t, 1, count, "%v held by %d nodes", id, count)
	}

	// Every snapshot sits in a node whose boundary contains it.
	tr.Walk(func(node NodeID, _ int) {
		for _, c := range tr.Colliders(node) {
			if node != tr.Root() {
				assert.True(t, tr.Boundary(node).ContainsBox(c.AABB))
			}
		}
	})
}

func TestTreeChildrenCountIsTwoOrEight(t *testing.T) {
	tr := NewTree(worldBoundary(rl.Vector3{}, 100), 2)
	for i := 0; i < 30; i++ {
		f := float32(i*3 - 45)
		tr.Insert(ColliderData{AABB: unitBoxAt(f, f/2, -f), Collider: testID(i)})
	}
	tr.Walk(func(n NodeID, _ int) {
		k := len(tr.Children(n))
		assert.Contains(t, []int{0, 2, 8}, k)
		for _, c := range tr.Children(n) {
			assert.Equal(t, n, tr.Parent(c))
		}
	})
}

func TestTreeLeavesStayWithinCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tr := NewTree(worldBoundary(rl.Vector3{}, 100), 8)

	const n = 2000
	size := rl.Vector3{X: 0.05, Y: 0.05, Z: 0.05}
	for i := 0; i < n; i++ {
		c := rl.Vector3{
			X: rng.Float32()*90 - 45,
			Y: rng.Float32()*90 - 45,
			Z: rng.Float32()*90 - 45,
		}
		tr.Insert(ColliderData{AABB: NewAABBFromCenter(c, size), Collider: testID(i)})
	}

	require.Equal(t, n, tr.Len())
	assert.Len(t, holders(tr), n)
	tr.Walk(func(node NodeID, _ int) {
		if tr.IsLeaf(node) {
			assert.LessOrEqual(t, len(tr.Colliders(node)), tr.Capacity(), "leaf %d", node)
		}
	})
}

func TestTreeDoesNotSplitIdenticalBoxes(t *testing.T) {
	tr := NewTree(worldBoundary(rl.Vector3{}, 100), 3)
	for i := 0; i < 20; i++ {
		tr.Insert(ColliderData{AABB: unitBoxAt(5, 5, 5), Collider: testID(i)})
	}
	assert.Equal(t, 20, tr.Len())
	assert.Len(t, tr.Query(unitBoxAt(5, 5, 5)), 20)
}

func TestTreeOutsideWorldGoesToRoot(t *testing.T) {
	tr := NewTree(worldBoundary(rl.Vector3{}, 10), 1)
	tr.Insert(ColliderData{AABB: unitBoxAt(-3, 0, 0), Collider: testID(0)})
	tr.Insert(ColliderData{AABB: unitBoxAt(3, 0, 0), Collider: testID(1)})
	far := ColliderData{AABB: unitBoxAt(500, 0, 0), Collider: testID(2)}
	tr.Insert(far)

	assert.Contains(t, tr.Colliders(tr.Root()), far)
	found := tr.Query(unitBoxAt(500, 0, 0))
	require.Len(t, found, 1)
	assert.Equal(t, testID(2), found[0].Collider)
}

func TestTreeRemove(t *testing.T) {
	tr := NewTree(worldBoundary(rl.Vector3{}, 100), 2)
	for i := 0; i < 10; i++ {
		tr.Insert(ColliderData{AABB: unitBoxAt(float32(i*8-40), 0, 0), Collider: testID(i)})
	}
	nodes := tr.NodeCount()

	assert.True(t, tr.Remove(testID(7)))
	assert.False(t, tr.Remove(testID(7)))
	assert.Equal(t, 9, tr.Len())
	assert.NotContains(t, holders(tr), testID(7))
	assert.Equal(t, nodes, tr.NodeCount(), "nodes are never merged")
}

func TestTreeQuery(t *testing.T) {
	tr := NewTree(worldBoundary(rl.Vector3{}, 100), 2)
	for i := 0; i < 10; i++ {
		tr.Insert(ColliderData{AABB: unitBoxAt(float32(i*8-40), 0, 0), Collider: testID(i)})
	}
	found := tr.Query(box(-41, -1, -1, -31, 1, 1))
	ids := make([]ColliderID, 0, len(found))
	for _, f := range found {
		ids = append(ids, f.Collider)
	}
	assert.ElementsMatch(t, []ColliderID{testID(0), testID(1)}, ids)

	assert.Empty(t, tr.Query(box(0, 30, 0, 1, 31, 1)))
	assert.Contains(t, tr.QueryNodes(box(0, 30, 0, 1, 31, 1)), tr.Root())
}

func TestSplitScoreRequiresTwoOccupiedBoxes(t *testing.T) {
	colliders := []ColliderData{{AABB: unitBoxAt(1, 1, 1)}, {AABB: unitBoxAt(2, 2, 2)}}
	halves := []AABB{box(0, 0, 0, 5, 10, 10), box(5, 0, 0, 10, 10, 10)}
	assert.Zero(t, splitScore(colliders, halves))

	colliders = append(colliders, ColliderData{AABB: unitBoxAt(7, 1, 1)})
	assert.InDelta(t, 1.0, splitScore(colliders, halves), 1e-6)
}
