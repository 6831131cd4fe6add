package physics

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultNodeCapacity is how many colliders a leaf holds before it tries to split.
const DefaultNodeCapacity = 100

// NodeID indexes a node in a Tree. NoNode marks the root's parent.
type NodeID int32

const NoNode NodeID = -1

// ColliderData is the snapshot a tree node keeps for one collider. The tree
// never owns the collider or its owner; both are plain references.
type ColliderData struct {
	AABB     AABB
	Collider ColliderID
	Owner    Transform
}

type treeNode struct {
	boundary  AABB
	colliders []ColliderData
	children  []NodeID // 0, 2 (median split) or 8 (octants)
	parent    NodeID
}

// Tree is an adaptive spatial partition over collider snapshots. Leaves split
// on the axis whose median best separates their colliders, falling back to an
// octant split. Nodes are created lazily and never merged back.
//
// Tree is not safe for concurrent mutation. Queries may run concurrently with
// each other but never with Insert or Remove.
type Tree struct {
	nodes    []treeNode
	capacity int
}

// NewTree creates a tree with a single empty root covering boundary.
func NewTree(boundary AABB, capacity int) *Tree {
	if capacity <= 0 {
		capacity = DefaultNodeCapacity
	}
	return &Tree{
		nodes:    []treeNode{{boundary: boundary, parent: NoNode}},
		capacity: capacity,
	}
}

func (t *Tree) Root() NodeID { return 0 }

func (t *Tree) Capacity() int { return t.capacity }

func (t *Tree) NodeCount() int { return len(t.nodes) }

func (t *Tree) Boundary(n NodeID) AABB { return t.nodes[n].boundary }

func (t *Tree) Parent(n NodeID) NodeID { return t.nodes[n].parent }

func (t *Tree) Children(n NodeID) []NodeID { return t.nodes[n].children }

// Colliders returns the snapshots held directly by n.
func (t *Tree) Colliders(n NodeID) []ColliderData { return t.nodes[n].colliders }

func (t *Tree) IsLeaf(n NodeID) bool { return len(t.nodes[n].children) == 0 }

// Insert places data in the deepest node whose boundary contains both of its
// corners, starting at the root.
func (t *Tree) Insert(data ColliderData) {
	t.insertAt(t.Root(), data)
}

func (t *Tree) insertAt(n NodeID, data ColliderData) {
	for {
		next := NoNode
		for _, c := range t.nodes[n].children {
			if t.nodes[c].boundary.ContainsBox(data.AABB) {
				next = c
				break
			}
		}
		if next == NoNode {
			break
		}
		n = next
	}
	t.appendAndMaybeSubdivide(n, data)
}

func (t *Tree) appendAndMaybeSubdivide(n NodeID, data ColliderData) {
	t.nodes[n].colliders = append(t.nodes[n].colliders, data)
	if len(t.nodes[n].colliders) <= t.capacity || !t.IsLeaf(n) {
		return
	}
	if !t.subdivide(n) {
		// No split separates anything: the leaf stays oversized.
		return
	}

	held := t.nodes[n].colliders
	t.nodes[n].colliders = nil
	for _, d := range held {
		t.insertAt(n, d)
	}
}

// subdivide attaches children to leaf n if a beneficial split exists.
func (t *Tree) subdivide(n NodeID) bool {
	boundary := t.nodes[n].boundary
	colliders := t.nodes[n].colliders

	bestAxis, bestScore := -1, float32(0)
	var bestLow, bestHigh AABB
	for ax := 0; ax < 3; ax++ {
		low, high, ok := medianSplit(boundary, colliders, ax)
		if !ok {
			continue
		}
		score := splitScore(colliders, []AABB{low, high})
		if score > bestScore {
			bestAxis, bestScore = ax, score
			bestLow, bestHigh = low, high
		}
	}
	if bestAxis >= 0 {
		t.attach(n, []AABB{bestLow, bestHigh})
		return true
	}

	octants := octantSplit(boundary)
	if splitScore(colliders, octants[:]) > 0 {
		t.attach(n, octants[:])
		return true
	}
	return false
}

func (t *Tree) attach(n NodeID, boxes []AABB) {
	children := make([]NodeID, 0, len(boxes))
	for _, b := range boxes {
		t.nodes = append(t.nodes, treeNode{boundary: b, parent: n})
		children = append(children, NodeID(len(t.nodes)-1))
	}
	t.nodes[n].children = children
}

// medianSplit cuts boundary at the median of the colliders' minimum
// coordinates on ax. It fails when the cut would leave an empty-width half.
func medianSplit(boundary AABB, colliders []ColliderData, ax int) (low, high AABB, ok bool) {
	mins := make([]float32, len(colliders))
	for i, c := range colliders {
		mins[i] = axis(c.AABB.Min, ax)
	}
	sort.Slice(mins, func(i, j int) bool { return mins[i] < mins[j] })
	median := mins[len(mins)/2]

	if median <= axis(boundary.Min, ax) || median >= axis(boundary.Max, ax) {
		return AABB{}, AABB{}, false
	}

	low, high = boundary, boundary
	setAxis(&low.Max, ax, median)
	setAxis(&high.Min, ax, median)
	return low, high, true
}

func octantSplit(boundary AABB) [8]AABB {
	c := boundary.Center()
	var out [8]AABB
	for i := 0; i < 8; i++ {
		b := boundary
		if i&1 == 0 {
			b.Max.X = c.X
		} else {
			b.Min.X = c.X
		}
		if i&2 == 0 {
			b.Max.Y = c.Y
		} else {
			b.Min.Y = c.Y
		}
		if i&4 == 0 {
			b.Max.Z = c.Z
		} else {
			b.Min.Z = c.Z
		}
		out[i] = b
	}
	return out
}

// splitScore is the fraction of colliders that fit entirely inside one of the
// candidate boxes. A split that sends everything to a single box separates
// nothing and scores zero.
func splitScore(colliders []ColliderData, boxes []AABB) float32 {
	if len(colliders) == 0 {
		return 0
	}
	occupied := make([]bool, len(boxes))
	fitted := 0
	for _, c := range colliders {
		for i, b := range boxes {
			if b.ContainsBox(c.AABB) {
				occupied[i] = true
				fitted++
				break
			}
		}
	}
	used := 0
	for _, o := range occupied {
		if o {
			used++
		}
	}
	if used < 2 {
		return 0
	}
	return float32(fitted) / float32(len(colliders))
}

// Remove deletes the snapshot for id. Every child is searched when the
// collider is not held locally, since nothing records which child holds it.
func (t *Tree) Remove(id ColliderID) bool {
	return t.removeFrom(t.Root(), id)
}

func (t *Tree) removeFrom(n NodeID, id ColliderID) bool {
	local := t.nodes[n].colliders
	for i, c := range local {
		if c.Collider == id {
			t.nodes[n].colliders = append(local[:i], local[i+1:]...)
			return true
		}
	}
	for _, c := range t.nodes[n].children {
		if t.removeFrom(c, id) {
			return true
		}
	}
	return false
}

// QueryNodes returns every node whose boundary overlaps region, parents before children.
func (t *Tree) QueryNodes(region AABB) []NodeID {
	var out []NodeID
	t.queryNodes(t.Root(), region, &out)
	return out
}

func (t *Tree) queryNodes(n NodeID, region AABB, out *[]NodeID) {
	node := &t.nodes[n]
	if !node.boundary.Overlaps(region) && n != t.Root() {
		return
	}
	*out = append(*out, n)
	for _, c := range node.children {
		t.queryNodes(c, region, out)
	}
}

// Query returns the snapshots, held by any node overlapping region, whose
// boxes overlap region. The root is always searched so colliders that lie
// outside the world boundary are still found.
func (t *Tree) Query(region AABB) []ColliderData {
	var out []ColliderData
	for _, n := range t.QueryNodes(region) {
		for _, c := range t.nodes[n].colliders {
			if c.AABB.Overlaps(region) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Walk visits every node depth-first.
func (t *Tree) Walk(fn func(n NodeID, depth int)) {
	t.walk(t.Root(), 0, fn)
}

func (t *Tree) walk(n NodeID, depth int, fn func(NodeID, int)) {
	fn(n, depth)
	for _, c := range t.nodes[n].children {
		t.walk(c, depth+1, fn)
	}
}

// Len counts the snapshots held across all nodes.
func (t *Tree) Len() int {
	total := 0
	for i := range t.nodes {
		total += len(t.nodes[i].colliders)
	}
	return total
}

// worldBoundary is the cube of side size centered on center.
func worldBoundary(center rl.Vector3, size float32) AABB {
	return NewAABBFromCenter(center, rl.Vector3{X: size, Y: size, Z: size})
}
