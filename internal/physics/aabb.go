package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned box. Min <= Max on every axis.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: abs(size.X) / 2, Y: abs(size.Y) / 2, Z: abs(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Overlaps reports whether the projections of a and b overlap on all three axes.
// Touching faces count as overlapping.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies inside a or on its surface.
func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// ContainsBox reports whether both corners of b lie inside a.
func (a AABB) ContainsBox(b AABB) bool {
	return a.Contains(b.Min) && a.Contains(b.Max)
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

func (a AABB) HalfExtents() rl.Vector3 {
	return rl.Vector3Scale(a.Size(), 0.5)
}

// Inflate grows the box by half on every side. Inflating a static box by the
// half extents of a moving box turns a box-vs-box sweep into a point-vs-box sweep.
func (a AABB) Inflate(half rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Subtract(a.Min, half),
		Max: rl.Vector3Add(a.Max, half),
	}
}

// Union returns the smallest box enclosing a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: rl.Vector3Min(a.Min, b.Min),
		Max: rl.Vector3Max(a.Max, b.Max),
	}
}

// Translate moves the box by d.
func (a AABB) Translate(d rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Add(a.Min, d),
		Max: rl.Vector3Add(a.Max, d),
	}
}

// Swept returns the region covered by a while it moves by d.
func (a AABB) Swept(d rl.Vector3) AABB {
	return a.Union(a.Translate(d))
}

// ToBoundingBox converts to raylib's box type for drawing.
func (a AABB) ToBoundingBox() rl.BoundingBox {
	return rl.NewBoundingBox(a.Min, a.Max)
}

// axis returns component i (0=X, 1=Y, 2=Z) of v.
func axis(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func setAxis(v *rl.Vector3, i int, value float32) {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
