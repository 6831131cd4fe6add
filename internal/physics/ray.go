package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Ray is an origin plus a unit direction.
type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// NewRay normalizes direction. A zero direction stays zero.
func NewRay(origin, direction rl.Vector3) Ray {
	return Ray{Origin: origin, Direction: rl.Vector3Normalize(direction)}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Origin, rl.Vector3Scale(r.Direction, t))
}

// IntersectSegment clips the segment Origin -> Origin+Direction*maxDistance against
// box using the slab method. frac is the fraction of the full segment travelled
// before entering the box; it is 0 when the origin is already inside.
func (r Ray) IntersectSegment(box AABB, maxDistance float32) (hit bool, point rl.Vector3, frac float32) {
	delta := rl.Vector3Scale(r.Direction, maxDistance)

	fLow, fHigh := float32(0), float32(1)
	for i := 0; i < 3; i++ {
		start := axis(r.Origin, i)
		d := axis(delta, i)
		lo, hi := axis(box.Min, i), axis(box.Max, i)

		// Parallel to this slab: the origin has to already be inside it.
		if d == 0 {
			if start < lo || start > hi {
				return false, rl.Vector3{}, 0
			}
			continue
		}

		f0 := (lo - start) / d
		f1 := (hi - start) / d
		if f0 > f1 {
			f0, f1 = f1, f0
		}
		if f0 > fLow {
			fLow = f0
		}
		if f1 < fHigh {
			fHigh = f1
		}
		if fLow > fHigh {
			return false, rl.Vector3{}, 0
		}
	}
	if fLow > 1 {
		return false, rl.Vector3{}, 0
	}

	point = rl.Vector3Add(r.Origin, rl.Vector3Scale(delta, fLow))
	return true, point, fLow
}

// faceNormals lists the six world-axis face normals in classification order.
var faceNormals = [6]rl.Vector3{
	{X: -1}, {X: 1},
	{Y: -1}, {Y: 1},
	{Z: -1}, {Z: 1},
}

// faceNormal classifies which face of box the point lies on, within epsilon.
// Among matching faces the first one opposing motion wins, so edge and corner
// hits report the face that was actually crossed.
func faceNormal(box AABB, point, motion rl.Vector3, epsilon float32) (rl.Vector3, bool) {
	var planes [6]bool
	planes[0] = abs(point.X-box.Min.X) < epsilon
	planes[1] = abs(point.X-box.Max.X) < epsilon
	planes[2] = abs(point.Y-box.Min.Y) < epsilon
	planes[3] = abs(point.Y-box.Max.Y) < epsilon
	planes[4] = abs(point.Z-box.Min.Z) < epsilon
	planes[5] = abs(point.Z-box.Max.Z) < epsilon

	first := -1
	for i, on := range planes {
		if !on {
			continue
		}
		if first < 0 {
			first = i
		}
		if rl.Vector3DotProduct(faceNormals[i], motion) < 0 {
			return faceNormals[i], true
		}
	}
	if first < 0 {
		return rl.Vector3{}, false
	}
	return faceNormals[first], true
}
