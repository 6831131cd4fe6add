package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FlyCamera is a free-flying first person camera for inspecting a scene.
type FlyCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32 // units per second
	FastScale float32 // MoveSpeed multiplier while shift is held
	LookSpeed float32
}

func New(pos rl.Vector3) *FlyCamera {
	return &FlyCamera{
		Position:  pos,
		Yaw:       -135.0,
		Pitch:     -30.0,
		MoveSpeed: 12.0,
		FastScale: 3.0,
		LookSpeed: 0.1,
	}
}

// Input is one frame of movement intent. Each axis is in [-1, 1].
type Input struct {
	Forward, Right, Up float32
	Fast               bool
}

// Update reads mouse and keyboard state, then moves the camera.
func (c *FlyCamera) Update(deltaTime float32) {
	c.Look(rl.GetMouseDelta())

	var in Input
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Right--
	}
	if rl.IsKeyDown(rl.KeySpace) {
		in.Up++
	}
	if rl.IsKeyDown(rl.KeyLeftControl) {
		in.Up--
	}
	in.Fast = rl.IsKeyDown(rl.KeyLeftShift)
	c.Move(in, deltaTime)
}

// Look turns the camera by a mouse delta in pixels.
func (c *FlyCamera) Look(delta rl.Vector2) {
	c.Yaw += delta.X * c.LookSpeed
	c.Pitch -= delta.Y * c.LookSpeed

	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Move flies along the look direction. Diagonal input is normalized so it
// is no faster than a single axis.
func (c *FlyCamera) Move(in Input, deltaTime float32) {
	forward := c.Forward()
	right := c.Right()

	dir := rl.Vector3Add(rl.Vector3Scale(forward, in.Forward), rl.Vector3Scale(right, in.Right))
	dir.Y += in.Up
	if rl.Vector3Length(dir) == 0 {
		return
	}
	dir = rl.Vector3Normalize(dir)

	speed := c.MoveSpeed
	if in.Fast {
		speed *= c.FastScale
	}
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(dir, speed*deltaTime))
}

// Forward is the unit look direction.
func (c *FlyCamera) Forward() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

// Right is the unit horizontal direction to the camera's right.
func (c *FlyCamera) Right() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	return rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Z: float32(math.Cos(yawRad)),
	}
}

func (c *FlyCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, c.Forward()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
