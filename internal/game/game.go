// Package game is the interactive raylib viewer for a physics world.
package game

import (
	"fmt"
	"time"

	"boxphys/internal/camera"
	"boxphys/internal/components"
	"boxphys/internal/debugdraw"
	"boxphys/internal/engine"
	"boxphys/internal/physics"
	"boxphys/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	pickDistance = 100
	shotCooldown = 0.15 // seconds
	shotSpeed    = 0.6  // units per tick
)

type Game struct {
	World     *world.World
	Camera    *camera.FlyCamera
	Debug     debugdraw.Raylib
	DebugMode bool

	log     *zap.Logger
	bodies  int
	seed    int64
	shots   int
	picked  engine.GameObjectRef
	pickHit physics.RaycastHit

	lastShotTime float64

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New prepares a viewer for w that fills the arena with bodies crates laid
// out from seed.
func New(w *world.World, logger *zap.Logger, bodies int, seed int64) *Game {
	return &Game{
		World:  w,
		Camera: camera.New(rl.Vector3{X: 35, Y: 25, Z: 35}),
		log:    logger,
		bodies: bodies,
		seed:   seed,
	}
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "Box Physics")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	g.populate()
	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) populate() {
	g.World.BuildArena(g.bodies, g.seed)
	g.World.Start()
	g.log.Info("arena ready",
		zap.String("session", g.World.Physics.Session()),
		zap.Int("colliders", g.World.Physics.ColliderCount()),
		zap.Int("bodies", g.World.Physics.BodyCount()))
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.Camera.Update(deltaTime)

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.Debug.ShowTree = !g.Debug.ShowTree
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.World.Reset()
		g.picked.Clear()
		g.seed++
		g.populate()
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) && rl.GetTime()-g.lastShotTime > shotCooldown {
		g.lastShotTime = rl.GetTime()
		g.Shoot()
	}

	g.World.Step(deltaTime)
	g.pick()

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000
}

// Shoot launches a crate along the look direction.
func (g *Game) Shoot() {
	g.shots++
	look := g.Camera.Forward()
	spawn := rl.Vector3Add(g.Camera.Position, rl.Vector3Scale(look, 3))
	g.World.SpawnBody(fmt.Sprintf("Shot_%d", g.shots), spawn, rl.Vector3{X: 0.8, Y: 0.8, Z: 0.8}, rl.Vector3Scale(look, shotSpeed))
}

func (g *Game) pick() {
	ray := physics.NewRay(g.Camera.Position, g.Camera.Forward())
	obj, hit, ok := g.World.ObjectAt(ray, pickDistance, nil)
	if !ok {
		g.picked.Clear()
		return
	}
	g.picked.Set(obj)
	g.pickHit = hit
}

func (g *Game) Draw() {
	drawStart := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(g.Camera.GetRaylibCamera())
	rl.DrawGrid(2*world.ArenaHalfSize, 1)
	g.World.Physics.DebugDraw(g.Debug)
	if obj := g.picked.Get(g.World.Scene); obj != nil {
		for _, c := range engine.GetComponents[*components.BoxCollider](obj) {
			rl.DrawBoundingBox(c.AABB().ToBoundingBox(), rl.SkyBlue)
		}
		rl.DrawSphere(g.pickHit.Point, 0.1, rl.SkyBlue)
	}
	rl.EndMode3D()

	g.DrawUI()
	rl.EndDrawing()

	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to fly, Space/Ctrl up/down, Shift fast, Mouse to look", 10, 10, 20, rl.LightGray)
	rl.DrawText("Click to shoot, R to reset, T for tree, F1 for stats", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if obj := g.picked.Get(g.World.Scene); obj != nil {
		rl.DrawText(fmt.Sprintf("%s  %.2f away", obj.Name, g.pickHit.Distance), 10, 85, 16, rl.SkyBlue)
	}

	if g.DebugMode {
		p := g.World.Physics
		rl.DrawText(fmt.Sprintf("Colliders: %d  Bodies: %d  Nodes: %d", p.ColliderCount(), p.BodyCount(), p.Tree().NodeCount()), 10, 110, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Ticks: %d  Dropped: %d", g.World.Ticks(), g.World.Dropped()), 10, 130, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), 10, 150, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), 10, 170, 16, rl.Green)
	}
}
