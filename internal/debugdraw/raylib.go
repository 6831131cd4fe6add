// Package debugdraw renders physics debug boxes, either into a raylib window
// or as JSON frames streamed to websocket clients.
package debugdraw

import (
	"boxphys/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Raylib draws boxes with rl.DrawBoundingBox. Use it between BeginMode3D and
// EndMode3D.
type Raylib struct {
	// ShowTree includes partition tree node boundaries.
	ShowTree bool
}

func (r Raylib) DrawBox(box physics.AABB, kind physics.DebugKind) {
	if kind == physics.DebugTreeNode && !r.ShowTree {
		return
	}
	rl.DrawBoundingBox(box.ToBoundingBox(), Color(kind))
}

// Color is the palette shared by the window and stream viewers.
func Color(kind physics.DebugKind) rl.Color {
	switch kind {
	case physics.DebugTreeNode:
		return rl.Fade(rl.DarkGray, 0.4)
	case physics.DebugTrigger:
		return rl.Yellow
	case physics.DebugDynamic:
		return rl.Red
	default:
		return rl.Green
	}
}
