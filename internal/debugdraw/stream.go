package debugdraw

import (
	"encoding/json"

	"boxphys/internal/physics"
)

// Box is one debug box on the wire.
type Box struct {
	Min  [3]float32 `json:"min"`
	Max  [3]float32 `json:"max"`
	Kind string     `json:"kind"`
}

// Frame is everything drawn during one tick.
type Frame struct {
	Tick    uint64 `json:"tick"`
	Session string `json:"session"`
	Boxes   []Box  `json:"boxes"`
}

type envelope struct {
	Event string `json:"event"`
	Data  Frame  `json:"data"`
}

// FrameEvent names frames in the websocket envelope.
const FrameEvent = "physics:boxes"

// Stream buffers boxes from World.DebugDraw and sends them to a Hub as one
// frame per Flush. It is not safe for concurrent use.
type Stream struct {
	hub      *Hub
	ShowTree bool
	boxes    []Box
}

func NewStream(hub *Hub) *Stream {
	return &Stream{hub: hub}
}

func (s *Stream) DrawBox(box physics.AABB, kind physics.DebugKind) {
	if kind == physics.DebugTreeNode && !s.ShowTree {
		return
	}
	s.boxes = append(s.boxes, Box{
		Min:  [3]float32{box.Min.X, box.Min.Y, box.Min.Z},
		Max:  [3]float32{box.Max.X, box.Max.Y, box.Max.Z},
		Kind: kind.String(),
	})
}

// Pending is the number of boxes buffered since the last Flush.
func (s *Stream) Pending() int { return len(s.boxes) }

// Flush broadcasts the buffered boxes and starts a new frame. It reports
// whether the hub accepted the frame; a busy hub drops it.
func (s *Stream) Flush(tick uint64, session string) (bool, error) {
	msg, err := json.Marshal(envelope{
		Event: FrameEvent,
		Data:  Frame{Tick: tick, Session: session, Boxes: s.boxes},
	})
	s.boxes = s.boxes[:0]
	if err != nil {
		return false, err
	}
	return s.hub.Broadcast(msg), nil
}
