package main

import (
	"encoding/binary"
	"math"

	"boxphys/internal/engine"

	"github.com/cespare/xxhash/v2"
)

// digest hashes crate positions so two runs can be compared for identical
// results, e.g. with different worker counts.
func digest(objects []*engine.GameObject) uint64 {
	h := xxhash.New()
	var buf [12]byte
	for _, g := range objects {
		p := g.WorldPosition()
		binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(p.X))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(p.Y))
		binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(p.Z))
		h.Write(buf[:])
	}
	return h.Sum64()
}
