package navigation

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/astar-grid/core"
)

// NoParent marks the synthetic start node
const NoParent int32 = -1

// ErrParentless is returned when cost is computed on a node without a predecessor
var ErrParentless = errors.New("cannot compute cost of a parentless node")

// Node is a per-cell search record
// Parent is a handle into the owning arena, not an ownership link
type Node struct {
	G, H, F float64
	Pos     core.Point
	Parent  int32
}

// nodeArena is a dense node store addressed by int32 handles
type nodeArena []Node

func (a *nodeArena) alloc(n Node) int32 {
	*a = append(*a, n)
	return int32(len(*a) - 1)
}

// calculateCost fills H, G and F for the node at handle from its parent's G
func (a nodeArena) calculateCost(handle int32, displacement float64, end core.Point, heuristic Heuristic) error {
	n := &a[handle]
	if n.Parent == NoParent {
		return fmt.Errorf("node at %v: %w", n.Pos, ErrParentless)
	}
	n.H = heuristic(n.Pos, end)
	n.G = a[n.Parent].G + displacement
	n.F = n.G + n.H
	return nil
}

// frontierEntry is a heap slot; F is a snapshot used to detect stale entries after relaxation
type frontierEntry struct {
	handle int32
	f      float64
}

func entryKey(e frontierEntry) float64 { return e.f }
