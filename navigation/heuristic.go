package navigation

import "github.com/lixenwraith/astar-grid/core"

// Step costs for 8-directional movement
// Diagonal is fixed at 1.4 rather than √2, heuristic and step cost must agree
const (
	CostOrthogonal = 1.0
	CostDiagonal   = 1.4
)

// Heuristic estimates remaining cost between two cells
type Heuristic func(from, to core.Point) float64

// Octile is the default 8-direction estimate: (dx+dy) + (1.4-2)·min(dx,dy)
func Octile(a, b core.Point) float64 {
	dx, dy := absDelta(a, b)
	return CostOrthogonal*float64(dx+dy) + (CostDiagonal-2*CostOrthogonal)*float64(min(dx, dy))
}

// Manhattan is the 4-direction estimate dx+dy, inadmissible once diagonals are allowed
func Manhattan(a, b core.Point) float64 {
	dx, dy := absDelta(a, b)
	return float64(dx + dy)
}

// HeuristicByName resolves "octile" or "manhattan", nil for unknown names
func HeuristicByName(name string) Heuristic {
	switch name {
	case "", "octile":
		return Octile
	case "manhattan":
		return Manhattan
	default:
		return nil
	}
}

func absDelta(a, b core.Point) (dx, dy int) {
	dx = a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy = a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx, dy
}
