package layout

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/astar-grid/core"
)

// MazeConfig controls maze generation over a width×height grid
type MazeConfig struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, a tree) to 1.0 (no dead ends).
	// Higher values add cycles; the no-plaza and no-pillar constraints take precedence.
	Braiding float64

	Start *core.Point // Optional (nil = top-left room)
	End   *core.Point // Optional (nil = bottom-right room)
	Seed  int64       // Optional (0 = Random)
}

// Maze is a generated obstacle layout with its endpoints
type Maze struct {
	Width, Height int
	Start, End    core.Point

	// Solution is the shortest orthogonal route from Start to End, inclusive
	Solution []core.Point

	walls []bool
}

// Wall reports whether p is a wall cell, out-of-bounds cells are walls
func (m *Maze) Wall(p core.Point) bool {
	if !p.In(m.Width, m.Height) {
		return true
	}
	return m.walls[core.ToIndex(m.Width, p)]
}

// Obstacles returns the wall cells in row-major order
func (m *Maze) Obstacles() []core.Point {
	points := make([]core.Point, 0, len(m.walls))
	for idx, wall := range m.walls {
		if wall {
			points = append(points, core.FromIndex(m.Width, idx))
		}
	}
	return points
}

// mazeGrid is the working carve surface, sized to the odd lattice that fits the request
type mazeGrid struct {
	cols, rows int
	cells      []bool // true = wall
}

func (g *mazeGrid) in(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

func (g *mazeGrid) wall(x, y int) bool {
	return g.cells[y*g.cols+x]
}

func (g *mazeGrid) set(x, y int, wall bool) {
	g.cells[y*g.cols+x] = wall
}

// passage is a bounds-safe read, outside cells count as walls
func (g *mazeGrid) passage(x, y int) bool {
	return g.in(x, y) && !g.wall(x, y)
}

var (
	stepDirs = []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	jumpDirs = []core.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}
)

// GenerateMaze carves a maze with a recursive backtracker and optional braiding.
// Cells outside the largest odd lattice that fits the grid stay walls.
func GenerateMaze(cfg MazeConfig) *Maze {
	g := &mazeGrid{cols: ensureOdd(cfg.Width), rows: ensureOdd(cfg.Height)}
	g.cells = make([]bool, g.cols*g.rows)
	for i := range g.cells {
		g.cells[i] = true
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := snapToRoom(g, cfg.Start, 1, 1)
	end := snapToRoom(g, cfg.End, g.cols-2, g.rows-2)

	carve(g, start, rng)
	if cfg.Braiding > 0 {
		braid(g, cfg.Braiding, rng)
	}

	// Grid may be larger than the lattice when a dimension is even or below 3
	width, height := max(cfg.Width, 1), max(cfg.Height, 1)
	m := &Maze{
		Width:  width,
		Height: height,
		Start:  start,
		End:    end,
		walls:  make([]bool, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.walls[y*width+x] = !g.passage(x, y)
		}
	}
	m.Solution = m.solve()
	return m
}

// --- Core Algorithms ---

func carve(g *mazeGrid, start core.Point, rng *rand.Rand) {
	stack := []core.Point{start}
	g.set(start.X, start.Y, false)

	candidates := make([]core.Point, 0, 4)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range jumpDirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Leave a one-cell wall border
			if nx > 0 && nx < g.cols-1 && ny > 0 && ny < g.rows-1 && g.wall(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		g.set(curr.X+d.X/2, curr.Y+d.Y/2, false)
		next := core.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
		g.set(next.X, next.Y, false)
		stack = append(stack, next)
	}
}

// braid opens a wall next to dead-end rooms with the given probability
func braid(g *mazeGrid, probability float64, rng *rand.Rand) {
	candidates := make([]core.Point, 0, 4)
	for y := 1; y < g.rows-1; y += 2 {
		for x := 1; x < g.cols-1; x += 2 {
			if g.wall(x, y) {
				continue
			}

			exits := 0
			for _, d := range stepDirs {
				if g.passage(x+d.X, y+d.Y) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates = candidates[:0]
			for _, d := range jumpDirs {
				wx, wy := x+d.X/2, y+d.Y/2
				if g.passage(x+d.X, y+d.Y) && g.wall(wx, wy) && safeToOpen(g, wx, wy) {
					candidates = append(candidates, core.Point{X: wx, Y: wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				g.set(c.X, c.Y, false)
			}
		}
	}
}

// safeToOpen reports whether opening (x,y) keeps the maze free of
// plazas (2x2 passages) and pillars (walls with no wall neighbour)
func safeToOpen(g *mazeGrid, x, y int) bool {
	// Each 2x2 block containing (x,y)
	for _, q := range [][2]int{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}} {
		ox, oy := x+q[0], y+q[1]
		open := 0
		for _, c := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			cx, cy := ox+c[0], oy+c[1]
			if (cx != x || cy != y) && g.passage(cx, cy) {
				open++
			}
		}
		if open == 3 {
			return false
		}
	}

	for _, d := range stepDirs {
		nx, ny := x+d.X, y+d.Y
		if !g.in(nx, ny) || !g.wall(nx, ny) {
			continue
		}
		linked := false
		for _, d2 := range stepDirs {
			mx, my := nx+d2.X, ny+d2.Y
			if mx == x && my == y {
				continue
			}
			if g.in(mx, my) && g.wall(mx, my) {
				linked = true
				break
			}
		}
		if !linked {
			return false
		}
	}
	return true
}

// solve runs an orthogonal BFS from Start to End over the final cells
func (m *Maze) solve() []core.Point {
	if m.Wall(m.Start) || m.Wall(m.End) {
		return nil
	}

	startIdx := core.ToIndex(m.Width, m.Start)
	cameFrom := make([]int, len(m.walls))
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	cameFrom[startIdx] = startIdx

	queue := []core.Point{m.Start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == m.End {
			var path []core.Point
			for idx := core.ToIndex(m.Width, curr); ; idx = cameFrom[idx] {
				path = append(path, core.FromIndex(m.Width, idx))
				if idx == startIdx {
					break
				}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range stepDirs {
			next := curr.Add(d)
			if m.Wall(next) {
				continue
			}
			idx := core.ToIndex(m.Width, next)
			if cameFrom[idx] != -1 {
				continue
			}
			cameFrom[idx] = core.ToIndex(m.Width, curr)
			queue = append(queue, next)
		}
	}
	return nil
}

// --- Helpers ---

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1 // Round down to stay within bounds
	}
	return n
}

// snapToRoom clamps p into the lattice interior and moves it onto the nearest odd (room) cell
func snapToRoom(g *mazeGrid, p *core.Point, defX, defY int) core.Point {
	if p == nil {
		return core.Point{X: defX, Y: defY}
	}
	x := min(max(p.X, 1), g.cols-2)
	y := min(max(p.Y, 1), g.rows-2)
	if x%2 == 0 {
		x--
	}
	if y%2 == 0 {
		y--
	}
	return core.Point{X: x, Y: y}
}
