package navigation

import "github.com/lixenwraith/astar-grid/core"

// Obstacles is a flat blocked-cell grid keyed by y*width+x
type Obstacles struct {
	width, height int
	cells         []bool
	count         int
}

// NewObstacles creates an empty obstacle grid
func NewObstacles(width, height int) *Obstacles {
	return &Obstacles{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Resize adjusts dimensions, keeping obstacles that remain in bounds
func (o *Obstacles) Resize(width, height int) {
	kept := o.Points()
	size := width * height
	if cap(o.cells) < size {
		o.cells = make([]bool, size)
	} else {
		o.cells = o.cells[:size]
		clear(o.cells)
	}
	o.width, o.height = width, height
	o.count = 0
	for _, p := range kept {
		o.Add(p)
	}
}

// Has reports whether p is blocked, out-of-bounds cells are not obstacles
func (o *Obstacles) Has(p core.Point) bool {
	if !p.In(o.width, o.height) {
		return false
	}
	return o.cells[core.ToIndex(o.width, p)]
}

// Add blocks p, returns false if p is out of bounds or already blocked
func (o *Obstacles) Add(p core.Point) bool {
	if !p.In(o.width, o.height) {
		return false
	}
	idx := core.ToIndex(o.width, p)
	if o.cells[idx] {
		return false
	}
	o.cells[idx] = true
	o.count++
	return true
}

// Remove unblocks p, returns false if p was not blocked
func (o *Obstacles) Remove(p core.Point) bool {
	if !o.Has(p) {
		return false
	}
	o.cells[core.ToIndex(o.width, p)] = false
	o.count--
	return true
}

// Toggle flips p and returns its new state
func (o *Obstacles) Toggle(p core.Point) bool {
	if o.Remove(p) {
		return false
	}
	return o.Add(p)
}

// Clear removes all obstacles
func (o *Obstacles) Clear() {
	clear(o.cells)
	o.count = 0
}

// Replace swaps the whole set, out-of-bounds points are dropped
func (o *Obstacles) Replace(points []core.Point) {
	o.Clear()
	for _, p := range points {
		o.Add(p)
	}
}

// Len returns the number of blocked cells
func (o *Obstacles) Len() int {
	return o.count
}

// Each visits blocked cells in index order
func (o *Obstacles) Each(fn func(p core.Point)) {
	for idx, blocked := range o.cells {
		if blocked {
			fn(core.FromIndex(o.width, idx))
		}
	}
}

// Points returns a copy of the blocked cells in index order
func (o *Obstacles) Points() []core.Point {
	points := make([]core.Point, 0, o.count)
	o.Each(func(p core.Point) {
		points = append(points, p)
	})
	return points
}
