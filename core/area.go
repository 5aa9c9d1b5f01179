package core

// Area represents a rectangular cell region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions (minimum 1x1)
}

// Contains reports whether p lies inside the area
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width && p.Y >= a.Y && p.Y < a.Y+a.Height
}

// Empty reports whether the area covers no cells
func (a Area) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// Clip restricts the area to a width×height grid, result may be Empty
func (a Area) Clip(width, height int) Area {
	x0, y0 := max(a.X, 0), max(a.Y, 0)
	x1, y1 := min(a.X+a.Width, width), min(a.Y+a.Height, height)
	return Area{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Each visits every cell of the area in row-major order
func (a Area) Each(fn func(p Point)) {
	for y := a.Y; y < a.Y+a.Height; y++ {
		for x := a.X; x < a.X+a.Width; x++ {
			fn(Point{X: x, Y: y})
		}
	}
}

// AreaBetween returns the inclusive rectangle spanned by two corner points
func AreaBetween(a, b Point) Area {
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	return Area{X: x0, Y: y0, Width: x1 - x0 + 1, Height: y1 - y0 + 1}
}
