package core

import "fmt"

// Point represents a 2D grid coordinate
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Equal reports component-wise equality
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Add returns p displaced by offset
func (p Point) Add(offset Point) Point {
	return Point{X: p.X + offset.X, Y: p.Y + offset.Y}
}

// In reports whether p lies inside a width×height grid
func (p Point) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ToIndex maps p to its row-major flat index on a grid of the given width
func ToIndex(width int, p Point) int {
	return p.Y*width + p.X
}

// FromIndex is the inverse of ToIndex for in-bounds indices
func FromIndex(width, idx int) Point {
	return Point{X: idx % width, Y: idx / width}
}
