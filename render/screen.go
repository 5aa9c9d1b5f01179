package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/astar-grid/core"
)

// Glyphs
const (
	glyphObstacle = '█'
	glyphPath     = '•'
	glyphStart    = 'S'
	glyphEnd      = 'E'
	glyphFloor    = ' '
)

// Layout maps grid cells onto terminal cells
type Layout struct {
	OriginX, OriginY int
	CellWidth        int // Terminal columns per grid cell, 2 keeps cells roughly square
}

// DefaultLayout draws from the top-left corner with double-width cells
func DefaultLayout() Layout {
	return Layout{CellWidth: 2}
}

func (l Layout) cellWidth() int {
	return max(l.CellWidth, 1)
}

// ScreenToGrid converts a terminal position to the grid cell under it
func (l Layout) ScreenToGrid(sx, sy, width, height int) (core.Point, bool) {
	if sx < l.OriginX || sy < l.OriginY {
		return core.Point{}, false
	}
	p := core.Pt((sx-l.OriginX)/l.cellWidth(), sy-l.OriginY)
	return p, p.In(width, height)
}

// GridToScreen returns the terminal column and row of a cell's first column
func (l Layout) GridToScreen(p core.Point) (sx, sy int) {
	return l.OriginX + p.X*l.cellWidth(), l.OriginY + p.Y
}

// StatusRow is the terminal row below a grid of the given height
func (l Layout) StatusRow(height int) int {
	return l.OriginY + height
}

// Options toggles optional overlays
type Options struct {
	ShowVisited bool
	Status      string
}

// Draw paints the grid, overlays and status line, the caller calls Show
func Draw(screen tcell.Screen, v View, layout Layout, opts Options) {
	screen.Clear()
	width, height := v.GridSize()

	floor := tcell.StyleDefault.Background(colorFloor)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fill(screen, layout, core.Pt(x, y), glyphFloor, floor)
		}
	}

	if opts.ShowVisited {
		visited := tcell.StyleDefault.Background(colorVisited)
		for _, p := range v.Expanded() {
			fill(screen, layout, p, glyphFloor, visited)
		}
	}

	obstacle := tcell.StyleDefault.Foreground(colorObstacle).Background(colorFloor)
	v.EachObstacle(func(p core.Point) {
		fill(screen, layout, p, glyphObstacle, obstacle)
	})

	pathStyle := tcell.StyleDefault.Foreground(colorPath).Bold(true)
	for _, p := range v.ResolvedPath() {
		_, _, style, _ := screen.GetContent(layout.GridToScreen(p))
		_, bg, _ := style.Decompose()
		fill(screen, layout, p, glyphPath, pathStyle.Background(bg))
	}

	if start := v.Start(); start.In(width, height) {
		fill(screen, layout, start, glyphStart, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(colorStart))
	}
	if end := v.End(); end.In(width, height) {
		fill(screen, layout, end, glyphEnd, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(colorEnd))
	}

	if opts.Status != "" {
		DrawText(screen, layout.OriginX, layout.StatusRow(height), opts.Status, tcell.StyleDefault)
	}
}

// fill paints every terminal column of a grid cell, the glyph goes in the first
func fill(screen tcell.Screen, layout Layout, p core.Point, glyph rune, style tcell.Style) {
	sx, sy := layout.GridToScreen(p)
	screen.SetContent(sx, sy, glyph, nil, style)
	for i := 1; i < layout.cellWidth(); i++ {
		r := glyphFloor
		if glyph == glyphObstacle {
			r = glyphObstacle
		}
		screen.SetContent(sx+i, sy, r, nil, style)
	}
}

// DrawText writes a single line, clipped at the screen edge
func DrawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	width, _ := screen.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
