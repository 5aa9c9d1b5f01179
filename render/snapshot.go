package render

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/lixenwraith/astar-grid/core"
)

// ImageOptions controls PNG snapshots
type ImageOptions struct {
	CellSize    int // Pixels per grid cell, 0 selects 20
	ShowVisited bool
	ShowGrid    bool
}

var (
	rgbBackground = color.RGBA{0xf4, 0xf4, 0xf4, 0xff}
	rgbGridLine   = color.RGBA{0x00, 0x00, 0x00, 0x40}
	rgbObstacle   = color.RGBA{0x78, 0x78, 0x78, 0xff}
	rgbVisited    = color.RGBA{0xa9, 0xb5, 0x98, 0xff}
	rgbStart      = color.RGBA{0x32, 0xa8, 0x52, 0xff}
	rgbEnd        = color.RGBA{0xd1, 0x5a, 0x32, 0xff}
	rgbPath       = color.RGBA{0xed, 0x8c, 0xdb, 0xff}
)

// SavePNG writes a snapshot of the view to path
func SavePNG(path string, v View, opts ImageOptions) error {
	return drawContext(v, opts).SavePNG(path)
}

// EncodePNG writes a snapshot of the view to w
func EncodePNG(w io.Writer, v View, opts ImageOptions) error {
	return drawContext(v, opts).EncodePNG(w)
}

func drawContext(v View, opts ImageOptions) *gg.Context {
	scale := opts.CellSize
	if scale <= 0 {
		scale = 20
	}
	width, height := v.GridSize()
	s := float64(scale)

	dc := gg.NewContext(width*scale, height*scale)
	dc.SetColor(rgbBackground)
	dc.Clear()

	cell := func(p core.Point, c color.Color) {
		dc.SetColor(c)
		dc.DrawRectangle(float64(p.X)*s, float64(p.Y)*s, s, s)
		dc.Fill()
	}
	centre := func(p core.Point) (float64, float64) {
		return float64(p.X)*s + s/2, float64(p.Y)*s + s/2
	}

	if opts.ShowVisited {
		for _, p := range v.Expanded() {
			cell(p, rgbVisited)
		}
	}
	v.EachObstacle(func(p core.Point) {
		cell(p, rgbObstacle)
	})

	if opts.ShowGrid {
		dc.SetColor(rgbGridLine)
		dc.SetLineWidth(1)
		for x := 1; x < width; x++ {
			dc.DrawLine(float64(x)*s+0.5, 0, float64(x)*s+0.5, float64(height)*s)
		}
		for y := 1; y < height; y++ {
			dc.DrawLine(0, float64(y)*s+0.5, float64(width)*s, float64(y)*s+0.5)
		}
		dc.Stroke()
	}

	if start := v.Start(); start.In(width, height) {
		cell(start, rgbStart)
	}
	if end := v.End(); end.In(width, height) {
		cell(end, rgbEnd)
	}

	if path := FullPath(v); len(path) > 1 {
		dc.SetColor(rgbPath)
		dc.SetLineWidth(max(s/5, 1))
		dc.MoveTo(centre(path[0]))
		for _, p := range path[1:] {
			dc.LineTo(centre(p))
		}
		dc.Stroke()

		x, y := centre(path[0])
		dc.DrawCircle(x, y, s/4)
		dc.Fill()
	}
	return dc
}
