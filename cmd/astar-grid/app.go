package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/astar-grid/audio"
	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/layout"
	"github.com/lixenwraith/astar-grid/navigation"
	"github.com/lixenwraith/astar-grid/render"
	"github.com/lixenwraith/astar-grid/report"
	"github.com/lixenwraith/astar-grid/telemetry"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	snapshotPath  = "snapshot.png"
	volumeStep    = 0.1
	helpLine      = "drag:wall  R-click/s:start  M-click/e:end  x,x:erase  enter:search  m:maze  c:clear  v:visited  +/-:vol  p:png  q:quit"
)

// app is the interactive grid editor state, owned by the event loop goroutine
type app struct {
	screen     tcell.Screen
	engine     *navigation.Engine
	walls      *layout.Walls
	instrument *telemetry.Instrument
	player     *audio.Player
	layout     render.Layout
	ctx        context.Context

	mazeBraiding float64
	mazeSeed     int64 // 0 = random per generation

	// Mouse painting, lastPaint suppresses repeats while dragging over one cell
	painting  bool
	lastPaint core.Point
	mouse     core.Point
	mouseOK   bool

	// Region erase corner, set by the first x
	mark    core.Point
	markSet bool

	showVisited bool
	message     string
	summary     *report.Summary

	// FPS counter
	frames    int
	fps       int
	fpsWindow time.Time
}

func newApp(ctx context.Context, screen tcell.Screen, engine *navigation.Engine, instrument *telemetry.Instrument, player *audio.Player) *app {
	return &app{
		screen:     screen,
		engine:     engine,
		walls:      layout.NewWalls(),
		instrument: instrument,
		player:     player,
		layout:     render.DefaultLayout(),
		ctx:        ctx,
		message:    helpLine,
		fpsWindow:  time.Now(),
	}
}

// run drives input and rendering until quit or ctx cancellation
func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	a.draw(time.Now())
	for {
		select {
		case <-a.ctx.Done():
			return
		case ev, ok := <-eventChan:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			a.draw(now)
		}
	}
}

// handleEvent applies one input event, false means quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.search()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		a.search()
	case 'm':
		a.generateMaze()
	case 'c':
		a.engine.ClearObstacles()
		a.walls = layout.NewWalls()
		a.markSet = false
		a.summary = nil
		a.message = "cleared"
	case 'v':
		a.showVisited = !a.showVisited
	case 'x':
		if a.mouseOK {
			a.eraseRegion(a.mouse)
		}
	case '+', '=':
		a.adjustVolume(volumeStep)
	case '-':
		a.adjustVolume(-volumeStep)
	case 'p':
		a.snapshot()
	case 's':
		if a.mouseOK {
			a.setStart(a.mouse)
		}
	case 'e':
		if a.mouseOK {
			a.setEnd(a.mouse)
		}
	}
	return true
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	width, height := a.engine.GridSize()
	sx, sy := ev.Position()
	p, inGrid := a.layout.ScreenToGrid(sx, sy, width, height)
	a.mouse, a.mouseOK = p, inGrid

	buttons := ev.Buttons()
	if buttons&tcell.Button1 == 0 {
		a.painting = false
	}
	if !inGrid {
		return
	}

	switch {
	case buttons&tcell.Button1 != 0:
		// A press always toggles, a drag only when it reaches a new cell
		if a.painting && p == a.lastPaint {
			return
		}
		a.painting = true
		a.lastPaint = p
		a.engine.ToggleObstacle(p)
		a.summary = nil
		a.play(audio.CueToggle)
	case buttons&tcell.Button2 != 0:
		a.setStart(p)
	case buttons&tcell.Button3 != 0:
		a.setEnd(p)
	}
}

func (a *app) setStart(p core.Point) {
	a.engine.SetStart(p)
	a.summary = nil
	a.message = "start " + p.String()
}

func (a *app) setEnd(p core.Point) {
	a.engine.SetEnd(p)
	a.summary = nil
	a.message = "end " + p.String()
}

// search runs a fresh reset+scan and records the outcome
func (a *app) search() {
	a.engine.Reset()
	res, err := a.instrument.Search(a.ctx, a.engine)
	if err != nil {
		log.Printf("astar-grid: search failed: %v", err)
		a.summary = nil
		a.message = "error: " + err.Error()
		a.play(audio.CueUnreachable)
		return
	}

	summary := report.Summarize(res)
	a.summary = &summary
	a.message = ""
	log.Printf("astar-grid: %s -> %s: %s", res.Start, res.End, summary)
	if res.Found() {
		a.play(audio.CueFound)
	} else {
		a.play(audio.CueUnreachable)
	}
}

// generateMaze replaces all obstacles with a maze, endpoints snap to maze rooms
func (a *app) generateMaze() {
	width, height := a.engine.GridSize()
	if width < 3 || height < 3 {
		a.message = "grid too small for a maze"
		return
	}

	start, end := a.engine.Start(), a.engine.End()
	seed := a.mazeSeed
	if seed != 0 {
		a.mazeSeed++
	}
	m := layout.GenerateMaze(layout.MazeConfig{
		Width:    width,
		Height:   height,
		Braiding: a.mazeBraiding,
		Start:    &start,
		End:      &end,
		Seed:     seed,
	})

	a.engine.ReplaceObstacles(m.Obstacles())
	a.engine.SetStart(m.Start)
	a.engine.SetEnd(m.End)
	a.walls = layout.NewWalls()
	a.markSet = false
	a.summary = nil
	a.message = fmt.Sprintf("maze %dx%d, %d walls, orthogonal route %d steps",
		width, height, a.engine.ObstacleCount(), len(m.Solution)-1)
	a.play(audio.CueMaze)
}

// eraseRegion clears obstacles in the rectangle between the erase mark and p.
// The first call only sets the mark; configured walls touching the rectangle go whole.
func (a *app) eraseRegion(p core.Point) {
	if !a.markSet {
		a.mark, a.markSet = p, true
		a.message = "erase from " + p.String()
		return
	}
	a.markSet = false

	region := core.AreaBetween(a.mark, p)
	width, height := a.engine.GridSize()
	cleared := 0
	for _, area := range a.walls.Erase(region) {
		area.Clip(width, height).Each(func(c core.Point) {
			if a.engine.RemoveObstacle(c) {
				cleared++
			}
		})
	}
	for _, c := range a.engine.Obstacles() {
		if region.Contains(c) && a.engine.RemoveObstacle(c) {
			cleared++
		}
	}

	a.summary = nil
	a.message = fmt.Sprintf("erased %d cells, %d walls left", cleared, a.walls.Len())
	a.play(audio.CueToggle)
}

func (a *app) adjustVolume(delta float64) {
	if a.player == nil {
		return
	}
	a.player.SetVolume(a.player.Volume() + delta)
	a.message = fmt.Sprintf("volume %d%%", int(math.Round(a.player.Volume()*100)))
}

func (a *app) snapshot() {
	err := render.SavePNG(snapshotPath, a.engine, render.ImageOptions{ShowVisited: a.showVisited})
	if err != nil {
		log.Printf("astar-grid: snapshot failed: %v", err)
		a.message = "snapshot failed: " + err.Error()
		return
	}
	a.message = "saved " + snapshotPath
}

func (a *app) play(cue audio.Cue) {
	if a.player != nil {
		a.player.Play(cue)
	}
}

// statusLine composes FPS, last search outcome and the transient message
func (a *app) statusLine() string {
	parts := []string{fmt.Sprintf("FPS %d", a.fps)}
	if a.summary != nil {
		if a.summary.Found {
			parts = append(parts, fmt.Sprintf("found: %d steps, cost %.1f, %d expanded, %v",
				a.summary.Steps, a.summary.Cost, a.summary.Expanded, a.summary.Duration))
		} else {
			parts = append(parts, fmt.Sprintf("unreachable: %d expanded, %v", a.summary.Expanded, a.summary.Duration))
		}
	}
	if a.showVisited {
		parts = append(parts, "visited")
	}
	if a.message != "" {
		parts = append(parts, a.message)
	}
	return strings.Join(parts, " | ")
}

func (a *app) draw(now time.Time) {
	a.frames++
	if elapsed := now.Sub(a.fpsWindow); elapsed >= time.Second {
		a.fps = int(float64(a.frames) / elapsed.Seconds())
		a.frames = 0
		a.fpsWindow = now
	}

	render.Draw(a.screen, a.engine, a.layout, render.Options{
		ShowVisited: a.showVisited,
		Status:      a.statusLine(),
	})
	a.screen.Show()
}
