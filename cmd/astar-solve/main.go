package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/astar-grid/config"
	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
	"github.com/lixenwraith/astar-grid/render"
	"github.com/lixenwraith/astar-grid/report"
	"github.com/lixenwraith/astar-grid/telemetry"
)

// Exit codes
const (
	exitFound       = 0
	exitError       = 1
	exitUnreachable = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("astar-solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	pngPath := fs.String("png", "", "Write a PNG snapshot to this path")
	heuristic := fs.String("heuristic", "", "Heuristic: octile, manhattan")
	startFlag := fs.String("start", "", "Start point x,y")
	endFlag := fs.String("end", "", "End point x,y")
	mazeFlag := fs.Bool("maze", false, "Generate a maze over the grid")
	seedFlag := fs.Int64("seed", 0, "Maze seed (0 = random)")
	visited := fs.Bool("visited", false, "Mark expanded cells")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	logger := log.New(stderr, "astar-solve: ", 0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Printf("%v", err)
		return exitError
	}
	if *heuristic != "" {
		cfg.Search.Heuristic = *heuristic
	}
	for _, override := range []struct {
		value string
		apply func(core.Point)
	}{
		{*startFlag, cfg.SetStart},
		{*endFlag, cfg.SetEnd},
	} {
		if override.value == "" {
			continue
		}
		p, err := config.ParsePoint(override.value)
		if err != nil {
			logger.Printf("%v", err)
			return exitError
		}
		override.apply(p)
	}
	if *mazeFlag {
		cfg.Maze.Enabled = true
	}
	if *seedFlag != 0 {
		cfg.Maze.Seed = *seedFlag
	}

	scene, err := cfg.Scene()
	if err != nil {
		logger.Printf("%v", err)
		return exitError
	}
	engine, err := scene.Engine(navigation.WithLogger(logger))
	if err != nil {
		logger.Printf("%v", err)
		return exitError
	}

	res, err := telemetry.NewInstrument(nil, nil).Search(context.Background(), engine)
	if err != nil {
		logger.Printf("%v", err)
		return exitError
	}

	out := bufio.NewWriter(stdout)
	draw(out, engine, *visited)
	fmt.Fprintln(out, report.Summarize(res))
	if scene.Maze != nil && len(scene.Maze.Solution) > 0 {
		fmt.Fprintf(out, "maze orthogonal route %d steps\n", len(scene.Maze.Solution)-1)
	}
	if err := out.Flush(); err != nil {
		logger.Printf("%v", err)
		return exitError
	}

	if *pngPath != "" {
		if err := render.SavePNG(*pngPath, engine, render.ImageOptions{ShowVisited: *visited, ShowGrid: true}); err != nil {
			logger.Printf("snapshot: %v", err)
			return exitError
		}
	}

	if !res.Found() {
		return exitUnreachable
	}
	return exitFound
}

func draw(w io.Writer, v render.View, showVisited bool) {
	width, height := v.GridSize()

	walls := make(map[core.Point]bool)
	v.EachObstacle(func(p core.Point) { walls[p] = true })
	onPath := make(map[core.Point]bool)
	for _, p := range v.ResolvedPath() {
		onPath[p] = true
	}
	expanded := make(map[core.Point]bool)
	if showVisited {
		for _, p := range v.Expanded() {
			expanded[p] = true
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := core.Pt(x, y)

			switch {
			case p == v.Start():
				fmt.Fprint(w, "S")
			case p == v.End():
				fmt.Fprint(w, "E")
			case walls[p]:
				fmt.Fprint(w, "█")
			case onPath[p]:
				fmt.Fprint(w, "•")
			case expanded[p]:
				fmt.Fprint(w, "·")
			default:
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}
