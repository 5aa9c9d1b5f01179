package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/astar-grid/audio"
	"github.com/lixenwraith/astar-grid/config"
	"github.com/lixenwraith/astar-grid/core"
	"github.com/lixenwraith/astar-grid/navigation"
	"github.com/lixenwraith/astar-grid/telemetry"
)

var (
	configFlag    = flag.String("config", "", "TOML configuration file")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/astar-grid.log")
	muteFlag      = flag.Bool("mute", false, "Disable audio cues")
	metricsFlag   = flag.String("metrics", "", "Serve Prometheus metrics on this address, e.g. :9100")
	heuristicFlag = flag.String("heuristic", "", "Heuristic: octile, manhattan")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *heuristicFlag != "" {
		cfg.Search.Heuristic = *heuristicFlag
	}
	if *metricsFlag != "" {
		cfg.Telemetry.MetricsAddr = *metricsFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	scene, err := cfg.Scene()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	engine, err := scene.Engine(navigation.WithLogger(log.Default()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create engine: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := telemetry.NewMetrics(nil)
	if addr := cfg.Telemetry.MetricsAddr; addr != "" {
		core.Go(func() {
			if err := metrics.Serve(ctx, addr); err != nil {
				log.Printf("astar-grid: metrics server: %v", err)
			}
		})
	}
	instrument := telemetry.NewInstrument(nil, metrics)

	audioCfg := audio.DefaultConfig()
	audioCfg.Enabled = cfg.Audio.Enabled
	audioCfg.MasterVolume = cfg.Audio.Volume
	player := audio.NewPlayer(audioCfg)
	if err := player.Initialize(); err != nil {
		// Non-fatal, the editor runs without sound
		log.Printf("astar-grid: audio initialization failed: %v", err)
	}
	defer player.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	// Crash path restores the terminal itself and exits before the deferred Fini
	core.SetCrashRestore(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()

	a := newApp(ctx, screen, engine, instrument, player)
	a.walls = scene.Walls
	a.mazeBraiding = cfg.Maze.Braiding
	a.mazeSeed = cfg.Maze.Seed
	a.run()
}
