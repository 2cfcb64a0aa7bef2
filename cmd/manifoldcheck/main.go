// Command manifoldcheck steps the shape pairs of a scene file through the
// narrow phase and prints every contact manifold.
//
// Usage:
//
//	manifoldcheck [scene.yaml]
//
// The scene path defaults to MANIFOLD_SCENE. MANIFOLD_STEPS,
// MANIFOLD_WORKERS and MANIFOLD_LOG_LEVEL tune the run.
package main

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	box2d "github.com/svercl/box2c"
	"github.com/svercl/box2c/internal/config"
	"github.com/svercl/box2c/internal/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))

	path := cfg.Scene
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	s, err := scene.Load(path)
	if err != nil {
		slog.Error("load scene", "error", err)
		os.Exit(1)
	}

	world, err := scene.Build(s)
	if err != nil {
		slog.Error("build scene", "path", path, "error", err)
		os.Exit(1)
	}

	slog.Info("scene loaded", "name", world.Name, "path", path, "contacts", len(world.Contacts), "steps", cfg.Steps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	np := box2d.MakeB2NarrowPhase(cfg.Workers)
	for i := 0; i < cfg.Steps; i++ {
		start := time.Now()
		stats, err := world.Update(ctx, np)
		if err != nil {
			slog.Error("narrow phase", "step", i, "error", err)
			out.Flush()
			os.Exit(1)
		}

		slog.Debug("step",
			"step", world.Step(),
			"contacts", stats.ContactCount,
			"touching", stats.TouchingCount,
			"begin", stats.BeginCount,
			"end", stats.EndCount,
			"points", stats.PointCount,
			"elapsed", time.Since(start),
		)

		if err := scene.WriteReport(out, world); err != nil {
			slog.Error("write report", "error", err)
			os.Exit(1)
		}
	}
}
