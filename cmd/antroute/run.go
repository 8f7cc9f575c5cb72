package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/antroute/aco"
	"github.com/katalvlaran/antroute/internal/config"
	"github.com/katalvlaran/antroute/internal/metrics"
	"github.com/katalvlaran/antroute/internal/runner"
	"github.com/katalvlaran/antroute/internal/server"
	"github.com/katalvlaran/antroute/vertexio"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the colony and print the best tour",
	Long: `Loads vertices from --vertices (or generates random ones), runs iterations
until the iteration budget, the stagnation limit or Ctrl-C, then prints the best
tour. With --listen the HTTP control surface is served while the colony runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyRunFlags(cmd, cfg)
		if err = cfg.Validate(); err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		if path != "" {
			log.Debug("config loaded", "path", path)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return solve(ctx, cfg, log, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	f := runCmd.Flags()
	f.Float64("alpha", aco.DefaultAlpha, "Pheromone exponent")
	f.Float64("beta", aco.DefaultBeta, "Distance-heuristic exponent")
	f.Float64("evaporation", aco.DefaultEvaporationRate, "Fraction of pheromone lost per iteration, in [0,1)")
	f.Int("ants", aco.DefaultNumAnts, "Ants per iteration")
	f.Int64("seed", 0, "Random seed (0 = fixed default stream)")
	f.Int("workers", aco.DefaultWorkers, "Ants run concurrently (results do not depend on it)")
	f.String("vertices", "", "Vertex file (x,y per line)")
	f.Int("random", config.DefaultRandomVertices, "Random vertices when no vertex file is given")
	f.Int("iterations", 0, "Stop after this many iterations (0 = unbounded)")
	f.Float64("ips", config.DefaultIterationsPerS, "Iterations per second (0 = as fast as possible)")
	f.Int("stagnation", 0, "Stop after this many iterations without improvement (0 = never)")
	f.String("listen", "", "Serve the HTTP API on this address, e.g. :8080")
	f.String("export", "", "Write the vertex set to this CSV file when the run stops")
}

// applyRunFlags overrides config values with flags set on the command line.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("alpha") {
		cfg.Colony.Alpha, _ = f.GetFloat64("alpha")
	}
	if f.Changed("beta") {
		cfg.Colony.Beta, _ = f.GetFloat64("beta")
	}
	if f.Changed("evaporation") {
		cfg.Colony.EvaporationRate, _ = f.GetFloat64("evaporation")
	}
	if f.Changed("ants") {
		cfg.Colony.Ants, _ = f.GetInt("ants")
	}
	if f.Changed("seed") {
		cfg.Colony.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("workers") {
		cfg.Colony.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("vertices") {
		cfg.Problem.VerticesFile, _ = f.GetString("vertices")
	}
	if f.Changed("random") {
		cfg.Problem.RandomVertices, _ = f.GetInt("random")
	}
	if f.Changed("iterations") {
		cfg.Run.Iterations, _ = f.GetInt("iterations")
	}
	if f.Changed("ips") {
		cfg.Run.IterationsPerSecond, _ = f.GetFloat64("ips")
	}
	if f.Changed("stagnation") {
		cfg.Run.StagnationLimit, _ = f.GetInt("stagnation")
	}
	if f.Changed("listen") {
		cfg.Server.Listen, _ = f.GetString("listen")
	}
	if f.Changed("export") {
		cfg.Run.ExportPath, _ = f.GetString("export")
	}
}

// loadVertices reads the vertex file, keeping only points on the board, or
// generates random vertices when no file is configured.
func loadVertices(cfg *config.Config, log *slog.Logger) ([]aco.Vertex, error) {
	if path := cfg.Problem.VerticesFile; path != "" {
		vs, err := vertexio.LoadFile(path)
		if err != nil {
			return nil, err
		}
		kept, dropped := vertexio.Within(vs, float64(cfg.Problem.Width), float64(cfg.Problem.Height))
		if dropped > 0 {
			log.Warn("vertices outside the board skipped",
				"path", path,
				"dropped", dropped,
				"width", cfg.Problem.Width,
				"height", cfg.Problem.Height,
			)
		}
		if len(kept) == 0 {
			return nil, fmt.Errorf("%s: no vertex inside %dx%d: %w", path, cfg.Problem.Width, cfg.Problem.Height, vertexio.ErrEmpty)
		}
		return kept, nil
	}

	return aco.RandomVertices(
		cfg.Problem.RandomVertices,
		cfg.Problem.Width,
		cfg.Problem.Height,
		aco.NewRand(cfg.Colony.Seed),
	), nil
}

// solve runs the colony until a stop condition and prints the outcome to out.
// The HTTP server, when configured, lives exactly as long as the run.
func solve(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) error {
	vs, err := loadVertices(cfg, log)
	if err != nil {
		return err
	}
	engine, err := aco.New(vs, cfg.EngineOptions())
	if err != nil {
		return err
	}
	log.Info("colony ready",
		"vertices", len(vs),
		"ants", cfg.Colony.Ants,
		"alpha", cfg.Colony.Alpha,
		"beta", cfg.Colony.Beta,
		"evaporation_rate", cfg.Colony.EvaporationRate,
		"workers", cfg.Colony.Workers,
	)

	rec := metrics.New()
	r := runner.New(engine, runner.Config{
		Iterations:          cfg.Run.Iterations,
		IterationsPerSecond: cfg.Run.IterationsPerSecond,
		StagnationLimit:     cfg.Run.StagnationLimit,
	}, runner.WithLogger(log), runner.WithMetrics(rec))

	runCtx, stopAll := context.WithCancel(ctx)
	defer stopAll()
	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Server.Listen != "" {
		h := server.NewHandler(r, server.Options{
			Metrics:      rec.Handler(),
			RemoveRadius: cfg.Server.RemoveRadius,
			Logger:       log,
		})
		g.Go(func() error {
			return server.Serve(gctx, cfg.Server.Listen, h, cfg.Server.ShutdownTimeout.Duration(), log)
		})
	}

	var reason runner.StopReason
	g.Go(func() error {
		defer stopAll()
		var err error
		reason, err = r.Run(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return err
	}

	snap := r.Snapshot()
	fmt.Fprintf(out, "stopped: %s after %d iterations\n", reason, snap.Iteration)
	if snap.Best != nil {
		fmt.Fprintf(out, "best: %s\n", snap.Best.String())
	} else {
		fmt.Fprintln(out, "best: none")
	}

	if cfg.Run.ExportPath != "" {
		path, err := vertexio.SaveFile(cfg.Run.ExportPath, snap.Vertices)
		if err != nil {
			return err
		}
		log.Info("vertices exported", "path", path, "count", len(snap.Vertices))
	}

	return nil
}
