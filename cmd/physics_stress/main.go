// Command physics_stress runs a headless physics world with many falling
// boxes and serves its metrics, health and a live debug-box stream.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boxphys/internal/config"
	"boxphys/internal/debugdraw"
	"boxphys/internal/logging"
	"boxphys/internal/metrics"
	"boxphys/internal/physics"
	"boxphys/internal/world"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	configPath string
	listen     string
	bodies     int
	ticks      int
	seed       int64
	realtime   bool
	drawEvery  int
	logFormat  string
	origins    string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "physics.yaml", "YAML config file; missing means defaults")
	flag.StringVar(&opts.listen, "listen", ":8090", "HTTP address for /metrics, /health and /debug/boxes; empty disables")
	flag.IntVar(&opts.bodies, "bodies", 500, "number of falling boxes")
	flag.IntVar(&opts.ticks, "ticks", 0, "stop after this many ticks; 0 runs until interrupted")
	flag.Int64Var(&opts.seed, "seed", 42, "layout seed")
	flag.BoolVar(&opts.realtime, "realtime", true, "pace ticks at the configured tick rate instead of running flat out")
	flag.IntVar(&opts.drawEvery, "draw-every", 6, "stream debug boxes every N ticks")
	flag.StringVar(&opts.logFormat, "log-format", "json", "json or console")
	flag.StringVar(&opts.origins, "cors", "http://localhost:*,http://127.0.0.1:*", "comma separated origins allowed to read the HTTP endpoints")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "physics_stress:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// .env is optional; real environment variables still win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, opts.logFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pw := physics.NewWorld(cfg, logger.Named("physics"), metrics.NewPhysics(reg))
	defer pw.Close()

	sim := world.New(pw, logger.Named("world"))
	crates := sim.BuildArena(opts.bodies, opts.seed)
	sim.Start()

	logger.Info("stress run starting",
		zap.String("session", pw.Session()),
		zap.Int("bodies", len(crates)),
		zap.Int("colliders", pw.ColliderCount()),
		zap.Int("ticks", opts.ticks),
		zap.Bool("realtime", opts.realtime))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	origins := splitOrigins(opts.origins)
	hub := debugdraw.NewHub(logger.Named("debug"), origins...)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return hub.Run(ctx) })

	status := &runStatus{}
	if opts.listen != "" {
		srv := &http.Server{
			Addr:              opts.listen,
			Handler:           newRouter(reg, hub, status, origins),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("http listening", zap.String("addr", opts.listen))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		err := simulate(ctx, sim, hub, status, opts)
		stop()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("stress run finished",
		zap.Uint64("ticks", sim.Ticks()),
		zap.Uint64("dropped_ticks", sim.Dropped()),
		zap.String("digest", fmt.Sprintf("%016x", digest(crates))))
	return nil
}

// simulate steps the world until ctx ends or the tick budget runs out.
func simulate(ctx context.Context, sim *world.World, hub *debugdraw.Hub, status *runStatus, opts options) error {
	stream := debugdraw.NewStream(hub)
	tick := time.Duration(float64(time.Second) * float64(sim.TickSeconds()))

	var ticker *time.Ticker
	if opts.realtime {
		ticker = time.NewTicker(tick)
		defer ticker.Stop()
	}

	last := time.Now()
	for opts.ticks <= 0 || sim.Ticks() < uint64(opts.ticks) {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		if opts.realtime {
			now := time.Now()
			sim.Step(float32(now.Sub(last).Seconds()))
			last = now
		} else {
			sim.Step(sim.TickSeconds())
		}
		status.update(sim)

		if opts.drawEvery > 0 && sim.Ticks()%uint64(opts.drawEvery) == 0 && hub.ClientCount() > 0 {
			sim.Physics.DebugDraw(stream)
			if _, err := stream.Flush(sim.Ticks(), sim.Physics.Session()); err != nil {
				return fmt.Errorf("debug frame: %w", err)
			}
		}
	}
	return nil
}
