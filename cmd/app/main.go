package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/0x0FACED/gridai/pkg/logger"
	"github.com/tdewolff/argp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Serve struct {
	Addr    string `short:"a" default:":8080" desc:"Listen address"`
	Verbose bool   `short:"v" desc:"Log debug entries"`
}

type Snapshot struct {
	Kind   string `short:"k" default:"life" desc:"Scene: life, sand, fire, fov, path or voronoi"`
	Output string `short:"o" default:"snapshot.png" desc:"Output file"`
	Width  int    `default:"64" desc:"Grid width in tiles"`
	Height int    `default:"48" desc:"Grid height in tiles"`
	Steps  int    `short:"n" default:"100" desc:"Generations to run"`
	Seed   int    `short:"s" default:"1" desc:"Random seed"`
	Scale  int    `default:"8" desc:"Pixels per tile"`
	Sites  int    `default:"24" desc:"Voronoi sites"`
}

func main() {
	root := argp.NewCmd(&Serve{}, "Voronoi diagrams, cellular automata, A* and field of view on tile grids")
	root.AddCmd(&Snapshot{}, "snapshot", "Render one scene to a PNG file")
	root.Parse()
	root.PrintHelp()
}

func cliLogger(verbose bool) *logger.ZapLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return logger.New(logger.WithWriter(os.Stderr), logger.WithBuffer(false), logger.WithLevel(level))
}

func (cmd *Serve) Run() error {
	log := cliLogger(cmd.Verbose)
	defer log.Sync()

	srv := &http.Server{
		Addr:              cmd.Addr,
		Handler:           newMux(log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("[serve] Server started", zap.String("addr", "http://localhost"+cmd.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("[serve] Shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (cmd *Snapshot) Run() error {
	if !slices.Contains(Kinds, cmd.Kind) {
		fmt.Printf("ERROR: kind must be one of %v\n", Kinds)
		return argp.ShowUsage
	} else if cmd.Output == "" {
		fmt.Println("ERROR: must specify output filename")
		return argp.ShowUsage
	}

	log := cliLogger(false)
	defer log.Sync()

	s := scene{
		Kind:   cmd.Kind,
		Width:  cmd.Width,
		Height: cmd.Height,
		Steps:  cmd.Steps,
		Seed:   uint64(cmd.Seed),
		Scale:  cmd.Scale,
		Sites:  cmd.Sites,
	}
	return writeSnapshot(context.Background(), s, cmd.Output, log)
}
