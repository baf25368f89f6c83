// Command huecycle shows a color gradient that turns into an animated color
// cycle on click.
//
// Usage:
//
//	huecycle run [-backend term|web|image] [-addr :8080] [-config path] [-log path]
//	huecycle snapshot -mode gradient|cycle|solid [-t 3.3s] [-width 320] [-height 200] [-left hex] [-right hex] -o out.png
//	huecycle backends
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gogpu/huecycle"
	"github.com/gogpu/huecycle/internal/config"
	"github.com/gogpu/huecycle/surface"
	_ "github.com/gogpu/huecycle/surface/term"
	_ "github.com/gogpu/huecycle/surface/web"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("huecycle: ")

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "run":
		err = runCmd(args)
	case "snapshot":
		err = snapshotCmd(args)
	case "backends":
		backendsCmd(os.Stdout)
	case "version":
		fmt.Println(huecycle.Version)
	case "-h", "-help", "--help", "help":
		usage(os.Stdout)
	default:
		usage(os.Stderr)
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: huecycle <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  run        show the interactive demo")
	fmt.Fprintln(w, "  snapshot   render a single frame to an image file")
	fmt.Fprintln(w, "  backends   list display backends")
	fmt.Fprintln(w, "  version    print the version")
}

func runCmd(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, surface.Default())
}

// run shows the demo on a display from reg until ctx is done or the display
// asks to quit. Without a configured backend the best available one is used,
// falling back through the rest when it fails to start.
func run(ctx context.Context, args []string, reg *surface.Registry) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var (
		backend = fs.String("backend", "", "display backend (default: best available)")
		addr    = fs.String("addr", "", "listen address of the web backend")
		cfgPath = fs.String("config", "", "config file (default: "+config.DefaultPath()+")")
		logPath = fs.String("log", "", "log file (default: stderr, or nothing for the terminal backend)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	preferred := cfg.Backend
	if preferred == "" {
		if avail := reg.Available(); len(avail) > 0 {
			preferred = avail[0]
		}
	}
	closeLog, err := setupLogging(cfg, preferred, *logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	if len(cfg.Unknown) > 0 {
		slog.Warn("unknown config keys", "path", *cfgPath, "keys", cfg.Unknown)
	}

	opts := surface.DefaultOptions(320, 200)
	opts.Addr = cfg.Addr
	opts.FPS = cfg.FPS

	var display huecycle.Display
	name := cfg.Backend
	if name == "" {
		display, name, err = reg.NewDisplay(opts)
	} else {
		display, err = reg.NewDisplayByName(name, opts)
	}
	if err != nil {
		return err
	}

	app, err := huecycle.NewApp(display,
		huecycle.WithCanvasOptions(cfg.CanvasOptions()...),
		huecycle.WithAnimatorOptions(cfg.AnimatorOptions()...),
	)
	if err != nil {
		_ = display.Close()
		return err
	}
	defer app.Close()

	slog.Info("running", "backend", name, "version", huecycle.Version)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// setupLogging installs the process logger. The terminal backend owns the
// screen, so without a log file it logs nothing.
func setupLogging(cfg config.Config, backend, path string) (func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case backend == "term":
		return closer, nil
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	huecycle.SetLogger(logger)
	return closer, nil
}

func snapshotCmd(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	var (
		mode   = fs.String("mode", "gradient", "frame to render: gradient, cycle or solid")
		at     = fs.Duration("t", 0, "elapsed time for the cycle mode")
		period = fs.Duration("period", huecycle.DefaultCyclePeriod, "cycle period")
		width  = fs.Int("width", 320, "image width")
		height = fs.Int("height", 200, "image height")
		left   = fs.String("left", "", "left gradient color, or solid color (default: random)")
		right  = fs.String("right", "", "right gradient color (default: random)")
		output = fs.String("o", "huecycle.png", "output file (.png, .bmp, .tif, .tiff)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *period <= 0 {
		return fmt.Errorf("period must be positive, got %v", *period)
	}

	s := surface.NewImageSurface(*width, *height)
	defer s.Close()
	c, err := huecycle.NewCanvas(s)
	if err != nil {
		return err
	}

	if err := drawSnapshot(c, *mode, *at, *period, *left, *right); err != nil {
		return err
	}

	if err := s.SaveFile(*output); err != nil {
		return err
	}
	w, h := s.Size()
	log.Printf("%s frame saved to %s (%dx%d)", *mode, filepath.Clean(*output), w, h)
	return nil
}

func drawSnapshot(c *huecycle.Canvas, mode string, at, period time.Duration, left, right string) error {
	switch mode {
	case "gradient":
		l, err := colorFlag("left", left)
		if err != nil {
			return err
		}
		r, err := colorFlag("right", right)
		if err != nil {
			return err
		}
		return huecycle.HorizontalGradient(c, l, r)
	case "cycle":
		return huecycle.DrawCycleColor(c, at, period)
	case "solid":
		col, err := colorFlag("left", left)
		if err != nil {
			return err
		}
		return huecycle.SolidFill(c, col)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// colorFlag parses a hex color flag. An empty value picks a random color.
func colorFlag(name, value string) (huecycle.Color, error) {
	if value == "" {
		return huecycle.RandomColor(nil), nil
	}
	c, ok := huecycle.ParseHex(value)
	if !ok {
		return huecycle.Color{}, fmt.Errorf("-%s: invalid hex color %q", name, value)
	}
	return c, nil
}

func backendsCmd(w io.Writer) {
	avail := make(map[string]bool)
	for _, name := range surface.Available() {
		avail[name] = true
	}
	for _, name := range surface.List() {
		e, _ := surface.Get(name)
		status := "unavailable"
		if avail[name] {
			status = "available"
		}
		fmt.Fprintf(w, "%-8s priority %-3d %s\n", name, e.Priority, status)
	}
}
