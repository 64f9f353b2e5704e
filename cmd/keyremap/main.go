// Package main is the entry point for keyremap.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/keyremap/internal/app"
	"github.com/dshills/keyremap/internal/config"
	"github.com/dshills/keyremap/internal/config/loader"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// flags holds command line settings. Zero values mean "not given".
type flags struct {
	configPath  string
	holdWindow  int
	logLevel    string
	logFormat   string
	backend     string
	wait        time.Duration
	check       bool
	showVersion bool
	showHelp    bool
	device      string
}

func parseFlags(args []string, stderr io.Writer) (*flags, *flag.FlagSet, error) {
	var f flags
	fs := flag.NewFlagSet("keyremap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.IntVar(&f.holdWindow, "hold-window", 0, "Tap/hold threshold in milliseconds")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format (auto, text, json)")
	fs.StringVar(&f.backend, "backend", "", "Virtual device backend (evdev, uinput)")
	fs.DurationVar(&f.wait, "wait", 0, "Wait up to this long for the device to appear")
	fs.BoolVar(&f.check, "check", false, "Validate configuration, print bindings, and exit")
	fs.BoolVar(&f.showVersion, "version", false, "Show version information")
	fs.BoolVar(&f.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&f.showHelp, "help", false, "Show help message")
	fs.BoolVar(&f.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "keyremap - dual-role keyboard remapper\n\n")
		fmt.Fprintf(stderr, "Usage: keyremap [options] <device>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  keyremap /dev/input/by-id/usb-kbd-event-kbd\n")
		fmt.Fprintf(stderr, "  keyremap -c ~/.config/keyremap/config.toml /dev/input/event3\n")
		fmt.Fprintf(stderr, "  keyremap -check\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		f.device = fs.Arg(0)
	default:
		return nil, fs, fmt.Errorf("expected one device, got %d arguments", fs.NArg())
	}

	return &f, fs, nil
}

// apply overrides cfg with the flags that were given.
func (f *flags) apply(cfg *config.Config) {
	if f.device != "" {
		cfg.Device.Path = f.device
	}
	if f.holdWindow != 0 {
		cfg.Remap.HoldWindowMS = f.holdWindow
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if f.backend != "" {
		cfg.Device.Backend = f.backend
	}
	if f.wait != 0 {
		cfg.Device.WaitTimeoutMS = int(f.wait / time.Millisecond)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if f.showHelp {
		fs.Usage()
		return exitOK
	}

	if f.showVersion {
		fmt.Fprintf(stdout, "keyremap %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	configPath := f.configPath
	if configPath == "" {
		configPath = loader.GetEnvOrDefault("KEYREMAP_CONFIG", "")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return exitError
	}

	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return exitError
	}

	if f.check {
		table, err := cfg.Table()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		if cfg.Source != "" {
			fmt.Fprintf(stdout, "config: %s\n\n", cfg.Source)
		}
		if err := app.WriteBindings(stdout, table, cfg.HoldWindow()); err != nil {
			return exitError
		}
		return exitOK
	}

	if cfg.Device.Path == "" {
		fs.Usage()
		return exitError
	}

	log := app.NewLogger(app.LoggerConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: stderr,
	})
	for _, name := range config.UnmappedEnv() {
		log.WithField("variable", name).Warn("ignoring unknown environment variable")
	}
	if cfg.Source != "" {
		log.WithField("path", cfg.Source).Debug("loaded configuration")
	}

	application, err := app.New(cfg, app.Options{Logger: log})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return exitError
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	go func() {
		sig, ok := <-signals
		if !ok {
			return
		}
		log.WithField("signal", sig.String()).Info("shutting down")
		application.Shutdown()
	}()

	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	return exitOK
}
