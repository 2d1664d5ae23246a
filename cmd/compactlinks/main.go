// Package main is the entry point for the compactlinks markdown viewer.
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

	"golang.org/x/term"

	"github.com/dshills/compactlinks/internal/app"
	"github.com/dshills/compactlinks/internal/config"
	"github.com/dshills/compactlinks/internal/logging"
	"github.com/dshills/compactlinks/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath    string
	settingsPath  string
	logLevel      string
	logFile       string
	source        bool
	print         bool
	watch         bool
	writeSettings bool
	file          string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.writeSettings {
		if err := config.SaveSettings(cfg.SettingsPath, cfg.Settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	interactive := !opts.print && term.IsTerminal(int(os.Stdout.Fd()))

	logger, closeLog, err := newLogger(cfg, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := app.OpenDocument(ctx, opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !interactive {
		if err := app.Print(os.Stdout, doc, cfg.Settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Shutdown()

	application, err := app.New(screen, doc, app.Options{
		Config:     cfg,
		ConfigPath: opts.configPath,
		Logger:     logger,
		SourceMode: opts.source,
		Watch:      opts.watch,
	})
	if err != nil {
		screen.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		screen.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts options) (config.FileConfig, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.settingsPath != "" {
		cfg.SettingsPath = opts.settingsPath
		if cfg.Settings, err = config.LoadSettings(opts.settingsPath); err != nil {
			return cfg, err
		}
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.writeSettings && cfg.SettingsPath == "" {
		return cfg, errors.New("-write-settings needs a settings file")
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg. Without a log file the
// interactive viewer discards logs, since the terminal is in use.
func newLogger(cfg config.FileConfig, interactive bool) (*logging.Logger, func(), error) {
	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return nil, nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case interactive:
		return logging.Null(), closeFn, nil
	}

	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Output = out
	return logging.New(lc), closeFn, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to a TOML configuration file (shorthand)")
	flag.StringVar(&opts.settingsPath, "settings", "", "Path to a persisted plugin data.json with link settings")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Append logs to this file")
	flag.BoolVar(&opts.source, "source", false, "Start in source mode")
	flag.BoolVar(&opts.print, "print", false, "Print the decorated document instead of opening the viewer")
	flag.BoolVar(&opts.watch, "watch", true, "Reload the document and settings when they change")
	flag.BoolVar(&opts.writeSettings, "write-settings", false, "Write the effective settings into the settings file and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "compactlinks - markdown viewer with compact links\n\n")
		fmt.Fprintf(os.Stderr, "Usage: compactlinks [options] file.md\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: arrows move (shift extends), PgUp/PgDn scroll, Enter or click reveals a link,\n")
		fmt.Fprintf(os.Stderr, "      s toggles source mode, r reloads, q quits\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("compactlinks %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if opts.writeSettings {
		return opts
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.file = flag.Arg(0)
	return opts
}
