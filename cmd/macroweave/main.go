// Package main is the entry point for the macroweave text expander.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/macroweave/macroweave/internal/config"
	"github.com/macroweave/macroweave/internal/config/watcher"
	"github.com/macroweave/macroweave/internal/expand"
	"github.com/macroweave/macroweave/internal/input"
	"github.com/macroweave/macroweave/internal/input/key"
	"github.com/macroweave/macroweave/internal/platform"
	"github.com/macroweave/macroweave/internal/provider/luaprov"
)

// contextProvider identifies the playground document as the single
// foreground target. Real focus tracking lives in platform/winkey and
// only matters when injecting into other applications.
func contextProvider() platform.ContextProvider {
	return platform.NewStaticContext("playground")
}

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	ScriptDir  string
	LogPath    string
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(log)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	log.Info("configuration loaded", "path", opts.ConfigPath, "rules", len(cfg.Rules))

	// Placeholder providers: builtins first, then Lua scripts. Builtin
	// names win over script registrations of the same name.
	providers := expand.NewRegistry()
	expand.RegisterBuiltins(providers, newClipboard())

	var host *luaprov.Host
	if opts.ScriptDir != "" {
		host = luaprov.NewHost()
		defer host.Close()
		if err := loadScripts(host, opts.ScriptDir, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load scripts: %v\n", err)
			return 1
		}
		installed := host.Install(providers)
		log.Info("script providers installed", "names", installed)
	}

	tracker := input.NewTracker()
	doc := &document{}
	engine := expand.New(cfg.RuleSet(), tracker, providers,
		&docInjector{doc: doc}, contextProvider(),
		cfg.EngineSettings(),
		expand.WithExecutor(expand.SyncExecutor{}),
		expand.WithLogger(log))

	pipeline := input.NewPipeline()
	pipeline.RegisterWithOptions(tracker, "modifier-tracker", input.PriorityHighest)

	hotkeys := input.NewDispatcher(tracker)
	// Ctrl+E toggles expansion on and off.
	hotkeys.Register(key.CodeA+4, key.ModCtrl, func() {
		engine.SetEnabled(!engine.Enabled())
	})
	pipeline.RegisterWithOptions(hotkeys, "hotkeys", input.PriorityHigh)
	pipeline.RegisterWithOptions(engine, "expansion", input.PriorityNormal)

	stopReload := startReload(opts.ConfigPath, engine, log)
	defer stopReload()

	play, err := newPlayground(pipeline, tracker, engine, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := play.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startReload watches the config file and swaps rules and settings into
// the running engine on change. Returns a stop function.
func startReload(path string, engine *expand.Engine, log *slog.Logger) func() {
	w, err := watcher.New(path)
	if err != nil {
		log.Warn("config watching disabled", "error", err)
		return func() {}
	}

	go func() {
		for {
			select {
			case <-w.Done():
				return
			case err := <-w.Errors():
				log.Warn("config watch error", "error", err)
			case <-w.Events():
				cfg, err := config.Load(path)
				if err != nil {
					log.Warn("config reload rejected", "error", err)
					continue
				}
				engine.SwapRules(cfg.RuleSet())
				engine.SwapSettings(cfg.EngineSettings())
				log.Info("configuration reloaded", "rules", len(cfg.Rules))
			}
		}
	}()
	return func() { _ = w.Close() }
}

// loadScripts loads every .lua file in dir, in name order.
func loadScripts(host *luaprov.Host, dir string, log *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := host.LoadFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		log.Debug("script loaded", "path", path)
	}
	return nil
}

// newLogger builds the process logger. With no -log path, output is
// discarded so it cannot corrupt the interactive screen.
func newLogger(opts options) (*slog.Logger, func(), error) {
	var level slog.Level
	switch opts.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var out io.Writer = io.Discard
	closeLog := func() {}
	if opts.LogPath != "" {
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeLog = func() { _ = f.Close() }
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeLog, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "macroweave.toml", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "macroweave.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptDir, "scripts", "", "Directory of Lua placeholder scripts")
	flag.StringVar(&opts.LogPath, "log", "", "Log file path (default: discard)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Macroweave - text expansion engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: macroweave [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  macroweave                        Run with macroweave.toml\n")
		fmt.Fprintf(os.Stderr, "  macroweave -c work.toml           Run with a specific config\n")
		fmt.Fprintf(os.Stderr, "  macroweave -scripts ./providers   Load Lua placeholder scripts\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Macroweave %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
