// Package main implements geoioconvert, a command line converter between
// the supported point cloud file formats. It loads one or more input files
// through the filter registry and saves the merged result through the
// filter matching the output path.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/c360/geoio/config"
	"github.com/c360/geoio/entity"
	"github.com/c360/geoio/fileio"
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/filters"
	"github.com/c360/geoio/logging"
	"github.com/c360/geoio/metric"
	"github.com/c360/geoio/natsclient"
)

const (
	Version = "0.1.0"
	appName = "geoioconvert"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Conversion failed", "error", err)
		os.Exit(1)
	}
}

type cliConfig struct {
	ConfigPath   string
	ShiftMode    string
	ImportFilter string
	ExportFilter string
	ShowVersion  bool
	ListFilters  bool
}

func parseFlags() cliConfig {
	var cfg cliConfig
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to YAML configuration file")
	flag.StringVar(&cfg.ShiftMode, "shift", "", "Global shift handling: none, ask or auto (overrides config)")
	flag.StringVar(&cfg.ImportFilter, "import-filter", "", "Force a file filter identifier for inputs")
	flag.StringVar(&cfg.ExportFilter, "export-filter", "", "Force a file filter identifier for the output")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ListFilters, "list-filters", false, "List registered import file filters")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] INPUT... OUTPUT\n\nFlags:\n", appName)
		flag.PrintDefaults()
	}
	flag.Parse()
	return cfg
}

func run() error {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}

	cfg := config.DefaultConfig()
	if cli.ConfigPath != "" {
		loaded, err := config.Load(cli.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cli.ShiftMode != "" {
		cfg.Shift.Mode = cli.ShiftMode
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg)

	var nc *natsclient.Client
	if cfg.Logging.NATSURL != "" {
		nc = natsclient.New(cfg.Logging.NATSURL,
			natsclient.WithLogger(logger),
			natsclient.WithClientName(appName),
		)
		if err := nc.Connect(); err != nil {
			logger.Warn("NATS log streaming disabled", "url", cfg.Logging.NATSURL, "error", err)
			nc = nil
		} else {
			defer nc.Close()
		}
	}

	registry := filter.NewRegistry(logger)
	host := newCommandHost()
	if err := filters.RegisterDefaults(registry, host); err != nil {
		return err
	}
	defer registry.UnregisterAll()

	if cli.ListFilters {
		for _, id := range registry.ImportFileFilters() {
			fmt.Println(id)
		}
		return nil
	}

	args := flag.Args()

	// Filter-contributed verbs take the place of a conversion run.
	if len(args) > 0 {
		if verb, ok := host.lookup(args[0]); ok {
			return verb(args[1:])
		}
	}

	if len(args) < 2 {
		flag.Usage()
		return fmt.Errorf("need at least one input file and one output file")
	}
	inputs, output := args[:len(args)-1], args[len(args)-1]

	session := filter.NewSession()
	ioLogger := logging.New(appName, session.ID().String(), nc.Conn(), logger)
	manager := fileio.NewManager(registry, ioLogger,
		fileio.WithSession(session),
		fileio.WithMetrics(metric.New()),
	)

	params := cfg.LoadParameters(session)
	merged := entity.NewContainer("converted")

	for _, path := range inputs {
		container, err := manager.LoadFromPath(path, params, cli.ImportFilter)
		if err != nil {
			return err
		}
		if container == nil {
			logger.Warn("Input produced no entities", "path", path)
			continue
		}
		for _, child := range container.Children() {
			merged.AddChild(child)
		}
	}
	if merged.ChildrenNumber() == 0 {
		return fmt.Errorf("nothing to save: no input produced entities")
	}

	saveParams := &filter.SaveParameters{}
	if cli.ExportFilter != "" {
		if err := manager.SaveToPath(merged, output, saveParams, cli.ExportFilter); err != nil {
			return err
		}
	} else {
		ext := outputExtension(output)
		flt := registry.ForExtension(ext)
		if flt == nil {
			return fmt.Errorf("no filter handles output extension %q", ext)
		}
		if err := manager.SaveWithFilter(merged, output, saveParams, flt); err != nil {
			return err
		}
	}

	logger.Info("Conversion complete",
		"inputs", len(inputs), "entities", merged.ChildrenNumber(), "output", output)
	return nil
}

func outputExtension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
