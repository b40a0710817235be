package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olehluchkiv/artistpairs/internal/config"
	"github.com/olehluchkiv/artistpairs/internal/cooccur"
	"github.com/olehluchkiv/artistpairs/internal/logging"
	"github.com/olehluchkiv/artistpairs/internal/metrics"
	"github.com/olehluchkiv/artistpairs/internal/report"
	"github.com/olehluchkiv/artistpairs/internal/server"
)

// cliFlags holds raw flag values; only flags the user actually set override
// the loaded configuration.
type cliFlags struct {
	path       string
	configPath string
	threshold  int
	workers    int
	format     string
	output     string
	maxPairs   int
	serve      bool
	port       int
	noBrowser  bool
	logFile    string
	logLevel   string
}

func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("artistpairs", flag.ExitOnError)
	fs.StringVar(&f.path, "path", "", "playlist file or http(s) URL (alternative to positional argument)")
	fs.StringVar(&f.configPath, "config", "", "TOML configuration file")
	fs.IntVar(&f.threshold, "threshold", 0, "minimum number of lists an artist or pair must appear in (default 50)")
	fs.IntVar(&f.workers, "workers", 0, "parallel counting workers (default: number of CPUs)")
	fs.StringVar(&f.format, "format", "", "output format: text, json, mermaid (default text)")
	fs.StringVar(&f.output, "output", "", "write the report to file instead of stdout")
	fs.IntVar(&f.maxPairs, "max-pairs", 0, "maximum pairs drawn in the graph, 0 for all (default 200)")
	fs.BoolVar(&f.serve, "serve", false, "serve the report on a local web page")
	fs.IntVar(&f.port, "port", 0, "HTTP server port (default 8080)")
	fs.BoolVar(&f.noBrowser, "no-browser", false, "skip auto-opening browser")
	fs.StringVar(&f.logFile, "log-file", "", "log file path (default logs/artistpairs.log)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return fs
}

// apply copies every explicitly set flag onto cfg.
func (f *cliFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "threshold":
			cfg.Analysis.Threshold = f.threshold
		case "workers":
			cfg.Analysis.Workers = f.workers
		case "format":
			cfg.Output.Format = f.format
		case "output":
			cfg.Output.File = f.output
		case "max-pairs":
			cfg.Output.MaxPairs = f.maxPairs
		case "port":
			cfg.Server.Port = f.port
		case "no-browser":
			cfg.Server.NoBrowser = f.noBrowser
		case "log-file":
			cfg.Log.File = f.logFile
		case "log-level":
			cfg.Log.Level = f.logLevel
		}
	})
}

func main() {
	// Allow "artistpairs lists.txt -threshold 3" as well as flags first.
	flags, positional := reorderArgs(os.Args[1:])

	var cli cliFlags
	fs := newFlagSet(&cli)
	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	// Determine input: positional argument takes precedence, then -path flag
	input := ""
	if len(positional) > 0 {
		input = positional[0]
	}
	if input == "" {
		input = cli.path
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "Usage: artistpairs [flags] <file-or-url>")
		fs.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	cli.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	format, _ := report.ParseFormat(cfg.Output.Format)

	level, err := parseLogLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", cfg.Log.Level, err)
		os.Exit(1)
	}

	logger, logCleanup, err := logging.Setup(cfg.Log.File, level, logging.Rotation{
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	m, registry := metrics.New()

	result, stats, err := server.RunAnalysis(ctx, server.AnalysisConfig{
		Input:   input,
		Options: cfg.AnalysisOptions(),
	}, logger)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m.ObserveIngest(stats)
	m.ObserveResult(result)

	mermaidOpts := report.DefaultMermaidOptions()
	mermaidOpts.MaxPairs = cfg.Output.MaxPairs

	if cli.serve {
		page := server.NewPage(input, result, mermaidOpts)
		fmt.Printf("Starting server on http://localhost:%d\n", cfg.Server.Port)
		if err := server.Serve(ctx, page, cfg.Server.Port, !cfg.Server.NoBrowser, registry, logger); err != nil {
			logger.Error("server error", "error", err)
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := writeReport(cfg.Output.File, result, format, mermaidOpts); err != nil {
		logger.Error("failed to write report", "error", err)
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	if cfg.Output.File != "" {
		fmt.Printf("Wrote report to %s\n", cfg.Output.File)
	}
}

// writeReport renders result to path, or to stdout when path is empty.
// Mermaid files written to disk carry the %%{init:}%% directive so they
// render standalone.
func writeReport(path string, result *cooccur.Result, format report.Format, mermaidOpts report.MermaidOptions) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if format == report.FormatMermaid {
		mermaidOpts.IncludeInit = path != ""
		_, err := fmt.Fprintln(out, report.GenerateMermaid(result, mermaidOpts))
		return err
	}
	return report.Write(out, result, format)
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the positional input argument).
// Flags that take a value (e.g., -output report.txt) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	// Set of flags that take a value argument
	valueFlagSet := map[string]bool{
		"-path": true, "-config": true, "-threshold": true, "-workers": true,
		"-format": true, "-output": true, "-max-pairs": true, "-port": true,
		"-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// Check if this flag takes a value (and it's not using = syntax)
			if !strings.Contains(arg, "=") && valueFlagSet[strings.Replace(arg, "--", "-", 1)] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (valid: debug, info, warn, error)", s)
	}
}
