package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/inful/mdgraph/internal/config"
)

var version = "dev"

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Process struct {
		Watch         bool   `short:"w" help:"Re-process when input files change"`
		DisableMarkup bool   `help:"Copy models through without markup processing"`
		MetricsListen string `help:"Serve Prometheus metrics on this address (e.g. :9090)"`
	} `cmd:"" help:"Transform markdown content in page models and record link metadata"`

	Links struct {
		Kind   string `help:"Target kind to list" default:"file" enum:"uid,file"`
		Target string `arg:"" optional:"" help:"Show source locations referencing this target"`
	} `cmd:"" help:"Query the link database"`

	Version struct{} `cmd:"" help:"Print version"`
}

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "process":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runProcess(cfg); err != nil {
			slog.Error("Processing failed", "error", err)
			os.Exit(1)
		}

	case "links", "links <target>":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runLinks(cfg); err != nil {
			slog.Error("Link query failed", "error", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("mdgraph %s\n", version)

	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
}
