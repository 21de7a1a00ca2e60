package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/plagscan/internal/config"
	"github.com/ludo-technologies/plagscan/internal/logging"
	"github.com/ludo-technologies/plagscan/internal/version"
	"github.com/ludo-technologies/plagscan/mcp"
)

const serverName = "plagscan"

func main() {
	configPath := pflag.StringP("config", "c", "", "Configuration file path")
	pflag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath, ".")
	if err != nil {
		return err
	}

	// MCP uses stdout for JSON-RPC, so logs always go to stderr or a file
	closer := logging.Setup(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Writer:     os.Stderr,
	})
	defer closer.Close()

	deps, err := mcp.NewDependencies(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)
	mcp.RegisterTools(server, mcp.NewHandlerSet(deps))

	slog.Info("starting MCP server",
		"name", serverName,
		"version", version.Short(),
		"provider", cfg.Semantic.Provider,
		"store", cfg.Corpus.Store)

	return mcpserver.ServeStdio(server)
}
