package main

import (
	"context"
	"log/slog"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/glosshub/glossd/internal/config"
	"github.com/glosshub/glossd/internal/glossary"
	"github.com/glosshub/glossd/internal/llm"
	"github.com/glosshub/glossd/internal/mcp"
)

func main() {
	cfg := config.FromEnv()

	// Log to a file: stdout/stderr belong to the stdio MCP transport.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logFile = os.Stderr
	} else {
		defer logFile.Close()
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	store := glossary.NewStore(cfg.GlossaryPath, logger)
	if cfg.Watch {
		if err := store.Watch(ctx); err != nil {
			logger.Warn("Failed to watch glossary file, live reload disabled", "error", err)
		}
	}

	// The language capability is best-effort: without it, smart_query
	// degrades to fuzzy fallback results.
	var capability llm.Capability
	if c, err := llm.NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, logger); err != nil {
		logger.Warn("Language capability unavailable, smart_query will use fuzzy fallback", "error", err)
	} else {
		capability = c
	}

	server := mcp.NewGlossaryServer(cfg.ServerName, cfg.ServerVersion, store, capability, logger)

	logger.Info("Starting glossd MCP server over stdio...",
		"name", cfg.ServerName, "version", cfg.ServerVersion,
		"glossary", cfg.GlossaryPath, "model", cfg.Model, "terms", store.Len())
	if err := server.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		logger.Error("glossd server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("glossd server finished")
}
