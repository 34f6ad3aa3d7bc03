package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/agenthands/recall/internal/config"
	"github.com/agenthands/recall/internal/embed"
	"github.com/agenthands/recall/internal/graph"
	"github.com/agenthands/recall/internal/openmemory"
	"github.com/agenthands/recall/internal/server"
	"github.com/agenthands/recall/internal/tools"
	"github.com/agenthands/recall/internal/vector"
)

var (
	configFlag    string
	transportFlag string
	addrFlag      string

	rootCmd = &cobra.Command{
		Use:   "recall",
		Short: "Memory tools over a shared vector index and relationship graph",
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the memory tools to an agent runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&configFlag, "config", "c", "config/config.toml", "Path to the TOML config file")
	serveCmd.Flags().StringVarP(&transportFlag, "transport", "t", "", "Transport: stdio, sse, or http (overrides config)")
	serveCmd.Flags().StringVarP(&addrFlag, "addr", "a", "", "Listen address for sse/http transports (overrides config)")
}

func serve() error {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment as-is")
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	if transportFlag != "" {
		cfg.Server.Transport = transportFlag
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}

	embedder, err := embed.New(cfg.Embedding)
	if err != nil {
		return err
	}

	deps := &tools.Deps{
		Embedder: embedder,
		Vector:   vector.New(cfg.Qdrant.BaseURL, cfg.Qdrant.Collection),
		Memories: openmemory.New(cfg.API.BaseURL),
		Graph:    graph.NewStore(cfg.Neo4j),
		UserID:   cfg.UserID,
	}
	defer func() {
		if err := deps.Graph.Close(context.Background()); err != nil {
			log.Warn("failed to close graph driver", "error", err)
		}
	}()

	log.Info("starting recall",
		"transport", cfg.Server.Transport,
		"embed_provider", cfg.Embedding.Provider,
		"embed_model", cfg.Embedding.Model,
		"collection", cfg.Qdrant.Collection,
		"user_id", cfg.UserID,
		"api", cfg.API.BaseURL,
		"qdrant", cfg.Qdrant.BaseURL,
		"neo4j", cfg.Neo4j.URI,
	)

	switch cfg.Server.Transport {
	case "stdio":
		s := newMCPServer(deps)
		return mcpserver.ServeStdio(s)
	case "sse":
		s := newMCPServer(deps)
		return mcpserver.NewSSEServer(s).Start(cfg.Server.Addr)
	case "http":
		srv := server.New(deps)
		return srv.SetupRouter().Run(cfg.Server.Addr)
	default:
		return fmt.Errorf("unknown transport: %s", cfg.Server.Transport)
	}
}

func newMCPServer(deps *tools.Deps) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		"recall",
		"1.0.0",
		mcpserver.WithInstructions(
			"Memory tools for persistent cross-session memory. "+
				"Use search_memories to find relevant context before starting work. "+
				"Use add_memory to store important facts, preferences, and decisions. "+
				"Use search_graph to find relationships between entities.",
		),
	)
	tools.Register(s, deps)
	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("recall exited", "error", err)
		os.Exit(1)
	}
}
