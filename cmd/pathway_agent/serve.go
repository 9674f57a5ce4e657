package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathway/internal/llm"
	"github.com/jonathan/career-pathway/internal/observability"
	"github.com/jonathan/career-pathway/internal/server"
	"github.com/jonathan/career-pathway/internal/server/ratelimit"
)

var (
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for report normalization, skill reconciliation and analyses.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	ctx := context.Background()

	// Generation is optional; without a key /reports/generate answers 503.
	var client llm.Client
	if e.cfg.APIKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), e.cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	} else {
		e.log.Warn("no API key configured, report generation disabled")
	}

	metrics := observability.NewMetrics()
	svc, repo, err := e.newService(ctx, client, metrics)
	if err != nil {
		return err
	}
	defer repo.Close()

	addr := serveAddr
	if addr == "" {
		addr = e.cfg.Addr
	}
	rl := ratelimit.DefaultConfig(e.cfg.RateLimitPerMinute, e.cfg.RateLimitWhitelist, e.cfg.RateLimitBlacklist)
	rl.Enabled = e.cfg.RateLimitEnabled

	srv := server.New(server.Config{Addr: addr, RateLimit: rl}, svc, metrics, e.log)
	e.log.Info("starting server", "addr", addr, "store", e.cfg.StoreKind(), "rate_limit", rl.Enabled)
	return srv.Start()
}
