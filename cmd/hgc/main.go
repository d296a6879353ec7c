// Command hgc runs the Holy Grail Chat orchestration core, either as the
// HTTP front door (serve) or as a one-shot process runner (run).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/revoshq/holygrail"
	"github.com/revoshq/holygrail/agent"
	"github.com/revoshq/holygrail/config"
	"github.com/revoshq/holygrail/fallback"
	"github.com/revoshq/holygrail/logging"
	"github.com/revoshq/holygrail/memory"
	"github.com/revoshq/holygrail/model"
	"github.com/revoshq/holygrail/model/anthropic"
	"github.com/revoshq/holygrail/model/openai"
	"github.com/revoshq/holygrail/orchestrator"
	"github.com/revoshq/holygrail/revos"
	"github.com/revoshq/holygrail/runner"
	"github.com/revoshq/holygrail/server"
	"github.com/revoshq/holygrail/tool"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hgc",
		Short:         "Holy Grail Chat orchestration core",
		Version:       holygrail.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newRunCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP front door",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one request cycle from the HGC_CONTEXT environment variable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(os.Stderr, slog.LevelInfo)
			r := runner.New(func(o *runner.Options) { o.Logger = logger })
			os.Exit(r.Run(cmd.Context(), os.Getenv))
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(os.Stderr, slog.LevelInfo)

	var llm model.Model
	switch cfg.ModelProvider {
	case "anthropic":
		llm = anthropic.NewModel(func(o *anthropic.Options) { o.APIKey = cfg.AnthropicAPIKey })
	default:
		llm = openai.NewModel(func(o *openai.Options) { o.APIKey = cfg.OpenAIAPIKey })
	}

	registry := tool.NewRegistry(memory.NewMem0Client(cfg.Mem0APIKey), revos.NewClient(cfg.APIBaseURL))
	dispatcher := agent.NewDispatcher(llm)

	var router *fallback.Router
	if cfg.FallbackConfigured() {
		store := fallback.NewStore(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		router = fallback.NewRouter(fallback.NewCampaignHandler(store).CampaignRule())
	} else {
		logger.Warn("serve.fallback_disabled", "reason", "SUPABASE_URL or SUPABASE_ANON_KEY not set")
	}

	orch := orchestrator.New(registry, dispatcher, func(o *orchestrator.Options) {
		o.Router = router
		o.Logger = logger
	})

	srv := server.New(orch, func(o *server.Options) {
		o.AllowedOrigins = cfg.AllowedOrigins
		o.Logger = logger
		o.Version = holygrail.Version
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.Addr) }()
	logger.Info("serve.started", "addr", cfg.Addr, "provider", cfg.ModelProvider)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("serve.stopping")
		return srv.Shutdown(shutdownCtx)
	}
}
