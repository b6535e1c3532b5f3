package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/invoiceiq/vanna-service/internal/config"
	"github.com/invoiceiq/vanna-service/internal/database"
	"github.com/invoiceiq/vanna-service/internal/llm"
	"github.com/invoiceiq/vanna-service/internal/server"
	"github.com/invoiceiq/vanna-service/internal/vanna"
)

var version = "1.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		envFile string
		port    int
	)

	rootCmd := &cobra.Command{
		Use:   "vanna-service",
		Short: "Natural-language to SQL HTTP service for invoice data.",
		Long: `vanna-service answers plain-English questions about invoices, vendors and
payments by generating SQL with an LLM and running it against the configured database.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			setupLogger(cfg)
			return run(cmd.Context(), cfg)
		},
	}
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "listen port, overrides PORT")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "vanna-service", version)
		},
	})
	return rootCmd
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Environment == config.DefaultEnvironment {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	state := vanna.NewState(vanna.NewFactory(factoryConfig(cfg)), vanna.DefaultCorpus())
	srv, err := server.New(cfg, state)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	srv.Startup(ctx)

	log.Info().Str("addr", cfg.Addr()).Str("version", version).Msg("starting vanna-service")
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// factoryConfig selects the credentials and model of the configured provider.
func factoryConfig(cfg *config.Config) vanna.FactoryConfig {
	l := llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey(),
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	switch cfg.LLM.Provider {
	case config.ProviderAnthropic:
		l.Model = cfg.LLM.AnthropicModel
		l.BaseURL = cfg.LLM.AnthropicBaseURL
	default:
		l.Model = cfg.LLM.GroqModel
		l.BaseURL = cfg.LLM.GroqBaseURL
	}

	return vanna.FactoryConfig{
		LLM: l,
		Database: database.Config{
			URL:             cfg.Database.URL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		},
	}
}
