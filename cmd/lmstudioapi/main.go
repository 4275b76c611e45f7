package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ErrayDineri/LMStudioAPI/internal/chat"
	"github.com/ErrayDineri/LMStudioAPI/internal/config"
	"github.com/ErrayDineri/LMStudioAPI/internal/httpapi"
	"github.com/ErrayDineri/LMStudioAPI/internal/lmstudio"
	"github.com/ErrayDineri/LMStudioAPI/internal/models"
)

func main() {
	var (
		addr       string
		configPath string
	)

	root := &cobra.Command{
		Use:           "lmstudioapi",
		Short:         "HTTP bridge for LM Studio chat and model management",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(addr, configPath)
		},
	}
	root.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. 127.0.0.1:8000 (overrides HOST/PORT)")
	root.Flags().StringVar(&configPath, "config", "", "Optional config file (yaml/json/toml) overriding env values")

	if err := root.Execute(); err != nil {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("startup failed")
	}
}

func run(addr, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Addr()
	}

	logger := newLogger(cfg.LogLevel)
	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetCORSOrigins(cfg.CORSOriginList())

	// Base context canceled on shutdown so in-flight streams stop.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	modelMgr := models.New(lmstudio.NewClient(cfg.LMStudioBaseURL), logger)
	chatSvc := chat.NewService(chat.Options{
		BaseURL:             cfg.OpenAIBaseURL,
		APIKey:              cfg.OpenAIAPIKey,
		DefaultRegularModel: cfg.DefaultRegularModel,
		DefaultVisionModel:  cfg.DefaultVisionModel,
		Timeout:             cfg.LLMTimeout,
	}, logger)

	mux := httpapi.NewMux(chatSvc, modelMgr)
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("openai_base_url", cfg.OpenAIBaseURL).Str("lmstudio_base_url", cfg.LMStudioBaseURL).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case s := <-stop:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	}

	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch level {
	case "off":
		lvl = zerolog.Disabled
	case "error":
		lvl = zerolog.ErrorLevel
	case "debug":
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
