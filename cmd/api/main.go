package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	analysis "github.com/mirsal/support-chat/backend/internal/analysis/sentiment"
	"github.com/mirsal/support-chat/backend/internal/config"
	"github.com/mirsal/support-chat/backend/internal/handler"
	chatservice "github.com/mirsal/support-chat/backend/internal/service/chat"
	sentimentservice "github.com/mirsal/support-chat/backend/internal/service/sentiment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file loaded, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	lexicon := analysis.New(analysis.DefaultArabicLexicon())

	var classifier chatservice.Classifier
	if cfg.Analyzer.Enabled() {
		classifier = sentimentservice.NewRemote(cfg.Analyzer.URL, cfg.Analyzer.Timeout, lexicon, logger)
		logger.Info().Str("url", cfg.Analyzer.URL).Msg("remote sentiment analyzer enabled, lexicon as fallback")
	} else {
		classifier = sentimentservice.NewLocal(lexicon)
		logger.Info().Msg("using built-in lexicon sentiment classifier")
	}

	chatSvc := chatservice.NewService(classifier, cfg.Chat.TranscriptLimit, logger)

	router := handler.NewRouter(handler.Options{
		ChatService:         chatSvc,
		Classifier:          classifier,
		DefaultConversation: cfg.Chat.DefaultConversation,
		AllowedOrigins:      cfg.Server.AllowedOrigins,
		Log:                 logger,
	})

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger zerolog.Logger) {
	addr := serverCfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info().Str("addr", addr).Msg("support chat backend listening")
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
