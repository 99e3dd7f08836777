package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vncsmyrnk/pollboard/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository"
	"github.com/vncsmyrnk/pollboard/internal/adapters/status"
	"github.com/vncsmyrnk/pollboard/internal/config"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
	"github.com/vncsmyrnk/pollboard/internal/logging"
)

func main() {
	cfg, err := config.Load("server", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Error opening backend")
	}
	defer gateway.Close()

	pollService := services.NewPollService(gateway.Polls, gateway.Votes, logger)
	voteService := services.NewVoteService(pollService, gateway.Votes, logger)
	suggestionService := services.NewSuggestionService(gateway.Suggestions, logger)

	statuses := status.NewBoard(status.ClearAfter)
	metrics := http.NewMetrics()
	renderer := http.NewRenderer(pollService, statuses, metrics, logger)

	handler := http.NewHandler(http.RouterConfig{
		Polls:       http.NewPollHandler(voteService, renderer, metrics, logger),
		Suggestions: http.NewSuggestionHandler(suggestionService, statuses, renderer, metrics),
		Metrics:     metrics,
		Logger:      logger,
		RateLimit:   cfg.RateLimit,
	})
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	go func() {
		logger.WithField("addr", cfg.Addr).WithField("backend", cfg.Backend).Info("Listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("Error shutting down")
	}
}
