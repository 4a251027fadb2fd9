package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactdesk/contacts-api/internal/config"
	"github.com/contactdesk/contacts-api/internal/service"
	"github.com/contactdesk/contacts-api/internal/store"
)

// Usage example on the command line:
// > PORT=3000 DB_PATH=contacts.db ENV=production GIN_MODE=release go run main.go
func main() {
	cfg := config.Load()
	logger := cfg.NewLogger()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("could not open database")
	}

	svc := service.New(st, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: svc.SetupHttpRouter(),
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	// The storage connection is closed exactly once, after the last request
	// has been served.
	if err := st.Close(); err != nil {
		logger.Error().Err(err).Msg("closing database failed")
	}
	logger.Info().Msg("shutdown complete")
}
