package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cannon/internal/spectate"
)

// serveSpectators serves hub on addr at /ws until ctx is done.
func serveSpectators(ctx context.Context, addr string, hub *spectate.Hub, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("spectator stream listening", "address", addr, "path", "/ws")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
