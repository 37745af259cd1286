package reportserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mmc/internal/stats"
)

// Config captures the settings for serving the DuckDB-backed progress report.
type Config struct {
	Addr   string
	DBPath string
}

// Serve starts an HTTP server that renders the progress report from the
// stats database until the context is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	db, err := stats.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewHandler(db, cfg.DBPath),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
