package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/metroticket/config"
	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/Domenick1991/metroticket/internal/live"
	"go.uber.org/zap"
)

type Expirer interface {
	ExpireActiveBookings(ctx context.Context) ([]domain.Booking, error)
}

// Jobs are the in-process loops that live as long as the HTTP server.
type Jobs struct {
	Hub      *live.Hub
	Tracker  *live.Tracker
	Bookings Expirer
}

// Run starts the HTTP server with its background jobs and blocks until ctx is
// canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, jobs Jobs, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if jobs.Hub != nil {
		go jobs.Hub.Run(ctx)
	}
	if jobs.Tracker != nil && jobs.Hub != nil {
		go jobs.Tracker.Run(ctx, time.Duration(cfg.Map.TickSeconds)*time.Second, jobs.Hub.PublishPosition)
	}
	if jobs.Bookings != nil {
		go RunExpirySweep(ctx, jobs.Bookings, time.Duration(cfg.Worker.ExpirationSweepMinutes)*time.Minute, log)
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTP.Address))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped")
		return nil
	}
}

// RunExpirySweep flips overdue active tickets to expired every interval until
// ctx is done.
func RunExpirySweep(ctx context.Context, bookings Expirer, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := bookings.ExpireActiveBookings(ctx)
			if err != nil {
				log.Error("expire bookings", zap.Error(err))
				continue
			}
			if len(expired) > 0 {
				log.Info("expired bookings", zap.Int("count", len(expired)))
			}
		}
	}
}
