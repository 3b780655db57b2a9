package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/careerlog/careerlog/internal/api"
	"github.com/careerlog/careerlog/internal/session"
	"github.com/careerlog/careerlog/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	alertsPageSize      = 10
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. Cycles are skipped while no session is active so a
// signed-out client does not hammer the backend with requests that can only
// fail. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client *api.Client, sessions *session.Store, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if sessions.Token() != "" {
				if err := refresh(ctx, store, client); err != nil {
					logger.Warn("dashboard poll failed", "err", err)
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client *api.Client) error {
	counts, err := client.FetchStatusCounts(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		return err
	}
	alerts, err := client.FetchAlerts(ctx, 1, alertsPageSize)
	if err != nil {
		store.Update(nil, nil, err)
		return err
	}
	store.Update(counts, alerts.Items, nil)
	return nil
}
