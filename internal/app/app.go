package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/careerlog/careerlog/internal/api"
	"github.com/careerlog/careerlog/internal/config"
	"github.com/careerlog/careerlog/internal/logging"
	"github.com/careerlog/careerlog/internal/prefs"
	"github.com/careerlog/careerlog/internal/session"
	"github.com/careerlog/careerlog/internal/state"
	"github.com/careerlog/careerlog/internal/ui"
)

// Options configure the careerlog application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/careerlog/prefs.toml
	SessionPath string // empty uses default ~/.config/careerlog/session.toml
	PollEvery   int    // seconds; zero uses the configured default
}

// Run boots the careerlog TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog := logging.Open(cfg.LogPath)
	defer func() { _ = closeLog() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	sessions, err := session.NewStore(opts.SessionPath)
	if err != nil {
		return fmt.Errorf("init session store: %w", err)
	}
	sessions.Subscribe(func() {
		logger.Info("session state changed", "active", sessions.Token() != "")
	})
	if err := sessions.Load(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	// The request core signals 401s here after clearing the session; the
	// UI drains the channel and falls back to the login view.
	unauthorized := make(chan struct{}, 1)

	client, err := api.New(cfg.BaseURL, api.Options{
		Tokens: sessions,
		OnUnauthorized: func() {
			logger.Warn("session rejected by server, forcing re-login")
			select {
			case unauthorized <- struct{}{}:
			default:
			}
		},
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
	})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, client, sessions, interval, logger)

	// Populate the store before the UI starts when a session is already
	// active; signed-out starts go straight to the login view.
	if sessions.Token() != "" {
		_ = refresh(ctx, store, client)
	}

	// A fresh sign-in refreshes immediately instead of waiting out the
	// current poll interval; sign-out drops the previous account's
	// dashboard data.
	sessions.Subscribe(func() {
		if sessions.Token() != "" {
			go func() { _ = refresh(ctx, store, client) }()
		} else {
			store.Reset()
		}
	})

	uiOpts := ui.Options{
		Context:      ctx,
		Client:       client,
		Store:        store,
		Sessions:     sessions,
		Unauthorized: unauthorized,
		PollTick:     time.Second,
		ThemeName:    userPrefs.Theme,
		JobsPageSize: userPrefs.JobsPageSize,
		PrefsPath:    opts.PrefsPath,
		Logger:       logger,
	}
	return ui.Run(uiOpts)
}
