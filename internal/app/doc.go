// Package app provides the orchestration layer for the careerlog client.
//
// # Overview
//
// This package is the composition root: it loads configuration and
// preferences, restores the persisted session, builds the API client, starts
// the background dashboard poller, and launches the TUI.
//
// # Initialization Order
//
//  1. config.Load reads ~/.config/careerlog/config.toml
//  2. logging.Open sets up the file-backed diagnostic logger
//  3. prefs.Load reads user preferences (theme, page size)
//  4. session.NewStore + Load restore the persisted bearer token, clearing
//     it when expired
//  5. api.New builds the HTTP client with the session store as its token
//     source and an OnUnauthorized hook feeding a channel the UI drains
//  6. StartPoller launches the background dashboard refresh goroutine
//  7. ui.Run starts the TUI and blocks
//
// # Session Teardown
//
// The API client owns nothing about views. When the backend answers 401 it
// clears the session store and fires the hook wired here, which posts to a
// buffered channel. The UI observes that channel on its tick and drops back
// to the login view. This keeps transport logic and navigation decoupled.
//
// # Polling
//
// The poller refreshes status counts and alerts at a fixed cadence (default
// 30s) and skips cycles while no session is active. A fresh sign-in
// triggers an immediate refresh instead of waiting out the interval.
// Failures are recorded in the state store and logged; polling always
// continues. The jobs list is not polled; the jobs view fetches pages
// on demand.
package app
