// Package config handles loading the careerlog configuration file.
//
// The Load function reads ~/.config/careerlog/config.toml (or an explicit
// path) and extracts the few fields the client needs: the backend base URL,
// the per-request timeout, the dashboard poll cadence, and the log file
// location. A missing config file is not an error: defaults let careerlog
// work out of the box against a local backend.
//
// Example config.toml:
//
//	base_url = "https://careerlog.example.com"
//	request_timeout_seconds = 10
//	poll_seconds = 30
//	log_path = "~/.local/state/careerlog/careerlog.log"
//
// All fields are optional. Tilde expansion is performed on paths. Load
// returns errors only for unreadable files, TOML parse failures, and path
// expansion problems; empty or missing fields silently use defaults.
package config
