// Package ui provides the terminal user interface for careerlog.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea: a single root Model owns all view state and
// processes messages in Update. Network calls never happen inside Update;
// they run as tea.Cmd functions that deliver typed result messages
// (loginDoneMsg, jobsLoadedMsg, jobDeletedMsg) back into the loop.
//
// # Package Structure
//
//   - app.go: Root model, Options, view routing, global key handling, and Run
//   - commands.go: Message types and the tea.Cmd constructors that call the API
//   - login.go: Sign-in and registration form
//   - dashboard.go: Status-count cards and the alerts list
//   - jobs.go: Paginated job table with sorting, filtering, and deletion
//   - jobform.go: Add/edit job form with optional resume upload
//   - header.go: Header bar, command bar, and footer notices
//   - theme.go: Color themes and Lipgloss style construction
//   - help.go: Keyboard shortcut overlay
//
// # Views
//
// Four views are available:
//
//   - Login: Email/password form; ctrl+r toggles registration mode
//   - Overview: Per-status job counts plus the next scheduled alerts
//   - Jobs: Server-side paginated table of tracked applications
//   - Alerts: Full list of scheduled reminders
//
// # Data Flow
//
//  1. Run() starts the Bubble Tea program with the configured Model
//  2. A tick message fires at the poll interval; it reads the latest
//     state.Store snapshot and drains the unauthorized channel
//  3. The jobs view fetches pages on demand (navigation, sort, filter,
//     reload) rather than through the poller
//  4. A reported 401 resets the model to the login view with a notice;
//     the session file was already cleared by the request layer
//
// # Key Bindings
//
//   - 1/2/3: Overview / Jobs / Alerts
//   - Tab: Cycle views
//   - j/k, g/G: Move within the job table
//   - n/p: Next/previous page
//   - s, S: Toggle sort order, cycle sort field
//   - /: Filter jobs by company
//   - c, e: Add a job, edit the selected job
//   - x: Delete the selected job (with confirmation)
//   - R: Download the selected job's resume to the working directory
//   - T: Cycle theme (persisted to preferences)
//   - L: Sign out
//   - h or ?: Help overlay
//   - q or Ctrl+C: Quit
package ui
