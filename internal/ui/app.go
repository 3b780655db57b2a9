package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/careerlog/careerlog/internal/api"
	"github.com/careerlog/careerlog/internal/prefs"
	"github.com/careerlog/careerlog/internal/session"
	"github.com/careerlog/careerlog/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewJobs
	ViewAlerts
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Client       *api.Client
	Store        *state.Store
	Sessions     *session.Store
	Unauthorized <-chan struct{}
	PollTick     time.Duration
	ThemeName    string
	JobsPageSize int
	PrefsPath    string
	Logger       *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	client       *api.Client
	store        *state.Store
	sessions     *session.Store
	unauthorized <-chan struct{}
	pollTick     time.Duration
	prefsPath    string
	logger       *slog.Logger

	// UI state
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Footer notice
	notice    string
	noticeErr bool

	// Data state
	user        *api.User
	snapshot    state.Snapshot
	lastUpdated time.Time

	// View state
	login    loginModel
	jobs     jobsModel
	form     jobFormModel
	showForm bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	theme := GetTheme(themeName)
	styles := theme.Styles()

	startView := ViewLogin
	if opts.Sessions != nil && opts.Sessions.Token() != "" {
		startView = ViewDashboard
	}

	return Model{
		ctx:          ctx,
		client:       opts.Client,
		store:        opts.Store,
		sessions:     opts.Sessions,
		unauthorized: opts.Unauthorized,
		pollTick:     pollTick,
		prefsPath:    prefsPath,
		logger:       logger,
		theme:        theme,
		styles:       styles,
		currentView:  startView,
		login:        newLoginModel(),
		jobs:         newJobsModel(opts.JobsPageSize),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView != ViewLogin && m.client != nil {
		cmds = append(cmds, fetchUserCmd(m.ctx, m.client))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.jobs.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case sessionExpiredMsg:
		return m.handleSessionExpired()

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case registerDoneMsg:
		return m.handleRegisterDone(msg)

	case userLoadedMsg:
		if msg.err == nil {
			m.user = msg.user
		}
		return m, nil

	case jobsLoadedMsg:
		return m.handleJobsLoaded(msg)

	case jobDeletedMsg:
		return m.handleJobDeleted(msg)

	case jobSavedMsg:
		return m.handleJobSaved(msg)

	case resumeSavedMsg:
		return m.handleResumeSaved(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.showForm {
		return m.renderJobForm()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// The job form captures everything except quit.
	if m.showForm {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleJobFormKey(msg)
	}

	// The login form captures everything except quit.
	if m.currentView == ViewLogin {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleLoginKey(msg)
	}

	// The jobs filter prompt captures everything except quit and esc.
	if m.currentView == ViewJobs && m.jobs.filtering {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleJobsKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{
				Theme:        m.theme.Name,
				JobsPageSize: m.jobs.pageSize,
			})
		}
		return m, nil

	case "L":
		return m.handleLogout()

	case "tab":
		m.cycleView(1)
		return m, m.enterViewCmd()

	case "shift+tab":
		m.cycleView(-1)
		return m, m.enterViewCmd()

	case "1", "o":
		m.currentView = ViewDashboard
		return m, nil

	case "2", "J":
		m.currentView = ViewJobs
		return m, m.enterViewCmd()

	case "3", "a":
		m.currentView = ViewAlerts
		return m, nil

	case "esc":
		m.currentView = ViewDashboard
		return m, nil
	}

	if m.currentView == ViewJobs {
		return m.handleJobsKey(msg)
	}

	return m, nil
}

// cycleView moves between the signed-in views in order.
func (m *Model) cycleView(dir int) {
	order := []View{ViewDashboard, ViewJobs, ViewAlerts}
	for i, v := range order {
		if v == m.currentView {
			m.currentView = order[(i+dir+len(order))%len(order)]
			return
		}
	}
	m.currentView = ViewDashboard
}

// enterViewCmd fetches data the newly entered view needs.
func (m *Model) enterViewCmd() tea.Cmd {
	if m.currentView == ViewJobs && !m.jobs.loaded && !m.jobs.loading {
		return m.reloadJobs()
	}
	return nil
}

// handleLogout clears the session and returns to the login form.
func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	if m.sessions != nil {
		if err := m.sessions.Clear(); err != nil {
			m.logger.Warn("session clear failed", "error", err)
		}
	}
	m.teardownSession()
	m.setNotice("Signed out.", false)
	return m, textinputBlink()
}

// handleSessionExpired reacts to a 401 reported by the request layer.
func (m Model) handleSessionExpired() (tea.Model, tea.Cmd) {
	m.teardownSession()
	m.setNotice("Session expired. Please sign in again.", true)
	return m, textinputBlink()
}

// teardownSession drops every trace of the previous account so nothing
// from it can render after the next sign-in.
func (m *Model) teardownSession() {
	m.user = nil
	m.snapshot = state.Snapshot{}
	m.lastUpdated = time.Time{}
	if m.store != nil {
		m.store.Reset()
	}
	m.jobs = newJobsModel(m.jobs.pageSize)
	m.jobs.resize(m.width, m.height)
	m.login = newLoginModel()
	m.showForm = false
	m.currentView = ViewLogin
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// A 401 anywhere tears the session down; surface it on the next tick.
	select {
	case <-m.unauthorized:
		cmds = append(cmds, func() tea.Msg { return sessionExpiredMsg{} })
	default:
	}

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewDashboard:
		return m.renderDashboard()
	case ViewJobs:
		return m.renderJobs()
	case ViewAlerts:
		return m.renderAlerts()
	default:
		return ""
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
