package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/careerlog/careerlog/internal/api"
	"github.com/careerlog/careerlog/internal/state"
)

func newTestModel() Model {
	m := New(Options{JobsPageSize: 10})
	m.ready = true
	m.width = 120
	m.height = 40
	return m
}

func updateModel(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next
}

func TestJobsLoaded_PopulatesList(t *testing.T) {
	m := newTestModel()
	m.currentView = ViewJobs
	m.jobs.loading = true

	page := &api.JobPage{
		Items: []api.Job{
			{ID: "a", Company: "Initech"},
			{ID: "b", Company: "Globex"},
		},
		Meta: api.PageMeta{Page: 1, PageSize: 10, TotalItems: 2, TotalPages: 1},
	}
	m = updateModel(t, m, jobsLoadedMsg{page: page})

	if m.jobs.loading {
		t.Fatalf("loading should clear after jobsLoadedMsg")
	}
	if !m.jobs.loaded {
		t.Fatalf("loaded should be set")
	}
	if len(m.jobs.items) != 2 || m.jobs.meta.TotalItems != 2 {
		t.Fatalf("items = %d, total = %d, want 2/2", len(m.jobs.items), m.jobs.meta.TotalItems)
	}
}

func TestJobsLoaded_ErrorKeepsPreviousItems(t *testing.T) {
	m := newTestModel()
	m.jobs.items = []api.Job{{ID: "a"}}
	m.jobs.loaded = true

	m = updateModel(t, m, jobsLoadedMsg{err: &api.Error{Code: "FORBIDDEN", Message: "no", Status: 403}})

	if m.jobs.errText != "no" {
		t.Fatalf("errText = %q, want backend message", m.jobs.errText)
	}
	if len(m.jobs.items) != 1 {
		t.Fatalf("previous items should survive a failed reload")
	}
}

func TestJobsLoaded_ClampsSelection(t *testing.T) {
	m := newTestModel()
	m.jobs.selected = 5

	page := &api.JobPage{
		Items: []api.Job{{ID: "a"}, {ID: "b"}},
		Meta:  api.PageMeta{TotalItems: 2, TotalPages: 1},
	}
	m = updateModel(t, m, jobsLoadedMsg{page: page})

	if m.jobs.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.jobs.selected)
	}
}

func TestJobDeleted_RemovesLocally(t *testing.T) {
	m := newTestModel()
	m.jobs.items = []api.Job{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m.jobs.meta = api.PageMeta{TotalItems: 3, TotalPages: 1}
	m.jobs.selected = 2

	m = updateModel(t, m, jobDeletedMsg{id: "b"})

	if len(m.jobs.items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.jobs.items))
	}
	for _, job := range m.jobs.items {
		if job.ID == "b" {
			t.Fatalf("deleted job still present")
		}
	}
	if m.jobs.meta.TotalItems != 2 {
		t.Fatalf("TotalItems = %d, want 2", m.jobs.meta.TotalItems)
	}
	if m.jobs.selected != 1 {
		t.Fatalf("selected = %d, want clamped to 1", m.jobs.selected)
	}
}

func TestJobDeleted_ErrorKeepsItems(t *testing.T) {
	m := newTestModel()
	m.jobs.items = []api.Job{{ID: "a"}}

	m = updateModel(t, m, jobDeletedMsg{id: "a", err: errors.New("connection refused")})

	if len(m.jobs.items) != 1 {
		t.Fatalf("items should be untouched when delete fails")
	}
	if !m.noticeErr {
		t.Fatalf("failed delete should set an error notice")
	}
}

func TestSessionExpired_ReturnsToLogin(t *testing.T) {
	m := newTestModel()
	m.currentView = ViewJobs
	m.user = &api.User{ID: "u1"}
	m.jobs.items = []api.Job{{ID: "a"}}

	m = updateModel(t, m, sessionExpiredMsg{})

	if m.currentView != ViewLogin {
		t.Fatalf("view = %d, want ViewLogin", m.currentView)
	}
	if m.user != nil {
		t.Fatalf("user should be cleared")
	}
	if len(m.jobs.items) != 0 {
		t.Fatalf("job list should be reset")
	}
	if !m.noticeErr || m.notice == "" {
		t.Fatalf("expected an expiry notice, got %q", m.notice)
	}
}

func TestSessionExpired_ClearsPreviousAccountData(t *testing.T) {
	store := &state.Store{}
	store.Update(&api.StatusCounts{Applied: 7, Total: 9},
		[]api.Alert{{ID: "al1", Message: "old account alert"}}, nil)

	m := New(Options{JobsPageSize: 10, Store: store})
	m.ready = true
	m.width = 120
	m.height = 40
	m = updateModel(t, m, snapshotMsg(store.Snapshot()))

	m = updateModel(t, m, sessionExpiredMsg{})
	m = updateModel(t, m, loginDoneMsg{user: &api.User{ID: "u2", Email: "next@example.com"}})

	if m.snapshot.HasCounts || len(m.snapshot.Alerts) != 0 {
		t.Fatalf("previous account's snapshot survived teardown: %+v", m.snapshot)
	}
	if snap := store.Snapshot(); snap.HasCounts || len(snap.Alerts) != 0 {
		t.Fatalf("state store not reset on teardown: %+v", snap)
	}
	if out := m.renderDashboard(); strings.Contains(out, "old account alert") {
		t.Fatalf("dashboard still renders the previous account's alerts")
	}
}

func TestLogout_ClearsPreviousAccountData(t *testing.T) {
	store := &state.Store{}
	store.Update(&api.StatusCounts{Applied: 3, Total: 3}, nil, nil)

	m := New(Options{JobsPageSize: 10, Store: store})
	m.ready = true
	m.currentView = ViewDashboard
	m = updateModel(t, m, snapshotMsg(store.Snapshot()))

	updated, _ := m.handleLogout()
	m = updated.(Model)

	if m.currentView != ViewLogin {
		t.Fatalf("view = %d, want ViewLogin", m.currentView)
	}
	if m.snapshot.HasCounts {
		t.Fatalf("snapshot survived logout")
	}
	if snap := store.Snapshot(); snap.HasCounts {
		t.Fatalf("state store not reset on logout")
	}
}

func TestLoginSubmit_RequiresCredentials(t *testing.T) {
	m := newTestModel()
	m.currentView = ViewLogin

	updated, cmd := m.submitLogin()
	m = updated.(Model)

	if cmd != nil {
		t.Fatalf("empty form must not fire a request")
	}
	if m.login.errText == "" {
		t.Fatalf("expected a validation message")
	}
}

func TestLoginDone_SwitchesToDashboard(t *testing.T) {
	m := newTestModel()
	m.currentView = ViewLogin
	m.login.submitting = true

	m = updateModel(t, m, loginDoneMsg{user: &api.User{ID: "u1", Email: "a@b.c"}})

	if m.currentView != ViewDashboard {
		t.Fatalf("view = %d, want ViewDashboard", m.currentView)
	}
	if m.user == nil || m.user.ID != "u1" {
		t.Fatalf("user not set from login result")
	}
}

func TestLoginDone_ErrorShowsBackendMessage(t *testing.T) {
	m := newTestModel()
	m.currentView = ViewLogin
	m.login.submitting = true

	m = updateModel(t, m, loginDoneMsg{err: &api.Error{
		Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", Status: 401,
	}})

	if m.currentView != ViewLogin {
		t.Fatalf("failed login must stay on the form")
	}
	if m.login.errText != "Invalid email or password" {
		t.Fatalf("errText = %q, want backend message verbatim", m.login.errText)
	}
	if m.login.submitting {
		t.Fatalf("submitting should clear on failure")
	}
}

func TestLoginErrorText_TransportFailure(t *testing.T) {
	got := loginErrorText(errors.New("dial tcp: connection refused"))
	if got == "dial tcp: connection refused" {
		t.Fatalf("transport errors should not be shown raw")
	}
	if got == "" {
		t.Fatalf("expected a friendly message")
	}
}

func TestFieldLimit_ByMode(t *testing.T) {
	l := newLoginModel()
	if got := l.fieldLimit(); got != 2 {
		t.Fatalf("sign-in fields = %d, want 2", got)
	}
	l.registering = true
	if got := l.fieldLimit(); got != fieldCount {
		t.Fatalf("register fields = %d, want %d", got, fieldCount)
	}
}

func TestJobsQuery_IncludesFilter(t *testing.T) {
	j := newJobsModel(10)
	j.page = 3
	j.filterCompany = "Initech"

	q := j.query()
	if q.Page != 3 || q.PageSize != 10 {
		t.Fatalf("query paging = %d/%d, want 3/10", q.Page, q.PageSize)
	}
	if q.Filters["company"] != "Initech" {
		t.Fatalf("query filters = %#v, want company filter", q.Filters)
	}

	j.filterCompany = ""
	if q := j.query(); q.Filters != nil {
		t.Fatalf("empty filter should omit the Filters map")
	}
}
