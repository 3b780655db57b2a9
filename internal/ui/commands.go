package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/careerlog/careerlog/internal/api"
	"github.com/careerlog/careerlog/internal/session"
	"github.com/careerlog/careerlog/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// sessionExpiredMsg is emitted when the request layer reports a 401.
type sessionExpiredMsg struct{}

type loginDoneMsg struct {
	user *api.User
	err  error
}

type registerDoneMsg struct {
	email    string
	password string
	err      error
}

type userLoadedMsg struct {
	user *api.User
	err  error
}

type jobsLoadedMsg struct {
	page *api.JobPage
	err  error
}

type jobDeletedMsg struct {
	id  string
	err error
}

// jobSavedMsg reports a create (created set) or update (id set) result.
// The draft rides along so the handler can merge it into the local list.
type jobSavedMsg struct {
	id        string
	updatedAt string
	created   *api.JobCreated
	draft     api.JobDraft
	err       error
}

type resumeSavedMsg struct {
	path string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func textinputBlink() tea.Cmd {
	return textinput.Blink
}

// loginCmd signs in, persists the session, and loads the profile.
func loginCmd(ctx context.Context, client *api.Client, sessions *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Login(ctx, api.LoginRequest{Email: email, Password: password})
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if sessions != nil {
			if err := sessions.Save(resp.AccessToken, resp.ExpiresIn); err != nil {
				return loginDoneMsg{err: err}
			}
		}
		user, err := client.FetchCurrentUser(ctx)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{user: user}
	}
}

// registerCmd creates an account; the caller chains a login on success.
func registerCmd(ctx context.Context, client *api.Client, req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := client.Register(ctx, req)
		return registerDoneMsg{email: req.Email, password: req.Password, err: err}
	}
}

func fetchUserCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		user, err := client.FetchCurrentUser(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

func fetchJobsCmd(ctx context.Context, client *api.Client, query api.JobQuery) tea.Cmd {
	return func() tea.Msg {
		page, err := client.FetchJobs(ctx, query)
		return jobsLoadedMsg{page: page, err: err}
	}
}

func deleteJobCmd(ctx context.Context, client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteJob(ctx, id)
		return jobDeletedMsg{id: id, err: err}
	}
}

// saveJobCmd creates or updates a job, attaching a local resume file when a
// path was given. An empty id means create.
func saveJobCmd(ctx context.Context, client *api.Client, id string, draft api.JobDraft, resumePath string) tea.Cmd {
	return func() tea.Msg {
		if resumePath != "" {
			f, err := os.Open(resumePath)
			if err != nil {
				return jobSavedMsg{id: id, draft: draft, err: err}
			}
			defer f.Close()
			draft.Resume = &api.ResumeUpload{
				Filename: filepath.Base(resumePath),
				Content:  f,
			}
		}

		if id != "" {
			updated, err := client.UpdateJob(ctx, id, draft)
			if err != nil {
				return jobSavedMsg{id: id, draft: draft, err: err}
			}
			return jobSavedMsg{id: id, draft: draft, updatedAt: updated.UpdatedAt}
		}

		created, err := client.CreateJob(ctx, draft)
		return jobSavedMsg{created: created, draft: draft, err: err}
	}
}

// downloadResumeCmd fetches a job's resume and writes it to the working
// directory under its served filename.
func downloadResumeCmd(ctx context.Context, client *api.Client, jobID string) tea.Cmd {
	return func() tea.Msg {
		dl, err := client.FetchResume(ctx, jobID)
		if err != nil {
			return resumeSavedMsg{err: err}
		}
		name := filepath.Base(dl.Filename)
		if name == "" || name == "." || name == string(filepath.Separator) {
			name = "resume"
		}
		if err := os.WriteFile(name, dl.Content, 0o644); err != nil {
			return resumeSavedMsg{err: err}
		}
		return resumeSavedMsg{path: name}
	}
}
