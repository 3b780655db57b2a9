package ui

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/careerlog/careerlog/internal/api"
)

const (
	jfTitle = iota
	jfCompany
	jfStatus
	jfLocation
	jfEmployment
	jfSalaryTarget
	jfSalaryRange
	jfURL
	jfPosting
	jfResume
	jfCount
)

var jobFormLabels = [jfCount]string{
	"Title",
	"Company",
	"Status",
	"Location",
	"Employment type",
	"Salary target",
	"Salary range",
	"Posting URL",
	"Posting ID",
	"Resume file",
}

// jobFormModel holds the add/edit job form state. A non-empty jobID means
// the form edits an existing job and submits a partial update.
type jobFormModel struct {
	inputs     [jfCount]textinput.Model
	focusIdx   int
	jobID      string
	submitting bool
	errText    string
}

func newJobFormModel() jobFormModel {
	var f jobFormModel

	placeholders := [jfCount]string{
		"Backend Engineer",
		"Initech",
		"applied | interviewing | offer | rejected",
		"Remote",
		"full-time",
		"120000",
		"110k-140k",
		"https://...",
		"REQ-1234",
		"path to a file to upload (optional)",
	}
	for i := range f.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 254
		input.Width = 44
		f.inputs[i] = input
	}
	f.inputs[jfTitle].Focus()

	return f
}

// prefill loads an existing job into the form for editing.
func (f *jobFormModel) prefill(job api.Job) {
	f.jobID = job.ID
	f.inputs[jfTitle].SetValue(job.JobTitle)
	f.inputs[jfCompany].SetValue(job.Company)
	f.inputs[jfStatus].SetValue(job.Status)
	f.inputs[jfLocation].SetValue(job.Location)
	f.inputs[jfEmployment].SetValue(job.EmploymentType)
	if job.SalaryTarget > 0 {
		f.inputs[jfSalaryTarget].SetValue(strconv.FormatFloat(job.SalaryTarget, 'f', -1, 64))
	}
	f.inputs[jfSalaryRange].SetValue(job.SalaryRange)
	f.inputs[jfURL].SetValue(job.URL)
	f.inputs[jfPosting].SetValue(job.JobID)
}

func (f jobFormModel) editing() bool {
	return f.jobID != ""
}

func (f *jobFormModel) focusField(idx int) tea.Cmd {
	if idx < 0 {
		idx = jfCount - 1
	}
	if idx >= jfCount {
		idx = 0
	}
	f.focusIdx = idx

	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f jobFormModel) value(idx int) string {
	return strings.TrimSpace(f.inputs[idx].Value())
}

// draft validates the form and builds the request payload plus the local
// path of a resume to attach, if any.
func (f jobFormModel) draft() (api.JobDraft, string, string) {
	title := f.value(jfTitle)
	company := f.value(jfCompany)
	if title == "" || company == "" {
		return api.JobDraft{}, "", "Title and company are required."
	}

	var target float64
	if v := f.value(jfSalaryTarget); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return api.JobDraft{}, "", "Salary target must be a number."
		}
		target = parsed
	}

	draft := api.JobDraft{
		JobTitle:       title,
		Company:        company,
		Status:         strings.ToLower(f.value(jfStatus)),
		Location:       f.value(jfLocation),
		EmploymentType: f.value(jfEmployment),
		SalaryTarget:   target,
		SalaryRange:    f.value(jfSalaryRange),
		URL:            f.value(jfURL),
		JobID:          f.value(jfPosting),
	}
	return draft, f.value(jfResume), ""
}

// handleJobFormKey processes keyboard input while the form is open.
func (m Model) handleJobFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.showForm = false
		return m, nil

	case "tab", "down":
		return m, m.form.focusField(m.form.focusIdx + 1)

	case "shift+tab", "up":
		return m, m.form.focusField(m.form.focusIdx - 1)

	case "enter":
		return m.submitJobForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focusIdx], cmd = m.form.inputs[m.form.focusIdx].Update(msg)
	return m, cmd
}

// submitJobForm validates the form and fires the create or update call.
func (m Model) submitJobForm() (tea.Model, tea.Cmd) {
	draft, resumePath, problem := m.form.draft()
	if problem != "" {
		m.form.errText = problem
		return m, nil
	}
	if !m.form.editing() && draft.Status == "" {
		draft.Status = "applied"
	}

	m.form.errText = ""
	m.form.submitting = true
	return m, saveJobCmd(m.ctx, m.client, m.form.jobID, draft, resumePath)
}

// handleJobSaved merges the server's authoritative fields into the local
// list instead of refetching the page.
func (m Model) handleJobSaved(msg jobSavedMsg) (tea.Model, tea.Cmd) {
	m.form.submitting = false
	if msg.err != nil {
		m.form.errText = formErrorText(msg.err)
		return m, nil
	}

	m.showForm = false
	if msg.created != nil {
		job := jobFromDraft(msg.draft)
		job.ID = msg.created.ID
		job.CreatedAt = msg.created.CreatedAt
		job.UpdatedAt = msg.created.UpdatedAt
		m.jobs.items = append(m.jobs.items, job)
		m.jobs.meta.TotalItems++
		m.jobs.selected = len(m.jobs.items) - 1
		m.jobs.loaded = true
		m.setNotice("Job added.", false)
		return m, nil
	}

	for i := range m.jobs.items {
		if m.jobs.items[i].ID == msg.id {
			applyDraft(&m.jobs.items[i], msg.draft)
			m.jobs.items[i].UpdatedAt = msg.updatedAt
		}
	}
	m.setNotice("Job updated.", false)
	return m, nil
}

func (m Model) handleResumeSaved(msg resumeSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setNotice("Resume download failed: "+formErrorText(msg.err), true)
		return m, nil
	}
	m.setNotice("Resume saved to "+msg.path, false)
	return m, nil
}

// formErrorText shows backend messages verbatim and local file problems
// as-is; anything else is a transport failure.
func formErrorText(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return err.Error()
	}
	return "Could not reach the server."
}

// jobFromDraft builds the locally held job for a freshly created draft.
func jobFromDraft(d api.JobDraft) api.Job {
	return api.Job{
		JobID:          d.JobID,
		URL:            d.URL,
		JobTitle:       d.JobTitle,
		Company:        d.Company,
		SalaryTarget:   d.SalaryTarget,
		SalaryRange:    d.SalaryRange,
		Status:         d.Status,
		Location:       d.Location,
		EmploymentType: d.EmploymentType,
	}
}

// applyDraft overlays the non-empty draft fields onto an existing job,
// mirroring the backend's partial-update semantics.
func applyDraft(job *api.Job, d api.JobDraft) {
	if d.JobID != "" {
		job.JobID = d.JobID
	}
	if d.URL != "" {
		job.URL = d.URL
	}
	if d.JobTitle != "" {
		job.JobTitle = d.JobTitle
	}
	if d.Company != "" {
		job.Company = d.Company
	}
	if d.SalaryTarget > 0 {
		job.SalaryTarget = d.SalaryTarget
	}
	if d.SalaryRange != "" {
		job.SalaryRange = d.SalaryRange
	}
	if d.Status != "" {
		job.Status = d.Status
	}
	if d.Location != "" {
		job.Location = d.Location
	}
	if d.EmploymentType != "" {
		job.EmploymentType = d.EmploymentType
	}
}

// renderJobForm renders the add/edit job form.
func (m Model) renderJobForm() string {
	var b strings.Builder

	title := "Add job"
	if m.form.editing() {
		title = "Edit job"
	}
	b.WriteString(m.styles.AccentText.Render(title))
	b.WriteString("\n\n")

	for i := range jfCount {
		b.WriteString(m.styles.MutedText.Render(jobFormLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}

	if m.form.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(m.form.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "enter save · tab next field · esc cancel"
	if m.form.submitting {
		hint = "Saving..."
	}
	b.WriteString(m.styles.MutedText.Render(hint))

	return m.styles.FocusedBorder.Render(b.String())
}
