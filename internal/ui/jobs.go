package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/api"
)

// sortFields are the job list sort keys in cycling order.
var sortFields = []string{"createdAt", "company", "jobTitle", "status", "salaryTarget"}

// jobsModel holds the paginated job list state.
type jobsModel struct {
	pageSize  int
	page      int
	sortBy    string
	sortOrder string

	filterInput   textinput.Model
	filtering     bool
	filterCompany string

	items    []api.Job
	meta     api.PageMeta
	selected int

	loaded        bool
	loading       bool
	errText       string
	confirmDelete bool

	width  int
	height int
}

func newJobsModel(pageSize int) jobsModel {
	if pageSize <= 0 {
		pageSize = 25
	}

	filter := textinput.New()
	filter.Placeholder = "company name"
	filter.CharLimit = 128
	filter.Width = 30

	return jobsModel{
		pageSize:    pageSize,
		page:        1,
		sortBy:      "createdAt",
		sortOrder:   "desc",
		filterInput: filter,
	}
}

func (j *jobsModel) resize(width, height int) {
	j.width = width
	j.height = height
}

// query builds the request for the current page, sort, and filter.
func (j jobsModel) query() api.JobQuery {
	q := api.JobQuery{
		Page:      j.page,
		PageSize:  j.pageSize,
		SortBy:    j.sortBy,
		SortOrder: j.sortOrder,
	}
	if j.filterCompany != "" {
		q.Filters = map[string]any{"company": j.filterCompany}
	}
	return q
}

// reloadJobs marks the list as loading and fires the fetch.
func (m *Model) reloadJobs() tea.Cmd {
	m.jobs.loading = true
	m.jobs.errText = ""
	return fetchJobsCmd(m.ctx, m.client, m.jobs.query())
}

// handleJobsKey processes keyboard input for the jobs view.
func (m Model) handleJobsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.jobs.filtering {
		return m.handleFilterKey(msg)
	}

	if m.jobs.confirmDelete {
		m.jobs.confirmDelete = false
		if msg.String() == "y" {
			if job := m.jobs.selectedJob(); job != nil {
				m.setNotice("Deleting "+job.Company+"...", false)
				return m, deleteJobCmd(m.ctx, m.client, job.ID)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.jobs.selected < len(m.jobs.items)-1 {
			m.jobs.selected++
		}
	case "k", "up":
		if m.jobs.selected > 0 {
			m.jobs.selected--
		}
	case "g", "home":
		m.jobs.selected = 0
	case "G", "end":
		if len(m.jobs.items) > 0 {
			m.jobs.selected = len(m.jobs.items) - 1
		}

	case "n", "right":
		if m.jobs.meta.TotalPages == 0 || m.jobs.page < m.jobs.meta.TotalPages {
			m.jobs.page++
			return m, m.reloadJobs()
		}
	case "p", "left":
		if m.jobs.page > 1 {
			m.jobs.page--
			return m, m.reloadJobs()
		}

	case "s":
		if m.jobs.sortOrder == "asc" {
			m.jobs.sortOrder = "desc"
		} else {
			m.jobs.sortOrder = "asc"
		}
		m.jobs.page = 1
		return m, m.reloadJobs()

	case "S":
		m.jobs.sortBy = nextSortField(m.jobs.sortBy)
		m.jobs.page = 1
		return m, m.reloadJobs()

	case "/":
		m.jobs.filtering = true
		m.jobs.filterInput.SetValue(m.jobs.filterCompany)
		return m, m.jobs.filterInput.Focus()

	case "x", "delete":
		if m.jobs.selectedJob() != nil {
			m.jobs.confirmDelete = true
		}

	case "c":
		m.form = newJobFormModel()
		m.showForm = true
		return m, textinputBlink()

	case "e":
		if job := m.jobs.selectedJob(); job != nil {
			m.form = newJobFormModel()
			m.form.prefill(*job)
			m.showForm = true
			return m, textinputBlink()
		}

	case "R":
		if job := m.jobs.selectedJob(); job != nil {
			m.setNotice("Downloading resume...", false)
			return m, downloadResumeCmd(m.ctx, m.client, job.ID)
		}

	case "r":
		return m, m.reloadJobs()
	}

	return m, nil
}

// handleFilterKey processes keyboard input while the filter prompt is open.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jobs.filtering = false
		m.jobs.filterInput.Blur()
		return m, nil

	case "enter":
		m.jobs.filtering = false
		m.jobs.filterInput.Blur()
		m.jobs.filterCompany = strings.TrimSpace(m.jobs.filterInput.Value())
		m.jobs.page = 1
		return m, m.reloadJobs()
	}

	var cmd tea.Cmd
	m.jobs.filterInput, cmd = m.jobs.filterInput.Update(msg)
	return m, cmd
}

func (m Model) handleJobsLoaded(msg jobsLoadedMsg) (tea.Model, tea.Cmd) {
	m.jobs.loading = false
	if msg.err != nil {
		m.jobs.errText = jobsErrorText(msg.err)
		return m, nil
	}

	m.jobs.loaded = true
	m.jobs.errText = ""
	m.jobs.items = msg.page.Items
	m.jobs.meta = msg.page.Meta
	if m.jobs.selected >= len(m.jobs.items) {
		m.jobs.selected = len(m.jobs.items) - 1
	}
	if m.jobs.selected < 0 {
		m.jobs.selected = 0
	}
	return m, nil
}

// handleJobDeleted removes the job locally instead of refetching the page.
func (m Model) handleJobDeleted(msg jobDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setNotice("Delete failed: "+jobsErrorText(msg.err), true)
		return m, nil
	}

	items := m.jobs.items[:0:0]
	for _, job := range m.jobs.items {
		if job.ID != msg.id {
			items = append(items, job)
		}
	}
	m.jobs.items = items
	if m.jobs.meta.TotalItems > 0 {
		m.jobs.meta.TotalItems--
	}
	if m.jobs.selected >= len(m.jobs.items) && m.jobs.selected > 0 {
		m.jobs.selected--
	}
	m.setNotice("Job deleted.", false)
	return m, nil
}

func (j jobsModel) selectedJob() *api.Job {
	if j.selected < 0 || j.selected >= len(j.items) {
		return nil
	}
	return &j.items[j.selected]
}

func nextSortField(current string) string {
	for i, f := range sortFields {
		if f == current {
			return sortFields[(i+1)%len(sortFields)]
		}
	}
	return sortFields[0]
}

// jobsErrorText maps a failure to the message shown in the jobs view.
func jobsErrorText(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message
	}
	return "Could not reach the server."
}

// Rendering

// jobColumn defines a column in the jobs table.
type jobColumn struct {
	label string
	width int
}

var jobColumns = []jobColumn{
	{"Company", 22},
	{"Title", 28},
	{"Status", 14},
	{"Location", 18},
	{"Salary", 12},
	{"Updated", 10},
}

// renderJobs renders the paginated jobs table.
func (m Model) renderJobs() string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Render("Jobs"))
	b.WriteString("  ")
	b.WriteString(m.styles.MutedText.Render(m.jobsStatusLine()))
	b.WriteString("\n\n")

	switch {
	case m.jobs.filtering:
		b.WriteString(m.styles.MutedText.Render("Filter by company (enter apply, esc cancel)"))
		b.WriteString("\n")
		b.WriteString(m.jobs.filterInput.View())
		b.WriteString("\n\n")
	case m.jobs.confirmDelete:
		if job := m.jobs.selectedJob(); job != nil {
			b.WriteString(m.styles.DangerText.Render(
				fmt.Sprintf("Delete %s at %s? (y/n)", job.JobTitle, job.Company)))
			b.WriteString("\n\n")
		}
	}

	switch {
	case m.jobs.loading && !m.jobs.loaded:
		b.WriteString(m.styles.MutedText.Render("Loading jobs..."))
	case m.jobs.errText != "":
		b.WriteString(m.styles.DangerText.Render(m.jobs.errText))
	case len(m.jobs.items) == 0:
		b.WriteString(m.styles.MutedText.Render("No jobs tracked yet."))
	default:
		b.WriteString(m.renderJobsTable())
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render(
		"j/k move · n/p page · s order · S sort field · / filter · c add · e edit · x delete · R resume · r reload"))

	return b.String()
}

// jobsStatusLine summarizes paging, sort, and filter state.
func (m Model) jobsStatusLine() string {
	parts := []string{
		fmt.Sprintf("page %d/%d", m.jobs.page, max(m.jobs.meta.TotalPages, 1)),
		fmt.Sprintf("%d total", m.jobs.meta.TotalItems),
		fmt.Sprintf("sort %s %s", m.jobs.sortBy, m.jobs.sortOrder),
	}
	if m.jobs.filterCompany != "" {
		parts = append(parts, "company="+m.jobs.filterCompany)
	}
	if m.jobs.loading {
		parts = append(parts, "refreshing...")
	}
	return strings.Join(parts, " · ")
}

// renderJobsTable builds the table rows directly with Lipgloss.
func (m Model) renderJobsTable() string {
	var lines []string

	var header strings.Builder
	for _, col := range jobColumns {
		header.WriteString(pad(col.label, col.width))
	}
	lines = append(lines, m.styles.AccentText.Render(header.String()))

	for i, job := range m.jobs.items {
		row := m.formatJobRow(job)
		if i == m.jobs.selected {
			lines = append(lines, m.styles.Selected.Render(row))
		} else {
			lines = append(lines, m.styles.Text.Render(row))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) formatJobRow(job api.Job) string {
	var b strings.Builder
	b.WriteString(pad(job.Company, jobColumns[0].width))
	b.WriteString(pad(job.JobTitle, jobColumns[1].width))
	b.WriteString(pad(statusLabel(job.Status), jobColumns[2].width))
	b.WriteString(pad(job.Location, jobColumns[3].width))
	b.WriteString(pad(formatSalary(job.SalaryTarget, job.SalaryRange), jobColumns[4].width))
	b.WriteString(pad(formatDay(job.UpdatedAt), jobColumns[5].width))
	return b.String()
}
