package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchJobs_EncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"success":true,"data":{"items":[{"id":"j1","jobTitle":"Engineer"}],"meta":{"page":2,"pageSize":10,"totalItems":11,"totalPages":2}},"error":null}`))
	}), Options{})

	page, err := c.FetchJobs(context.Background(), JobQuery{
		Page:      2,
		PageSize:  10,
		SortBy:    "company",
		SortOrder: "desc",
		Filters:   map[string]any{"status": "applied"},
	})
	require.NoError(t, err)

	require.Equal(t, "2", gotQuery.Get("page"))
	require.Equal(t, "10", gotQuery.Get("pageSize"))
	require.Equal(t, "company", gotQuery.Get("sortBy"))
	require.Equal(t, "desc", gotQuery.Get("sortOrder"))
	require.JSONEq(t, `{"status":"applied"}`, gotQuery.Get("filters"))

	require.Len(t, page.Items, 1)
	require.Equal(t, "j1", page.Items[0].ID)
	require.Equal(t, 2, page.Meta.Page)
	require.Equal(t, 11, page.Meta.TotalItems)
}

func TestFetchJobs_Defaults(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"success":true,"data":{"items":[],"meta":{"page":1,"pageSize":25,"totalItems":0,"totalPages":0}},"error":null}`))
	}), Options{})

	_, err := c.FetchJobs(context.Background(), JobQuery{})
	require.NoError(t, err)
	require.Equal(t, "1", gotQuery.Get("page"))
	require.Equal(t, "25", gotQuery.Get("pageSize"))
	require.Equal(t, "createdAt", gotQuery.Get("sortBy"))
	require.Equal(t, "asc", gotQuery.Get("sortOrder"))
	require.False(t, gotQuery.Has("filters"))
}

func TestCreateJob_JSONWithoutResume(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotBody map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"j9","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"},"error":null}`))
	}), Options{})

	created, err := c.CreateJob(context.Background(), JobDraft{
		URL:            "https://example.com/posting",
		JobTitle:       "Engineer",
		Company:        "Acme",
		SalaryTarget:   120000,
		Status:         "applied",
		Location:       "Remote",
		EmploymentType: "full-time",
	})
	require.NoError(t, err)
	require.Equal(t, "j9", created.ID)

	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "Engineer", gotBody["jobTitle"])
	require.Equal(t, float64(120000), gotBody["salaryTarget"])
	// Unset optionals stay absent so updates remain partial.
	require.NotContains(t, gotBody, "jobId")
	require.NotContains(t, gotBody, "salaryRange")
	require.NotContains(t, gotBody, "resume")
}

func TestCreateJob_MultipartWithResume(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotField string
	var gotFilename string
	var gotFile []byte
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotField = r.FormValue("company")
		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		gotFilename = header.Filename
		gotFile, err = io.ReadAll(file)
		require.NoError(t, err)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"j1","createdAt":"c","updatedAt":"u"},"error":null}`))
	}), Options{})

	_, err := c.CreateJob(context.Background(), JobDraft{
		Company:      "Acme",
		JobTitle:     "Engineer",
		SalaryTarget: 90000,
		Resume: &ResumeUpload{
			Filename: "resume.pdf",
			Content:  strings.NewReader("%PDF-1.4 fake"),
		},
	})
	require.NoError(t, err)

	// The form supplies its own boundary; the client never authors a
	// content type for multipart bodies.
	require.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="))
	require.Equal(t, "Acme", gotField)
	require.Equal(t, "resume.pdf", gotFilename)
	require.Equal(t, "%PDF-1.4 fake", string(gotFile))
}

func TestUpdateJob_ReturnsOnlyUpdatedAt(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	var gotBody map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success":true,"data":{"updatedAt":"2026-02-02T00:00:00Z"},"error":null}`))
	}), Options{})

	updated, err := c.UpdateJob(context.Background(), "j1", JobDraft{Status: "interviewing"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/api/jobs/j1", gotPath)
	require.Equal(t, map[string]any{"status": "interviewing"}, gotBody)
	require.Equal(t, "2026-02-02T00:00:00Z", updated.UpdatedAt)
}

func TestDeleteJob(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"data":null,"error":null}`))
	}), Options{})

	require.NoError(t, c.DeleteJob(context.Background(), "j7"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/jobs/j7", gotPath)
}
