package remotivefetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "jobs": [
    {
      "title": "Data Engineer",
      "company_name": "Acme ",
      "url": "https://remotive.com/remote-jobs/data/data-engineer-1",
      "category": "Data",
      "tags": ["python", "sql"],
      "publication_date": "2026-08-10T12:00:00Z",
      "salary": "$90k",
      "candidate_required_location": "",
      "description": "Build pipelines."
    },
    {
      "title": "",
      "company_name": "NoTitle Inc",
      "url": "https://remotive.com/remote-jobs/x",
      "description": "should be dropped"
    },
    {
      "title": "Analyst",
      "company_name": "Beta",
      "url": "",
      "description": "no url, dropped too"
    }
  ]
}`

func TestRemotiveFetch_MapsAndFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "JobFeedApp/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	adapter := NewRemotiveFetcherAdapterWithURL(srv.URL, "data")
	records, err := adapter.Fetch(context.Background(), []string{"python", "sql"})

	require.NoError(t, err)
	require.Len(t, records, 1)

	job := records[0]
	assert.Equal(t, "Data Engineer", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "remotive", job.SourcePlatform)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "Data", job.RoleCategory)
	assert.Equal(t, "python, sql", job.Tags)
	assert.Equal(t, "2026-08-10 12:00", job.PostedAt)

	assert.Contains(t, gotQuery, "category=data")
	assert.Contains(t, gotQuery, "search=python+sql")
}

func TestRemotiveFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	adapter := NewRemotiveFetcherAdapterWithURL(srv.URL, "")
	records, err := adapter.Fetch(context.Background(), nil)

	require.Error(t, err)
	assert.Empty(t, records)
	assert.True(t, strings.Contains(err.Error(), "502"))
}

func TestRemotiveFetch_LongDescriptionIsTruncated(t *testing.T) {
	long := strings.Repeat("a", 800)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs":[{"title":"Dev","company_name":"C","url":"https://x","description":"` + long + `"}]}`))
	}))
	defer srv.Close()

	adapter := NewRemotiveFetcherAdapterWithURL(srv.URL, "")
	records, err := adapter.Fetch(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Description, 500)
}
