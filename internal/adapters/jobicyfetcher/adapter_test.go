package jobicyfetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "jobs": [
    {
      "jobTitle": "ML Engineer",
      "companyName": "DeepThought",
      "url": "https://jobicy.com/jobs/ml-engineer",
      "jobGeo": "Europe",
      "jobIndustry": ["Engineering", "Data Science"],
      "jobType": "full-time",
      "annualSalaryMin": 60000,
      "annualSalaryMax": 80000,
      "salaryCurrency": "EUR",
      "pubDate": "2026-08-11 10:00:00",
      "jobDescription": "Train models."
    },
    {
      "jobTitle": "Support Agent",
      "companyName": "Helpful",
      "url": "https://jobicy.com/jobs/support-agent",
      "jobGeo": "",
      "jobIndustry": "Customer Success",
      "jobType": ["full-time", "part-time"],
      "annualSalaryMin": "35000",
      "jobDescription": "Answer tickets."
    }
  ]
}`

func TestJobicyFetch_MapsFlexibleFields(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(fixture))
	}))
	defer srv.Close()

	adapter := NewJobicyFetcherAdapterWithURL(srv.URL, "emea", "engineering", 50)
	records, err := adapter.Fetch(context.Background(), []string{"machine learning"})

	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "ML Engineer", first.Title)
	assert.Equal(t, "jobicy", first.SourcePlatform)
	assert.Equal(t, "Europe", first.Location)
	assert.Equal(t, "Engineering, Data Science", first.RoleCategory)
	assert.Equal(t, "full-time", first.Tags)
	assert.Equal(t, "EUR 60000 – 80000", first.Salary)
	assert.Equal(t, "2026-08-11 10:00:00", first.PostedAt)

	second := records[1]
	assert.Equal(t, "Remote", second.Location)
	assert.Equal(t, "Customer Success", second.RoleCategory)
	assert.Equal(t, "full-time, part-time", second.Tags)
	assert.Equal(t, "USD 35000+", second.Salary)

	assert.Contains(t, gotQuery, "count=50")
	assert.Contains(t, gotQuery, "geo=emea")
	assert.Contains(t, gotQuery, "industry=engineering")
	assert.Contains(t, gotQuery, "tag=machine+learning")
}

func TestJobicyFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	adapter := NewJobicyFetcherAdapterWithURL(srv.URL, "", "", 0)
	records, err := adapter.Fetch(context.Background(), nil)

	require.Error(t, err)
	assert.Empty(t, records)
}
