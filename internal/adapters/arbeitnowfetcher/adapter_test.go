package arbeitnowfetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageBody(page int, next string, jobs string) string {
	return fmt.Sprintf(`{"data":[%s],"links":{"next":"%s"}}`, jobs, next)
}

const jobTemplate = `{
  "title": "%s",
  "company_name": "Werk GmbH",
  "url": "https://arbeitnow.com/jobs/%s",
  "tags": ["berlin", "go"],
  "location": "Berlin",
  "remote": %t,
  "created_at": 1754900000,
  "description": "Tu was."
}`

func job(title, slug string, remote bool) string {
	return fmt.Sprintf(jobTemplate, title, slug, remote)
}

func TestArbeitnowFetch_FollowsPaginationUpToCap(t *testing.T) {
	var pagesServed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)
		// Every page advertises a next link; the cap must stop us at 3.
		w.Write([]byte(pageBody(1, "https://next", job("Dev "+page, "dev-"+page, false))))
	}))
	defer srv.Close()

	adapter := NewArbeitnowFetcherAdapterWithURL(srv.URL)
	records, err := adapter.Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, pagesServed)
	assert.Len(t, records, 3)
}

func TestArbeitnowFetch_StopsWithoutNextLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageBody(1, "", job("Dev", "dev", false))))
	}))
	defer srv.Close()

	adapter := NewArbeitnowFetcherAdapterWithURL(srv.URL)
	records, err := adapter.Fetch(context.Background(), nil)

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestArbeitnowFetch_PartialResultsOnLaterPageFailure(t *testing.T) {
	var page int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page++
		if page > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(pageBody(1, "https://next", job("Dev", "dev", false))))
	}))
	defer srv.Close()

	adapter := NewArbeitnowFetcherAdapterWithURL(srv.URL)
	records, err := adapter.Fetch(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
	// Page 1 results survive the failure of page 2.
	assert.Len(t, records, 1)
}

func TestArbeitnowFetch_RemoteLocationMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageBody(1, "", job("Dev", "dev", true))))
	}))
	defer srv.Close()

	adapter := NewArbeitnowFetcherAdapterWithURL(srv.URL)
	records, err := adapter.Fetch(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Berlin (Remote)", records[0].Location)
	assert.Equal(t, "2025-08-11 08:13", records[0].PostedAt)
}

func TestArbeitnowFetch_ClientSideTermFilter(t *testing.T) {
	jobs := job("Go Developer", "go-dev", false) + "," + job("Accountant", "acct", false)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageBody(1, "", jobs)))
	}))
	defer srv.Close()

	adapter := NewArbeitnowFetcherAdapterWithURL(srv.URL)
	records, err := adapter.Fetch(context.Background(), []string{"accountant"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Accountant", records[0].Title)
}
