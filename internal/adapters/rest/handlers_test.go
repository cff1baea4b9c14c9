package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSprintALot/job-feed/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedUC struct {
	gotFilters domain.FeedFilters
	gotLimit   int
	gotOffset  int
	feed       *domain.PaginatedFeed
	err        error
}

func (f *fakeFeedUC) Execute(ctx context.Context, filters domain.FeedFilters, limit, offset int) (*domain.PaginatedFeed, error) {
	f.gotFilters, f.gotLimit, f.gotOffset = filters, limit, offset
	return f.feed, f.err
}

type fakeStatsUC struct {
	stats *domain.FeedStats
	err   error
}

func (f *fakeStatsUC) Execute(ctx context.Context) (*domain.FeedStats, error) {
	return f.stats, f.err
}

type fakeRunUC struct {
	gotSources []string
	gotTerms   []string
	summary    *domain.RunSummary
	err        error
}

func (f *fakeRunUC) Execute(ctx context.Context, sources []string, terms []string) (*domain.RunSummary, error) {
	f.gotSources, f.gotTerms = sources, terms
	return f.summary, f.err
}

type fakeSaveUC struct {
	gotJobID uuid.UUID
	gotList  string
	err      error
}

func (f *fakeSaveUC) Execute(ctx context.Context, jobID uuid.UUID, listName string) error {
	f.gotJobID, f.gotList = jobID, listName
	return f.err
}

type fakeListUC struct {
	gotName string
	err     error
}

func (f *fakeListUC) Execute(ctx context.Context, name string) error {
	f.gotName = name
	return f.err
}

type fakeGetSavedUC struct {
	gotList string
	view    *domain.SavedView
	err     error
}

func (f *fakeGetSavedUC) Execute(ctx context.Context, listName string) (*domain.SavedView, error) {
	f.gotList = listName
	return f.view, f.err
}

func newTestRouter(feedUC *fakeFeedUC, statsUC *fakeStatsUC, runUC *fakeRunUC, saveUC, unsaveUC *fakeSaveUC, getSavedUC *fakeGetSavedUC, createListUC, deleteListUC *fakeListUC) http.Handler {
	feedHandler := NewFeedHandler(feedUC, statsUC)
	savedHandler := NewSavedHandler(saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)
	scrapeHandler := NewScrapeHandler(runUC, []string{"data"})

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/jobs", feedHandler.GetJobs)
		r.Post("/jobs/{jobID}/save", savedHandler.SaveJob)
		r.Delete("/jobs/{jobID}/save", savedHandler.UnsaveJob)
		r.Get("/saved", savedHandler.GetSaved)
		r.Get("/saved/{list}", savedHandler.GetSaved)
		r.Post("/lists", savedHandler.CreateList)
		r.Delete("/lists/{name}", savedHandler.DeleteList)
		r.Get("/stats", feedHandler.GetStats)
		r.Post("/scrape", scrapeHandler.TriggerScrape)
	})
	return r
}

func defaultFakes() (*fakeFeedUC, *fakeStatsUC, *fakeRunUC, *fakeSaveUC, *fakeSaveUC, *fakeGetSavedUC, *fakeListUC, *fakeListUC) {
	feedUC := &fakeFeedUC{feed: &domain.PaginatedFeed{Jobs: []domain.FeedJob{}, CurrentPage: 1, ItemsPerPage: 30}}
	statsUC := &fakeStatsUC{stats: &domain.FeedStats{TotalJobs: 5, SavedJobs: 2, BySource: map[string]int64{"remotive": 5}}}
	runUC := &fakeRunUC{summary: &domain.RunSummary{
		Sources:  map[string]domain.SourceOutcome{"remotive": {Fetched: 3, Status: domain.StatusOK}},
		Fetched:  3,
		Inserted: 2, SkippedDuplicates: 1,
	}}
	saveUC := &fakeSaveUC{}
	unsaveUC := &fakeSaveUC{}
	getSavedUC := &fakeGetSavedUC{view: &domain.SavedView{}}
	createListUC := &fakeListUC{}
	deleteListUC := &fakeListUC{}
	return feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC
}

func TestGetJobs_ParsesQueryParams(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?source=remotive&search=python&days=7&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FeedFilters{Source: "remotive", Search: "python", Days: 7}, feedUC.gotFilters)
	assert.Equal(t, 10, feedUC.gotLimit)
	assert.Equal(t, 20, feedUC.gotOffset)
}

func TestGetJobs_DefaultsWhenParamsAbsent(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DefaultFeedLimit, feedUC.gotLimit)
	assert.Equal(t, 0, feedUC.gotOffset)
}

func TestGetStats(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.TotalJobs)
	assert.Equal(t, int64(2), resp.SavedJobs)
	assert.Equal(t, int64(5), resp.BySource["remotive"])
}

func TestTriggerScrape_ReturnsSummary(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	body := `{"sources":["remotive"],"terms":["python","sql"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"remotive"}, runUC.gotSources)
	assert.Equal(t, []string{"python", "sql"}, runUC.gotTerms)

	var resp RunSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Fetched)
	assert.Equal(t, 2, resp.Inserted)
	assert.Equal(t, 1, resp.SkippedDuplicates)
	assert.Equal(t, "ok", resp.Sources["remotive"].Status)
}

func TestTriggerScrape_EmptyBodyUsesDefaultTerms(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"data"}, runUC.gotTerms)
	assert.Empty(t, runUC.gotSources)
}

func TestTriggerScrape_RejectsUnknownFields(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	body := `{"sources":["remotive"],"bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveJob_DefaultsAndStatus(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	jobID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/save", strings.NewReader(`{"list_name":"Dream Jobs"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, jobID, saveUC.gotJobID)
	assert.Equal(t, "Dream Jobs", saveUC.gotList)
}

func TestSaveJob_InvalidID(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/not-a-uuid/save", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveJob_JobNotFound(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	saveUC.err = domain.ErrJobNotFound
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+uuid.NewString()+"/save", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnsaveJob_PassesListFromQuery(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	jobID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/"+jobID.String()+"/save?list=Backend", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, jobID, unsaveUC.gotJobID)
	assert.Equal(t, "Backend", unsaveUC.gotList)
}

func TestGetSaved_ByList(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/saved/Backend", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend", getSavedUC.gotList)
}

func TestCreateList_Conflict(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	createListUC.err = domain.ErrListExists
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", strings.NewReader(`{"name":"Backend"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Backend", createListUC.gotName)
}

func TestDeleteList_ProtectedAndMissing(t *testing.T) {
	feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC := defaultFakes()
	deleteListUC.err = domain.ErrDefaultListProtected
	router := newTestRouter(feedUC, statsUC, runUC, saveUC, unsaveUC, getSavedUC, createListUC, deleteListUC)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/lists/Saved", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	deleteListUC.err = domain.ErrListNotFound
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/lists/Nope", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
