package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSprintALot/job-feed/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	name    string
	records []domain.JobPosting
	err     error
	panics  bool
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(ctx context.Context, searchTerms []string) ([]domain.JobPosting, error) {
	if f.panics {
		panic("fetcher blew up")
	}
	return f.records, f.err
}

// fakeStorage deduplicates on url in memory, mirroring the store's
// first-write-wins behaviour.
type fakeStorage struct {
	seen map[string]bool
	err  error

	lastBatch []domain.JobPosting
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{seen: make(map[string]bool)}
}

func (s *fakeStorage) InsertBatch(ctx context.Context, records []domain.JobPosting) (int, int, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	s.lastBatch = records

	inserted, skipped := 0, 0
	for _, r := range records {
		if s.seen[r.URL] {
			skipped++
			continue
		}
		s.seen[r.URL] = true
		inserted++
	}
	return inserted, skipped, nil
}

func posting(url string) domain.JobPosting {
	return domain.JobPosting{Title: "Data Engineer", Company: "Acme", URL: url, SourcePlatform: "remotive"}
}

func newRunUseCase(storage *fakeStorage, fetchers ...*fakeFetcher) *RunAggregationUseCase {
	reg := NewFetcherRegistry()
	for _, f := range fetchers {
		reg.Register(f)
	}
	return NewRunAggregationUseCase(reg, storage, nil)
}

func TestRunAggregation_CountsAcrossSources(t *testing.T) {
	storage := newFakeStorage()
	uc := newRunUseCase(storage,
		&fakeFetcher{name: "remotive", records: []domain.JobPosting{posting("https://a"), posting("https://b")}},
		&fakeFetcher{name: "jobicy", records: []domain.JobPosting{posting("https://c")}},
	)

	summary, err := uc.Execute(context.Background(), nil, []string{"data"})

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 3, summary.Inserted)
	assert.Equal(t, 0, summary.SkippedDuplicates)
	assert.Equal(t, domain.StatusOK, summary.Sources["remotive"].Status)
	assert.Equal(t, 2, summary.Sources["remotive"].Fetched)
	assert.Equal(t, 1, summary.Sources["jobicy"].Fetched)
}

func TestRunAggregation_SecondRunSkipsEverything(t *testing.T) {
	storage := newFakeStorage()
	uc := newRunUseCase(storage,
		&fakeFetcher{name: "remotive", records: []domain.JobPosting{posting("https://a"), posting("https://b")}},
	)

	first, err := uc.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 2, first.Inserted)

	second, err := uc.Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Fetched)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.SkippedDuplicates)
}

func TestRunAggregation_FailingSourceDoesNotPoisonOthers(t *testing.T) {
	storage := newFakeStorage()
	uc := newRunUseCase(storage,
		&fakeFetcher{name: "remotive", records: []domain.JobPosting{posting("https://a")}},
		&fakeFetcher{name: "remoteok", err: errors.New("status 503")},
	)

	summary, err := uc.Execute(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOK, summary.Sources["remotive"].Status)
	assert.Equal(t, "error: status 503", summary.Sources["remoteok"].Status)
	assert.Equal(t, 0, summary.Sources["remoteok"].Fetched)
	assert.Equal(t, 1, summary.Inserted)
}

func TestRunAggregation_PartialResultsAreStillPersisted(t *testing.T) {
	storage := newFakeStorage()
	uc := newRunUseCase(storage,
		&fakeFetcher{
			name:    "arbeitnow",
			records: []domain.JobPosting{posting("https://a"), posting("https://b")},
			err:     errors.New("page 2: connection reset"),
		},
	)

	summary, err := uc.Execute(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Sources["arbeitnow"].Fetched)
	assert.Equal(t, "error: page 2: connection reset", summary.Sources["arbeitnow"].Status)
	assert.Equal(t, 2, summary.Inserted)
}

func TestRunAggregation_PanickingFetcherIsContained(t *testing.T) {
	storage := newFakeStorage()
	uc := newRunUseCase(storage,
		&fakeFetcher{name: "remotive", records: []domain.JobPosting{posting("https://a")}},
		&fakeFetcher{name: "jobicy", panics: true},
	)

	summary, err := uc.Execute(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "error: panic: fetcher blew up", summary.Sources["jobicy"].Status)
	assert.Equal(t, 1, summary.Inserted)
}

func TestRunAggregation_SubsetOfSources(t *testing.T) {
	storage := newFakeStorage()
	remotive := &fakeFetcher{name: "remotive", records: []domain.JobPosting{posting("https://a")}}
	jobicy := &fakeFetcher{name: "jobicy", records: []domain.JobPosting{posting("https://b")}}
	uc := newRunUseCase(storage, remotive, jobicy)

	summary, err := uc.Execute(context.Background(), []string{"jobicy"}, nil)

	require.NoError(t, err)
	assert.Len(t, summary.Sources, 1)
	assert.Contains(t, summary.Sources, "jobicy")
	assert.Equal(t, 1, summary.Inserted)
}

func TestRunAggregation_StorageUnavailableAbortsRun(t *testing.T) {
	storage := newFakeStorage()
	storage.err = errors.New("connection refused")
	uc := newRunUseCase(storage,
		&fakeFetcher{name: "remotive", records: []domain.JobPosting{posting("https://a")}},
	)

	summary, err := uc.Execute(context.Background(), nil, nil)

	require.Error(t, err)
	assert.Nil(t, summary)
}

func TestRunAggregation_BatchPreservesResolutionOrder(t *testing.T) {
	storage := newFakeStorage()
	fromRemoteOK := posting("https://dup")
	fromRemoteOK.SourcePlatform = "remoteok"
	uc := newRunUseCase(storage,
		&fakeFetcher{name: "remotive", records: []domain.JobPosting{posting("https://dup")}},
		&fakeFetcher{name: "remoteok", records: []domain.JobPosting{fromRemoteOK}},
	)

	summary, err := uc.Execute(context.Background(), nil, nil)

	require.NoError(t, err)
	require.Len(t, storage.lastBatch, 2)
	assert.Equal(t, "remotive", storage.lastBatch[0].SourcePlatform)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.SkippedDuplicates)
}
