package usecase

import (
	"context"
	"testing"

	"github.com/MrSprintALot/job-feed/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

type stubFetcher struct {
	name string
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) Fetch(ctx context.Context, searchTerms []string) ([]domain.JobPosting, error) {
	return nil, nil
}

func TestFetcherRegistry_ResolveAllWhenEmpty(t *testing.T) {
	reg := NewFetcherRegistry()
	reg.Register(&stubFetcher{name: "remotive"})
	reg.Register(&stubFetcher{name: "remoteok"})
	reg.Register(&stubFetcher{name: "jobicy"})

	resolved := reg.Resolve(nil)

	assert.Len(t, resolved, 3)
	assert.Equal(t, "remotive", resolved[0].Name())
	assert.Equal(t, "remoteok", resolved[1].Name())
	assert.Equal(t, "jobicy", resolved[2].Name())
}

func TestFetcherRegistry_ResolveSkipsUnknownNames(t *testing.T) {
	reg := NewFetcherRegistry()
	reg.Register(&stubFetcher{name: "remotive"})
	reg.Register(&stubFetcher{name: "arbeitnow"})

	resolved := reg.Resolve([]string{"remotive", "linkedin", "arbeitnow"})

	assert.Len(t, resolved, 2)
	assert.Equal(t, "remotive", resolved[0].Name())
	assert.Equal(t, "arbeitnow", resolved[1].Name())
}

func TestFetcherRegistry_ResolveAllUnknown(t *testing.T) {
	reg := NewFetcherRegistry()
	reg.Register(&stubFetcher{name: "remotive"})

	resolved := reg.Resolve([]string{"monster", "indeed"})

	assert.Empty(t, resolved)
}

func TestFetcherRegistry_RegistrationOrderIsStable(t *testing.T) {
	reg := NewFetcherRegistry()
	reg.Register(&stubFetcher{name: "jobicy"})
	reg.Register(&stubFetcher{name: "remotive"})

	// Re-registering replaces the fetcher but keeps its slot.
	reg.Register(&stubFetcher{name: "jobicy"})

	assert.Equal(t, []string{"jobicy", "remotive"}, reg.Names())
}
