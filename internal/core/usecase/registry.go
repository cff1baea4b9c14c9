package usecase

import (
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

// FetcherRegistry maps source names to their fetcher adapters while keeping
// a stable registration order, so run results always come out in the same
// sequence.
type FetcherRegistry struct {
	fetchers map[string]port.JobFetcherPort
	order    []string
}

func NewFetcherRegistry() *FetcherRegistry {
	return &FetcherRegistry{
		fetchers: make(map[string]port.JobFetcherPort),
	}
}

// Register adds a fetcher under its own Name(). Registering the same name
// twice replaces the previous fetcher without changing its position.
func (r *FetcherRegistry) Register(fetcher port.JobFetcherPort) {
	name := fetcher.Name()
	if _, exists := r.fetchers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.fetchers[name] = fetcher
}

// Resolve returns the fetchers for the requested source names in
// registration order. Unknown names are silently skipped; an empty request
// resolves to every registered fetcher.
func (r *FetcherRegistry) Resolve(names []string) []port.JobFetcherPort {
	if len(names) == 0 {
		names = r.order
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}

	var resolved []port.JobFetcherPort
	for _, name := range r.order {
		if requested[name] {
			resolved = append(resolved, r.fetchers[name])
		}
	}
	return resolved
}

// Names returns every registered source name in registration order.
func (r *FetcherRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
