package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting is the canonical, source-agnostic representation of one job
// posting. Every fetcher adapter maps its raw API payload into this shape;
// nothing else crosses the adapter boundary.
type JobPosting struct {
	ID             uuid.UUID
	Title          string
	Company        string
	URL            string
	SourcePlatform string
	Location       string
	RoleCategory   string
	Salary         string
	Description    string
	Tags           string
	PostedAt       string
	// ScrapedAt is assigned by the store at insert time, never by adapters.
	ScrapedAt time.Time
}

// DefaultFeedLimit is the feed page size used when the caller does not ask
// for one.
const DefaultFeedLimit = 30

// FeedFilters describes the read-side filtering of the stored feed.
type FeedFilters struct {
	Source string // exact source_platform match
	Search string // case-insensitive substring over title/company/tags
	Days   int    // scraped within the last N days; 0 = no cutoff
}

// FeedJob is a stored posting enriched with the names of the lists it is
// saved in, as shown on the feed page.
type FeedJob struct {
	JobPosting
	SavedIn []string
}

// PaginatedFeed is the read-side result for one feed page.
type PaginatedFeed struct {
	Jobs         []FeedJob
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
	// Sources holds every distinct source_platform present in the store,
	// used to populate the feed's source filter.
	Sources []string
}

// FeedStats are the aggregate counters exposed on the stats endpoint.
type FeedStats struct {
	TotalJobs int64
	SavedJobs int64
	BySource  map[string]int64
}
