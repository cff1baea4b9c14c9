package rest

import (
	"time"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

// JobResponse is one job posting as the feed and saved pages render it.
type JobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	URL            string    `json:"url"`
	SourcePlatform string    `json:"source_platform"`
	Location       string    `json:"location"`
	RoleCategory   string    `json:"role_category,omitempty"`
	Salary         string    `json:"salary,omitempty"`
	Description    string    `json:"description"`
	Tags           string    `json:"tags"`
	PostedAt       string    `json:"posted_at"`
	ScrapedAt      time.Time `json:"scraped_at"`
}

func toJobResponse(job domain.JobPosting) JobResponse {
	return JobResponse{
		ID:             job.ID.String(),
		Title:          job.Title,
		Company:        job.Company,
		URL:            job.URL,
		SourcePlatform: job.SourcePlatform,
		Location:       job.Location,
		RoleCategory:   job.RoleCategory,
		Salary:         job.Salary,
		Description:    job.Description,
		Tags:           job.Tags,
		PostedAt:       job.PostedAt,
		ScrapedAt:      job.ScrapedAt,
	}
}

// FeedJobResponse adds the lists a feed item is saved in.
type FeedJobResponse struct {
	JobResponse
	SavedIn []string `json:"saved_in"`
}

// PaginatedFeedResponse is the body of GET /api/v1/jobs.
type PaginatedFeedResponse struct {
	Data    []FeedJobResponse `json:"data"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Sources []string          `json:"sources"`
}

// SavedJobResponse is one saved entry joined with its job record.
type SavedJobResponse struct {
	JobResponse
	ListName string    `json:"list_name"`
	SavedAt  time.Time `json:"saved_at"`
}

// ListResponse describes one list with its entry count.
type ListResponse struct {
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	SavedCount int64     `json:"saved_count"`
}

// SavedViewResponse is the body of GET /api/v1/saved.
type SavedViewResponse struct {
	Data  []SavedJobResponse `json:"data"`
	Lists []ListResponse     `json:"lists"`
}

// StatsResponse is the body of GET /api/v1/stats.
type StatsResponse struct {
	TotalJobs int64            `json:"total_jobs"`
	SavedJobs int64            `json:"saved_jobs"`
	BySource  map[string]int64 `json:"by_source"`
}

// ScrapeRequest is the body of POST /api/v1/scrape.
type ScrapeRequest struct {
	Sources []string `json:"sources,omitempty"`
	Terms   []string `json:"terms,omitempty"`
}

// SourceOutcomeResponse is the per-source block of a run summary.
type SourceOutcomeResponse struct {
	Fetched int    `json:"fetched"`
	Status  string `json:"status"`
}

// RunSummaryResponse is the body returned by POST /api/v1/scrape.
type RunSummaryResponse struct {
	Sources           map[string]SourceOutcomeResponse `json:"sources"`
	Fetched           int                              `json:"fetched"`
	Inserted          int                              `json:"inserted"`
	SkippedDuplicates int                              `json:"skipped_duplicates"`
}

// SaveJobRequest is the body of POST /api/v1/jobs/{jobID}/save.
type SaveJobRequest struct {
	ListName string `json:"list_name"`
}

// CreateListRequest is the body of POST /api/v1/lists.
type CreateListRequest struct {
	Name string `json:"name"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
