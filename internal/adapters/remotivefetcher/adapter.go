package remotivefetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSprintALot/job-feed/internal/constants"
	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

const defaultAPIURL = "https://remotive.com/api/remote-jobs"

// RemotiveFetcherAdapter pulls listings from the Remotive public API.
// Remotive supports server-side search, so search terms are pushed into the
// request instead of being filtered locally.
type RemotiveFetcherAdapter struct {
	apiURL   string
	category string
	client   *http.Client
}

func NewRemotiveFetcherAdapter(category string) *RemotiveFetcherAdapter {
	return &RemotiveFetcherAdapter{
		apiURL:   defaultAPIURL,
		category: category,
		client:   &http.Client{Timeout: constants.HTTPClientTimeout},
	}
}

// NewRemotiveFetcherAdapterWithURL is used by tests to point the adapter at
// a stub server.
func NewRemotiveFetcherAdapterWithURL(apiURL, category string) *RemotiveFetcherAdapter {
	a := NewRemotiveFetcherAdapter(category)
	a.apiURL = apiURL
	return a
}

func (a *RemotiveFetcherAdapter) Name() string {
	return constants.SourceRemotive
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	URL             string   `json:"url"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	PublicationDate string   `json:"publication_date"`
	Salary          string   `json:"salary"`
	Location        string   `json:"candidate_required_location"`
	Description     string   `json:"description"`
}

func (a *RemotiveFetcherAdapter) Fetch(ctx context.Context, searchTerms []string) ([]domain.JobPosting, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "RemotiveFetcherAdapter"})

	reqURL, err := a.buildURL(searchTerms)
	if err != nil {
		return nil, fmt.Errorf("remotive adapter: failed to build URL: %w", err)
	}

	fetchLogger.Debug("Making request", port.Fields{"url": reqURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remotive adapter: %w", err)
	}
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remotive adapter: http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remotive adapter: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remotive adapter: status %d", resp.StatusCode)
	}

	var apiResp remotiveResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("remotive adapter: json unmarshal: %w", err)
	}

	var records []domain.JobPosting
	for _, item := range apiResp.Jobs {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.URL == "" {
			continue
		}

		records = append(records, domain.JobPosting{
			Title:          title,
			Company:        strings.TrimSpace(item.CompanyName),
			URL:            item.URL,
			SourcePlatform: a.Name(),
			Location:       domain.LocationOrRemote(item.Location),
			RoleCategory:   item.Category,
			Salary:         item.Salary,
			Description:    domain.TruncateDescription(item.Description),
			Tags:           domain.JoinTags(item.Tags),
			PostedAt:       domain.NormalizePostedAt(item.PublicationDate),
		})
	}

	fetchLogger.Info("Finished fetching", port.Fields{"fetched": len(records)})
	return records, nil
}

func (a *RemotiveFetcherAdapter) buildURL(searchTerms []string) (string, error) {
	u, err := url.Parse(a.apiURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	if a.category != "" {
		q.Set("category", a.category)
	}
	if len(searchTerms) > 0 {
		q.Set("search", strings.Join(searchTerms, " "))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
