package arbeitnowfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSprintALot/job-feed/internal/constants"
	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

const defaultAPIURL = "https://www.arbeitnow.com/api/job-board-api"

// ArbeitnowFetcherAdapter pulls listings from the Arbeitnow job board API,
// following pagination up to a fixed page cap. The API has no search
// parameter, so search terms are applied client-side.
type ArbeitnowFetcherAdapter struct {
	apiURL string
	client *http.Client
}

func NewArbeitnowFetcherAdapter() *ArbeitnowFetcherAdapter {
	return &ArbeitnowFetcherAdapter{
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: constants.HTTPClientTimeout},
	}
}

func NewArbeitnowFetcherAdapterWithURL(apiURL string) *ArbeitnowFetcherAdapter {
	a := NewArbeitnowFetcherAdapter()
	a.apiURL = apiURL
	return a
}

func (a *ArbeitnowFetcherAdapter) Name() string {
	return constants.SourceArbeitnow
}

type arbeitnowResponse struct {
	Data  []arbeitnowJob `json:"data"`
	Links arbeitnowLinks `json:"links"`
}

type arbeitnowLinks struct {
	Next string `json:"next"`
}

type arbeitnowJob struct {
	Title       string      `json:"title"`
	CompanyName string      `json:"company_name"`
	URL         string      `json:"url"`
	Tags        []string    `json:"tags"`
	Location    string      `json:"location"`
	Remote      bool        `json:"remote"`
	CreatedAt   json.Number `json:"created_at"`
	Description string      `json:"description"`
}

func (a *ArbeitnowFetcherAdapter) Fetch(ctx context.Context, searchTerms []string) ([]domain.JobPosting, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "ArbeitnowFetcherAdapter"})

	var records []domain.JobPosting
	for page := 1; page <= constants.MaxPages; page++ {
		pageResp, err := a.fetchPage(ctx, page)
		if err != nil {
			// Later pages failing must not discard what earlier pages gave us.
			fetchLogger.Warn("Page fetch failed", port.Fields{
				"page":  page,
				"error": err.Error(),
			})
			return records, fmt.Errorf("arbeitnow adapter: page %d: %w", page, err)
		}
		if len(pageResp.Data) == 0 {
			break
		}

		records = append(records, a.mapPage(pageResp.Data, searchTerms)...)

		if pageResp.Links.Next == "" {
			break
		}
	}

	fetchLogger.Info("Finished fetching", port.Fields{"fetched": len(records)})
	return records, nil
}

func (a *ArbeitnowFetcherAdapter) fetchPage(ctx context.Context, page int) (*arbeitnowResponse, error) {
	reqURL := fmt.Sprintf("%s?page=%d", a.apiURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var apiResp arbeitnowResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &apiResp, nil
}

func (a *ArbeitnowFetcherAdapter) mapPage(items []arbeitnowJob, searchTerms []string) []domain.JobPosting {
	var records []domain.JobPosting
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.URL == "" {
			continue
		}

		tags := domain.JoinTags(item.Tags)
		company := strings.TrimSpace(item.CompanyName)
		if !domain.MatchesAnyTerm(searchTerms, title, tags, company) {
			continue
		}

		records = append(records, domain.JobPosting{
			Title:          title,
			Company:        company,
			URL:            item.URL,
			SourcePlatform: a.Name(),
			Location:       formatLocation(item.Location, item.Remote),
			Description:    domain.TruncateDescription(item.Description),
			Tags:           tags,
			PostedAt:       formatCreatedAt(item.CreatedAt),
		})
	}
	return records
}

// formatLocation appends a remote marker to on-site locations of remote
// postings.
func formatLocation(location string, remote bool) string {
	location = domain.LocationOrRemote(location)
	if remote && location != "Remote" {
		return location + " (Remote)"
	}
	return location
}

// formatCreatedAt turns the API's unix timestamp into the normalized posted
// form; non-numeric input is passed through unchanged.
func formatCreatedAt(raw json.Number) string {
	epoch, err := strconv.ParseInt(raw.String(), 10, 64)
	if err != nil {
		return raw.String()
	}
	return domain.EpochToPostedAt(epoch)
}
