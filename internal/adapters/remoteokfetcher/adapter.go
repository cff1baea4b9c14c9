package remoteokfetcher

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

const defaultAPIURL = "https://remoteok.com/api"

// RemoteOKFetcherAdapter pulls listings from the RemoteOK public API. The
// API has no search parameter, so search terms are applied client-side over
// title, tags and company.
type RemoteOKFetcherAdapter struct {
	apiURL string
	client *http.Client
}

func NewRemoteOKFetcherAdapter() *RemoteOKFetcherAdapter {
	return &RemoteOKFetcherAdapter{
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: constants.HTTPClientTimeout},
	}
}

func NewRemoteOKFetcherAdapterWithURL(apiURL string) *RemoteOKFetcherAdapter {
	a := NewRemoteOKFetcherAdapter()
	a.apiURL = apiURL
	return a
}

func (a *RemoteOKFetcherAdapter) Name() string {
	return constants.SourceRemoteOK
}

type remoteOKItem struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	URL         string   `json:"url"`
	Slug        string   `json:"slug"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	SalaryMin   flexInt  `json:"salary_min"`
	SalaryMax   flexInt  `json:"salary_max"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
}

// flexInt tolerates salary bounds shipped either as numbers or as quoted
// strings. A string that does not parse as a number reads as zero, which
// formatSalary treats as an absent bound.
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := num.Int64(); err == nil {
			*n = flexInt(v)
		} else if f, err := num.Float64(); err == nil {
			*n = flexInt(f)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		*n = flexInt(v)
	}
	return nil
}

func (a *RemoteOKFetcherAdapter) Fetch(ctx context.Context, searchTerms []string) ([]domain.JobPosting, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "RemoteOKFetcherAdapter"})

	fetchLogger.Debug("Making request", port.Fields{"url": a.apiURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok adapter: %w", err)
	}
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok adapter: http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remoteok adapter: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remoteok adapter: status %d", resp.StatusCode)
	}

	var items []remoteOKItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("remoteok adapter: json unmarshal: %w", err)
	}

	// The first array element is a legal notice, not a listing.
	if len(items) > 1 {
		items = items[1:]
	}

	var records []domain.JobPosting
	for _, item := range items {
		title := strings.TrimSpace(item.Position)
		jobURL := item.URL
		if jobURL == "" && item.Slug != "" {
			jobURL = "https://remoteok.com/remote-jobs/" + item.Slug
		}
		if title == "" || jobURL == "" {
			continue
		}

		tags := domain.JoinTags(item.Tags)
		company := strings.TrimSpace(item.Company)
		if !domain.MatchesAnyTerm(searchTerms, title, tags, company) {
			continue
		}

		records = append(records, domain.JobPosting{
			Title:          title,
			Company:        company,
			URL:            jobURL,
			SourcePlatform: a.Name(),
			Location:       domain.LocationOrRemote(item.Location),
			Salary:         formatSalary(int64(item.SalaryMin), int64(item.SalaryMax)),
			Description:    domain.TruncateDescription(item.Description),
			Tags:           tags,
			PostedAt:       domain.NormalizePostedAt(item.Date),
		})
	}

	fetchLogger.Info("Finished fetching", port.Fields{"fetched": len(records)})
	return records, nil
}

// formatSalary renders the annual range as "$70,000 – $90,000", or
// "$70,000+" when only the lower bound is known.
func formatSalary(min, max int64) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("$%s – $%s", groupThousands(min), groupThousands(max))
	case min > 0:
		return fmt.Sprintf("$%s+", groupThousands(min))
	default:
		return ""
	}
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
