package jobicyfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSprintALot/job-feed/internal/constants"
	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

const defaultAPIURL = "https://jobicy.com/api/v2/remote-jobs"

// JobicyFetcherAdapter pulls listings from the Jobicy public API. Search
// terms are pushed server-side through the tag parameter; geo and industry
// narrow the result set further.
type JobicyFetcherAdapter struct {
	apiURL   string
	geo      string
	industry string
	count    int
	client   *http.Client
}

func NewJobicyFetcherAdapter(geo, industry string, count int) *JobicyFetcherAdapter {
	if count <= 0 {
		count = 50
	}
	return &JobicyFetcherAdapter{
		apiURL:   defaultAPIURL,
		geo:      geo,
		industry: industry,
		count:    count,
		client:   &http.Client{Timeout: constants.HTTPClientTimeout},
	}
}

func NewJobicyFetcherAdapterWithURL(apiURL, geo, industry string, count int) *JobicyFetcherAdapter {
	a := NewJobicyFetcherAdapter(geo, industry, count)
	a.apiURL = apiURL
	return a
}

func (a *JobicyFetcherAdapter) Name() string {
	return constants.SourceJobicy
}

type jobicyResponse struct {
	Jobs []jobicyJob `json:"jobs"`
}

type jobicyJob struct {
	JobTitle        string       `json:"jobTitle"`
	CompanyName     string       `json:"companyName"`
	URL             string       `json:"url"`
	JobGeo          string       `json:"jobGeo"`
	JobIndustry     stringOrList `json:"jobIndustry"`
	JobType         stringOrList `json:"jobType"`
	AnnualSalaryMin flexNumber   `json:"annualSalaryMin"`
	AnnualSalaryMax flexNumber   `json:"annualSalaryMax"`
	SalaryCurrency  string       `json:"salaryCurrency"`
	PubDate         string       `json:"pubDate"`
	JobDescription  string       `json:"jobDescription"`
}

// flexNumber tolerates salary fields shipped either as numbers or as quoted
// strings.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*n = flexNumber(num.String())
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = flexNumber(s)
	return nil
}

// stringOrList tolerates fields Jobicy ships either as a plain string or as
// an array of strings.
type stringOrList string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = stringOrList(single)
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = stringOrList(strings.Join(many, ", "))
	return nil
}

func (a *JobicyFetcherAdapter) Fetch(ctx context.Context, searchTerms []string) ([]domain.JobPosting, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "JobicyFetcherAdapter"})

	reqURL, err := a.buildURL(searchTerms)
	if err != nil {
		return nil, fmt.Errorf("jobicy adapter: failed to build URL: %w", err)
	}

	fetchLogger.Debug("Making request", port.Fields{"url": reqURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("jobicy adapter: %w", err)
	}
	req.Header.Set("User-Agent", constants.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobicy adapter: http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jobicy adapter: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jobicy adapter: status %d", resp.StatusCode)
	}

	var apiResp jobicyResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("jobicy adapter: json unmarshal: %w", err)
	}

	var records []domain.JobPosting
	for _, item := range apiResp.Jobs {
		title := strings.TrimSpace(item.JobTitle)
		if title == "" || item.URL == "" {
			continue
		}

		records = append(records, domain.JobPosting{
			Title:          title,
			Company:        strings.TrimSpace(item.CompanyName),
			URL:            item.URL,
			SourcePlatform: a.Name(),
			Location:       domain.LocationOrRemote(item.JobGeo),
			RoleCategory:   string(item.JobIndustry),
			Salary:         formatSalary(item.AnnualSalaryMin, item.AnnualSalaryMax, item.SalaryCurrency),
			Description:    domain.TruncateDescription(item.JobDescription),
			Tags:           string(item.JobType),
			PostedAt:       item.PubDate,
		})
	}

	fetchLogger.Info("Finished fetching", port.Fields{"fetched": len(records)})
	return records, nil
}

func (a *JobicyFetcherAdapter) buildURL(searchTerms []string) (string, error) {
	u, err := url.Parse(a.apiURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("count", strconv.Itoa(a.count))
	if a.geo != "" {
		q.Set("geo", a.geo)
	}
	if a.industry != "" {
		q.Set("industry", a.industry)
	}
	if len(searchTerms) > 0 {
		q.Set("tag", strings.Join(searchTerms, " "))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// formatSalary renders the annual range as "USD 60000 – 80000", or
// "USD 60000+" when only the lower bound is known.
func formatSalary(min, max flexNumber, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	switch {
	case isPositive(min) && isPositive(max):
		return fmt.Sprintf("%s %s – %s", currency, min, max)
	case isPositive(min):
		return fmt.Sprintf("%s %s+", currency, min)
	default:
		return ""
	}
}

func isPositive(num flexNumber) bool {
	v, err := strconv.ParseFloat(string(num), 64)
	return err == nil && v > 0
}
