package rest

import (
	"net/http"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
	"github.com/MrSprintALot/job-feed/internal/core/port/usecases_port"
)

// FeedHandler serves the read side: the job feed and the stats.
type FeedHandler struct {
	getFeedUC  usecases_port.GetFeedUseCasePort
	getStatsUC usecases_port.GetStatsUseCasePort
}

func NewFeedHandler(getFeedUC usecases_port.GetFeedUseCasePort, getStatsUC usecases_port.GetStatsUseCasePort) *FeedHandler {
	return &FeedHandler{
		getFeedUC:  getFeedUC,
		getStatsUC: getStatsUC,
	}
}

// GetJobs handles GET /api/v1/jobs.
func (h *FeedHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetJobs"})

	filters := domain.FeedFilters{
		Source: r.URL.Query().Get("source"),
		Search: r.URL.Query().Get("search"),
		Days:   queryInt(r, "days", 0),
	}
	limit := queryInt(r, "limit", domain.DefaultFeedLimit)
	offset := queryInt(r, "offset", 0)
	if limit <= 0 {
		limit = domain.DefaultFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	feed, err := h.getFeedUC.Execute(r.Context(), filters, limit, offset)
	if err != nil {
		logger.Error("Get feed use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	response := PaginatedFeedResponse{
		Data:    make([]FeedJobResponse, len(feed.Jobs)),
		Total:   feed.TotalCount,
		Page:    feed.CurrentPage,
		PerPage: feed.ItemsPerPage,
		Sources: feed.Sources,
	}
	for i, job := range feed.Jobs {
		response.Data[i] = FeedJobResponse{
			JobResponse: toJobResponse(job.JobPosting),
			SavedIn:     job.SavedIn,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetStats handles GET /api/v1/stats.
func (h *FeedHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetStats"})

	stats, err := h.getStatsUC.Execute(r.Context())
	if err != nil {
		logger.Error("Get stats use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}

	RespondWithJSON(w, http.StatusOK, StatsResponse{
		TotalJobs: stats.TotalJobs,
		SavedJobs: stats.SavedJobs,
		BySource:  stats.BySource,
	})
}
