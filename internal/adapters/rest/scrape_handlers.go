package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/contracts"
	"github.com/MrSprintALot/job-feed/internal/core/port"
	"github.com/MrSprintALot/job-feed/internal/core/port/usecases_port"
)

// ScrapeHandler exposes the manual aggregation trigger.
type ScrapeHandler struct {
	runUC usecases_port.RunAggregationUseCasePort
	// defaultTerms apply when the request carries no terms of its own.
	defaultTerms []string
}

func NewScrapeHandler(runUC usecases_port.RunAggregationUseCasePort, defaultTerms []string) *ScrapeHandler {
	return &ScrapeHandler{
		runUC:        runUC,
		defaultTerms: defaultTerms,
	}
}

// TriggerScrape handles POST /api/v1/scrape. The run is synchronous: the
// response carries the complete summary of the run it triggered.
func (h *ScrapeHandler) TriggerScrape(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "TriggerScrape"})

	var reqDTO ScrapeRequest
	if r.Body != nil && r.ContentLength != 0 {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
			return
		}

		if err := contracts.ValidateRequest("ScrapeRequest", "1.0.0", body); err != nil {
			logger.Warn("Scrape request failed contract validation", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := json.Unmarshal(body, &reqDTO); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	terms := reqDTO.Terms
	if len(terms) == 0 {
		terms = h.defaultTerms
	}

	logger.Info("Processing scrape trigger", port.Fields{
		"sources": reqDTO.Sources,
		"terms":   terms,
	})

	summary, err := h.runUC.Execute(r.Context(), reqDTO.Sources, terms)
	if err != nil {
		logger.Error("Run aggregation use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Aggregation run failed")
		return
	}

	response := RunSummaryResponse{
		Sources:           make(map[string]SourceOutcomeResponse, len(summary.Sources)),
		Fetched:           summary.Fetched,
		Inserted:          summary.Inserted,
		SkippedDuplicates: summary.SkippedDuplicates,
	}
	for name, outcome := range summary.Sources {
		response.Sources[name] = SourceOutcomeResponse{
			Fetched: outcome.Fetched,
			Status:  outcome.Status,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}
