package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
	"github.com/MrSprintALot/job-feed/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SavedHandler serves saved entries and user lists.
type SavedHandler struct {
	saveUC       usecases_port.SaveJobUseCasePort
	unsaveUC     usecases_port.UnsaveJobUseCasePort
	getSavedUC   usecases_port.GetSavedUseCasePort
	createListUC usecases_port.CreateListUseCasePort
	deleteListUC usecases_port.DeleteListUseCasePort
}

func NewSavedHandler(
	saveUC usecases_port.SaveJobUseCasePort,
	unsaveUC usecases_port.UnsaveJobUseCasePort,
	getSavedUC usecases_port.GetSavedUseCasePort,
	createListUC usecases_port.CreateListUseCasePort,
	deleteListUC usecases_port.DeleteListUseCasePort,
) *SavedHandler {
	return &SavedHandler{
		saveUC:       saveUC,
		unsaveUC:     unsaveUC,
		getSavedUC:   getSavedUC,
		createListUC: createListUC,
		deleteListUC: deleteListUC,
	}
}

// GetSaved handles GET /api/v1/saved and GET /api/v1/saved/{list}.
func (h *SavedHandler) GetSaved(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSaved"})

	listName := chi.URLParam(r, "list")

	view, err := h.getSavedUC.Execute(r.Context(), listName)
	if err != nil {
		logger.Error("Get saved use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve saved jobs")
		return
	}

	response := SavedViewResponse{
		Data:  make([]SavedJobResponse, len(view.Jobs)),
		Lists: make([]ListResponse, len(view.Lists)),
	}
	for i, entry := range view.Jobs {
		response.Data[i] = SavedJobResponse{
			JobResponse: toJobResponse(entry.Job),
			ListName:    entry.ListName,
			SavedAt:     entry.SavedAt,
		}
	}
	for i, list := range view.Lists {
		response.Lists[i] = ListResponse{
			Name:       list.Name,
			CreatedAt:  list.CreatedAt,
			SavedCount: list.SavedCount,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// SaveJob handles POST /api/v1/jobs/{jobID}/save.
func (h *SavedHandler) SaveJob(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SaveJob"})

	jobIDStr := chi.URLParam(r, "jobID")
	jobID, err := uuid.Parse(jobIDStr)
	if err != nil {
		logger.Warn("Invalid jobID in URL", port.Fields{"provided_id": jobIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid jobID in URL")
		return
	}

	var reqDTO SaveJobRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
			logger.Warn("Failed to decode request body for save job", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if err := h.saveUC.Execute(r.Context(), jobID, reqDTO.ListName); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Job not found")
			return
		}
		logger.Error("Save job use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to save job")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// UnsaveJob handles DELETE /api/v1/jobs/{jobID}/save?list=.
func (h *SavedHandler) UnsaveJob(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UnsaveJob"})

	jobIDStr := chi.URLParam(r, "jobID")
	jobID, err := uuid.Parse(jobIDStr)
	if err != nil {
		logger.Warn("Invalid jobID in URL", port.Fields{"provided_id": jobIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid jobID in URL")
		return
	}

	listName := r.URL.Query().Get("list")

	if err := h.unsaveUC.Execute(r.Context(), jobID, listName); err != nil {
		logger.Error("Unsave job use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to unsave job")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateList handles POST /api/v1/lists.
func (h *SavedHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateList"})

	var reqDTO CreateListRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for create list", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.createListUC.Execute(r.Context(), reqDTO.Name); err != nil {
		switch {
		case errors.Is(err, domain.ErrListNameEmpty):
			WriteJSONError(w, http.StatusBadRequest, "List name must not be empty")
		case errors.Is(err, domain.ErrListExists):
			WriteJSONError(w, http.StatusConflict, "List already exists")
		default:
			logger.Error("Create list use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to create list")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DeleteList handles DELETE /api/v1/lists/{name}.
func (h *SavedHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteList"})

	name := chi.URLParam(r, "name")

	if err := h.deleteListUC.Execute(r.Context(), name); err != nil {
		switch {
		case errors.Is(err, domain.ErrDefaultListProtected):
			WriteJSONError(w, http.StatusForbidden, "The default list cannot be deleted")
		case errors.Is(err, domain.ErrListNotFound):
			WriteJSONError(w, http.StatusNotFound, "List not found")
		default:
			logger.Error("Delete list use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to delete list")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
