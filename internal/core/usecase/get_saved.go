package usecase

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

type GetSavedUseCase struct {
	repo port.SavedListsPort
}

func NewGetSavedUseCase(repo port.SavedListsPort) *GetSavedUseCase {
	return &GetSavedUseCase{repo: repo}
}

func (uc *GetSavedUseCase) Execute(ctx context.Context, listName string) (*domain.SavedView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "GetSaved",
		"list_name": listName,
	})

	jobs, err := uc.repo.FindSaved(ctx, listName)
	if err != nil {
		ucLogger.Error("Failed to load saved jobs", err, nil)
		return nil, err
	}

	lists, err := uc.repo.ListLists(ctx)
	if err != nil {
		ucLogger.Error("Failed to load lists", err, nil)
		return nil, err
	}

	return &domain.SavedView{Jobs: jobs, Lists: lists}, nil
}
