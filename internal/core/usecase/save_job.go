package usecase

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"

	"github.com/google/uuid"
)

type SaveJobUseCase struct {
	repo port.SavedListsPort
}

func NewSaveJobUseCase(repo port.SavedListsPort) *SaveJobUseCase {
	return &SaveJobUseCase{repo: repo}
}

func (uc *SaveJobUseCase) Execute(ctx context.Context, jobID uuid.UUID, listName string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "SaveJob",
		"job_id":    jobID,
		"list_name": listName,
	})

	if listName == "" {
		listName = domain.DefaultListName
	}

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Save(ctx, jobID, listName); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
