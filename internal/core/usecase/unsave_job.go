package usecase

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/port"

	"github.com/google/uuid"
)

type UnsaveJobUseCase struct {
	repo port.SavedListsPort
}

func NewUnsaveJobUseCase(repo port.SavedListsPort) *UnsaveJobUseCase {
	return &UnsaveJobUseCase{repo: repo}
}

func (uc *UnsaveJobUseCase) Execute(ctx context.Context, jobID uuid.UUID, listName string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "UnsaveJob",
		"job_id":    jobID,
		"list_name": listName,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Unsave(ctx, jobID, listName); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
