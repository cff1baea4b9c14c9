package usecase

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

type DeleteListUseCase struct {
	repo port.SavedListsPort
}

func NewDeleteListUseCase(repo port.SavedListsPort) *DeleteListUseCase {
	return &DeleteListUseCase{repo: repo}
}

func (uc *DeleteListUseCase) Execute(ctx context.Context, name string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "DeleteList",
		"list_name": name,
	})

	// The default list always exists; deleting it would break the save flow.
	if name == domain.DefaultListName {
		return domain.ErrDefaultListProtected
	}

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.DeleteList(ctx, name); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
