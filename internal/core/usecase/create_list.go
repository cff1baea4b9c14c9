package usecase

import (
	"context"
	"strings"

	"github.com/MrSprintALot/job-feed/internal/contextkeys"
	"github.com/MrSprintALot/job-feed/internal/core/domain"
	"github.com/MrSprintALot/job-feed/internal/core/port"
)

type CreateListUseCase struct {
	repo port.SavedListsPort
}

func NewCreateListUseCase(repo port.SavedListsPort) *CreateListUseCase {
	return &CreateListUseCase{repo: repo}
}

func (uc *CreateListUseCase) Execute(ctx context.Context, name string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "CreateList",
		"list_name": name,
	})

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrListNameEmpty
	}

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.CreateList(ctx, name); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
