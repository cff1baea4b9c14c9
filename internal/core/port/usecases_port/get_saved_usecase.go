package usecases_port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

type GetSavedUseCasePort interface {
	Execute(ctx context.Context, listName string) (*domain.SavedView, error)
}
