package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type SaveJobUseCasePort interface {
	Execute(ctx context.Context, jobID uuid.UUID, listName string) error
}
