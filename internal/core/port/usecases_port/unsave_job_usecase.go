package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type UnsaveJobUseCasePort interface {
	// Execute removes a saved entry from listName, or from all lists when
	// listName is empty.
	Execute(ctx context.Context, jobID uuid.UUID, listName string) error
}
