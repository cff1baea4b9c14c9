package port

import (
	"context"

	"github.com/MrSprintALot/job-feed/internal/core/domain"

	"github.com/google/uuid"
)

// SavedListsPort is the contract for the repository owning saved entries and
// user lists.
type SavedListsPort interface {
	// Save associates a job with a list, creating the list when it does not
	// exist yet. Saving an already-saved (job, list) pair is a no-op.
	Save(ctx context.Context, jobID uuid.UUID, listName string) error

	// Unsave removes a job from one list, or from every list when listName
	// is empty.
	Unsave(ctx context.Context, jobID uuid.UUID, listName string) error

	CreateList(ctx context.Context, name string) error

	// DeleteList removes a list and cascades to its saved entries. Job
	// records are never touched.
	DeleteList(ctx context.Context, name string) error

	// FindSaved returns the saved entries of one list, or of all lists when
	// listName is empty, newest first.
	FindSaved(ctx context.Context, listName string) ([]domain.SavedJob, error)

	// ListLists returns every list with its entry count.
	ListLists(ctx context.Context) ([]domain.ListInfo, error)
}
