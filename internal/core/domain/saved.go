package domain

import "time"

// DefaultListName is the list every deployment starts with. It is seeded by
// the schema and cannot be deleted.
const DefaultListName = "Saved"

// SavedJob is one saved entry joined with its underlying job record.
type SavedJob struct {
	Job      JobPosting
	ListName string
	SavedAt  time.Time
}

// ListInfo describes one user list together with its entry count.
type ListInfo struct {
	Name       string
	CreatedAt  time.Time
	SavedCount int64
}

// SavedView is everything the saved page needs: the entries of the requested
// list (or of all lists), plus every list with its count.
type SavedView struct {
	Jobs  []SavedJob
	Lists []ListInfo
}
