package domain

import "errors"

var (
	// ErrListExists is returned when creating a list whose name is taken.
	ErrListExists = errors.New("list already exists")

	// ErrListNotFound is returned when deleting a list that does not exist.
	ErrListNotFound = errors.New("list not found")

	// ErrListNameEmpty is returned when creating a list with a blank name.
	ErrListNameEmpty = errors.New("list name must not be empty")

	// ErrDefaultListProtected is returned on attempts to delete the default
	// "Saved" list, which is always present.
	ErrDefaultListProtected = errors.New("the default list cannot be deleted")

	// ErrJobNotFound is returned when a saved-entry operation references a
	// job record that is not in the store.
	ErrJobNotFound = errors.New("job not found")
)
