package contract

import "errors"

var (
	// ErrNotFound is returned by targeted updates that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("record already exists")
)
