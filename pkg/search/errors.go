package search

import "errors"

var (
	// ErrEmptyQuery is returned when the query is blank after trimming.
	// No records are scanned.
	ErrEmptyQuery = errors.New("search: empty query")

	// ErrStoreNotReady is returned when there are no records to search,
	// i.e. the dataset has not been loaded (yet).
	ErrStoreNotReady = errors.New("search: record store not loaded")
)
