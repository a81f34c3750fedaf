package storage

import "github.com/pkg/errors"

var (
	// ErrCorruptData marks a stored conversation that fails structural
	// validation on load. Callers treat the history as empty; the stored
	// bytes stay untouched until the next successful Save.
	ErrCorruptData = errors.New("stored conversation is corrupt")

	// ErrInvalidImport marks an import payload without a usable
	// conversation entry. The medium is left completely unchanged.
	ErrInvalidImport = errors.New("import snapshot has no conversation entry")
)
