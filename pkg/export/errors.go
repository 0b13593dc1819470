package export

import "errors"

var (
	// ErrWrite reports an output file that could not be written.
	ErrWrite = errors.New("export: write failed")
	// ErrUnknownFormat reports a format name missing from the registry.
	ErrUnknownFormat = errors.New("export: unknown format")
)
