package session

import "errors"

var (
	// ErrValidation indicates a missing or contradictory role selection.
	ErrValidation = errors.New("session: validation failed")

	// ErrInvalidChoice indicates a distribution or transformation outside its
	// closed set.
	ErrInvalidChoice = errors.New("session: invalid choice")

	// ErrDuplicateEntry indicates the value is already present in the list.
	ErrDuplicateEntry = errors.New("session: duplicate entry")

	// ErrIndexOutOfRange indicates a removal index outside the list. The whole
	// batch is rejected.
	ErrIndexOutOfRange = errors.New("session: index out of range")

	// ErrOutOfSequence indicates the wizard protocol was violated, for example
	// advancing past the last column or before roles are set.
	ErrOutOfSequence = errors.New("session: operation out of sequence")

	// ErrIncompleteTraversal is returned by Export before every processable
	// column has been advanced.
	ErrIncompleteTraversal = errors.New("session: traversal incomplete")

	// ErrEmptyProcessableSet indicates the role assignment leaves no column to
	// process.
	ErrEmptyProcessableSet = errors.New("session: no columns to process")

	// ErrDone is returned by Current once the cursor reached the end of the
	// processable columns. It is a signal, not a failure.
	ErrDone = errors.New("session: no more columns to process")

	// ErrSaveDisabled indicates the save policy does not allow saving yet.
	ErrSaveDisabled = errors.New("session: saving is not enabled yet")

	// ErrNothingToSave indicates the decision table is empty.
	ErrNothingToSave = errors.New("session: no decisions to save")
)
