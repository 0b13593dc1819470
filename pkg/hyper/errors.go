package hyper

import "errors"

var (
	// ErrValidation reports a field value outside its allowed range or a
	// missing required field.
	ErrValidation = errors.New("hyper: validation failed")
	// ErrInvalidChoice reports a value outside a closed enumeration.
	ErrInvalidChoice = errors.New("hyper: invalid choice")
	// ErrInvalidSplit reports train/validation/test percentages that do not
	// add up to 100 under the strict split policy.
	ErrInvalidSplit = errors.New("hyper: split percentages must sum to 100")
)
