// Package export serializes decision tables and hyperparameter records for
// the downstream model search.
package export

import (
	"io"

	"github.com/goliatone/go-metawizard/pkg/session"
)

// Decisions is the payload handed to a Format.
type Decisions struct {
	SessionID string
	Roles     session.Roles
	Records   []session.DecisionRecord
}

// Format encodes decisions in one output representation.
type Format interface {
	Name() string
	Extension() string
	Encode(w io.Writer, doc Decisions) error
}
