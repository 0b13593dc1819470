package session

import (
	"fmt"
	"strings"
)

// Table accumulates decision records in traversal order. Once closed it
// rejects further appends.
type Table struct {
	records []DecisionRecord
	closed  bool
}

func (t *Table) append(rec DecisionRecord) error {
	if t.closed {
		return fmt.Errorf("%w: decision table is finalized", ErrOutOfSequence)
	}
	t.records = append(t.records, rec)
	return nil
}

func (t *Table) close() { t.closed = true }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns a deep copy of the records.
func (t *Table) Records() []DecisionRecord {
	out := make([]DecisionRecord, len(t.records))
	for i, rec := range t.records {
		out[i] = rec.clone()
	}
	return out
}

func (r DecisionRecord) clone() DecisionRecord {
	r.Distributions = append([]string{}, r.Distributions...)
	r.Transformations = append([]string{}, r.Transformations...)
	return r
}

// SavePolicy decides when decisions may be saved.
type SavePolicy string

const (
	// SaveAlways allows saving as soon as one decision exists.
	SaveAlways SavePolicy = "always"
	// SaveAtLastColumn allows saving once the cursor reaches the last column.
	SaveAtLastColumn SavePolicy = "only-at-last-column"
)

// ParseSavePolicy validates a configuration value. Empty input yields
// SaveAtLastColumn.
func ParseSavePolicy(raw string) (SavePolicy, error) {
	switch SavePolicy(strings.TrimSpace(strings.ToLower(raw))) {
	case "", SaveAtLastColumn:
		return SaveAtLastColumn, nil
	case SaveAlways:
		return SaveAlways, nil
	default:
		return "", fmt.Errorf("%w: save policy %q (want %q or %q)", ErrInvalidChoice, raw, SaveAlways, SaveAtLastColumn)
	}
}

// Export returns the decision table once every processable column has been
// advanced.
func (s *Session) Export() ([]DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started() {
		return nil, fmt.Errorf("%w: roles are not set", ErrIncompleteTraversal)
	}
	if s.cursor < len(s.processable) {
		return nil, fmt.Errorf("%w: %d of %d columns processed", ErrIncompleteTraversal, s.cursor, len(s.processable))
	}
	records := s.table.Records()
	s.log.Printf("exported %d decisions", len(records))
	return records, nil
}

// ExportPartial returns whatever has accumulated so far. It never fails.
func (s *Session) ExportPartial() []DecisionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Records()
}

// CanSave reports whether the save policy allows saving in the current state.
func (s *Session) CanSave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSave()
}

func (s *Session) canSave() bool {
	if !s.started() {
		return false
	}
	switch s.savePolicy {
	case SaveAlways:
		return s.table.Len() > 0
	default:
		return s.cursor >= len(s.processable)-1
	}
}

// Decisions returns the records to persist when the analyst asks to save: the
// full table after the traversal finished, the accumulated prefix otherwise.
func (s *Session) Decisions() ([]DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.canSave() {
		return nil, ErrSaveDisabled
	}
	if s.table.Len() == 0 {
		return nil, ErrNothingToSave
	}
	return s.table.Records(), nil
}
