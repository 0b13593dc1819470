package session

import (
	"errors"
	"fmt"
)

// Current returns the column under the cursor with its live override entry.
// It returns ErrDone once every processable column has been advanced.
func (s *Session) Current() (ColumnView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, err := s.currentColumn()
	if err != nil {
		return ColumnView{}, err
	}

	meta, _ := s.registry.Metadata(column)
	view := ColumnView{
		Index:            s.cursor,
		Total:            len(s.processable),
		Metadata:         meta,
		Entry:            s.store.GetOrInit(column),
		Level5Selectable: s.roles.HasGrouping(),
		Defaults:         AllLevels(),
	}
	if !view.Level5Selectable {
		view.Defaults[GroupedLevel] = false
	}
	return view, nil
}

// Advance finalizes the current column with the given level flags, appends its
// decision record and moves the cursor forward by one. Level 5 is forced off
// when no grouping column is set.
func (s *Session) Advance(levels Levels) (DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, err := s.currentColumn()
	if err != nil {
		if errors.Is(err, ErrDone) {
			return DecisionRecord{}, fmt.Errorf("%w: all %d columns already processed", ErrOutOfSequence, len(s.processable))
		}
		return DecisionRecord{}, err
	}

	if !s.roles.HasGrouping() {
		levels[GroupedLevel] = false
	}
	entry := s.store.GetOrInit(column)
	rec := DecisionRecord{
		Column:          column,
		Levels:          levels,
		Distributions:   entry.Distributions,
		Transformations: entry.Transformations,
	}
	if err := s.table.append(rec); err != nil {
		return DecisionRecord{}, err
	}
	s.cursor++
	if s.cursor == len(s.processable) {
		s.table.close()
	}
	s.log.Printf("advanced past %s (%d/%d)", column, s.cursor, len(s.processable))
	return rec.clone(), nil
}

// AddDistribution adds a distribution to the current column.
func (s *Session) AddDistribution(name string) error {
	return s.mutateCurrent(func(column string) error {
		return s.store.AddDistribution(column, name)
	})
}

// RemoveDistributions removes distributions of the current column by position.
func (s *Session) RemoveDistributions(indices ...int) error {
	return s.mutateCurrent(func(column string) error {
		return s.store.RemoveDistributions(column, indices...)
	})
}

// AddTransformation adds a transformation to the current column.
func (s *Session) AddTransformation(name string) error {
	return s.mutateCurrent(func(column string) error {
		return s.store.AddTransformation(column, name)
	})
}

// RemoveTransformations removes transformations of the current column by
// position.
func (s *Session) RemoveTransformations(indices ...int) error {
	return s.mutateCurrent(func(column string) error {
		return s.store.RemoveTransformations(column, indices...)
	})
}

func (s *Session) mutateCurrent(fn func(column string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, err := s.currentColumn()
	if err != nil {
		if errors.Is(err, ErrDone) {
			return fmt.Errorf("%w: no column is being edited", ErrOutOfSequence)
		}
		return err
	}
	return fn(column)
}

// currentColumn must be called with s.mu held.
func (s *Session) currentColumn() (string, error) {
	if !s.started() {
		return "", fmt.Errorf("%w: roles are not set", ErrOutOfSequence)
	}
	if s.cursor >= len(s.processable) {
		return "", ErrDone
	}
	return s.processable[s.cursor], nil
}
