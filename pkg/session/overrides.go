package session

import (
	"fmt"
	"sort"
	"strings"
)

var (
	distributionChoices   = []string{"Normal", "Triangular", "Uniform"}
	transformationChoices = []string{"No", "Sqrt", "Normalize", "Log", "Arcsinh"}
)

// DistributionChoices returns the closed set of coefficient distributions.
func DistributionChoices() []string {
	return append([]string(nil), distributionChoices...)
}

// TransformationChoices returns the closed set of value transformations.
func TransformationChoices() []string {
	return append([]string(nil), transformationChoices...)
}

// TransformationDefault selects the transformations a column starts with.
type TransformationDefault string

const (
	// TransformationsEmpty starts every column with no transformation.
	TransformationsEmpty TransformationDefault = "empty"
	// TransformationsFullSet starts every column with the whole closed set.
	TransformationsFullSet TransformationDefault = "full-set"
)

// ParseTransformationDefault validates a configuration value. Empty input
// yields TransformationsEmpty.
func ParseTransformationDefault(raw string) (TransformationDefault, error) {
	switch TransformationDefault(strings.TrimSpace(strings.ToLower(raw))) {
	case "", TransformationsEmpty:
		return TransformationsEmpty, nil
	case TransformationsFullSet:
		return TransformationsFullSet, nil
	default:
		return "", fmt.Errorf("%w: transformation default %q (want %q or %q)", ErrInvalidChoice, raw, TransformationsEmpty, TransformationsFullSet)
	}
}

// Store keeps the override entry of every visited column. Entries are created
// with defaults on first access and live as long as the store.
type Store struct {
	transformationDefault TransformationDefault
	entries               map[string]*Entry
}

// NewStore creates an empty store.
func NewStore(def TransformationDefault) *Store {
	if def == "" {
		def = TransformationsEmpty
	}
	return &Store{
		transformationDefault: def,
		entries:               make(map[string]*Entry),
	}
}

// GetOrInit returns a copy of the column entry, creating it with defaults on
// first access.
func (s *Store) GetOrInit(column string) Entry {
	return s.entry(column).clone()
}

// Visited reports whether the column already has an entry.
func (s *Store) Visited(column string) bool {
	_, ok := s.entries[column]
	return ok
}

// AddDistribution appends a distribution to the column allow-list.
func (s *Store) AddDistribution(column, name string) error {
	e := s.entry(column)
	list, err := addChoice("distribution", e.Distributions, distributionChoices, name)
	if err != nil {
		return err
	}
	e.Distributions = list
	return nil
}

// RemoveDistributions removes the distributions at the given positions.
func (s *Store) RemoveDistributions(column string, indices ...int) error {
	e := s.entry(column)
	list, err := removeIndices("distribution", e.Distributions, indices)
	if err != nil {
		return err
	}
	e.Distributions = list
	return nil
}

// AddTransformation appends a transformation to the column allow-list.
func (s *Store) AddTransformation(column, name string) error {
	e := s.entry(column)
	list, err := addChoice("transformation", e.Transformations, transformationChoices, name)
	if err != nil {
		return err
	}
	e.Transformations = list
	return nil
}

// RemoveTransformations removes the transformations at the given positions.
func (s *Store) RemoveTransformations(column string, indices ...int) error {
	e := s.entry(column)
	list, err := removeIndices("transformation", e.Transformations, indices)
	if err != nil {
		return err
	}
	e.Transformations = list
	return nil
}

func (s *Store) entry(column string) *Entry {
	if e, ok := s.entries[column]; ok {
		return e
	}
	e := &Entry{
		Column:          column,
		Distributions:   DistributionChoices(),
		Transformations: []string{},
	}
	if s.transformationDefault == TransformationsFullSet {
		e.Transformations = TransformationChoices()
	}
	s.entries[column] = e
	return e
}

func addChoice(kind string, list, choices []string, name string) ([]string, error) {
	canonical, ok := canonicalChoice(choices, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidChoice, kind, name, strings.Join(choices, ", "))
	}
	for _, existing := range list {
		if existing == canonical {
			return nil, fmt.Errorf("%w: %s %q already exists", ErrDuplicateEntry, kind, canonical)
		}
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, canonical), nil
}

func canonicalChoice(choices []string, name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, choice := range choices {
		if strings.EqualFold(choice, trimmed) {
			return choice, true
		}
	}
	return "", false
}

// removeIndices validates every index before touching the list, then deletes
// from the highest position down so earlier deletions never shift later ones.
func removeIndices(kind string, list []string, indices []int) ([]string, error) {
	if len(indices) == 0 {
		return list, nil
	}
	unique := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(list) {
			return nil, fmt.Errorf("%w: %s index %d (list has %d entries)", ErrIndexOutOfRange, kind, idx, len(list))
		}
		unique[idx] = struct{}{}
	}
	ordered := make([]int, 0, len(unique))
	for idx := range unique {
		ordered = append(ordered, idx)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	out := append([]string{}, list...)
	for _, idx := range ordered {
		out = append(out[:idx], out[idx+1:]...)
	}
	return out, nil
}
