package session

import (
	"fmt"
	"strings"
)

// Registry holds the dataset columns in their original order together with
// their metadata. It is immutable once built.
type Registry struct {
	columns []string
	meta    map[string]Metadata
}

// NewRegistry builds a registry. Column names are kept verbatim; they must not
// be blank and must be unique. Columns without metadata get an entry carrying
// only their name.
func NewRegistry(columns []string, meta map[string]Metadata) (*Registry, error) {
	r := &Registry{
		columns: make([]string, 0, len(columns)),
		meta:    make(map[string]Metadata, len(columns)),
	}
	for i, name := range columns {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrValidation, i)
		}
		if _, exists := r.meta[name]; exists {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrValidation, name)
		}
		m := meta[name]
		m.Name = name
		r.columns = append(r.columns, name)
		r.meta[name] = m
	}
	return r, nil
}

// Columns returns the column names in dataset order.
func (r *Registry) Columns() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.columns...)
}

// Len returns the number of columns.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.columns)
}

// Has reports whether the registry contains the column.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.meta[name]
	return ok
}

// Metadata returns the metadata recorded for a column.
func (r *Registry) Metadata(name string) (Metadata, bool) {
	if r == nil {
		return Metadata{}, false
	}
	m, ok := r.meta[name]
	return m, ok
}

// Processable validates roles and returns the columns left after excluding the
// outcome, grouping and panel columns, in dataset order.
func (r *Registry) Processable(roles Roles) ([]string, error) {
	roles = roles.normalized()

	if r.Has(None) {
		return nil, fmt.Errorf("%w: column %q is reserved for an unset role, rename it", ErrValidation, None)
	}
	if isNone(roles.Outcome) {
		return nil, fmt.Errorf("%w: outcome column must be selected", ErrValidation)
	}
	if !r.Has(roles.Outcome) {
		return nil, fmt.Errorf("%w: unknown outcome column %q", ErrValidation, roles.Outcome)
	}
	for _, role := range []struct{ name, value string }{
		{"grouping", roles.Grouping},
		{"panel", roles.Panel},
	} {
		if isNone(role.value) {
			continue
		}
		if !r.Has(role.value) {
			return nil, fmt.Errorf("%w: unknown %s column %q", ErrValidation, role.name, role.value)
		}
		if role.value == roles.Outcome {
			return nil, fmt.Errorf("%w: outcome column %q cannot also be the %s column", ErrValidation, roles.Outcome, role.name)
		}
	}

	excluded := map[string]struct{}{roles.Outcome: {}}
	if !isNone(roles.Grouping) {
		excluded[roles.Grouping] = struct{}{}
	}
	if !isNone(roles.Panel) {
		excluded[roles.Panel] = struct{}{}
	}

	out := make([]string, 0, len(r.columns))
	for _, col := range r.columns {
		if _, skip := excluded[col]; skip {
			continue
		}
		out = append(out, col)
	}
	if len(out) == 0 {
		return nil, ErrEmptyProcessableSet
	}
	return out, nil
}
