package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-metawizard/pkg/logger"
)

// Loader reads a dataset and returns its columns in order together with their
// metadata.
type Loader interface {
	Load(ctx context.Context, path string) ([]string, map[string]Metadata, error)
}

// Option configures a Session.
type Option func(*Session)

// WithTransformationDefault selects the initial transformations of a column.
func WithTransformationDefault(def TransformationDefault) Option {
	return func(s *Session) {
		if def != "" {
			s.transformationDefault = def
		}
	}
}

// WithSavePolicy selects when saving decisions is allowed.
func WithSavePolicy(policy SavePolicy) Option {
	return func(s *Session) {
		if policy != "" {
			s.savePolicy = policy
		}
	}
}

// WithID overrides the generated session identifier.
func WithID(id uuid.UUID) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithRegistry seeds the session with an already built registry.
func WithRegistry(reg *Registry) Option {
	return func(s *Session) {
		s.registry = reg
	}
}

// Session ties the registry, the override store, the cursor and the decision
// table of one analyst run.
type Session struct {
	mu sync.Mutex

	id                    uuid.UUID
	transformationDefault TransformationDefault
	savePolicy            SavePolicy
	log                   *logger.Logger

	registry *Registry
	store    *Store

	roles       Roles
	rolesSet    bool
	processable []string
	cursor      int
	table       *Table
}

// New creates a session. Without WithRegistry a dataset must be loaded before
// roles can be set.
func New(options ...Option) *Session {
	s := &Session{
		id:                    uuid.New(),
		transformationDefault: TransformationsEmpty,
		savePolicy:            SaveAtLastColumn,
		log:                   logger.New("session:wizard"),
		table:                 &Table{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.store = NewStore(s.transformationDefault)
	return s
}

// ID identifies the session run.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Registry returns the current column registry, nil before a dataset is
// loaded.
func (s *Session) Registry() *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

// Load reads a dataset through loader and installs a fresh registry and
// override store. On failure the session is left untouched.
func (s *Session) Load(ctx context.Context, loader Loader, path string) error {
	if loader == nil {
		return fmt.Errorf("session: loader is nil")
	}
	columns, meta, err := loader.Load(ctx, path)
	if err != nil {
		return err
	}
	reg, err := NewRegistry(columns, meta)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry = reg
	s.store = NewStore(s.transformationDefault)
	s.roles = Roles{}
	s.rolesSet = false
	s.processable = nil
	s.cursor = 0
	s.table = &Table{}
	s.log.Printf("loaded %d columns from %s", reg.Len(), path)
	return nil
}

// SetRoles assigns the role columns and starts a fresh traversal. Any previous
// traversal is discarded, which RoleResult reports through Reset.
func (s *Session) SetRoles(roles Roles) (RoleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry == nil {
		return RoleResult{}, fmt.Errorf("%w: no dataset loaded", ErrOutOfSequence)
	}
	processable, err := s.registry.Processable(roles)
	if err != nil {
		return RoleResult{}, err
	}

	result := RoleResult{
		Processable: append([]string(nil), processable...),
		Reset:       s.rolesSet,
		Discarded:   s.table.Len(),
	}

	s.roles = roles.normalized()
	s.rolesSet = true
	s.processable = processable
	s.cursor = 0
	s.table = &Table{}
	s.log.Printf("roles set outcome=%s grouping=%s panel=%s processable=%d reset=%v",
		s.roles.Outcome, s.roles.Grouping, s.roles.Panel, len(processable), result.Reset)
	return result, nil
}

// Roles returns the active role assignment.
func (s *Session) Roles() (Roles, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roles, s.rolesSet
}

// Processable returns the columns of the active traversal.
func (s *Session) Processable() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.processable...)
}

// Progress returns the cursor and the number of processable columns.
func (s *Session) Progress() (cursor, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, len(s.processable)
}

func (s *Session) started() bool {
	return s.rolesSet && len(s.processable) > 0
}
