package study

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is returned when the requested study does not exist.
	ErrNotFound = errors.New("study not found")

	// ErrRevisionConflict is returned when a patch's revision precondition
	// no longer matches the stored document.
	ErrRevisionConflict = errors.New("study revision conflict")
)

// Patch is a targeted merge update against one study document. Only the
// populated maps are applied; absent keys are left untouched. An empty
// string value clears the field, mirroring a merge write of "".
type Patch struct {
	// Status merges per-participant status values.
	Status map[string]string

	// PublicKeys merges personal_parameters.<participant>.PUBLIC_KEY.
	PublicKeys map[string]string

	// IPAddresses merges personal_parameters.<participant>.IP_ADDRESS.
	IPAddresses map[string]string
}

// Store is the persistence contract the orchestrator depends on. Apply is a
// compare-and-swap: the patch lands only if the stored revision still equals
// rev, otherwise ErrRevisionConflict is returned and the caller re-reads.
type Store interface {
	// Create persists a new study document; the ID must not be in use.
	Create(ctx context.Context, s *Study) error

	Get(ctx context.Context, id string) (*Study, error)
	Apply(ctx context.Context, id string, rev int64, patch Patch) (*Study, error)

	// Delete removes the study document, archiving a copy so the record
	// survives in the deleted-studies collection.
	Delete(ctx context.Context, id string) error

	// DeleteAuthKeys revokes the listed authentication keys.
	DeleteAuthKeys(ctx context.Context, keys []string) error
}

// MemoryStore is an in-process Store used in tests and single-node setups.
type MemoryStore struct {
	mu       sync.Mutex
	studies  map[string]*Study
	archived map[string]*Study
	authKeys map[string]struct{}
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		studies:  make(map[string]*Study),
		archived: make(map[string]*Study),
		authKeys: make(map[string]struct{}),
	}
}

// Create inserts a new study document.
func (m *MemoryStore) Create(_ context.Context, s *Study) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.studies[s.ID]; ok {
		return fmt.Errorf("study %s already exists", s.ID)
	}
	clone := s.Clone()
	clone.Revision = 1
	m.studies[clone.ID] = clone
	return nil
}

// Put inserts or replaces a study document, resetting its revision.
func (m *MemoryStore) Put(s *Study) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := s.Clone()
	clone.Revision = 1
	m.studies[clone.ID] = clone
}

// RegisterAuthKey records an issued authentication key.
func (m *MemoryStore) RegisterAuthKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authKeys[key] = struct{}{}
}

// HasAuthKey reports whether the key is still registered.
func (m *MemoryStore) HasAuthKey(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.authKeys[key]
	return ok
}

// Archived returns the archived copy of a deleted study, if any.
func (m *MemoryStore) Archived(id string) (*Study, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.archived[id]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.studies[id]
	if !ok {
		return nil, fmt.Errorf("get study %s: %w", id, ErrNotFound)
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Apply(ctx context.Context, id string, rev int64, patch Patch) (*Study, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.studies[id]
	if !ok {
		return nil, fmt.Errorf("patch study %s: %w", id, ErrNotFound)
	}
	if s.Revision != rev {
		return nil, fmt.Errorf("patch study %s at revision %d (stored %d): %w",
			id, rev, s.Revision, ErrRevisionConflict)
	}
	for participant, status := range patch.Status {
		s.Status[participant] = status
	}
	for participant, key := range patch.PublicKeys {
		params := s.PersonalParams[participant]
		if params == nil {
			params = &PersonalParams{}
			s.PersonalParams[participant] = params
		}
		params.PublicKey.Value = key
	}
	for participant, addr := range patch.IPAddresses {
		params := s.PersonalParams[participant]
		if params == nil {
			params = &PersonalParams{}
			s.PersonalParams[participant] = params
		}
		params.IPAddress.Value = addr
	}
	s.Revision++
	return s.Clone(), nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.studies[id]
	if !ok {
		return fmt.Errorf("delete study %s: %w", id, ErrNotFound)
	}
	m.archived[id] = s
	delete(m.studies, id)
	return nil
}

func (m *MemoryStore) DeleteAuthKeys(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.authKeys, key)
	}
	return nil
}
