package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage. Leads are append-only:
// created once per distinct triple, never updated, never deleted here.
type Repository interface {
	// CreateIfAbsent atomically inserts a lead for the candidate unless an
	// identical (name, email, phone) triple already exists. It returns the
	// created lead and inserted=true on a fresh insert, or (nil, false) when
	// the triple was already recorded.
	CreateIfAbsent(ctx context.Context, cand Candidate) (*Lead, bool, error)

	// Exists reports whether an identical triple is already recorded.
	// Exact match on all three fields; no normalization.
	Exists(ctx context.Context, cand Candidate) (bool, error)
}

// InMemoryRepository is a Repository backed by a map, used in tests and
// when no database is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[Candidate]*Lead
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[Candidate]*Lead),
	}
}

// CreateIfAbsent inserts the candidate unless its triple is already present.
func (r *InMemoryRepository) CreateIfAbsent(ctx context.Context, cand Candidate) (*Lead, bool, error) {
	if err := cand.Validate(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[cand]; ok {
		return nil, false, nil
	}

	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      cand.Name,
		Email:     cand.Email,
		Phone:     cand.Phone,
		CreatedAt: time.Now().UTC(),
	}
	r.leads[cand] = lead
	return lead, true, nil
}

// Exists reports whether the triple is recorded.
func (r *InMemoryRepository) Exists(ctx context.Context, cand Candidate) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.leads[cand]
	return ok, nil
}

var _ Repository = (*InMemoryRepository)(nil)
