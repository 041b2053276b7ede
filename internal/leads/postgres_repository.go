package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database. The leads
// table carries a uniqueness constraint on (name, email, phone), so the
// duplicate check and the insert are a single atomic statement rather than
// a racy read-then-write.
type PostgresRepository struct {
	pool rowQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q rowQuerier) *PostgresRepository {
	if q == nil {
		panic("leads: querier required")
	}
	return &PostgresRepository{pool: q}
}

// CreateIfAbsent inserts a new row unless the exact triple already exists.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, cand Candidate) (*Lead, bool, error) {
	if err := cand.Validate(); err != nil {
		return nil, false, err
	}

	id := uuid.New()
	query := `
		INSERT INTO leads (id, name, email, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, email, phone) DO NOTHING
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		cand.Name,
		cand.Email,
		cand.Phone,
	).Scan(&createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: the triple is already recorded.
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:        id.String(),
		Name:      cand.Name,
		Email:     cand.Email,
		Phone:     cand.Phone,
		CreatedAt: createdAt,
	}, true, nil
}

// Exists checks for an identical triple. Exact match only.
func (r *PostgresRepository) Exists(ctx context.Context, cand Candidate) (bool, error) {
	query := `SELECT 1 FROM leads WHERE name = $1 AND email = $2 AND phone = $3`
	var exists int
	if err := r.pool.QueryRow(ctx, query, cand.Name, cand.Email, cand.Phone).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("leads: exists check failed: %w", err)
	}
	return true, nil
}

var _ Repository = (*PostgresRepository)(nil)
