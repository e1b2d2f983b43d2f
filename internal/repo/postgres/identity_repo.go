package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IdentityRepository answers read-only existence questions about the entities
// a booking may reference.
type IdentityRepository interface {
	UserExists(ctx context.Context, id string) (bool, error)
	PropertyExists(ctx context.Context, id string) (bool, error)
}

type identityRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

func (r *identityRepository) UserExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *identityRepository) PropertyExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)`, id)
}

func (r *identityRepository) exists(ctx context.Context, q, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var found bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&found); err != nil {
		return false, mapError(err)
	}
	return found, nil
}
