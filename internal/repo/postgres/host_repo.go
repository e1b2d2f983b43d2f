package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

type HostRepository interface {
	Create(ctx context.Context, req *domain.CreateHostRequest, passwordHash string) (*domain.Host, error)
	GetByID(ctx context.Context, id string) (*domain.Host, error)
	List(ctx context.Context, nameContains string) ([]domain.Host, error)
	Update(ctx context.Context, id string, patch domain.HostPatch) (*domain.Host, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, h *domain.Host) error
}

type hostRepository struct {
	pool *pgxpool.Pool
}

func NewHostRepository(pool *pgxpool.Pool) HostRepository {
	return &hostRepository{pool: pool}
}

const hostCols = `id, username, password_hash, name, email, phone_number, profile_picture, about, created_at, updated_at`

func scanHost(row interface{ Scan(...any) error }) (*domain.Host, error) {
	var h domain.Host
	err := row.Scan(
		&h.ID, &h.Username, &h.PasswordHash, &h.Name, &h.Email,
		&h.PhoneNumber, &h.ProfilePicture, &h.About, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &h, nil
}

func (r *hostRepository) Create(ctx context.Context, req *domain.CreateHostRequest, passwordHash string) (*domain.Host, error) {
	const q = `
		INSERT INTO hosts (id, username, password_hash, name, email, phone_number, profile_picture, about)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + hostCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanHost(r.pool.QueryRow(ctx, q,
		uuid.NewString(), req.Username, passwordHash, req.Name, req.Email,
		req.PhoneNumber, req.ProfilePicture, req.About,
	))
}

func (r *hostRepository) GetByID(ctx context.Context, id string) (*domain.Host, error) {
	const q = `SELECT ` + hostCols + ` FROM hosts WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanHost(r.pool.QueryRow(ctx, q, id))
}

func (r *hostRepository) List(ctx context.Context, nameContains string) ([]domain.Host, error) {
	q := `SELECT ` + hostCols + ` FROM hosts`
	var args []any
	if nameContains != "" {
		q += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, nameContains)
	}
	q += ` ORDER BY created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var hosts []domain.Host
	for rows.Next() {
		h, err := scanHost(rows)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, *h)
	}
	return hosts, rows.Err()
}

func (r *hostRepository) Update(ctx context.Context, id string, patch domain.HostPatch) (*domain.Host, error) {
	const q = `
		UPDATE hosts
		SET
			username        = COALESCE($2, username),
			name            = COALESCE($3, name),
			email           = COALESCE($4, email),
			phone_number    = COALESCE($5, phone_number),
			profile_picture = COALESCE($6, profile_picture),
			about           = COALESCE($7, about),
			updated_at      = now()
		WHERE id = $1
		RETURNING ` + hostCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanHost(r.pool.QueryRow(ctx, q,
		id, patch.Username, patch.Name, patch.Email, patch.PhoneNumber,
		patch.ProfilePicture, patch.About,
	))
}

func (r *hostRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM hosts WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *hostRepository) Upsert(ctx context.Context, h *domain.Host) error {
	const q = `
		INSERT INTO hosts (id, username, password_hash, name, email, phone_number, profile_picture, about)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		h.ID, h.Username, h.PasswordHash, h.Name, h.Email, h.PhoneNumber, h.ProfilePicture, h.About,
	)
	return mapError(err)
}
