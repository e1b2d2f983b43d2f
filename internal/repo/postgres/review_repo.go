package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, req *domain.CreateReviewRequest) (*domain.Review, error)
	CreateWithID(ctx context.Context, id string, req *domain.CreateReviewRequest) (*domain.Review, error)
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByProperty(ctx context.Context, propertyID string) (int64, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewCols = `id, rating, comment, user_id, property_id, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID, &rv.Rating, &rv.Comment, &rv.UserID, &rv.PropertyID,
		&rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, req *domain.CreateReviewRequest) (*domain.Review, error) {
	return r.CreateWithID(ctx, uuid.NewString(), req)
}

func (r *reviewRepository) CreateWithID(ctx context.Context, id string, req *domain.CreateReviewRequest) (*domain.Review, error) {
	const q = `
		INSERT INTO reviews (id, rating, comment, user_id, property_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reviewCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReview(r.pool.QueryRow(ctx, q,
		id, req.Rating, req.Comment, req.UserID, req.PropertyID,
	))
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReview(r.pool.QueryRow(ctx, q, id))
}

func (r *reviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	const q = `SELECT ` + reviewCols + ` FROM reviews ORDER BY created_at`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	const q = `
		UPDATE reviews
		SET
			rating     = COALESCE($2, rating),
			comment    = COALESCE($3, comment),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + reviewCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReview(r.pool.QueryRow(ctx, q, id, patch.Rating, patch.Comment))
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reviews WHERE id = $1`
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

func (r *reviewRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	const q = `DELETE FROM reviews WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, userID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}

func (r *reviewRepository) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	const q = `DELETE FROM reviews WHERE property_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, propertyID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}
