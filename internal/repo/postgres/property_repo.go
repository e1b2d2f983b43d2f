package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, req *domain.CreatePropertyRequest) (*domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, p *domain.Property) error
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

const propertyCols = `id, title, description, location, price_per_night,
bedrooms, bathrooms, max_guests, rating, host_id, created_at, updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Location, &p.PricePerNight,
		&p.Bedrooms, &p.Bathrooms, &p.MaxGuests, &p.Rating, &p.HostID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, req *domain.CreatePropertyRequest) (*domain.Property, error) {
	const q = `
		INSERT INTO properties (id, title, description, location, price_per_night,
			bedrooms, bathrooms, max_guests, rating, host_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + propertyCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanProperty(r.pool.QueryRow(ctx, q,
		uuid.NewString(), req.Title, req.Description, req.Location, req.PricePerNight,
		req.Bedrooms, req.Bathrooms, req.MaxGuests, req.Rating, req.HostID,
	))
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanProperty(r.pool.QueryRow(ctx, q, id))
}

func (r *propertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	q := `SELECT ` + propertyCols + ` FROM properties`
	var args []any
	if filter.Location != "" {
		args = append(args, filter.Location)
		q += ` WHERE location ILIKE '%' || $1 || '%'`
		if filter.PricePerNight != nil {
			args = append(args, *filter.PricePerNight)
			q += ` AND price_per_night = $2`
		}
	} else if filter.PricePerNight != nil {
		args = append(args, *filter.PricePerNight)
		q += ` WHERE price_per_night = $1`
	}
	q += ` ORDER BY created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) Update(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	const q = `
		UPDATE properties
		SET
			title           = COALESCE($2, title),
			description     = COALESCE($3, description),
			location        = COALESCE($4, location),
			price_per_night = COALESCE($5, price_per_night),
			bedrooms        = COALESCE($6, bedrooms),
			bathrooms       = COALESCE($7, bathrooms),
			max_guests      = COALESCE($8, max_guests),
			rating          = COALESCE($9, rating),
			updated_at      = now()
		WHERE id = $1
		RETURNING ` + propertyCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanProperty(r.pool.QueryRow(ctx, q,
		id, patch.Title, patch.Description, patch.Location, patch.PricePerNight,
		patch.Bedrooms, patch.Bathrooms, patch.MaxGuests, patch.Rating,
	))
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM properties WHERE id = $1`
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

func (r *propertyRepository) Upsert(ctx context.Context, p *domain.Property) error {
	const q = `
		INSERT INTO properties (id, title, description, location, price_per_night,
			bedrooms, bathrooms, max_guests, rating, host_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q,
		p.ID, p.Title, p.Description, p.Location, p.PricePerNight,
		p.Bedrooms, p.Bathrooms, p.MaxGuests, p.Rating, p.HostID,
	)
	return mapError(err)
}
