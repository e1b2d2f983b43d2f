package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.NewBooking) (*domain.Booking, error)
	CreateWithID(ctx context.Context, id string, b *domain.NewBooking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, userID string) ([]domain.Booking, error)
	Update(ctx context.Context, id string, upd *domain.BookingUpdate) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByProperty(ctx context.Context, propertyID string) (int64, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, check_in, check_out, number_of_guests, total_price,
booking_status, user_id, property_id, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.CheckIn, &b.CheckOut, &b.NumberOfGuests, &b.TotalPrice,
		&b.BookingStatus, &b.UserID, &b.PropertyID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.NewBooking) (*domain.Booking, error) {
	return r.CreateWithID(ctx, uuid.NewString(), b)
}

// CreateWithID inserts a booking under a caller-chosen identifier. The seeder
// uses it to preserve fixture ids.
func (r *bookingRepository) CreateWithID(ctx context.Context, id string, b *domain.NewBooking) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (id, check_in, check_out, number_of_guests, total_price,
			booking_status, user_id, property_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q,
		id, b.CheckIn, b.CheckOut, b.NumberOfGuests, b.TotalPrice,
		b.BookingStatus, b.UserID, b.PropertyID,
	))
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q, id))
}

func (r *bookingRepository) List(ctx context.Context, userID string) ([]domain.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings`
	var args []any
	if userID != "" {
		q += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	q += ` ORDER BY created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Update(ctx context.Context, id string, upd *domain.BookingUpdate) (*domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET
			check_in         = COALESCE($2, check_in),
			check_out        = COALESCE($3, check_out),
			number_of_guests = COALESCE($4, number_of_guests),
			total_price      = COALESCE($5, total_price),
			booking_status   = COALESCE($6, booking_status),
			updated_at       = now()
		WHERE id = $1
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q,
		id, upd.CheckIn, upd.CheckOut, upd.NumberOfGuests, upd.TotalPrice, upd.BookingStatus,
	))
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM bookings WHERE id = $1`
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

func (r *bookingRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	const q = `DELETE FROM bookings WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, userID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}

func (r *bookingRepository) DeleteByProperty(ctx context.Context, propertyID string) (int64, error) {
	const q = `DELETE FROM bookings WHERE property_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, propertyID)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected(), nil
}
