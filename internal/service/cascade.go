package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/internal/repo/postgres"
	"github.com/stayfinder/stayfinder-api/pkg/events"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

// CascadeCoordinator removes the bookings and reviews that reference a parent
// entity before removing the parent itself. Bookings and reviews hold
// non-nullable references, so dependents must be gone first; the three calls
// are sequential and not wrapped in a transaction, and the ordering is what
// keeps partial failures harmless.
type CascadeCoordinator interface {
	DeleteProperty(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

type cascadeCoordinator struct {
	users      postgres.UserRepository
	properties postgres.PropertyRepository
	bookings   postgres.BookingRepository
	reviews    postgres.ReviewRepository
	bus        events.Publisher
}

func NewCascadeCoordinator(
	users postgres.UserRepository,
	properties postgres.PropertyRepository,
	bookings postgres.BookingRepository,
	reviews postgres.ReviewRepository,
	bus events.Publisher,
) CascadeCoordinator {
	return &cascadeCoordinator{
		users:      users,
		properties: properties,
		bookings:   bookings,
		reviews:    reviews,
		bus:        bus,
	}
}

func (c *cascadeCoordinator) DeleteProperty(ctx context.Context, id string) error {
	if _, err := c.properties.GetByID(ctx, id); err != nil {
		return err
	}

	nBookings, err := c.bookings.DeleteByProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete dependent bookings: %w", err)
	}
	nReviews, err := c.reviews.DeleteByProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete dependent reviews: %w", err)
	}

	// A concurrent delete of the same property may win the race for the
	// parent row; the dependents are gone either way, so that is not an
	// error.
	if err := c.properties.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	logger.InfoContext(ctx, "Property deleted with dependents",
		"property_id", id, "bookings_removed", nBookings, "reviews_removed", nReviews)

	event := events.CascadeDeletedEvent{
		ParentID:        id,
		BookingsRemoved: nBookings,
		ReviewsRemoved:  nReviews,
		DeletedAt:       time.Now(),
	}
	if err := c.bus.Publish(ctx, events.PropertyDeleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish property deleted event", "error", err, "property_id", id)
	}

	return nil
}

func (c *cascadeCoordinator) DeleteUser(ctx context.Context, id string) error {
	if _, err := c.users.GetByID(ctx, id); err != nil {
		return err
	}

	nBookings, err := c.bookings.DeleteByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete dependent bookings: %w", err)
	}
	nReviews, err := c.reviews.DeleteByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete dependent reviews: %w", err)
	}

	if err := c.users.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.InfoContext(ctx, "User deleted with dependents",
		"user_id", id, "bookings_removed", nBookings, "reviews_removed", nReviews)

	event := events.CascadeDeletedEvent{
		ParentID:        id,
		BookingsRemoved: nBookings,
		ReviewsRemoved:  nReviews,
		DeletedAt:       time.Now(),
	}
	if err := c.bus.Publish(ctx, events.UserDeleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user deleted event", "error", err, "user_id", id)
	}

	return nil
}
