package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/internal/repo/postgres"
	"github.com/stayfinder/stayfinder-api/pkg/events"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

type BookingService interface {
	Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, userID string) ([]domain.Booking, error)
	Update(ctx context.Context, id string, patch *domain.BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	bookings postgres.BookingRepository
	identity postgres.IdentityRepository
	bus      events.Publisher
}

func NewBookingService(bookings postgres.BookingRepository, identity postgres.IdentityRepository, bus events.Publisher) BookingService {
	return &bookingService{bookings: bookings, identity: identity, bus: bus}
}

func (s *bookingService) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	nb, err := s.validateCreate(ctx, req)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Create(ctx, nb)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		PropertyID: booking.PropertyID,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Status:     booking.BookingStatus,
		CreatedAt:  booking.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.List(ctx, userID)
}

func (s *bookingService) Update(ctx context.Context, id string, patch *domain.BookingPatch) (*domain.Booking, error) {
	// Target must exist before any mutation is attempted.
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		return nil, err
	}

	upd, err := validatePatch(patch)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	event := events.BookingUpdatedEvent{
		BookingID: booking.ID,
		Changes:   patchedFields(patch),
		UpdatedAt: booking.UpdatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingUpdated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking updated event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.bus.Publish(ctx, events.BookingDeleted, map[string]string{"booking_id": id}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking deleted event", "error", err, "booking_id", id)
	}
	return nil
}

// validateCreate runs the full booking validation pipeline: required fields,
// identifier shape, existence of both references, then date semantics. The
// shape check runs before any lookup so malformed ids never hit the store.
func (s *bookingService) validateCreate(ctx context.Context, req *domain.CreateBookingRequest) (*domain.NewBooking, error) {
	if req.UserID == "" || req.PropertyID == "" {
		return nil, domain.ValidationError("userId and propertyId are required")
	}
	if !domain.LooksLikeID(req.UserID) {
		return nil, &domain.MalformedReferenceError{Field: "userId"}
	}
	if !domain.LooksLikeID(req.PropertyID) {
		return nil, &domain.MalformedReferenceError{Field: "propertyId"}
	}

	// The two lookups are independent reads, so issue both before awaiting
	// either.
	var userOK, propertyOK bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userOK, err = s.identity.UserExists(gctx, req.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		propertyOK, err = s.identity.PropertyExists(gctx, req.PropertyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve references: %w", err)
	}
	if !userOK {
		return nil, &domain.DanglingReferenceError{Field: "userId"}
	}
	if !propertyOK {
		return nil, &domain.DanglingReferenceError{Field: "propertyId"}
	}

	checkIn, checkOut, err := parseDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	nb := &domain.NewBooking{
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		TotalPrice:     req.TotalPrice,
		BookingStatus:  req.BookingStatus,
		UserID:         req.UserID,
		PropertyID:     req.PropertyID,
	}
	if nb.NumberOfGuests <= 0 {
		nb.NumberOfGuests = 1
	}
	if nb.BookingStatus == "" {
		nb.BookingStatus = domain.DefaultBookingStatus
	}
	return nb, nil
}

func validatePatch(patch *domain.BookingPatch) (*domain.BookingUpdate, error) {
	upd := &domain.BookingUpdate{
		NumberOfGuests: patch.NumberOfGuests,
		TotalPrice:     patch.TotalPrice,
		BookingStatus:  patch.BookingStatus,
	}

	var checkIn, checkOut string
	if patch.CheckIn != nil {
		checkIn = *patch.CheckIn
	}
	if patch.CheckOut != nil {
		checkOut = *patch.CheckOut
	}
	var err error
	upd.CheckIn, upd.CheckOut, err = parseDates(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return upd, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ErrInvalidDate
}

// parseDates parses whichever of the two dates are supplied and enforces the
// strict checkOut > checkIn ordering when both are present. A single supplied
// date is still parsed but there is nothing to order it against.
func parseDates(checkIn, checkOut string) (*time.Time, *time.Time, error) {
	var in, out *time.Time
	if checkIn != "" {
		t, err := parseDate(checkIn)
		if err != nil {
			return nil, nil, err
		}
		in = &t
	}
	if checkOut != "" {
		t, err := parseDate(checkOut)
		if err != nil {
			return nil, nil, err
		}
		out = &t
	}
	if in != nil && out != nil && !out.After(*in) {
		return nil, nil, domain.ErrInvalidRange
	}
	return in, out, nil
}

func patchedFields(patch *domain.BookingPatch) []string {
	var changes []string
	if patch.CheckIn != nil {
		changes = append(changes, "checkIn")
	}
	if patch.CheckOut != nil {
		changes = append(changes, "checkOut")
	}
	if patch.NumberOfGuests != nil {
		changes = append(changes, "numberOfGuests")
	}
	if patch.TotalPrice != nil {
		changes = append(changes, "totalPrice")
	}
	if patch.BookingStatus != nil {
		changes = append(changes, "bookingStatus")
	}
	return changes
}
