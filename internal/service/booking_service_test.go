package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/internal/service"
	"github.com/stayfinder/stayfinder-api/pkg/events"
)

// ---------- Mocks ----------

type mockBookingRepo struct {
	bookings map[string]*domain.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (m *mockBookingRepo) Create(ctx context.Context, nb *domain.NewBooking) (*domain.Booking, error) {
	return m.CreateWithID(ctx, uuid.NewString(), nb)
}

func (m *mockBookingRepo) CreateWithID(_ context.Context, id string, nb *domain.NewBooking) (*domain.Booking, error) {
	if _, exists := m.bookings[id]; exists {
		return nil, domain.ErrUniqueViolation
	}
	b := &domain.Booking{
		ID:             id,
		CheckIn:        nb.CheckIn,
		CheckOut:       nb.CheckOut,
		NumberOfGuests: nb.NumberOfGuests,
		TotalPrice:     nb.TotalPrice,
		BookingStatus:  nb.BookingStatus,
		UserID:         nb.UserID,
		PropertyID:     nb.PropertyID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	m.bookings[id] = b
	return b, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, exists := m.bookings[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (m *mockBookingRepo) List(_ context.Context, userID string) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, b := range m.bookings {
		if userID != "" && b.UserID != userID {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBookingRepo) Update(_ context.Context, id string, upd *domain.BookingUpdate) (*domain.Booking, error) {
	b, exists := m.bookings[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	if upd.CheckIn != nil {
		b.CheckIn = upd.CheckIn
	}
	if upd.CheckOut != nil {
		b.CheckOut = upd.CheckOut
	}
	if upd.NumberOfGuests != nil {
		b.NumberOfGuests = *upd.NumberOfGuests
	}
	if upd.TotalPrice != nil {
		b.TotalPrice = *upd.TotalPrice
	}
	if upd.BookingStatus != nil {
		b.BookingStatus = *upd.BookingStatus
	}
	b.UpdatedAt = time.Now()
	return b, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	if _, exists := m.bookings[id]; !exists {
		return domain.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *mockBookingRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, b := range m.bookings {
		if b.UserID == userID {
			delete(m.bookings, id)
			n++
		}
	}
	return n, nil
}

func (m *mockBookingRepo) DeleteByProperty(_ context.Context, propertyID string) (int64, error) {
	var n int64
	for id, b := range m.bookings {
		if b.PropertyID == propertyID {
			delete(m.bookings, id)
			n++
		}
	}
	return n, nil
}

type mockIdentityRepo struct {
	users      map[string]bool
	properties map[string]bool
}

func newMockIdentityRepo() *mockIdentityRepo {
	return &mockIdentityRepo{
		users:      make(map[string]bool),
		properties: make(map[string]bool),
	}
}

func (m *mockIdentityRepo) UserExists(_ context.Context, id string) (bool, error) {
	return m.users[id], nil
}

func (m *mockIdentityRepo) PropertyExists(_ context.Context, id string) (bool, error) {
	return m.properties[id], nil
}

// ---------- Test Setup ----------

func setupBookingService() (service.BookingService, *mockBookingRepo, *mockIdentityRepo) {
	bookingRepo := newMockBookingRepo()
	identityRepo := newMockIdentityRepo()
	svc := service.NewBookingService(bookingRepo, identityRepo, events.Noop{})
	return svc, bookingRepo, identityRepo
}

// ---------- Tests ----------

func TestCreateBooking_AppliesDefaults(t *testing.T) {
	svc, _, identity := setupBookingService()

	userID := uuid.NewString()
	propertyID := uuid.NewString()
	identity.users[userID] = true
	identity.properties[propertyID] = true

	booking, err := svc.Create(context.Background(), &domain.CreateBookingRequest{
		UserID:     userID,
		PropertyID: propertyID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.NumberOfGuests != 1 {
		t.Errorf("expected 1 guest by default, got %d", booking.NumberOfGuests)
	}
	if booking.TotalPrice != 0 {
		t.Errorf("expected zero price by default, got %f", booking.TotalPrice)
	}
	if booking.BookingStatus != "confirmed" {
		t.Errorf("expected confirmed status by default, got %q", booking.BookingStatus)
	}
	if booking.CheckIn != nil || booking.CheckOut != nil {
		t.Error("expected nil dates when none supplied")
	}
}

func TestCreateBooking_RequiredReferences(t *testing.T) {
	svc, _, _ := setupBookingService()

	_, err := svc.Create(context.Background(), &domain.CreateBookingRequest{
		UserID: uuid.NewString(),
	})
	if err == nil {
		t.Fatal("expected error for missing propertyId")
	}
	if !domain.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateBooking_MalformedReference(t *testing.T) {
	svc, _, identity := setupBookingService()

	propertyID := uuid.NewString()
	identity.properties[propertyID] = true

	_, err := svc.Create(context.Background(), &domain.CreateBookingRequest{
		UserID:     "not-a-real-id",
		PropertyID: propertyID,
	})

	var mr *domain.MalformedReferenceError
	if !errors.As(err, &mr) {
		t.Fatalf("expected malformed reference error, got %v", err)
	}
	if mr.Field != "userId" {
		t.Errorf("expected userId named, got %q", mr.Field)
	}
}

func TestCreateBooking_DanglingReference(t *testing.T) {
	svc, _, identity := setupBookingService()

	userID := uuid.NewString()
	identity.users[userID] = true

	tests := []struct {
		name       string
		userID     string
		propertyID string
		wantField  string
	}{
		{"unknown user", uuid.NewString(), uuid.NewString(), "userId"},
		{"unknown property", userID, uuid.NewString(), "propertyId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &domain.CreateBookingRequest{
				UserID:     tt.userID,
				PropertyID: tt.propertyID,
			})

			var dr *domain.DanglingReferenceError
			if !errors.As(err, &dr) {
				t.Fatalf("expected dangling reference error, got %v", err)
			}
			if dr.Field != tt.wantField {
				t.Errorf("expected %s named, got %q", tt.wantField, dr.Field)
			}
		})
	}
}

func TestCreateBooking_DateValidation(t *testing.T) {
	svc, _, identity := setupBookingService()

	userID := uuid.NewString()
	propertyID := uuid.NewString()
	identity.users[userID] = true
	identity.properties[propertyID] = true

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{"plain date accepted", "2026-09-01", "2026-09-05", nil},
		{"rfc3339 accepted", "2026-09-01T15:00:00Z", "2026-09-05T11:00:00Z", nil},
		{"mixed layouts accepted", "2026-09-01", "2026-09-05T11:00:00Z", nil},
		{"garbage check-in", "next tuesday", "2026-09-05", domain.ErrInvalidDate},
		{"garbage check-out", "2026-09-01", "soon", domain.ErrInvalidDate},
		{"reversed range", "2026-09-05", "2026-09-01", domain.ErrInvalidRange},
		{"zero-length stay", "2026-09-01", "2026-09-01", domain.ErrInvalidRange},
		{"only check-in", "2026-09-01", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &domain.CreateBookingRequest{
				UserID:     userID,
				PropertyID: propertyID,
				CheckIn:    tt.checkIn,
				CheckOut:   tt.checkOut,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateBooking_MissingTarget(t *testing.T) {
	svc, _, _ := setupBookingService()

	guests := 3
	_, err := svc.Update(context.Background(), uuid.NewString(), &domain.BookingPatch{
		NumberOfGuests: &guests,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateBooking_RejectsReversedRange(t *testing.T) {
	svc, repo, identity := setupBookingService()

	userID := uuid.NewString()
	propertyID := uuid.NewString()
	identity.users[userID] = true
	identity.properties[propertyID] = true

	booking, err := svc.Create(context.Background(), &domain.CreateBookingRequest{
		UserID:     userID,
		PropertyID: propertyID,
		CheckIn:    "2026-09-01",
		CheckOut:   "2026-09-05",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := "2026-09-10"
	out := "2026-09-08"
	_, err = svc.Update(context.Background(), booking.ID, &domain.BookingPatch{
		CheckIn:  &in,
		CheckOut: &out,
	})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("expected invalid range, got %v", err)
	}

	// The stored booking must be untouched after the rejected patch.
	stored := repo.bookings[booking.ID]
	if stored.CheckIn == nil || !stored.CheckIn.Equal(*booking.CheckIn) {
		t.Error("booking mutated by rejected patch")
	}
}

func TestDeleteBooking_MissingTarget(t *testing.T) {
	svc, _, _ := setupBookingService()

	if err := svc.Delete(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
