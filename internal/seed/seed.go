package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/internal/repo/postgres"
	"github.com/stayfinder/stayfinder-api/internal/service"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

// Seeder loads JSON fixtures into the store. Principals (users, hosts,
// properties) are upserted so reseeding converges on the same state;
// bookings and reviews are create-only, with duplicates logged and skipped.
type Seeder struct {
	users       postgres.UserRepository
	hosts       postgres.HostRepository
	properties  postgres.PropertyRepository
	bookings    postgres.BookingRepository
	reviews     postgres.ReviewRepository
	credentials service.CredentialService
}

func New(
	users postgres.UserRepository,
	hosts postgres.HostRepository,
	properties postgres.PropertyRepository,
	bookings postgres.BookingRepository,
	reviews postgres.ReviewRepository,
	credentials service.CredentialService,
) *Seeder {
	return &Seeder{
		users:       users,
		hosts:       hosts,
		properties:  properties,
		bookings:    bookings,
		reviews:     reviews,
		credentials: credentials,
	}
}

type userFixture struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture"`
}

type hostFixture struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture"`
	About          string `json:"aboutMe"`
}

type propertyFixture struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"pricePerNight"`
	Bedrooms      int     `json:"bedroomCount"`
	Bathrooms     int     `json:"bathRoomCount"`
	MaxGuests     int     `json:"maxGuestCount"`
	Rating        float64 `json:"rating"`
	HostID        string  `json:"hostId"`
}

// bookingFixture accepts both date spellings found in fixture exports.
type bookingFixture struct {
	ID             string  `json:"id"`
	CheckIn        string  `json:"checkinDate"`
	CheckInAlt     string  `json:"checkIn"`
	CheckOut       string  `json:"checkoutDate"`
	CheckOutAlt    string  `json:"checkOut"`
	NumberOfGuests int     `json:"numberOfGuests"`
	TotalPrice     float64 `json:"totalPrice"`
	BookingStatus  string  `json:"bookingStatus"`
	UserID         string  `json:"userId"`
	PropertyID     string  `json:"propertyId"`
}

type reviewFixture struct {
	ID         string `json:"id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
}

// Run seeds every fixture file found under dir. Missing files are skipped so
// partial fixture sets work.
func (s *Seeder) Run(ctx context.Context, dir string) error {
	if err := s.seedUsers(ctx, dir+"/users.json"); err != nil {
		return err
	}
	if err := s.seedHosts(ctx, dir+"/hosts.json"); err != nil {
		return err
	}
	if err := s.seedProperties(ctx, dir+"/properties.json"); err != nil {
		return err
	}
	if err := s.seedBookings(ctx, dir+"/bookings.json"); err != nil {
		return err
	}
	return s.seedReviews(ctx, dir+"/reviews.json")
}

func loadFixtures[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Fixture file not found, skipping", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return items, nil
}

func (s *Seeder) seedUsers(ctx context.Context, path string) error {
	fixtures, err := loadFixtures[userFixture](path)
	if err != nil {
		return err
	}

	for _, f := range fixtures {
		hash, err := s.credentials.HashPassword(f.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", f.Username, err)
		}
		u := &domain.User{
			ID:             orNewID(f.ID),
			Username:       f.Username,
			PasswordHash:   hash,
			Name:           f.Name,
			Email:          f.Email,
			PhoneNumber:    f.PhoneNumber,
			ProfilePicture: f.ProfilePicture,
		}
		if err := s.users.Upsert(ctx, u); err != nil {
			return fmt.Errorf("failed to upsert user %s: %w", f.Username, err)
		}
	}

	logger.Info("Seeded users", "count", len(fixtures))
	return nil
}

func (s *Seeder) seedHosts(ctx context.Context, path string) error {
	fixtures, err := loadFixtures[hostFixture](path)
	if err != nil {
		return err
	}

	for _, f := range fixtures {
		hash, err := s.credentials.HashPassword(f.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", f.Username, err)
		}
		host := &domain.Host{
			ID:             orNewID(f.ID),
			Username:       f.Username,
			PasswordHash:   hash,
			Name:           f.Name,
			Email:          f.Email,
			PhoneNumber:    f.PhoneNumber,
			ProfilePicture: f.ProfilePicture,
			About:          f.About,
		}
		if err := s.hosts.Upsert(ctx, host); err != nil {
			return fmt.Errorf("failed to upsert host %s: %w", f.Username, err)
		}
	}

	logger.Info("Seeded hosts", "count", len(fixtures))
	return nil
}

func (s *Seeder) seedProperties(ctx context.Context, path string) error {
	fixtures, err := loadFixtures[propertyFixture](path)
	if err != nil {
		return err
	}

	for _, f := range fixtures {
		p := &domain.Property{
			ID:            orNewID(f.ID),
			Title:         f.Title,
			Description:   f.Description,
			Location:      f.Location,
			PricePerNight: f.PricePerNight,
			Bedrooms:      f.Bedrooms,
			Bathrooms:     f.Bathrooms,
			MaxGuests:     f.MaxGuests,
			Rating:        f.Rating,
			HostID:        f.HostID,
		}
		if err := s.properties.Upsert(ctx, p); err != nil {
			return fmt.Errorf("failed to upsert property %s: %w", f.Title, err)
		}
	}

	logger.Info("Seeded properties", "count", len(fixtures))
	return nil
}

func (s *Seeder) seedBookings(ctx context.Context, path string) error {
	fixtures, err := loadFixtures[bookingFixture](path)
	if err != nil {
		return err
	}

	created := 0
	for _, f := range fixtures {
		nb := &domain.NewBooking{
			NumberOfGuests: f.NumberOfGuests,
			TotalPrice:     f.TotalPrice,
			BookingStatus:  f.BookingStatus,
			UserID:         f.UserID,
			PropertyID:     f.PropertyID,
		}
		if nb.NumberOfGuests <= 0 {
			nb.NumberOfGuests = 1
		}
		if nb.BookingStatus == "" {
			nb.BookingStatus = domain.DefaultBookingStatus
		}
		if nb.CheckIn, err = parseFixtureDate(coalesce(f.CheckIn, f.CheckInAlt)); err != nil {
			return fmt.Errorf("bad check-in date in booking %s: %w", f.ID, err)
		}
		if nb.CheckOut, err = parseFixtureDate(coalesce(f.CheckOut, f.CheckOutAlt)); err != nil {
			return fmt.Errorf("bad check-out date in booking %s: %w", f.ID, err)
		}

		if _, err := s.bookings.CreateWithID(ctx, orNewID(f.ID), nb); err != nil {
			if errors.Is(err, domain.ErrUniqueViolation) {
				logger.Warn("Booking already seeded, skipping", "booking_id", f.ID)
				continue
			}
			return fmt.Errorf("failed to seed booking %s: %w", f.ID, err)
		}
		created++
	}

	logger.Info("Seeded bookings", "created", created, "total", len(fixtures))
	return nil
}

func (s *Seeder) seedReviews(ctx context.Context, path string) error {
	fixtures, err := loadFixtures[reviewFixture](path)
	if err != nil {
		return err
	}

	created := 0
	for _, f := range fixtures {
		req := &domain.CreateReviewRequest{
			Rating:     f.Rating,
			Comment:    f.Comment,
			UserID:     f.UserID,
			PropertyID: f.PropertyID,
		}
		if _, err := s.reviews.CreateWithID(ctx, orNewID(f.ID), req); err != nil {
			if errors.Is(err, domain.ErrUniqueViolation) {
				logger.Warn("Review already seeded, skipping", "review_id", f.ID)
				continue
			}
			return fmt.Errorf("failed to seed review %s: %w", f.ID, err)
		}
		created++
	}

	logger.Info("Seeded reviews", "created", created, "total", len(fixtures))
	return nil
}

var fixtureDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseFixtureDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range fixtureDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", raw)
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
