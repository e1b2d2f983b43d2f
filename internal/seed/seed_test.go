package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/internal/seed"
	"github.com/stayfinder/stayfinder-api/pkg/auth"
)

// ---------- Mocks ----------

type mockUserRepo struct {
	byUsername map[string]*domain.User
}

func (m *mockUserRepo) Upsert(_ context.Context, u *domain.User) error {
	if _, exists := m.byUsername[u.Username]; exists {
		return nil
	}
	m.byUsername[u.Username] = u
	return nil
}

func (m *mockUserRepo) Create(context.Context, *domain.CreateUserRequest, string) (*domain.User, error) {
	return nil, nil
}
func (m *mockUserRepo) GetByID(context.Context, string) (*domain.User, error) { return nil, nil }
func (m *mockUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (m *mockUserRepo) List(context.Context, domain.UserFilter) ([]domain.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Update(context.Context, string, domain.UserPatch) (*domain.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Delete(context.Context, string) error { return nil }

type mockHostRepo struct {
	byID map[string]*domain.Host
}

func (m *mockHostRepo) Upsert(_ context.Context, h *domain.Host) error {
	if _, exists := m.byID[h.ID]; exists {
		return nil
	}
	m.byID[h.ID] = h
	return nil
}

func (m *mockHostRepo) Create(context.Context, *domain.CreateHostRequest, string) (*domain.Host, error) {
	return nil, nil
}
func (m *mockHostRepo) GetByID(context.Context, string) (*domain.Host, error) { return nil, nil }
func (m *mockHostRepo) List(context.Context, string) ([]domain.Host, error)   { return nil, nil }
func (m *mockHostRepo) Update(context.Context, string, domain.HostPatch) (*domain.Host, error) {
	return nil, nil
}
func (m *mockHostRepo) Delete(context.Context, string) error { return nil }

type mockPropertyRepo struct {
	byID map[string]*domain.Property
}

func (m *mockPropertyRepo) Upsert(_ context.Context, p *domain.Property) error {
	if _, exists := m.byID[p.ID]; exists {
		return nil
	}
	m.byID[p.ID] = p
	return nil
}

func (m *mockPropertyRepo) Create(context.Context, *domain.CreatePropertyRequest) (*domain.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepo) GetByID(context.Context, string) (*domain.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepo) List(context.Context, domain.PropertyFilter) ([]domain.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepo) Update(context.Context, string, domain.PropertyPatch) (*domain.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepo) Delete(context.Context, string) error { return nil }

type mockBookingRepo struct {
	byID map[string]*domain.Booking
}

func (m *mockBookingRepo) CreateWithID(_ context.Context, id string, nb *domain.NewBooking) (*domain.Booking, error) {
	if _, exists := m.byID[id]; exists {
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
	}
	m.byID[id] = b
	return b, nil
}

func (m *mockBookingRepo) Create(context.Context, *domain.NewBooking) (*domain.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) GetByID(context.Context, string) (*domain.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) List(context.Context, string) ([]domain.Booking, error) { return nil, nil }
func (m *mockBookingRepo) Update(context.Context, string, *domain.BookingUpdate) (*domain.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) Delete(context.Context, string) error                    { return nil }
func (m *mockBookingRepo) DeleteByUser(context.Context, string) (int64, error)     { return 0, nil }
func (m *mockBookingRepo) DeleteByProperty(context.Context, string) (int64, error) { return 0, nil }

type mockReviewRepo struct {
	byID map[string]*domain.Review
}

func (m *mockReviewRepo) CreateWithID(_ context.Context, id string, req *domain.CreateReviewRequest) (*domain.Review, error) {
	if _, exists := m.byID[id]; exists {
		return nil, domain.ErrUniqueViolation
	}
	rv := &domain.Review{ID: id, Rating: req.Rating, Comment: req.Comment, UserID: req.UserID, PropertyID: req.PropertyID}
	m.byID[id] = rv
	return rv, nil
}

func (m *mockReviewRepo) Create(context.Context, *domain.CreateReviewRequest) (*domain.Review, error) {
	return nil, nil
}
func (m *mockReviewRepo) GetByID(context.Context, string) (*domain.Review, error) { return nil, nil }
func (m *mockReviewRepo) List(context.Context) ([]domain.Review, error)           { return nil, nil }
func (m *mockReviewRepo) Update(context.Context, string, domain.ReviewPatch) (*domain.Review, error) {
	return nil, nil
}
func (m *mockReviewRepo) Delete(context.Context, string) error                     { return nil }
func (m *mockReviewRepo) DeleteByUser(context.Context, string) (int64, error)      { return 0, nil }
func (m *mockReviewRepo) DeleteByProperty(context.Context, string) (int64, error)  { return 0, nil }

// fakeCredentials marks hashes so tests can tell hashing happened without
// paying for bcrypt.
type fakeCredentials struct{}

func (fakeCredentials) Login(context.Context, *domain.LoginRequest) (string, error) { return "", nil }
func (fakeCredentials) HashPassword(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}
func (fakeCredentials) VerifyPassword(string, string) bool            { return false }
func (fakeCredentials) IssueToken(string, string) (string, error)     { return "", nil }
func (fakeCredentials) VerifyToken(string) (*auth.Claims, error)      { return nil, nil }

// ---------- Test Setup ----------

type seedFixture struct {
	seeder     *seed.Seeder
	users      *mockUserRepo
	hosts      *mockHostRepo
	properties *mockPropertyRepo
	bookings   *mockBookingRepo
	reviews    *mockReviewRepo
}

func setupSeeder() *seedFixture {
	f := &seedFixture{
		users:      &mockUserRepo{byUsername: make(map[string]*domain.User)},
		hosts:      &mockHostRepo{byID: make(map[string]*domain.Host)},
		properties: &mockPropertyRepo{byID: make(map[string]*domain.Property)},
		bookings:   &mockBookingRepo{byID: make(map[string]*domain.Booking)},
		reviews:    &mockReviewRepo{byID: make(map[string]*domain.Review)},
	}
	f.seeder = seed.New(f.users, f.hosts, f.properties, f.bookings, f.reviews, fakeCredentials{})
	return f
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

// ---------- Tests ----------

func TestSeeder_Run(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "users.json", `[
		{"id": "11111111-1111-1111-1111-111111111111", "username": "alice", "password": "pw", "name": "Alice", "email": "alice@example.com"}
	]`)
	writeFixture(t, dir, "hosts.json", `[
		{"id": "22222222-2222-2222-2222-222222222222", "username": "henry", "password": "pw", "name": "Henry", "email": "henry@example.com", "aboutMe": "hi"}
	]`)
	writeFixture(t, dir, "properties.json", `[
		{"id": "33333333-3333-3333-3333-333333333333", "title": "Cabin", "hostId": "22222222-2222-2222-2222-222222222222", "pricePerNight": 99.5, "bedroomCount": 2}
	]`)
	writeFixture(t, dir, "bookings.json", `[
		{"id": "44444444-4444-4444-4444-444444444444", "checkinDate": "2026-09-01T00:00:00Z", "checkoutDate": "2026-09-05T00:00:00Z",
		 "userId": "11111111-1111-1111-1111-111111111111", "propertyId": "33333333-3333-3333-3333-333333333333"}
	]`)
	writeFixture(t, dir, "reviews.json", `[
		{"id": "55555555-5555-5555-5555-555555555555", "rating": 5, "comment": "great",
		 "userId": "11111111-1111-1111-1111-111111111111", "propertyId": "33333333-3333-3333-3333-333333333333"}
	]`)

	f := setupSeeder()
	if err := f.seeder.Run(context.Background(), dir); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	user := f.users.byUsername["alice"]
	if user == nil {
		t.Fatal("user not seeded")
	}
	if user.PasswordHash != "hashed:pw" {
		t.Errorf("password not hashed, got %q", user.PasswordHash)
	}
	if len(f.hosts.byID) != 1 || len(f.properties.byID) != 1 {
		t.Error("hosts or properties not seeded")
	}

	booking := f.bookings.byID["44444444-4444-4444-4444-444444444444"]
	if booking == nil {
		t.Fatal("booking not seeded")
	}
	if booking.CheckIn == nil || booking.CheckOut == nil {
		t.Error("booking dates not parsed")
	}
	if booking.NumberOfGuests != 1 || booking.BookingStatus != "confirmed" {
		t.Errorf("booking defaults not applied: %+v", booking)
	}
	if len(f.reviews.byID) != 1 {
		t.Error("review not seeded")
	}

	// A second run must converge: principals upserted, duplicate bookings and
	// reviews skipped without failing the run.
	if err := f.seeder.Run(context.Background(), dir); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if len(f.users.byUsername) != 1 || len(f.bookings.byID) != 1 || len(f.reviews.byID) != 1 {
		t.Error("second run duplicated rows")
	}
}

func TestSeeder_SkipsMissingFixtureFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "users.json", `[
		{"username": "alice", "password": "pw", "name": "Alice", "email": "alice@example.com"}
	]`)

	f := setupSeeder()
	if err := f.seeder.Run(context.Background(), dir); err != nil {
		t.Fatalf("run with partial fixtures failed: %v", err)
	}
	if len(f.users.byUsername) != 1 {
		t.Error("user not seeded")
	}

	// An omitted id gets generated.
	if id := f.users.byUsername["alice"].ID; len(id) != domain.IDLength {
		t.Errorf("expected generated 36-char id, got %q", id)
	}
}

func TestSeeder_AcceptsAlternateDateKeys(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "bookings.json", `[
		{"id": "66666666-6666-6666-6666-666666666666", "checkIn": "2026-09-01", "checkOut": "2026-09-03",
		 "userId": "u", "propertyId": "p"}
	]`)

	f := setupSeeder()
	if err := f.seeder.Run(context.Background(), dir); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	booking := f.bookings.byID["66666666-6666-6666-6666-666666666666"]
	if booking == nil || booking.CheckIn == nil || booking.CheckOut == nil {
		t.Fatal("booking dates from alternate keys not parsed")
	}
}
