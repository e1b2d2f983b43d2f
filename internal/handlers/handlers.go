package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/internal/repo/postgres"
	"github.com/stayfinder/stayfinder-api/internal/service"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

type Handlers struct {
	credentials service.CredentialService
	bookings    service.BookingService
	cascade     service.CascadeCoordinator
	users       postgres.UserRepository
	hosts       postgres.HostRepository
	properties  postgres.PropertyRepository
	reviews     postgres.ReviewRepository
}

func New(
	credentials service.CredentialService,
	bookings service.BookingService,
	cascade service.CascadeCoordinator,
	users postgres.UserRepository,
	hosts postgres.HostRepository,
	properties postgres.PropertyRepository,
	reviews postgres.ReviewRepository,
) *Handlers {
	return &Handlers{
		credentials: credentials,
		bookings:    bookings,
		cascade:     cascade,
		users:       users,
		hosts:       hosts,
		properties:  properties,
		reviews:     reviews,
	}
}

// Routes assembles the full API surface. Reads are public; every mutation
// sits behind RequireAuth.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.With(h.RequireAuth).Post("/", h.CreateUser)
		r.With(h.RequireAuth).Put("/{id}", h.UpdateUser)
		r.With(h.RequireAuth).Delete("/{id}", h.DeleteUser)
	})

	r.Route("/hosts", func(r chi.Router) {
		r.Get("/", h.ListHosts)
		r.Get("/{id}", h.GetHost)
		r.With(h.RequireAuth).Post("/", h.CreateHost)
		r.With(h.RequireAuth).Put("/{id}", h.UpdateHost)
		r.With(h.RequireAuth).Delete("/{id}", h.DeleteHost)
	})

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.ListProperties)
		r.Get("/{id}", h.GetProperty)
		r.With(h.RequireAuth).Post("/", h.CreateProperty)
		r.With(h.RequireAuth).Put("/{id}", h.UpdateProperty)
		r.With(h.RequireAuth).Delete("/{id}", h.DeleteProperty)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.With(h.RequireAuth).Post("/", h.CreateBooking)
		r.With(h.RequireAuth).Put("/{id}", h.UpdateBooking)
		r.With(h.RequireAuth).Delete("/{id}", h.DeleteBooking)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)
		r.Get("/{id}", h.GetReview)
		r.With(h.RequireAuth).Post("/", h.CreateReview)
		r.With(h.RequireAuth).Put("/{id}", h.UpdateReview)
		r.With(h.RequireAuth).Delete("/{id}", h.DeleteReview)
	})

	return r
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// respondError maps a domain error to its HTTP status. Unexpected errors get
// a generic body; the detail goes to the log and to Sentry only.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrUniqueViolation):
		writeError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, domain.ErrUnknownUser), errors.Is(err, domain.ErrWrongPassword):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		logger.ErrorContext(r.Context(), "Unhandled error",
			"error", err, "method", r.Method, "path", r.URL.Path)
		sentry.CaptureException(err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
