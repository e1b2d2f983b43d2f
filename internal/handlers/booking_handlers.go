package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	booking, err := h.bookings.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if claims := getClaims(r); claims != nil {
		logger.InfoContext(r.Context(), "Booking created",
			"booking_id", booking.ID, "created_by", claims.Username)
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handlers) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var patch domain.BookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	booking, err := h.bookings.Update(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handlers) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.bookings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
