package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	filter := domain.PropertyFilter{
		Location: r.URL.Query().Get("location"),
	}
	if raw := r.URL.Query().Get("pricePerNight"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "pricePerNight must be a number")
			return
		}
		filter.PricePerNight = &price
	}

	properties, err := h.properties.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if properties == nil {
		properties = []domain.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.properties.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	property, err := h.properties.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	var patch domain.PropertyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}
	if err := patch.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	property, err := h.properties.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// DeleteProperty removes a property together with the bookings and reviews
// that reference it.
func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.cascade.DeleteProperty(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
