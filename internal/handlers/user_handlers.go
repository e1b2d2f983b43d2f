package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := domain.UserFilter{
		Username: r.URL.Query().Get("username"),
		Email:    r.URL.Query().Get("email"),
		Name:     r.URL.Query().Get("name"),
	}

	users, err := h.users.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	hash, err := h.credentials.HashPassword(req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Create(r.Context(), &req, hash)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user together with the bookings and reviews that
// reference it.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.cascade.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
