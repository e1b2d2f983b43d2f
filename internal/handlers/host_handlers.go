package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stayfinder/stayfinder-api/internal/domain"
)

func (h *Handlers) ListHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.hosts.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if hosts == nil {
		hosts = []domain.Host{}
	}
	writeJSON(w, http.StatusOK, hosts)
}

func (h *Handlers) GetHost(w http.ResponseWriter, r *http.Request) {
	host, err := h.hosts.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, host)
}

func (h *Handlers) CreateHost(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateHostRequest
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

	host, err := h.hosts.Create(r.Context(), &req, hash)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, host)
}

func (h *Handlers) UpdateHost(w http.ResponseWriter, r *http.Request) {
	var patch domain.HostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	host, err := h.hosts.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, host)
}

// DeleteHost is a plain delete. Bookings and reviews reference users and
// properties, never hosts, so there is nothing to cascade.
func (h *Handlers) DeleteHost(w http.ResponseWriter, r *http.Request) {
	if err := h.hosts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
