package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/pkg/logger"
)

// Login exchanges a username and password for an access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	token, err := h.credentials.Login(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger.InfoContext(r.Context(), "User logged in", "username", req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
