package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"simwarga/internal/auth"
	"simwarga/pkg/domainerr"
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	Logout(ctx context.Context, tokenString string) error
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	service AuthService
	logger  *slog.Logger
}

func NewAuthHandler(service AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, r, domainerr.New(domainerr.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeError(w, h.logger, r, domainerr.New(domainerr.CodeUnauthorized, "Missing or invalid Authorization header"))
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Logout successful", nil)
}
