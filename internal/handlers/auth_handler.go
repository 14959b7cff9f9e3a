package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"quickbuy/internal/middleware"
	"quickbuy/internal/models"
	"quickbuy/internal/response"
	"quickbuy/internal/services"
)

type AuthHandler struct {
	userService *services.UserService
	authService *services.AuthService
	logger      zerolog.Logger
	debug       bool
}

func NewAuthHandler(userService *services.UserService, authService *services.AuthService, logger zerolog.Logger, debug bool) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		logger:      logger,
		debug:       debug,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", user, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), &req)
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	token, err := h.authService.IssueToken(user.ID, user.Role)
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "Logged in successfully", models.AuthResponse{
		User:  user,
		Token: token,
	}, nil)
}

// Logout only acknowledges: identity is token-based and stateless, so the
// client discards the token and expiry does the rest.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Logged out successfully", nil, nil)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.Profile(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", user, nil)
}
