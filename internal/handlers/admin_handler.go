package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"quickbuy/internal/response"
	"quickbuy/internal/services"
)

// AdminHandler serves the admin user-management panel. Routes are gated by
// the admin role in the router; handlers only do the work.
type AdminHandler struct {
	userService *services.UserService
	logger      zerolog.Logger
	debug       bool
}

func NewAdminHandler(userService *services.UserService, logger zerolog.Logger, debug bool) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		logger:      logger,
		debug:       debug,
	}
}

func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users, nil)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil, nil)
}
