package handlers

import (
	"encoding/json"
	"net/http"

	"mboma-backend/internal/auth"
	"mboma-backend/internal/middleware"
	"mboma-backend/internal/models"
	"mboma-backend/internal/services"
	"mboma-backend/pkg/utils"
)

type AuthHandler struct {
	Service    *services.UserService
	JWTManager *auth.JWTManager
}

func NewAuthHandler(s *services.UserService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		Service:    s,
		JWTManager: jwtManager,
	}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		if isDomainError(err) {
			writeDomainError(w, err)
		} else {
			utils.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	token, err := h.JWTManager.GenerateToken(user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.JSON(w, http.StatusCreated, &models.AuthResponse{Token: token, User: user})
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Service.Authenticate(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.JWTManager.GenerateToken(user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.JSON(w, http.StatusOK, &models.AuthResponse{Token: token, User: user})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.Service.GetProfile(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
