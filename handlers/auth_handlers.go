package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/enterprise-service/admin-backend/models"
	"github.com/enterprise-service/admin-backend/utils"
)

// handleRegister creates an admin account and issues a token in one step.
// A taken email surfaces as Unauthorized on this route.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.adminService.Create(r.Context(), &models.CreateAdminRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			utils.RespondWithError(w, http.StatusUnauthorized, models.ErrEmailTaken.Error())
			return
		}
		slog.Error("Registration failed", "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register admin")
		return
	}

	token, err := h.authService.GenerateToken(admin.AdminID, admin.Email)
	if err != nil {
		slog.Error("Token generation failed", "adminID", admin.AdminID, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithSuccess(w, http.StatusCreated, models.AuthResponse{
		AccessToken: token,
		Admin:       admin,
	})
}

// handleLogin checks credentials and issues a token. Unknown email and wrong
// password produce the same response.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.adminService.FindByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("Login lookup failed", "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	if admin == nil || !h.authService.ValidatePassword(req.Password, admin.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.authService.GenerateToken(admin.AdminID, admin.Email)
	if err != nil {
		slog.Error("Token generation failed", "adminID", admin.AdminID, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	response, err := h.adminService.FindOne(r.Context(), admin.AdminID)
	if err != nil {
		slog.Error("Login admin fetch failed", "adminID", admin.AdminID, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, models.AuthResponse{
		AccessToken: token,
		Admin:       response,
	})
}

// handleVerify returns the claims the auth guard already verified
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := utils.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, claims)
}

// handleRefresh re-issues a token for the authenticated principal
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	claims, ok := utils.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	admin, err := h.adminService.FindOne(r.Context(), claims.AdminID)
	if err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		slog.Error("Refresh admin fetch failed", "adminID", claims.AdminID, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	token, err := h.authService.GenerateToken(admin.AdminID, admin.Email)
	if err != nil {
		slog.Error("Token generation failed", "adminID", admin.AdminID, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, models.AuthResponse{
		AccessToken: token,
		Admin:       admin,
	})
}
