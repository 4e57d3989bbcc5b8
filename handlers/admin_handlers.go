package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/enterprise-service/admin-backend/models"
	"github.com/enterprise-service/admin-backend/utils"
)

// Admin handlers
func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.adminService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			utils.RespondWithError(w, http.StatusConflict, models.ErrEmailTaken.Error())
			return
		}
		slog.Error("Admin creation failed", "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	utils.RespondWithEnvelope(w, http.StatusCreated, admin)
}

func (h *Handler) getAllAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminService.FindAll(r.Context())
	if err != nil {
		slog.Error("Admin listing failed", "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list admins")
		return
	}

	utils.RespondWithEnvelope(w, http.StatusOK, admins)
}

func (h *Handler) getAdmin(w http.ResponseWriter, r *http.Request, adminId string) {
	admin, err := h.adminService.FindOne(r.Context(), adminId)
	if err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, models.ErrAdminNotFound.Error())
			return
		}
		slog.Error("Admin fetch failed", "adminID", adminId, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get admin")
		return
	}

	utils.RespondWithEnvelope(w, http.StatusOK, admin)
}

func (h *Handler) updateAdmin(w http.ResponseWriter, r *http.Request, adminId string) {
	var req models.UpdateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.adminService.Update(r.Context(), adminId, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAdminNotFound):
			utils.RespondWithError(w, http.StatusNotFound, models.ErrAdminNotFound.Error())
		case errors.Is(err, models.ErrEmailTaken):
			utils.RespondWithError(w, http.StatusConflict, models.ErrEmailTaken.Error())
		default:
			slog.Error("Admin update failed", "adminID", adminId, "error", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update admin")
		}
		return
	}

	utils.RespondWithEnvelope(w, http.StatusOK, admin)
}

func (h *Handler) deleteAdmin(w http.ResponseWriter, r *http.Request, adminId string) {
	if err := h.adminService.Remove(r.Context(), adminId); err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, models.ErrAdminNotFound.Error())
			return
		}
		slog.Error("Admin deletion failed", "adminID", adminId, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete admin")
		return
	}

	utils.RespondWithEnvelope(w, http.StatusOK, map[string]string{"message": "Admin deleted successfully"})
}
