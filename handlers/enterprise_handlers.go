package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/enterprise-service/admin-backend/events"
	"github.com/enterprise-service/admin-backend/models"
	"github.com/enterprise-service/admin-backend/utils"
)

// Enterprise handlers
func (h *Handler) createEnterprise(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnterpriseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	enterprise, err := h.enterpriseService.Create(r.Context(), &req)
	if err != nil {
		slog.Error("Enterprise creation failed", "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create enterprise")
		return
	}

	h.emit(r, events.EnterpriseCreated, map[string]string{
		"enterprise_id": enterprise.EnterpriseID,
		"name":          enterprise.Name,
	})

	utils.RespondWithEnvelope(w, http.StatusCreated, enterprise)
}

func (h *Handler) getAllEnterprises(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.events.LookupAll(r.Context()); ok {
		h.countCacheHit()
		utils.RespondWithEnvelope(w, http.StatusOK, json.RawMessage(cached))
		return
	}
	h.countCacheMiss()

	enterprises, err := h.enterpriseService.FindAll(r.Context())
	if err != nil {
		slog.Error("Enterprise listing failed", "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list enterprises")
		return
	}

	h.emit(r, events.CacheEnterprise, map[string]interface{}{
		"key":  "all",
		"data": enterprises,
	})

	utils.RespondWithEnvelope(w, http.StatusOK, enterprises)
}

func (h *Handler) getEnterprise(w http.ResponseWriter, r *http.Request, enterpriseId string) {
	if cached, ok := h.events.LookupEnterprise(r.Context(), enterpriseId); ok {
		h.countCacheHit()
		utils.RespondWithEnvelope(w, http.StatusOK, json.RawMessage(cached))
		return
	}
	h.countCacheMiss()

	enterprise, err := h.enterpriseService.FindOne(r.Context(), enterpriseId)
	if err != nil {
		if errors.Is(err, models.ErrEnterpriseNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, models.ErrEnterpriseNotFound.Error())
			return
		}
		slog.Error("Enterprise fetch failed", "enterpriseID", enterpriseId, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get enterprise")
		return
	}

	h.emit(r, events.CacheEnterprise, map[string]interface{}{
		"key":  enterpriseId,
		"data": enterprise,
	})

	utils.RespondWithEnvelope(w, http.StatusOK, enterprise)
}

func (h *Handler) updateEnterprise(w http.ResponseWriter, r *http.Request, enterpriseId string) {
	var req models.UpdateEnterpriseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	enterprise, err := h.enterpriseService.Update(r.Context(), enterpriseId, &req)
	if err != nil {
		if errors.Is(err, models.ErrEnterpriseNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, models.ErrEnterpriseNotFound.Error())
			return
		}
		slog.Error("Enterprise update failed", "enterpriseID", enterpriseId, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update enterprise")
		return
	}

	h.emit(r, events.EnterpriseUpdated, map[string]string{"enterprise_id": enterpriseId})
	h.emit(r, events.InvalidateEnterpriseCache, map[string]string{"enterprise_id": enterpriseId})

	utils.RespondWithEnvelope(w, http.StatusOK, enterprise)
}

func (h *Handler) deleteEnterprise(w http.ResponseWriter, r *http.Request, enterpriseId string) {
	if err := h.enterpriseService.Remove(r.Context(), enterpriseId); err != nil {
		if errors.Is(err, models.ErrEnterpriseNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, models.ErrEnterpriseNotFound.Error())
			return
		}
		slog.Error("Enterprise deletion failed", "enterpriseID", enterpriseId, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete enterprise")
		return
	}

	h.emit(r, events.EnterpriseDeleted, map[string]string{"enterprise_id": enterpriseId})
	h.emit(r, events.InvalidateEnterpriseCache, map[string]string{"enterprise_id": enterpriseId})

	utils.RespondWithEnvelope(w, http.StatusOK, map[string]string{"message": "Enterprise deleted successfully"})
}

func (h *Handler) emit(r *http.Request, event string, payload interface{}) {
	h.events.Emit(r.Context(), event, payload)
	if h.metrics != nil {
		h.metrics.EventsPublished.WithLabelValues(event).Inc()
	}
}

func (h *Handler) countCacheHit() {
	if h.metrics != nil {
		h.metrics.CacheHits.Inc()
	}
}

func (h *Handler) countCacheMiss() {
	if h.metrics != nil {
		h.metrics.CacheMisses.Inc()
	}
}
