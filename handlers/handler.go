package handlers

import (
	"net/http"
	"strings"

	"github.com/enterprise-service/admin-backend/events"
	"github.com/enterprise-service/admin-backend/metrics"
	"github.com/enterprise-service/admin-backend/middleware"
	"github.com/enterprise-service/admin-backend/services"
	"github.com/enterprise-service/admin-backend/utils"

	"gorm.io/gorm"
)

// Handler handles all API routes
type Handler struct {
	authService       *services.AuthService
	adminService      *services.AdminService
	enterpriseService *services.EnterpriseService
	events            *events.Client
	metrics           *metrics.HTTPMetrics
}

// NewHandler creates a new handler with all service dependencies. The events
// client and metrics may be nil; the affected paths degrade to no-ops.
func NewHandler(db *gorm.DB, authService *services.AuthService, eventsClient *events.Client, httpMetrics *metrics.HTTPMetrics) *Handler {
	return &Handler{
		authService:       authService,
		adminService:      services.NewAdminService(db, authService),
		enterpriseService: services.NewEnterpriseService(db),
		events:            eventsClient,
		metrics:           httpMetrics,
	}
}

// SetupRoutes configures all API routes. Auth guard wraps everything except
// register and login.
func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewJWTAuthMiddleware(h.authService)

	// Auth routes
	mux.Handle("/auth/register", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleRegister)))
	mux.Handle("/auth/login", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleLogin)))
	mux.Handle("/auth/verify", utils.PanicRecoveryMiddleware(
		authMiddleware.Authenticate(http.HandlerFunc(h.handleVerify))))
	mux.Handle("/auth/refresh", utils.PanicRecoveryMiddleware(
		authMiddleware.Authenticate(http.HandlerFunc(h.handleRefresh))))

	// Admin routes
	mux.Handle("/admins", utils.PanicRecoveryMiddleware(
		authMiddleware.Authenticate(http.HandlerFunc(h.handleAdmins))))
	mux.Handle("/admins/", utils.PanicRecoveryMiddleware(
		authMiddleware.Authenticate(http.HandlerFunc(h.handleAdmins))))

	// Enterprise routes
	mux.Handle("/enterprises", utils.PanicRecoveryMiddleware(
		authMiddleware.Authenticate(http.HandlerFunc(h.handleEnterprises))))
	mux.Handle("/enterprises/", utils.PanicRecoveryMiddleware(
		authMiddleware.Authenticate(http.HandlerFunc(h.handleEnterprises))))

	mux.Handle("/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleRoot)))
}

// handleRoot serves the hello response on the bare root path only
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	utils.RespondWithEnvelope(w, http.StatusOK, "Hello World!")
}

// handleAdmins handles admin-related routes
func (h *Handler) handleAdmins(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admins")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /admins and POST /admins
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getAllAdmins(w, r)
		case http.MethodPost:
			h.createAdmin(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Admin ID is required")
		return
	}

	adminId := parts[0]

	// Handle specific admin endpoint: GET, PATCH and DELETE /admins/:adminId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getAdmin(w, r, adminId)
		case http.MethodPatch:
			h.updateAdmin(w, r, adminId)
		case http.MethodDelete:
			h.deleteAdmin(w, r, adminId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

// handleEnterprises handles enterprise-related routes
func (h *Handler) handleEnterprises(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/enterprises")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Handle collection endpoint: GET /enterprises and POST /enterprises
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getAllEnterprises(w, r)
		case http.MethodPost:
			h.createEnterprise(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Enterprise ID is required")
		return
	}

	enterpriseId := parts[0]

	// Handle specific enterprise endpoint: GET, PUT, PATCH and DELETE /enterprises/:enterpriseId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getEnterprise(w, r, enterpriseId)
		case http.MethodPut, http.MethodPatch:
			h.updateEnterprise(w, r, enterpriseId)
		case http.MethodDelete:
			h.deleteEnterprise(w, r, enterpriseId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}
