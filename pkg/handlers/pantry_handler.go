package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/auth"
	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
	"github.com/cartwise-ai/cartwise-engine/pkg/repositories"
	"github.com/cartwise-ai/cartwise-engine/pkg/services"
)

// CreatePantryItemRequest for POST /api/pantry
type CreatePantryItemRequest struct {
	Name         string                 `json:"name"`
	Category     string                 `json:"category,omitempty"`
	Quantity     decimal.Decimal        `json:"quantity"`
	PurchaseDate *time.Time             `json:"purchase_date,omitempty"`
	Storage      models.StorageLocation `json:"storage"`
	PackageType  models.PackageType     `json:"package_type"`
}

// UpdatePantryStatusRequest for PATCH /api/pantry/{id}/status
type UpdatePantryStatusRequest struct {
	Status models.PantryItemStatus `json:"status"`
}

// PantryListResponse for GET /api/pantry
type PantryListResponse struct {
	Items []models.PantryItem `json:"items"`
	Total int                 `json:"total"`
}

// ExpiringItemsResponse for GET /api/pantry/expiring
type ExpiringItemsResponse struct {
	Items []models.ExpirationPrediction `json:"items"`
	Total int                           `json:"total"`
}

// PantryHandler handles pantry tracking and expiration requests.
type PantryHandler struct {
	pantry     repositories.PantryRepository
	expiration services.ExpirationPredictorService
	catalog    *catalog.Catalog
	logger     *zap.Logger
}

// NewPantryHandler creates a new pantry handler.
func NewPantryHandler(
	pantry repositories.PantryRepository,
	expiration services.ExpirationPredictorService,
	cat *catalog.Catalog,
	logger *zap.Logger,
) *PantryHandler {
	return &PantryHandler{
		pantry:     pantry,
		expiration: expiration,
		catalog:    cat,
		logger:     logger,
	}
}

// RegisterRoutes registers the pantry handler's routes on the given mux.
func (h *PantryHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/pantry", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/pantry", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/pantry/expiring", authMiddleware.RequireAuth(h.Expiring))
	mux.HandleFunc("PATCH /api/pantry/{id}/status", authMiddleware.RequireAuth(h.UpdateStatus))
}

// Create handles POST /api/pantry
func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if !models.ValidStorageLocation(req.Storage) {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "unknown storage location"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if !models.ValidPackageType(req.PackageType) {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "unknown package type"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	category := req.Category
	if category == "" {
		if entry, ok := h.catalog.FindItem(req.Name); ok {
			category = entry.Category
		}
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	quantity := req.Quantity
	if quantity.Sign() <= 0 {
		quantity = decimal.NewFromInt(1)
	}

	item := &models.PantryItem{
		Name:         req.Name,
		Category:     category,
		Quantity:     quantity,
		PurchaseDate: purchaseDate,
		Storage:      req.Storage,
		PackageType:  req.PackageType,
		Status:       models.PantryItemActive,
	}

	if err := h.pantry.Create(r.Context(), item); err != nil {
		h.logger.Error("Failed to create pantry item",
			zap.String("name", req.Name),
			zap.Error(err))
		if err := ErrorResponse(w, statusForError(err), "create_pantry_item_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: item}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/pantry with an optional ?status= filter.
func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.PantryItemStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.PantryItemStatus(raw)
		if !models.ValidPantryItemStatus(s) {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "unknown pantry status"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		status = &s
	}

	items, err := h.pantry.List(r.Context(), status)
	if err != nil {
		h.logger.Error("Failed to list pantry items", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_pantry_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := PantryListResponse{Items: items, Total: len(items)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Expiring handles GET /api/pantry/expiring
func (h *PantryHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	status := models.PantryItemActive
	items, err := h.pantry.List(r.Context(), &status)
	if err != nil {
		h.logger.Error("Failed to list pantry items", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_pantry_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	expiring := h.expiration.ExpiringItems(items)

	response := ExpiringItemsResponse{Items: expiring, Total: len(expiring)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateStatus handles PATCH /api/pantry/{id}/status
func (h *PantryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid pantry item ID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req UpdatePantryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.pantry.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.logger.Error("Failed to update pantry item status",
			zap.String("id", id.String()),
			zap.String("status", string(req.Status)),
			zap.Error(err))
		if err := ErrorResponse(w, statusForError(err), "update_pantry_status_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]string{"status": string(req.Status)}}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
