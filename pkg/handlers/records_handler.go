package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/auth"
	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
	"github.com/cartwise-ai/cartwise-engine/pkg/repositories"
)

// RecordPurchaseRequest for POST /api/purchases
type RecordPurchaseRequest struct {
	ItemName     string          `json:"item_name"`
	Category     string          `json:"category,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	StoreName    *string         `json:"store_name,omitempty"`
}

// RecordPriceRequest for POST /api/prices
type RecordPriceRequest struct {
	ItemName   string          `json:"item_name"`
	Price      decimal.Decimal `json:"price"`
	RecordedAt *time.Time      `json:"recorded_at,omitempty"`
	StoreName  *string         `json:"store_name,omitempty"`
}

// RecordsHandler records purchase events and price observations. History
// is append-only; there are no update or delete endpoints.
type RecordsHandler struct {
	purchases repositories.PurchaseRepository
	prices    repositories.PriceRepository
	catalog   *catalog.Catalog
	logger    *zap.Logger
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(
	purchases repositories.PurchaseRepository,
	prices repositories.PriceRepository,
	cat *catalog.Catalog,
	logger *zap.Logger,
) *RecordsHandler {
	return &RecordsHandler{
		purchases: purchases,
		prices:    prices,
		catalog:   cat,
		logger:    logger,
	}
}

// RegisterRoutes registers the records handler's routes on the given mux.
func (h *RecordsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/purchases", authMiddleware.RequireAuth(h.RecordPurchase))
	mux.HandleFunc("POST /api/prices", authMiddleware.RequireAuth(h.RecordPrice))
}

// RecordPurchase handles POST /api/purchases
func (h *RecordsHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req RecordPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.ItemName == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "item_name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Quantity.Sign() <= 0 || req.UnitPrice.Sign() < 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "quantity must be positive and unit_price non-negative"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	category := req.Category
	if category == "" {
		if entry, ok := h.catalog.FindItem(req.ItemName); ok {
			category = entry.Category
		}
	}

	record := &models.PurchaseRecord{
		ItemName:  req.ItemName,
		Category:  category,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		StoreName: req.StoreName,
	}
	if req.PurchaseDate != nil {
		record.PurchaseDate = *req.PurchaseDate
	}

	if err := h.purchases.Create(r.Context(), record); err != nil {
		h.logger.Error("Failed to record purchase",
			zap.String("item", req.ItemName),
			zap.Error(err))
		if err := ErrorResponse(w, statusForError(err), "record_purchase_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: record}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// RecordPrice handles POST /api/prices
func (h *RecordsHandler) RecordPrice(w http.ResponseWriter, r *http.Request) {
	var req RecordPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.ItemName == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "item_name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.Price.Sign() <= 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "price must be positive"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	point := &models.PricePoint{
		ItemName:  req.ItemName,
		Price:     req.Price,
		StoreName: req.StoreName,
	}
	if req.RecordedAt != nil {
		point.RecordedAt = *req.RecordedAt
	}

	if err := h.prices.Create(r.Context(), point); err != nil {
		h.logger.Error("Failed to record price",
			zap.String("item", req.ItemName),
			zap.Error(err))
		if err := ErrorResponse(w, statusForError(err), "record_price_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: point}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
