package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/auth"
	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
	"github.com/cartwise-ai/cartwise-engine/pkg/repositories"
	"github.com/cartwise-ai/cartwise-engine/pkg/services"
)

// ItemInsightsHandler serves per-item predictions and price analytics.
type ItemInsightsHandler struct {
	predictor services.PurchasePredictorService
	optimizer services.PriceOptimizerService
	purchases repositories.PurchaseRepository
	prices    repositories.PriceRepository
	catalog   *catalog.Catalog
	logger    *zap.Logger
}

// NewItemInsightsHandler creates a new item insights handler.
func NewItemInsightsHandler(
	predictor services.PurchasePredictorService,
	optimizer services.PriceOptimizerService,
	purchases repositories.PurchaseRepository,
	prices repositories.PriceRepository,
	cat *catalog.Catalog,
	logger *zap.Logger,
) *ItemInsightsHandler {
	return &ItemInsightsHandler{
		predictor: predictor,
		optimizer: optimizer,
		purchases: purchases,
		prices:    prices,
		catalog:   cat,
		logger:    logger,
	}
}

// RegisterRoutes registers the item insights routes on the given mux.
func (h *ItemInsightsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/items/{name}/purchase-prediction", authMiddleware.RequireAuth(h.PurchasePrediction))
	mux.HandleFunc("GET /api/items/{name}/price-analysis", authMiddleware.RequireAuth(h.PriceAnalysis))
	mux.HandleFunc("GET /api/items/{name}/best-time-to-buy", authMiddleware.RequireAuth(h.BestTimeToBuy))
}

// PurchasePrediction handles GET /api/items/{name}/purchase-prediction
func (h *ItemInsightsHandler) PurchasePrediction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	history, err := h.purchases.List(r.Context(), models.PurchaseFilters{ItemName: name})
	if err != nil {
		h.logger.Error("Failed to load purchase history",
			zap.String("item", name),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "purchase_history_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	prediction, err := h.predictor.PredictNext(name, h.categoryFor(name, history), history)
	if err != nil {
		if err := ErrorResponse(w, statusForError(err), "purchase_prediction_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: prediction}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// PriceAnalysis handles GET /api/items/{name}/price-analysis?current_price=
func (h *ItemInsightsHandler) PriceAnalysis(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	currentPrice, err := decimal.NewFromString(r.URL.Query().Get("current_price"))
	if err != nil || currentPrice.Sign() <= 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_price", "current_price must be a positive number"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	history, err := h.prices.List(r.Context(), models.PriceFilters{ItemName: name})
	if err != nil {
		h.logger.Error("Failed to load price history",
			zap.String("item", name),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "price_history_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	analysis := h.optimizer.Analyze(name, currentPrice, history)

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: analysis}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BestTimeToBuy handles GET /api/items/{name}/best-time-to-buy
func (h *ItemInsightsHandler) BestTimeToBuy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	history, err := h.prices.List(r.Context(), models.PriceFilters{ItemName: name})
	if err != nil {
		h.logger.Error("Failed to load price history",
			zap.String("item", name),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "price_history_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	prediction := h.optimizer.PredictBestTimeToBuy(name, history)

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: prediction}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// categoryFor resolves an item's category from its purchase history,
// falling back to the catalog for items never bought before.
func (h *ItemInsightsHandler) categoryFor(name string, history []models.PurchaseRecord) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Category != "" {
			return history[i].Category
		}
	}
	if entry, ok := h.catalog.FindItem(name); ok {
		return entry.Category
	}
	return ""
}
