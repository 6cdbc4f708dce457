package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/auth"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
	"github.com/cartwise-ai/cartwise-engine/pkg/repositories"
	"github.com/cartwise-ai/cartwise-engine/pkg/services"
)

// GenerateShoppingListRequest for POST /api/shopping-list
type GenerateShoppingListRequest struct {
	Budget        decimal.Decimal    `json:"budget"`
	HouseholdSize int                `json:"household_size"`
	Preferences   map[string]float64 `json:"preferences,omitempty"`
}

// SmartSuggestionsRequest for POST /api/shopping-list/suggestions.
// PantryItems overrides the stored pantry when provided.
type SmartSuggestionsRequest struct {
	Budget      decimal.Decimal    `json:"budget"`
	Preferences map[string]float64 `json:"preferences,omitempty"`
	PantryItems []string           `json:"pantry_items,omitempty"`
}

// ShoppingListResponse wraps a generated list with its total cost.
type ShoppingListResponse struct {
	Recommendations []models.ShoppingRecommendation `json:"recommendations"`
	Total           int                             `json:"total"`
	EstimatedCost   decimal.Decimal                 `json:"estimated_cost"`
}

// ShoppingListHandler handles shopping list generation requests.
type ShoppingListHandler struct {
	shoppingList services.ShoppingListService
	purchases    repositories.PurchaseRepository
	pantry       repositories.PantryRepository
	recentWindow time.Duration
	logger       *zap.Logger
}

// NewShoppingListHandler creates a new shopping list handler.
// recentPurchaseDays is the lookback window for repeat detection.
func NewShoppingListHandler(
	shoppingList services.ShoppingListService,
	purchases repositories.PurchaseRepository,
	pantry repositories.PantryRepository,
	recentPurchaseDays int,
	logger *zap.Logger,
) *ShoppingListHandler {
	return &ShoppingListHandler{
		shoppingList: shoppingList,
		purchases:    purchases,
		pantry:       pantry,
		recentWindow: time.Duration(recentPurchaseDays) * 24 * time.Hour,
		logger:       logger,
	}
}

// RegisterRoutes registers the shopping list handler's routes on the given mux.
func (h *ShoppingListHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/shopping-list", authMiddleware.RequireAuth(h.Generate))
	mux.HandleFunc("POST /api/shopping-list/suggestions", authMiddleware.RequireAuth(h.Suggestions))
}

// Generate handles POST /api/shopping-list
func (h *ShoppingListHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateShoppingListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	recent, err := h.purchases.RecentItemNames(r.Context(), time.Now().Add(-h.recentWindow))
	if err != nil {
		h.logger.Error("Failed to load recent purchases", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "recent_purchases_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	recommendations, err := h.shoppingList.Generate(req.Budget, req.HouseholdSize, recent, req.Preferences)
	if err != nil {
		h.logger.Error("Failed to generate shopping list",
			zap.String("budget", req.Budget.String()),
			zap.Int("household_size", req.HouseholdSize),
			zap.Error(err))
		if err := ErrorResponse(w, statusForError(err), "generate_shopping_list_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: shoppingListResponse(recommendations)}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Suggestions handles POST /api/shopping-list/suggestions
func (h *ShoppingListHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req SmartSuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	pantryNames := req.PantryItems
	if len(pantryNames) == 0 {
		status := models.PantryItemActive
		items, err := h.pantry.List(r.Context(), &status)
		if err != nil {
			h.logger.Error("Failed to load pantry items", zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "list_pantry_failed", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		for _, item := range items {
			pantryNames = append(pantryNames, item.Name)
		}
	}

	suggestions, err := h.shoppingList.SmartSuggestions(pantryNames, req.Budget, req.Preferences)
	if err != nil {
		h.logger.Error("Failed to generate suggestions",
			zap.String("budget", req.Budget.String()),
			zap.Error(err))
		if err := ErrorResponse(w, statusForError(err), "suggestions_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: shoppingListResponse(suggestions)}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func shoppingListResponse(recommendations []models.ShoppingRecommendation) ShoppingListResponse {
	total := decimal.Zero
	for _, rec := range recommendations {
		total = total.Add(rec.TotalCost())
	}
	return ShoppingListResponse{
		Recommendations: recommendations,
		Total:           len(recommendations),
		EstimatedCost:   total,
	}
}
