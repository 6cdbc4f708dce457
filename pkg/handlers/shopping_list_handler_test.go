package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/apperrors"
	"github.com/cartwise-ai/cartwise-engine/pkg/auth"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

func noAuth() *auth.Middleware {
	return auth.NewMiddleware(nil, false, zap.NewNop())
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func newShoppingListMux(svc *mockShoppingListService, purchases *mockPurchaseRepository, pantry *mockPantryRepository) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewShoppingListHandler(svc, purchases, pantry, 14, zap.NewNop())
	h.RegisterRoutes(mux, noAuth())
	return mux
}

func TestGenerateShoppingList(t *testing.T) {
	svc := &mockShoppingListService{
		recommendations: []models.ShoppingRecommendation{
			{
				ItemName:           "Milk",
				Category:           models.CategoryDairy,
				Quantity:           decimal.RequireFromString("1.2"),
				EstimatedUnitPrice: decimal.RequireFromString("3.49"),
				Priority:           1.0,
			},
			{
				ItemName:           "Bananas",
				Category:           models.CategoryProduce,
				Quantity:           decimal.RequireFromString("1.2"),
				EstimatedUnitPrice: decimal.RequireFromString("1.29"),
				Priority:           0.9,
			},
		},
	}
	purchases := &mockPurchaseRepository{recentNames: []string{"Eggs"}}
	mux := newShoppingListMux(svc, purchases, &mockPantryRepository{})

	rec := postJSON(t, mux, "/api/shopping-list", GenerateShoppingListRequest{
		Budget:        decimal.RequireFromString("100"),
		HouseholdSize: 2,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    ShoppingListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Total)
	// 1.2*3.49 + 1.2*1.29 = 5.736
	assert.True(t, resp.Data.EstimatedCost.Equal(decimal.RequireFromString("5.736")))
	assert.Equal(t, []string{"Eggs"}, svc.generateRecent)
}

func TestGenerateShoppingList_InvalidBudget(t *testing.T) {
	svc := &mockShoppingListService{err: apperrors.ErrInvalidInput}
	mux := newShoppingListMux(svc, &mockPurchaseRepository{}, &mockPantryRepository{})

	rec := postJSON(t, mux, "/api/shopping-list", GenerateShoppingListRequest{
		Budget:        decimal.Zero,
		HouseholdSize: 2,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateShoppingList_MalformedBody(t *testing.T) {
	mux := newShoppingListMux(&mockShoppingListService{}, &mockPurchaseRepository{}, &mockPantryRepository{})

	req := httptest.NewRequest(http.MethodPost, "/api/shopping-list", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSmartSuggestions_UsesStoredPantry(t *testing.T) {
	svc := &mockShoppingListService{
		suggestions: []models.ShoppingRecommendation{
			{ItemName: "Tomato Sauce", Category: models.CategoryPantry, Quantity: decimal.NewFromInt(1), EstimatedUnitPrice: decimal.RequireFromString("2.29"), Priority: 0.6},
		},
	}
	pantry := &mockPantryRepository{
		items: []models.PantryItem{
			{Name: "Pasta", Status: models.PantryItemActive},
			{Name: "Milk", Status: models.PantryItemConsumed},
		},
	}
	mux := newShoppingListMux(svc, &mockPurchaseRepository{}, pantry)

	rec := postJSON(t, mux, "/api/shopping-list/suggestions", SmartSuggestionsRequest{
		Budget: decimal.RequireFromString("20"),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	// Consumed items are not part of the current pantry.
	assert.Equal(t, []string{"Pasta"}, svc.suggestedPantry)
}

func TestSmartSuggestions_ExplicitPantryOverride(t *testing.T) {
	svc := &mockShoppingListService{}
	mux := newShoppingListMux(svc, &mockPurchaseRepository{}, &mockPantryRepository{})

	rec := postJSON(t, mux, "/api/shopping-list/suggestions", SmartSuggestionsRequest{
		Budget:      decimal.RequireFromString("20"),
		PantryItems: []string{"Bread", "Cereal"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Bread", "Cereal"}, svc.suggestedPantry)
}
