package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/apperrors"
	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

func newInsightsMux(predictor *mockPurchasePredictor, optimizer *mockPriceOptimizer, purchases *mockPurchaseRepository, prices *mockPriceRepository) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewItemInsightsHandler(predictor, optimizer, purchases, prices, catalog.Default(), zap.NewNop())
	h.RegisterRoutes(mux, noAuth())
	return mux
}

func getPath(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPurchasePrediction(t *testing.T) {
	predicted := time.Date(2025, 5, 6, 12, 0, 0, 0, time.UTC)
	predictor := &mockPurchasePredictor{
		prediction: models.PurchasePrediction{
			ItemName:            "Milk",
			Category:            models.CategoryDairy,
			PredictedDate:       predicted,
			Confidence:          0.9,
			RecommendedQuantity: decimal.NewFromInt(1),
			DaysUntilPurchase:   5,
			Urgency:             models.PurchaseUrgencySoon,
		},
	}
	purchases := &mockPurchaseRepository{
		records: []models.PurchaseRecord{
			{ItemName: "Milk", Category: models.CategoryDairy},
			{ItemName: "Milk", Category: models.CategoryDairy},
		},
	}
	mux := newInsightsMux(predictor, &mockPriceOptimizer{}, purchases, &mockPriceRepository{})

	rec := getPath(t, mux, "/api/items/Milk/purchase-prediction")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    models.PurchasePrediction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Milk", resp.Data.ItemName)
	assert.Equal(t, models.PurchaseUrgencySoon, resp.Data.Urgency)
}

func TestPurchasePrediction_InsufficientData(t *testing.T) {
	predictor := &mockPurchasePredictor{err: apperrors.ErrInsufficientData}
	mux := newInsightsMux(predictor, &mockPriceOptimizer{}, &mockPurchaseRepository{}, &mockPriceRepository{})

	rec := getPath(t, mux, "/api/items/Saffron/purchase-prediction")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPriceAnalysis(t *testing.T) {
	optimizer := &mockPriceOptimizer{
		analysis: models.PriceAnalysis{
			ItemName:     "Milk",
			CurrentPrice: decimal.RequireFromString("2.99"),
			AveragePrice: decimal.RequireFromString("3.49"),
			IsGoodDeal:   true,
			PriceScore:   1.0,
		},
	}
	mux := newInsightsMux(&mockPurchasePredictor{}, optimizer, &mockPurchaseRepository{}, &mockPriceRepository{})

	rec := getPath(t, mux, "/api/items/Milk/price-analysis?current_price=2.99")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    models.PriceAnalysis `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsGoodDeal)
}

func TestPriceAnalysis_MissingPrice(t *testing.T) {
	mux := newInsightsMux(&mockPurchasePredictor{}, &mockPriceOptimizer{}, &mockPurchaseRepository{}, &mockPriceRepository{})

	rec := getPath(t, mux, "/api/items/Milk/price-analysis")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceAnalysis_NegativePrice(t *testing.T) {
	mux := newInsightsMux(&mockPurchasePredictor{}, &mockPriceOptimizer{}, &mockPurchaseRepository{}, &mockPriceRepository{})

	rec := getPath(t, mux, "/api/items/Milk/price-analysis?current_price=-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBestTimeToBuy(t *testing.T) {
	optimizer := &mockPriceOptimizer{
		bestTime: models.BestTimePrediction{
			ItemName:   "Coffee",
			BestDay:    time.Monday,
			WorstDay:   time.Friday,
			Confidence: 0.2,
		},
	}
	mux := newInsightsMux(&mockPurchasePredictor{}, optimizer, &mockPurchaseRepository{}, &mockPriceRepository{})

	rec := getPath(t, mux, "/api/items/Coffee/best-time-to-buy")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    models.BestTimePrediction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, time.Monday, resp.Data.BestDay)
}
