package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

func newRecordsMux(purchases *mockPurchaseRepository, prices *mockPriceRepository) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewRecordsHandler(purchases, prices, catalog.Default(), zap.NewNop())
	h.RegisterRoutes(mux, noAuth())
	return mux
}

func TestRecordPurchase(t *testing.T) {
	purchases := &mockPurchaseRepository{}
	mux := newRecordsMux(purchases, &mockPriceRepository{})

	store := "Corner Market"
	rec := postJSON(t, mux, "/api/purchases", RecordPurchaseRequest{
		ItemName:  "Milk",
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.RequireFromString("3.49"),
		StoreName: &store,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, purchases.created, 1)

	record := purchases.created[0]
	// Category resolved from the catalog when not supplied.
	assert.Equal(t, models.CategoryDairy, record.Category)
	assert.Equal(t, &store, record.StoreName)
}

func TestRecordPurchase_ExplicitDateAndCategory(t *testing.T) {
	purchases := &mockPurchaseRepository{}
	mux := newRecordsMux(purchases, &mockPriceRepository{})

	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rec := postJSON(t, mux, "/api/purchases", RecordPurchaseRequest{
		ItemName:     "Oat Milk",
		Category:     models.CategoryBeverages,
		Quantity:     decimal.NewFromInt(1),
		UnitPrice:    decimal.RequireFromString("4.99"),
		PurchaseDate: &date,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, purchases.created, 1)
	assert.Equal(t, models.CategoryBeverages, purchases.created[0].Category)
	assert.True(t, purchases.created[0].PurchaseDate.Equal(date))
}

func TestRecordPurchase_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  RecordPurchaseRequest
	}{
		{"missing name", RecordPurchaseRequest{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)}},
		{"zero quantity", RecordPurchaseRequest{ItemName: "Milk", UnitPrice: decimal.NewFromInt(1)}},
		{"negative price", RecordPurchaseRequest{ItemName: "Milk", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purchases := &mockPurchaseRepository{}
			mux := newRecordsMux(purchases, &mockPriceRepository{})

			rec := postJSON(t, mux, "/api/purchases", tt.req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, purchases.created)
		})
	}
}

func TestRecordPrice(t *testing.T) {
	prices := &mockPriceRepository{}
	mux := newRecordsMux(&mockPurchaseRepository{}, prices)

	rec := postJSON(t, mux, "/api/prices", RecordPriceRequest{
		ItemName: "Coffee",
		Price:    decimal.RequireFromString("8.49"),
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, prices.created, 1)
	assert.Equal(t, "Coffee", prices.created[0].ItemName)
}

func TestRecordPrice_Validation(t *testing.T) {
	prices := &mockPriceRepository{}
	mux := newRecordsMux(&mockPurchaseRepository{}, prices)

	rec := postJSON(t, mux, "/api/prices", RecordPriceRequest{
		ItemName: "Coffee",
		Price:    decimal.Zero,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, prices.created)
}
