package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseUrgency classifies how soon an item is expected to be needed.
type PurchaseUrgency string

const (
	PurchaseUrgencyOverdue PurchaseUrgency = "overdue"
	PurchaseUrgencyUrgent  PurchaseUrgency = "urgent"
	PurchaseUrgencySoon    PurchaseUrgency = "soon"
	PurchaseUrgencyPlanned PurchaseUrgency = "planned"
	PurchaseUrgencyFuture  PurchaseUrgency = "future"
)

// PurchasePrediction forecasts the next purchase of an item from its
// historical purchase intervals.
type PurchasePrediction struct {
	ItemName      string    `json:"item_name"`
	Category      string    `json:"category"`
	PredictedDate time.Time `json:"predicted_date"`
	// Confidence is in [0,1]; regular purchase intervals score higher.
	Confidence          float64         `json:"confidence"`
	RecommendedQuantity decimal.Decimal `json:"recommended_quantity"`
	// DaysUntilPurchase is negative when the predicted date has passed.
	DaysUntilPurchase int             `json:"days_until_purchase"`
	Urgency           PurchaseUrgency `json:"urgency"`
}
