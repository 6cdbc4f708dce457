package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRecord is one historical purchase event. Records are append-only;
// the engine never mutates them.
type PurchaseRecord struct {
	ID           uuid.UUID       `json:"id"`
	ItemName     string          `json:"item_name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PurchaseDate time.Time       `json:"purchase_date"`
	StoreName    *string         `json:"store_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PurchaseFilters narrows purchase history queries.
type PurchaseFilters struct {
	ItemName string
	Since    *time.Time
	Limit    int
}
