package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricePoint is one sample in an item's price time series.
type PricePoint struct {
	ID         uuid.UUID       `json:"id"`
	ItemName   string          `json:"item_name"`
	Price      decimal.Decimal `json:"price"`
	RecordedAt time.Time       `json:"recorded_at"`
	StoreName  *string         `json:"store_name,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PriceFilters narrows price history queries.
type PriceFilters struct {
	ItemName string
	Since    *time.Time
	Limit    int
}
