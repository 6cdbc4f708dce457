package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category names used throughout the engine. The catalog is partitioned
// into exactly these five categories.
const (
	CategoryDairy     = "Dairy"
	CategoryProduce   = "Produce"
	CategoryMeat      = "Meat & Seafood"
	CategoryPantry    = "Pantry"
	CategoryBeverages = "Beverages"
)

// CatalogItem is one purchasable item known to the engine, with its
// default (shelf) unit price. Unit prices are never negative.
type CatalogItem struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
