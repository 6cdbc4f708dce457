package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PantryItemStatus is the lifecycle state of a tracked pantry item.
type PantryItemStatus string

const (
	PantryItemActive   PantryItemStatus = "active"
	PantryItemConsumed PantryItemStatus = "consumed"
	PantryItemWasted   PantryItemStatus = "wasted"
	PantryItemExpired  PantryItemStatus = "expired"
)

// ValidPantryItemStatus reports whether s is a known lifecycle state.
func ValidPantryItemStatus(s PantryItemStatus) bool {
	switch s {
	case PantryItemActive, PantryItemConsumed, PantryItemWasted, PantryItemExpired:
		return true
	}
	return false
}

// PantryItem is a purchased item the user is tracking at home.
type PantryItem struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Quantity     decimal.Decimal  `json:"quantity"`
	PurchaseDate time.Time        `json:"purchase_date"`
	Storage      StorageLocation  `json:"storage"`
	PackageType  PackageType      `json:"package_type"`
	Status       PantryItemStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
