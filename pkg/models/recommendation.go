package models

import "github.com/shopspring/decimal"

// ShoppingRecommendation is one item on a generated shopping list.
// Recommendations are constructed fresh on every generation call.
type ShoppingRecommendation struct {
	ItemName           string          `json:"item_name"`
	Category           string          `json:"category"`
	Quantity           decimal.Decimal `json:"quantity"`
	EstimatedUnitPrice decimal.Decimal `json:"estimated_unit_price"`
	// Priority is in [0,1]; higher means more important.
	Priority float64 `json:"priority"`
}

// TotalCost returns the estimated cost for this line: quantity * unit price.
func (r ShoppingRecommendation) TotalCost() decimal.Decimal {
	return r.Quantity.Mul(r.EstimatedUnitPrice)
}
