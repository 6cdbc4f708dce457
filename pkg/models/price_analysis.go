package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceAnalysis summarizes how the current price of an item compares to
// its recorded history.
type PriceAnalysis struct {
	ItemName     string          `json:"item_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	AveragePrice decimal.Decimal `json:"average_price"`
	MedianPrice  decimal.Decimal `json:"median_price"`
	LowestPrice  decimal.Decimal `json:"lowest_price"`
	HighestPrice decimal.Decimal `json:"highest_price"`
	IsGoodDeal   bool            `json:"is_good_deal"`
	IsBestPrice  bool            `json:"is_best_price"`
	// PriceScore is in [0,1]; 1 means the cheapest price observed.
	PriceScore float64 `json:"price_score"`
	// SavingsPercentage is relative to the historical average. Negative
	// when the current price is above average.
	SavingsPercentage float64 `json:"savings_percentage"`
	Recommendation    string  `json:"recommendation"`
}

// SavingsAmount returns how far the current price sits below the
// historical average. Negative when above average.
func (a PriceAnalysis) SavingsAmount() decimal.Decimal {
	return a.AveragePrice.Sub(a.CurrentPrice)
}

// BestTimePrediction suggests the cheapest day of the week to buy an item,
// based on day-of-week averages over its price history.
type BestTimePrediction struct {
	ItemName         string          `json:"item_name"`
	BestDay          time.Weekday    `json:"best_day"`
	WorstDay         time.Weekday    `json:"worst_day"`
	BestDayAverage   decimal.Decimal `json:"best_day_average"`
	WorstDayAverage  decimal.Decimal `json:"worst_day_average"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
	// Confidence is in [0,1] and grows with the amount of history.
	Confidence float64 `json:"confidence"`
}
