package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/apperrors"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

const (
	// Confidence floor: even wildly irregular histories keep a little
	// predictive value.
	minPredictionConfidence = 0.1

	hoursPerDay = 24
)

// PurchasePredictorService forecasts when an item will next be bought
// from the regularity of its purchase intervals.
type PurchasePredictorService interface {
	// PredictNext requires at least two purchases; with fewer it returns
	// apperrors.ErrInsufficientData and callers should fall back to
	// category-level heuristics.
	PredictNext(itemName, category string, history []models.PurchaseRecord) (models.PurchasePrediction, error)
}

type purchasePredictor struct {
	clock  Clock
	logger *zap.Logger
}

func NewPurchasePredictorService(clock Clock, logger *zap.Logger) PurchasePredictorService {
	return &purchasePredictor{
		clock:  clock,
		logger: logger.Named("purchase-predictor"),
	}
}

var _ PurchasePredictorService = (*purchasePredictor)(nil)

func (p *purchasePredictor) PredictNext(itemName, category string, history []models.PurchaseRecord) (models.PurchasePrediction, error) {
	if len(history) < 2 {
		return models.PurchasePrediction{}, fmt.Errorf(
			"%w: need at least 2 purchases of %q, have %d",
			apperrors.ErrInsufficientData, itemName, len(history))
	}

	sorted := make([]models.PurchaseRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PurchaseDate.Before(sorted[j].PurchaseDate)
	})

	intervals := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		days := sorted[i].PurchaseDate.Sub(sorted[i-1].PurchaseDate).Hours() / hoursPerDay
		intervals = append(intervals, days)
	}

	avgInterval := mean(intervals)
	last := sorted[len(sorted)-1].PurchaseDate
	predicted := last.Add(time.Duration(avgInterval * hoursPerDay * float64(time.Hour)))

	// Confidence is the inverse coefficient of variation: steady intervals
	// score near 1. A single interval has no variance and scores 1, which
	// is optimistic but preferable to refusing a forecast.
	confidence := minPredictionConfidence
	if avgInterval > 0 {
		confidence = clamp(1-stdDev(intervals)/avgInterval, minPredictionConfidence, 1.0)
	}

	quantities := make([]decimal.Decimal, 0, len(sorted))
	for _, rec := range sorted {
		quantities = append(quantities, rec.Quantity)
	}

	now := p.clock.Now()
	daysUntil := int(predicted.Sub(now).Hours() / hoursPerDay)
	if predicted.Before(now) && daysUntil == 0 {
		daysUntil = -1
	}

	prediction := models.PurchasePrediction{
		ItemName:            itemName,
		Category:            category,
		PredictedDate:       predicted,
		Confidence:          confidence,
		RecommendedQuantity: decimalMean(quantities),
		DaysUntilPurchase:   daysUntil,
		Urgency:             purchaseUrgencyForDays(daysUntil),
	}

	p.logger.Debug("Predicted next purchase",
		zap.String("item", itemName),
		zap.Time("predicted_date", predicted),
		zap.Float64("confidence", confidence),
		zap.Int("days_until", daysUntil))

	return prediction, nil
}

func purchaseUrgencyForDays(days int) models.PurchaseUrgency {
	switch {
	case days < 0:
		return models.PurchaseUrgencyOverdue
	case days <= 1:
		return models.PurchaseUrgencyUrgent
	case days <= 7:
		return models.PurchaseUrgencySoon
	case days <= 14:
		return models.PurchaseUrgencyPlanned
	default:
		return models.PurchaseUrgencyFuture
	}
}
