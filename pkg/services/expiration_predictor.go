package services

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

const (
	// Shelf life assumed for items missing from the lookup table.
	defaultShelfLifeDays = 7

	// Storage adjustments, applied before packaging adjustments.
	freezerMultiplier = 4
	pantryMultiplier  = 0.8

	// Packaging adjustments.
	cannedMinimumDays  = 365
	frozenMultiplier   = 3
	packagedMultiplier = 1.2

	// Confidence model: table hits start higher than fallbacks, and
	// confidence decays with item age down to a floor.
	knownItemConfidence     = 0.85
	unknownItemConfidence   = 0.65
	confidenceDecayPerDay   = 0.02
	maxConfidenceDecay      = 0.3
	minExpirationConfidence = 0.4

	// Items expiring within this many days count as "expiring".
	expiringWindowDays = 5
)

// ExpirationPredictorService estimates expiration dates from the
// shelf-life table, adjusted for storage and packaging. It never fails;
// unknown items get a best-effort default.
type ExpirationPredictorService interface {
	Predict(itemName, category string, purchaseDate time.Time, storage models.StorageLocation, packageType models.PackageType) models.ExpirationPrediction

	// ExpiringItems predicts expiration for every active pantry item and
	// returns those expiring within the next few days, most urgent first.
	ExpiringItems(items []models.PantryItem) []models.ExpirationPrediction
}

type expirationPredictor struct {
	catalog *catalog.Catalog
	clock   Clock
	logger  *zap.Logger
}

func NewExpirationPredictorService(cat *catalog.Catalog, clock Clock, logger *zap.Logger) ExpirationPredictorService {
	return &expirationPredictor{
		catalog: cat,
		clock:   clock,
		logger:  logger.Named("expiration-predictor"),
	}
}

var _ ExpirationPredictorService = (*expirationPredictor)(nil)

func (e *expirationPredictor) Predict(itemName, category string, purchaseDate time.Time, storage models.StorageLocation, packageType models.PackageType) models.ExpirationPrediction {
	baseDays, known := e.catalog.ShelfLifeDays[itemName]
	if !known {
		baseDays = defaultShelfLifeDays
	}

	days := adjustForStorage(baseDays, storage)
	days = adjustForPackaging(days, packageType)

	now := e.clock.Now()
	expiration := purchaseDate.AddDate(0, 0, days)
	daysRemaining := int(expiration.Sub(now).Hours() / hoursPerDay)

	ageDays := now.Sub(purchaseDate).Hours() / hoursPerDay
	if ageDays < 0 {
		ageDays = 0
	}
	confidence := knownItemConfidence
	if !known {
		confidence = unknownItemConfidence
	}
	confidence -= math.Min(maxConfidenceDecay, ageDays*confidenceDecayPerDay)
	confidence = clamp(confidence, minExpirationConfidence, 1.0)

	return models.ExpirationPrediction{
		ItemName:                itemName,
		Category:                category,
		PredictedExpirationDate: expiration,
		DaysRemaining:           daysRemaining,
		Urgency:                 expirationUrgencyForDays(daysRemaining),
		Confidence:              confidence,
	}
}

func (e *expirationPredictor) ExpiringItems(items []models.PantryItem) []models.ExpirationPrediction {
	var expiring []models.ExpirationPrediction
	for _, item := range items {
		if item.Status == models.PantryItemConsumed || item.Status == models.PantryItemWasted {
			continue
		}
		prediction := e.Predict(item.Name, item.Category, item.PurchaseDate, item.Storage, item.PackageType)
		if prediction.DaysRemaining <= expiringWindowDays {
			expiring = append(expiring, prediction)
		}
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].Urgency.SeverityRank() > expiring[j].Urgency.SeverityRank()
	})

	e.logger.Debug("Collected expiring items",
		zap.Int("checked", len(items)),
		zap.Int("expiring", len(expiring)))

	return expiring
}

// adjustForStorage applies the storage multiplier. The pantry adjustment
// floors to whole days, matching the freezer path's integer math.
func adjustForStorage(days int, storage models.StorageLocation) int {
	switch storage {
	case models.StorageFreezer:
		return days * freezerMultiplier
	case models.StoragePantry:
		return int(float64(days) * pantryMultiplier)
	default:
		return days
	}
}

func adjustForPackaging(days int, packageType models.PackageType) int {
	switch packageType {
	case models.PackageCanned:
		if days < cannedMinimumDays {
			return cannedMinimumDays
		}
		return days
	case models.PackageFrozen:
		return days * frozenMultiplier
	case models.PackagePackaged:
		return int(float64(days) * packagedMultiplier)
	default:
		return days
	}
}

func expirationUrgencyForDays(days int) models.ExpirationUrgency {
	switch {
	case days <= 0:
		return models.ExpirationUrgencyExpired
	case days <= 2:
		return models.ExpirationUrgencyUseSoon
	case days <= 5:
		return models.ExpirationUrgencyModerate
	default:
		return models.ExpirationUrgencyFresh
	}
}
