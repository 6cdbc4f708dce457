package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

// mockPurchaseRepository implements repositories.PurchaseRepository.
type mockPurchaseRepository struct {
	records     []models.PurchaseRecord
	recentNames []string
	createErr   error
	listErr     error
	created     []*models.PurchaseRecord
}

func (m *mockPurchaseRepository) Create(ctx context.Context, record *models.PurchaseRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, record)
	return nil
}

func (m *mockPurchaseRepository) List(ctx context.Context, filters models.PurchaseFilters) ([]models.PurchaseRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *mockPurchaseRepository) RecentItemNames(ctx context.Context, since time.Time) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.recentNames, nil
}

// mockPriceRepository implements repositories.PriceRepository.
type mockPriceRepository struct {
	points    []models.PricePoint
	createErr error
	listErr   error
	created   []*models.PricePoint
}

func (m *mockPriceRepository) Create(ctx context.Context, point *models.PricePoint) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, point)
	return nil
}

func (m *mockPriceRepository) List(ctx context.Context, filters models.PriceFilters) ([]models.PricePoint, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.points, nil
}

func (m *mockPriceRepository) Latest(ctx context.Context, itemName string) (*models.PricePoint, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if len(m.points) == 0 {
		return nil, nil
	}
	return &m.points[len(m.points)-1], nil
}

// mockPantryRepository implements repositories.PantryRepository.
type mockPantryRepository struct {
	items           []models.PantryItem
	createErr       error
	listErr         error
	updateStatusErr error
	created         []*models.PantryItem
	updatedID       uuid.UUID
	updatedStatus   models.PantryItemStatus
}

func (m *mockPantryRepository) Create(ctx context.Context, item *models.PantryItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	item.ID = uuid.New()
	m.created = append(m.created, item)
	return nil
}

func (m *mockPantryRepository) Get(ctx context.Context, id uuid.UUID) (*models.PantryItem, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, nil
}

func (m *mockPantryRepository) List(ctx context.Context, status *models.PantryItemStatus) ([]models.PantryItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if status == nil {
		return m.items, nil
	}
	var out []models.PantryItem
	for _, item := range m.items {
		if item.Status == *status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockPantryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PantryItemStatus) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	m.updatedID = id
	m.updatedStatus = status
	return nil
}

// mockShoppingListService implements services.ShoppingListService.
type mockShoppingListService struct {
	recommendations []models.ShoppingRecommendation
	suggestions     []models.ShoppingRecommendation
	err             error

	generateBudget  decimal.Decimal
	generateRecent  []string
	suggestedPantry []string
}

func (m *mockShoppingListService) Generate(budget decimal.Decimal, householdSize int, recentPurchases []string, preferences map[string]float64) ([]models.ShoppingRecommendation, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.generateBudget = budget
	m.generateRecent = recentPurchases
	return m.recommendations, nil
}

func (m *mockShoppingListService) SmartSuggestions(currentPantry []string, budget decimal.Decimal, preferences map[string]float64) ([]models.ShoppingRecommendation, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.suggestedPantry = currentPantry
	return m.suggestions, nil
}

// mockPurchasePredictor implements services.PurchasePredictorService.
type mockPurchasePredictor struct {
	prediction models.PurchasePrediction
	err        error
}

func (m *mockPurchasePredictor) PredictNext(itemName, category string, history []models.PurchaseRecord) (models.PurchasePrediction, error) {
	if m.err != nil {
		return models.PurchasePrediction{}, m.err
	}
	return m.prediction, nil
}

// mockPriceOptimizer implements services.PriceOptimizerService.
type mockPriceOptimizer struct {
	analysis models.PriceAnalysis
	bestTime models.BestTimePrediction
}

func (m *mockPriceOptimizer) Analyze(itemName string, currentPrice decimal.Decimal, history []models.PricePoint) models.PriceAnalysis {
	return m.analysis
}

func (m *mockPriceOptimizer) PredictBestTimeToBuy(itemName string, history []models.PricePoint) models.BestTimePrediction {
	return m.bestTime
}

// mockExpirationPredictor implements services.ExpirationPredictorService.
type mockExpirationPredictor struct {
	prediction models.ExpirationPrediction
	expiring   []models.ExpirationPrediction
}

func (m *mockExpirationPredictor) Predict(itemName, category string, purchaseDate time.Time, storage models.StorageLocation, packageType models.PackageType) models.ExpirationPrediction {
	return m.prediction
}

func (m *mockExpirationPredictor) ExpiringItems(items []models.PantryItem) []models.ExpirationPrediction {
	return m.expiring
}
