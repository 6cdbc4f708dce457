package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/apperrors"
	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

const (
	// Categories with an adjusted priority at or below this threshold are
	// skipped entirely.
	categorySkipThreshold = 0.3

	// Priority multiplier for items the household has not bought recently,
	// favoring variety over repeats.
	newItemBoost = 1.2

	// Per-person scaling added to quantities for each household member
	// beyond the first.
	perPersonIncrement = 0.2

	// At most this many candidates are considered per category.
	maxItemsPerCategory = 5

	// Priority assigned to affinity-based smart suggestions.
	suggestionPriority = 0.6
)

// Remaining-budget floors. Once the remaining budget drops below these,
// the generator stops adding items (per category and overall). These are
// advisory early-outs; the final admission pass re-checks the hard budget.
var (
	categoryBudgetFloor = decimal.RequireFromString("3.0")
	overallBudgetFloor  = decimal.RequireFromString("2.0")
)

// ShoppingListService generates budget-constrained shopping lists from
// the catalog, household profile, and recent purchase history.
type ShoppingListService interface {
	// Generate produces a prioritized list of recommendations whose total
	// cost never exceeds budget. recentPurchases holds item names bought
	// recently; preferences maps category name to a weight in [0,1].
	Generate(budget decimal.Decimal, householdSize int, recentPurchases []string, preferences map[string]float64) ([]models.ShoppingRecommendation, error)

	// SmartSuggestions proposes complementary items for what is already in
	// the pantry, using the catalog affinity table.
	SmartSuggestions(currentPantry []string, budget decimal.Decimal, preferences map[string]float64) ([]models.ShoppingRecommendation, error)
}

type shoppingListService struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewShoppingListService(cat *catalog.Catalog, logger *zap.Logger) ShoppingListService {
	return &shoppingListService{
		catalog: cat,
		logger:  logger.Named("shopping-list-service"),
	}
}

var _ ShoppingListService = (*shoppingListService)(nil)

func (s *shoppingListService) Generate(budget decimal.Decimal, householdSize int, recentPurchases []string, preferences map[string]float64) ([]models.ShoppingRecommendation, error) {
	if budget.Sign() <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive", apperrors.ErrInvalidInput)
	}
	if householdSize < 1 {
		return nil, fmt.Errorf("%w: household size must be at least 1", apperrors.ErrInvalidInput)
	}

	recent := nameSet(recentPurchases)
	multiplier := 1 + float64(householdSize-1)*perPersonIncrement
	quantity := decimal.NewFromFloat(multiplier)

	var accepted []models.ShoppingRecommendation
	remaining := budget

categories:
	for _, category := range s.catalog.CategoryOrder {
		base := s.catalog.CategoryPriority[category]
		adjusted := base * base
		if pref, ok := preferences[category]; ok {
			adjusted = base * pref
		}
		if adjusted <= categorySkipThreshold {
			continue
		}

		for _, entry := range s.candidates(category, recent) {
			cost := quantity.Mul(entry.UnitPrice)
			if cost.Cmp(remaining) > 0 {
				continue
			}

			priority := adjusted
			if !recent[strings.ToLower(entry.Name)] {
				priority *= newItemBoost
			}

			accepted = append(accepted, models.ShoppingRecommendation{
				ItemName:           entry.Name,
				Category:           entry.Category,
				Quantity:           quantity,
				EstimatedUnitPrice: entry.UnitPrice,
				Priority:           clamp(priority, 0, 1),
			})
			remaining = remaining.Sub(cost)

			if remaining.Cmp(categoryBudgetFloor) < 0 {
				break
			}
		}

		if remaining.Cmp(overallBudgetFloor) < 0 {
			break categories
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Priority > accepted[j].Priority
	})

	final := admitWithinBudget(accepted, budget)

	s.logger.Debug("Generated shopping list",
		zap.Int("household_size", householdSize),
		zap.String("budget", budget.String()),
		zap.Int("recommendations", len(final)))

	return final, nil
}

func (s *shoppingListService) SmartSuggestions(currentPantry []string, budget decimal.Decimal, preferences map[string]float64) ([]models.ShoppingRecommendation, error) {
	if budget.Sign() <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive", apperrors.ErrInvalidInput)
	}

	pantry := nameSet(currentPantry)
	seen := make(map[string]bool)
	var suggestions []models.ShoppingRecommendation

	for _, have := range currentPantry {
		for _, complement := range s.catalog.Affinities[strings.ToLower(have)] {
			key := strings.ToLower(complement)
			if pantry[key] || seen[key] {
				continue
			}
			entry, ok := s.catalog.FindItem(complement)
			if !ok {
				continue
			}

			priority := suggestionPriority
			if pref, ok := preferences[entry.Category]; ok {
				priority = clamp(suggestionPriority*pref/s.catalog.CategoryPriority[entry.Category], 0, 1)
			}

			seen[key] = true
			suggestions = append(suggestions, models.ShoppingRecommendation{
				ItemName:           entry.Name,
				Category:           entry.Category,
				Quantity:           decimal.NewFromInt(1),
				EstimatedUnitPrice: entry.UnitPrice,
				Priority:           priority,
			})
		}
	}

	return admitWithinBudget(suggestions, budget), nil
}

// candidates returns up to maxItemsPerCategory catalog entries for a
// category, items not purchased recently first. Catalog order is
// preserved within each class so generation stays deterministic.
func (s *shoppingListService) candidates(category string, recent map[string]bool) []catalog.Entry {
	all := s.catalog.ItemsInCategory(category)

	ordered := make([]catalog.Entry, 0, len(all))
	for _, e := range all {
		if !recent[strings.ToLower(e.Name)] {
			ordered = append(ordered, e)
		}
	}
	for _, e := range all {
		if recent[strings.ToLower(e.Name)] {
			ordered = append(ordered, e)
		}
	}

	if len(ordered) > maxItemsPerCategory {
		ordered = ordered[:maxItemsPerCategory]
	}
	return ordered
}

// admitWithinBudget walks recommendations in order, keeping a running
// total and dropping any line that would push the total past the budget.
// The generation loop's budget floors are advisory; this is the hard
// invariant callers rely on.
func admitWithinBudget(recs []models.ShoppingRecommendation, budget decimal.Decimal) []models.ShoppingRecommendation {
	var out []models.ShoppingRecommendation
	total := decimal.Zero
	for _, rec := range recs {
		cost := rec.TotalCost()
		if total.Add(cost).Cmp(budget) > 0 {
			continue
		}
		total = total.Add(cost)
		out = append(out, rec)
	}
	return out
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}
