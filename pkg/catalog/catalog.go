// Package catalog holds the engine's static lookup tables: the default
// item catalog with shelf prices, category base priorities, the item
// affinity table used for smart suggestions, and the shelf-life table
// used for expiration prediction. All tables are immutable after
// construction and safe to share across goroutines.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

// Entry is one item in the catalog with its default unit price.
type Entry struct {
	Name      string          `yaml:"name"`
	Category  string          `yaml:"category"`
	UnitPrice decimal.Decimal `yaml:"unit_price"`
}

// CatalogItem converts the entry to its persistence model, used when
// seeding the catalog table.
func (e Entry) CatalogItem() models.CatalogItem {
	return models.CatalogItem{
		Name:      e.Name,
		Category:  e.Category,
		UnitPrice: e.UnitPrice,
	}
}

// Catalog bundles the static tables consumed by the computation services.
// Use Default for the built-in tables or LoadFile for a regional override.
type Catalog struct {
	// Items in stable catalog order. Order matters: candidate selection
	// preserves it, which keeps list generation deterministic.
	Items []Entry
	// CategoryOrder lists categories from highest to lowest base priority.
	CategoryOrder []string
	// CategoryPriority maps category name to its base priority in (0,1].
	CategoryPriority map[string]float64
	// Affinities maps a pantry item (lowercased) to items that commonly
	// complement it.
	Affinities map[string][]string
	// ShelfLifeDays maps item name to its expected shelf life in days
	// under default (fridge) storage.
	ShelfLifeDays map[string]int
}

// ItemsInCategory returns the catalog entries for one category, in
// catalog order.
func (c *Catalog) ItemsInCategory(category string) []Entry {
	var out []Entry
	for _, e := range c.Items {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// FindItem looks up a catalog entry by name.
func (c *Catalog) FindItem(name string) (Entry, bool) {
	for _, e := range c.Items {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Default returns the built-in catalog: 29 items across the five standard
// categories, with US-typical shelf prices.
func Default() *Catalog {
	return &Catalog{
		Items: []Entry{
			// Dairy
			{Name: "Milk", Category: models.CategoryDairy, UnitPrice: price("3.49")},
			{Name: "Eggs", Category: models.CategoryDairy, UnitPrice: price("4.29")},
			{Name: "Butter", Category: models.CategoryDairy, UnitPrice: price("4.99")},
			{Name: "Cheddar Cheese", Category: models.CategoryDairy, UnitPrice: price("5.49")},
			{Name: "Greek Yogurt", Category: models.CategoryDairy, UnitPrice: price("5.99")},
			{Name: "Cream Cheese", Category: models.CategoryDairy, UnitPrice: price("3.29")},

			// Produce
			{Name: "Bananas", Category: models.CategoryProduce, UnitPrice: price("1.29")},
			{Name: "Apples", Category: models.CategoryProduce, UnitPrice: price("3.99")},
			{Name: "Carrots", Category: models.CategoryProduce, UnitPrice: price("1.99")},
			{Name: "Spinach", Category: models.CategoryProduce, UnitPrice: price("2.99")},
			{Name: "Tomatoes", Category: models.CategoryProduce, UnitPrice: price("2.49")},
			{Name: "Onions", Category: models.CategoryProduce, UnitPrice: price("1.79")},
			{Name: "Potatoes", Category: models.CategoryProduce, UnitPrice: price("3.49")},
			{Name: "Broccoli", Category: models.CategoryProduce, UnitPrice: price("2.79")},

			// Meat & Seafood
			{Name: "Chicken Breast", Category: models.CategoryMeat, UnitPrice: price("8.99")},
			{Name: "Ground Beef", Category: models.CategoryMeat, UnitPrice: price("7.49")},
			{Name: "Salmon Fillet", Category: models.CategoryMeat, UnitPrice: price("11.99")},
			{Name: "Pork Chops", Category: models.CategoryMeat, UnitPrice: price("6.99")},
			{Name: "Shrimp", Category: models.CategoryMeat, UnitPrice: price("9.99")},

			// Pantry
			{Name: "Pasta", Category: models.CategoryPantry, UnitPrice: price("1.99")},
			{Name: "Rice", Category: models.CategoryPantry, UnitPrice: price("4.49")},
			{Name: "Bread", Category: models.CategoryPantry, UnitPrice: price("2.99")},
			{Name: "Cereal", Category: models.CategoryPantry, UnitPrice: price("4.99")},
			{Name: "Tomato Sauce", Category: models.CategoryPantry, UnitPrice: price("2.29")},
			{Name: "Peanut Butter", Category: models.CategoryPantry, UnitPrice: price("3.99")},
			{Name: "Canned Beans", Category: models.CategoryPantry, UnitPrice: price("1.49")},
			{Name: "Olive Oil", Category: models.CategoryPantry, UnitPrice: price("8.99")},

			// Beverages
			{Name: "Orange Juice", Category: models.CategoryBeverages, UnitPrice: price("4.49")},
			{Name: "Coffee", Category: models.CategoryBeverages, UnitPrice: price("9.99")},
		},
		CategoryOrder: []string{
			models.CategoryDairy,
			models.CategoryProduce,
			models.CategoryMeat,
			models.CategoryPantry,
			models.CategoryBeverages,
		},
		CategoryPriority: map[string]float64{
			models.CategoryDairy:     1.0,
			models.CategoryProduce:   0.9,
			models.CategoryMeat:      0.8,
			models.CategoryPantry:    0.7,
			models.CategoryBeverages: 0.6,
		},
		Affinities: map[string][]string{
			"pasta":  {"Tomato Sauce", "Tomatoes"},
			"bread":  {"Butter", "Peanut Butter"},
			"cereal": {"Milk", "Bananas"},
		},
		ShelfLifeDays: map[string]int{
			"Milk":           7,
			"Eggs":           21,
			"Butter":         30,
			"Cheddar Cheese": 21,
			"Greek Yogurt":   10,
			"Cream Cheese":   14,
			"Bananas":        5,
			"Apples":         14,
			"Carrots":        21,
			"Spinach":        5,
			"Tomatoes":       7,
			"Onions":         30,
			"Potatoes":       30,
			"Broccoli":       7,
			"Chicken Breast": 2,
			"Ground Beef":    2,
			"Salmon Fillet":  2,
			"Pork Chops":     3,
			"Shrimp":         2,
			"Pasta":          365,
			"Rice":           365,
			"Bread":          5,
			"Cereal":         180,
			"Peanut Butter":  180,
			"Orange Juice":   10,
		},
	}
}
