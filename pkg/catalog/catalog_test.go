package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

func TestDefault_TableIntegrity(t *testing.T) {
	cat := Default()

	assert.Len(t, cat.Items, 29)
	assert.Len(t, cat.CategoryOrder, 5)

	for _, e := range cat.Items {
		assert.NotEmpty(t, e.Name)
		assert.False(t, e.UnitPrice.IsNegative(), "%s has negative price", e.Name)
		assert.Contains(t, cat.CategoryOrder, e.Category,
			"%s belongs to unknown category %s", e.Name, e.Category)
	}

	for _, c := range cat.CategoryOrder {
		priority, ok := cat.CategoryPriority[c]
		require.True(t, ok, "category %s has no priority", c)
		assert.Greater(t, priority, 0.0)
		assert.LessOrEqual(t, priority, 1.0)
	}

	// Dairy leads the priority order.
	assert.Equal(t, models.CategoryDairy, cat.CategoryOrder[0])
	assert.Equal(t, 1.0, cat.CategoryPriority[models.CategoryDairy])
}

func TestDefault_ShelfLifeCoversPerishables(t *testing.T) {
	cat := Default()

	for _, name := range []string{"Milk", "Chicken Breast", "Spinach", "Bread"} {
		days, ok := cat.ShelfLifeDays[name]
		require.True(t, ok, "%s missing from shelf-life table", name)
		assert.Greater(t, days, 0)
	}
}

func TestDefault_AffinitiesResolveToCatalogItems(t *testing.T) {
	cat := Default()

	for have, complements := range cat.Affinities {
		assert.NotEmpty(t, complements, "affinity %s is empty", have)
		for _, c := range complements {
			_, ok := cat.FindItem(c)
			assert.True(t, ok, "affinity %s -> %s not in catalog", have, c)
		}
	}
}

func TestItemsInCategory_PreservesCatalogOrder(t *testing.T) {
	cat := Default()

	dairy := cat.ItemsInCategory(models.CategoryDairy)
	require.NotEmpty(t, dairy)
	assert.Equal(t, "Milk", dairy[0].Name)
	for _, e := range dairy {
		assert.Equal(t, models.CategoryDairy, e.Category)
	}
}

func TestLoadFile_OverridesItemsKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
items:
  - name: Oat Milk
    category: Dairy
    unit_price: "4.25"
  - name: Sourdough
    category: Pantry
    unit_price: "5.50"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cat, err := LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, cat.Items, 2)
	entry, ok := cat.FindItem("Oat Milk")
	require.True(t, ok)
	assert.True(t, entry.UnitPrice.Equal(decimal.RequireFromString("4.25")))

	// Unlisted sections fall back to the built-in tables.
	assert.Len(t, cat.CategoryOrder, 5)
	assert.NotEmpty(t, cat.ShelfLifeDays)
}

func TestLoadFile_RejectsBadPrices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
items:
  - name: Oat Milk
    category: Dairy
    unit_price: "-1.00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
