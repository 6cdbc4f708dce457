package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// fileFormat mirrors Catalog with YAML-friendly field types. Prices are
// strings so regional files can write exact decimals ("3.49").
type fileFormat struct {
	Items []struct {
		Name      string `yaml:"name"`
		Category  string `yaml:"category"`
		UnitPrice string `yaml:"unit_price"`
	} `yaml:"items"`
	Categories []struct {
		Name     string  `yaml:"name"`
		Priority float64 `yaml:"priority"`
	} `yaml:"categories"`
	Affinities    map[string][]string `yaml:"affinities"`
	ShelfLifeDays map[string]int      `yaml:"shelf_life_days"`
}

// LoadFile reads a catalog override from a YAML file. The file replaces
// the built-in tables wholesale; sections left empty fall back to the
// defaults so a regional file can override prices without re-listing
// shelf lives.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	cat := Default()

	if len(ff.Items) > 0 {
		items := make([]Entry, 0, len(ff.Items))
		for _, it := range ff.Items {
			p, err := decimal.NewFromString(it.UnitPrice)
			if err != nil {
				return nil, fmt.Errorf("invalid unit_price for %q: %w", it.Name, err)
			}
			if p.IsNegative() {
				return nil, fmt.Errorf("negative unit_price for %q", it.Name)
			}
			items = append(items, Entry{Name: it.Name, Category: it.Category, UnitPrice: p})
		}
		cat.Items = items
	}

	if len(ff.Categories) > 0 {
		order := make([]string, 0, len(ff.Categories))
		priority := make(map[string]float64, len(ff.Categories))
		for _, c := range ff.Categories {
			if c.Priority <= 0 || c.Priority > 1 {
				return nil, fmt.Errorf("category %q priority must be in (0,1]", c.Name)
			}
			order = append(order, c.Name)
			priority[c.Name] = c.Priority
		}
		cat.CategoryOrder = order
		cat.CategoryPriority = priority
	}

	if len(ff.Affinities) > 0 {
		cat.Affinities = ff.Affinities
	}
	if len(ff.ShelfLifeDays) > 0 {
		cat.ShelfLifeDays = ff.ShelfLifeDays
	}

	return cat, nil
}
