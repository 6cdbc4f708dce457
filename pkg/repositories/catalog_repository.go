package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cartwise-ai/cartwise-engine/pkg/apperrors"
	"github.com/cartwise-ai/cartwise-engine/pkg/database"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

// CatalogRepository provides data access for catalog items.
type CatalogRepository interface {
	List(ctx context.Context) ([]models.CatalogItem, error)
	GetByName(ctx context.Context, name string) (*models.CatalogItem, error)
	Upsert(ctx context.Context, item *models.CatalogItem) error
	Count(ctx context.Context) (int, error)
}

type catalogRepository struct {
	db *database.DB
}

func NewCatalogRepository(db *database.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

var _ CatalogRepository = (*catalogRepository)(nil)

func (r *catalogRepository) List(ctx context.Context) ([]models.CatalogItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, unit_price, created_at, updated_at
		FROM catalog_items
		ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer rows.Close()

	var items []models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.UnitPrice,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog items: %w", err)
	}

	return items, nil
}

func (r *catalogRepository) GetByName(ctx context.Context, name string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.QueryRow(ctx, `
		SELECT id, name, category, unit_price, created_at, updated_at
		FROM catalog_items
		WHERE name = $1`, name).
		Scan(&item.ID, &item.Name, &item.Category, &item.UnitPrice,
			&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("catalog item %q: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	return &item, nil
}

func (r *catalogRepository) Upsert(ctx context.Context, item *models.CatalogItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO catalog_items (id, name, category, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET category = EXCLUDED.category,
		    unit_price = EXCLUDED.unit_price,
		    updated_at = now()`,
		item.ID, item.Name, item.Category, item.UnitPrice)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog item: %w", err)
	}

	return nil
}

func (r *catalogRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count catalog items: %w", err)
	}
	return count, nil
}
