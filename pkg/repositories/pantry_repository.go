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

// PantryRepository provides data access for tracked pantry items.
type PantryRepository interface {
	Create(ctx context.Context, item *models.PantryItem) error
	Get(ctx context.Context, id uuid.UUID) (*models.PantryItem, error)
	// List returns pantry items, optionally filtered by lifecycle status.
	List(ctx context.Context, status *models.PantryItemStatus) ([]models.PantryItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PantryItemStatus) error
}

type pantryRepository struct {
	db *database.DB
}

func NewPantryRepository(db *database.DB) PantryRepository {
	return &pantryRepository{db: db}
}

var _ PantryRepository = (*pantryRepository)(nil)

const pantryItemColumns = `id, name, category, quantity, purchase_date, storage, package_type, status, created_at, updated_at`

func (r *pantryRepository) Create(ctx context.Context, item *models.PantryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Status == "" {
		item.Status = models.PantryItemActive
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO pantry_items (id, name, category, quantity, purchase_date, storage, package_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.Name, item.Category, item.Quantity, item.PurchaseDate,
		item.Storage, item.PackageType, item.Status)
	if err != nil {
		return fmt.Errorf("failed to create pantry item: %w", err)
	}

	return nil
}

func (r *pantryRepository) Get(ctx context.Context, id uuid.UUID) (*models.PantryItem, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+pantryItemColumns+` FROM pantry_items WHERE id = $1`, id)

	item, err := scanPantryItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pantry item %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry item: %w", err)
	}

	return item, nil
}

func (r *pantryRepository) List(ctx context.Context, status *models.PantryItemStatus) ([]models.PantryItem, error) {
	query := `SELECT ` + pantryItemColumns + ` FROM pantry_items ORDER BY purchase_date`
	args := []any{}
	if status != nil {
		query = `SELECT ` + pantryItemColumns + ` FROM pantry_items WHERE status = $1 ORDER BY purchase_date`
		args = append(args, *status)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pantry items: %w", err)
	}

	return items, nil
}

func (r *pantryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PantryItemStatus) error {
	if !models.ValidPantryItemStatus(status) {
		return fmt.Errorf("%w: unknown pantry status %q", apperrors.ErrInvalidInput, status)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE pantry_items
		SET status = $1, updated_at = now()
		WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update pantry item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pantry item %s: %w", id, apperrors.ErrNotFound)
	}

	return nil
}

func scanPantryItem(row pgx.Row) (*models.PantryItem, error) {
	var item models.PantryItem
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity,
		&item.PurchaseDate, &item.Storage, &item.PackageType, &item.Status,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
