package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cartwise-ai/cartwise-engine/pkg/database"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

// PurchaseRepository provides data access for the purchase history.
// Purchases are append-only.
type PurchaseRepository interface {
	Create(ctx context.Context, record *models.PurchaseRecord) error
	List(ctx context.Context, filters models.PurchaseFilters) ([]models.PurchaseRecord, error)
	// RecentItemNames returns the distinct names of items purchased since
	// the cutoff, for the shopping list's repeat detection.
	RecentItemNames(ctx context.Context, since time.Time) ([]string, error)
}

type purchaseRepository struct {
	db *database.DB
}

func NewPurchaseRepository(db *database.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

var _ PurchaseRepository = (*purchaseRepository)(nil)

func (r *purchaseRepository) Create(ctx context.Context, record *models.PurchaseRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.PurchaseDate.IsZero() {
		record.PurchaseDate = time.Now()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO purchase_records (id, item_name, category, quantity, unit_price, purchase_date, store_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID, record.ItemName, record.Category, record.Quantity,
		record.UnitPrice, record.PurchaseDate, record.StoreName)
	if err != nil {
		return fmt.Errorf("failed to create purchase record: %w", err)
	}

	return nil
}

func (r *purchaseRepository) List(ctx context.Context, filters models.PurchaseFilters) ([]models.PurchaseRecord, error) {
	limit := filters.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if filters.ItemName != "" {
		conditions = append(conditions, fmt.Sprintf("item_name = $%d", argIdx))
		args = append(args, filters.ItemName)
		argIdx++
	}
	if filters.Since != nil {
		conditions = append(conditions, fmt.Sprintf("purchase_date >= $%d", argIdx))
		args = append(args, *filters.Since)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT id, item_name, category, quantity, unit_price, purchase_date, store_name, created_at
		FROM purchase_records
		WHERE %s
		ORDER BY purchase_date DESC
		LIMIT $%d`, strings.Join(conditions, " AND "), argIdx)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase records: %w", err)
	}
	defer rows.Close()

	var records []models.PurchaseRecord
	for rows.Next() {
		var rec models.PurchaseRecord
		if err := rows.Scan(&rec.ID, &rec.ItemName, &rec.Category, &rec.Quantity,
			&rec.UnitPrice, &rec.PurchaseDate, &rec.StoreName, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase records: %w", err)
	}

	return records, nil
}

func (r *purchaseRepository) RecentItemNames(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT item_name
		FROM purchase_records
		WHERE purchase_date >= $1
		ORDER BY item_name`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent item names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan item name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item names: %w", err)
	}

	return names, nil
}
