package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cartwise-ai/cartwise-engine/pkg/apperrors"
	"github.com/cartwise-ai/cartwise-engine/pkg/database"
	"github.com/cartwise-ai/cartwise-engine/pkg/models"
)

// PriceRepository provides data access for the price history stream.
type PriceRepository interface {
	Create(ctx context.Context, point *models.PricePoint) error
	List(ctx context.Context, filters models.PriceFilters) ([]models.PricePoint, error)
	// Latest returns the most recent price sample for an item.
	Latest(ctx context.Context, itemName string) (*models.PricePoint, error)
}

type priceRepository struct {
	db *database.DB
}

func NewPriceRepository(db *database.DB) PriceRepository {
	return &priceRepository{db: db}
}

var _ PriceRepository = (*priceRepository)(nil)

func (r *priceRepository) Create(ctx context.Context, point *models.PricePoint) error {
	if point.ID == uuid.Nil {
		point.ID = uuid.New()
	}
	if point.RecordedAt.IsZero() {
		point.RecordedAt = time.Now()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO price_points (id, item_name, price, recorded_at, store_name)
		VALUES ($1, $2, $3, $4, $5)`,
		point.ID, point.ItemName, point.Price, point.RecordedAt, point.StoreName)
	if err != nil {
		return fmt.Errorf("failed to create price point: %w", err)
	}

	return nil
}

func (r *priceRepository) List(ctx context.Context, filters models.PriceFilters) ([]models.PricePoint, error) {
	limit := filters.Limit
	if limit <= 0 || limit > 1000 {
		limit = 200
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
		conditions = append(conditions, fmt.Sprintf("recorded_at >= $%d", argIdx))
		args = append(args, *filters.Since)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT id, item_name, price, recorded_at, store_name, created_at
		FROM price_points
		WHERE %s
		ORDER BY recorded_at DESC
		LIMIT $%d`, strings.Join(conditions, " AND "), argIdx)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list price points: %w", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var pt models.PricePoint
		if err := rows.Scan(&pt.ID, &pt.ItemName, &pt.Price, &pt.RecordedAt,
			&pt.StoreName, &pt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}
		points = append(points, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price points: %w", err)
	}

	return points, nil
}

func (r *priceRepository) Latest(ctx context.Context, itemName string) (*models.PricePoint, error) {
	var pt models.PricePoint
	err := r.db.QueryRow(ctx, `
		SELECT id, item_name, price, recorded_at, store_name, created_at
		FROM price_points
		WHERE item_name = $1
		ORDER BY recorded_at DESC
		LIMIT 1`, itemName).
		Scan(&pt.ID, &pt.ItemName, &pt.Price, &pt.RecordedAt, &pt.StoreName, &pt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no prices recorded for %q: %w", itemName, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest price: %w", err)
	}

	return &pt, nil
}
