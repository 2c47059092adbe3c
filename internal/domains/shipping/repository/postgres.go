package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/shipping/model"
	"storefront-backend/pkg/database"
)

type postgresShippingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShippingRepository(db *pgxpool.Pool) ShippingRepository {
	return &postgresShippingRepository{db: db}
}

func (r *postgresShippingRepository) GetActive(ctx context.Context) (*model.ShippingSettings, error) {
	query := `
		SELECT id, free_shipping_min_amount, standard_shipping_cost, is_active, created_at
		FROM shipping_settings
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT 1`

	var s model.ShippingSettings
	err := r.db.QueryRow(ctx, query).Scan(&s.ID, &s.FreeThreshold, &s.ShippingFee, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shipping settings: %w", err)
	}
	return &s, nil
}

func (r *postgresShippingRepository) Create(ctx context.Context, s *model.ShippingSettings) error {
	query := `
		INSERT INTO shipping_settings (id, free_shipping_min_amount, standard_shipping_cost, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if err := r.db.QueryRow(ctx, query, s.ID, s.FreeThreshold, s.ShippingFee, s.Active).Scan(&s.CreatedAt); err != nil {
		return fmt.Errorf("failed to create shipping settings: %w", err)
	}
	return nil
}

// Replace keeps the history append-only: the old revision is flagged
// inactive, never updated in place.
func (r *postgresShippingRepository) Replace(ctx context.Context, s *model.ShippingSettings) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE shipping_settings SET is_active = false WHERE is_active = true`); err != nil {
			return fmt.Errorf("failed to deactivate shipping settings: %w", err)
		}

		query := `
			INSERT INTO shipping_settings (id, free_shipping_min_amount, standard_shipping_cost, is_active)
			VALUES ($1, $2, $3, true)
			RETURNING created_at`
		if err := tx.QueryRow(ctx, query, s.ID, s.FreeThreshold, s.ShippingFee).Scan(&s.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert shipping settings: %w", err)
		}
		s.Active = true
		return nil
	})
}

func (r *postgresShippingRepository) History(ctx context.Context, limit int) ([]model.ShippingSettings, error) {
	query := `
		SELECT id, free_shipping_min_amount, standard_shipping_cost, is_active, created_at
		FROM shipping_settings
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping settings history: %w", err)
	}
	defer rows.Close()

	var history []model.ShippingSettings
	for rows.Next() {
		var s model.ShippingSettings
		if err := rows.Scan(&s.ID, &s.FreeThreshold, &s.ShippingFee, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shipping settings: %w", err)
		}
		history = append(history, s)
	}
	return history, rows.Err()
}
