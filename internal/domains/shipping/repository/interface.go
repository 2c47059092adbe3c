package repository

import (
	"context"

	"storefront-backend/internal/domains/shipping/model"
)

// ShippingRepository persists shipping settings revisions.
type ShippingRepository interface {
	// GetActive returns the current revision, or (nil, nil) when no
	// settings have ever been saved.
	GetActive(ctx context.Context) (*model.ShippingSettings, error)

	// Create inserts the first revision.
	Create(ctx context.Context, s *model.ShippingSettings) error

	// Replace deactivates the current revision and inserts a new one
	// in a single transaction.
	Replace(ctx context.Context, s *model.ShippingSettings) error

	// History lists revisions newest first.
	History(ctx context.Context, limit int) ([]model.ShippingSettings, error)
}
