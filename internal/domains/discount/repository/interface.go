package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/discount/model"
)

// DiscountRepository persists discount codes. FindActiveByCode returns
// (nil, nil) on no match; callers decide what a miss means.
type DiscountRepository interface {
	Create(ctx context.Context, d *model.DiscountCode) error
	Update(ctx context.Context, d *model.DiscountCode) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error)
	FindActiveByCode(ctx context.Context, code string) (*model.DiscountCode, error)
	List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int64, error)

	// ConsumeUse atomically increments used_count if the code is
	// active and under its usage limit. Returns false when no row
	// qualified, i.e. the code is missing, inactive, or exhausted.
	ConsumeUse(ctx context.Context, code string) (bool, error)
	ConsumeUseTx(ctx context.Context, tx pgx.Tx, code string) (bool, error)

	DeactivateExpired(ctx context.Context) (int64, error)
	ListUsage(ctx context.Context, code string) ([]model.DiscountUsageRow, error)
}
