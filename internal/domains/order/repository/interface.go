package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront-backend/internal/domains/order/model"
)

type OrderRepository interface {
	// CreateTx inserts the order and its items inside the checkout
	// transaction.
	CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, q model.ListOrdersQuery) ([]model.Order, int64, error)
	List(ctx context.Context, q model.ListOrdersQuery) ([]model.Order, int64, error)

	// UpdateStatus persists a transition already validated by the
	// service. The WHERE clause re-checks the current status so a
	// concurrent transition loses cleanly.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
}
