package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/payment/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	FindByChargeID(ctx context.Context, chargeID string) (*model.Payment, error)
	FindLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, failureMessage *string) error
}

type postgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

const paymentColumns = `id, order_id, charge_id, method, amount, currency, status,
	authorize_uri, qr_image_uri, failure_message, created_at, updated_at`

func (r *postgresPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, charge_id, method, amount, currency,
			status, authorize_uri, qr_image_uri, failure_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.OrderID, p.ChargeID, p.Method, p.Amount, p.Currency,
		p.Status, p.AuthorizeURI, p.QRImageURI, p.FailureMessage,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *postgresPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)
	return r.findOne(ctx, query, id)
}

func (r *postgresPaymentRepository) FindByChargeID(ctx context.Context, chargeID string) (*model.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE charge_id = $1`, paymentColumns)
	return r.findOne(ctx, query, chargeID)
}

func (r *postgresPaymentRepository) FindLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, paymentColumns)
	return r.findOne(ctx, query, orderID)
}

func (r *postgresPaymentRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Payment, error) {
	var p model.Payment
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.OrderID, &p.ChargeID, &p.Method, &p.Amount, &p.Currency,
		&p.Status, &p.AuthorizeURI, &p.QRImageURI, &p.FailureMessage,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &p, nil
}

func (r *postgresPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, failureMessage *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = $2, failure_message = $3, updated_at = NOW()
		WHERE id = $1`,
		id, status, failureMessage)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
