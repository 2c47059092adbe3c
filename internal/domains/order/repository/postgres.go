package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/order/model"
)

type postgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{db: db}
}

const orderColumns = `id, order_number, user_id, status, subtotal, discount_code,
	discount_amount, shipping_fee, total, recipient_name, recipient_phone,
	address_line, subdistrict, district, province, zip_code, created_at, updated_at`

func (r *postgresOrderRepository) CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) error {
	query := `
		INSERT INTO orders (id, order_number, user_id, status, subtotal, discount_code,
			discount_amount, shipping_fee, total, recipient_name, recipient_phone,
			address_line, subdistrict, district, province, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		o.ID, o.OrderNumber, o.UserID, o.Status, o.Subtotal, o.DiscountCode,
		o.DiscountAmount, o.ShippingFee, o.Total, o.RecipientName, o.RecipientPhone,
		o.AddressLine, o.Subdistrict, o.District, o.Province, o.ZipCode,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.ProductName,
			item.UnitPrice, item.Quantity, item.LineTotal,
		); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

func (r *postgresOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresOrderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, line_total
		FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.UnitPrice, &it.Quantity, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, q model.ListOrdersQuery) ([]model.Order, int64, error) {
	return r.list(ctx, q, "user_id = $1", userID)
}

func (r *postgresOrderRepository) List(ctx context.Context, q model.ListOrdersQuery) ([]model.Order, int64, error) {
	return r.list(ctx, q, "", nil)
}

func (r *postgresOrderRepository) list(ctx context.Context, q model.ListOrdersQuery, cond string, condArg interface{}) ([]model.Order, int64, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if cond != "" {
		args = append(args, condArg)
		where += " AND " + cond
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM orders %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	listQuery := fmt.Sprintf(`
		SELECT %s FROM orders %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, orderColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.Subtotal, &o.DiscountCode,
		&o.DiscountAmount, &o.ShippingFee, &o.Total, &o.RecipientName, &o.RecipientPhone,
		&o.AddressLine, &o.Subdistrict, &o.District, &o.Province, &o.ZipCode,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
