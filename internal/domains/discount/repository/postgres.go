package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/discount/model"
)

type postgresDiscountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDiscountRepository(db *pgxpool.Pool) DiscountRepository {
	return &postgresDiscountRepository{db: db}
}

const discountColumns = `id, code, description, type, value, min_amount, max_discount,
	max_uses, used_count, end_date, status, created_at, updated_at`

func (r *postgresDiscountRepository) Create(ctx context.Context, d *model.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (id, code, description, type, value, min_amount,
			max_discount, max_uses, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING used_count, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		d.ID, d.Code, d.Description, d.Type, d.Value, d.MinAmount,
		d.MaxDiscount, d.MaxUses, d.EndDate, d.Status,
	).Scan(&d.UsedCount, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create discount code: %w", err)
	}
	return nil
}

func (r *postgresDiscountRepository) Update(ctx context.Context, d *model.DiscountCode) error {
	query := `
		UPDATE discount_codes
		SET description = $2, value = $3, min_amount = $4, max_discount = $5,
			max_uses = $6, end_date = $7, status = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		d.ID, d.Description, d.Value, d.MinAmount, d.MaxDiscount,
		d.MaxUses, d.EndDate, d.Status,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to update discount code: %w", err)
	}
	return nil
}

func (r *postgresDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error) {
	query := fmt.Sprintf(`SELECT %s FROM discount_codes WHERE id = $1`, discountColumns)

	d, err := scanDiscount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find discount code: %w", err)
	}
	return d, nil
}

// FindActiveByCode matches case-insensitively: codes are stored
// uppercase but customers type them however they like.
func (r *postgresDiscountRepository) FindActiveByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM discount_codes
		WHERE LOWER(code) = LOWER($1) AND status = 'active'`, discountColumns)

	d, err := scanDiscount(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find discount code: %w", err)
	}
	return d, nil
}

func (r *postgresDiscountRepository) List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int64, error) {
	where := ""
	args := []interface{}{}
	if q.Status != "" {
		where = "WHERE status = $1"
		args = append(args, q.Status)
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM discount_codes %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count discount codes: %w", err)
	}

	offset := (q.Page - 1) * q.Limit
	listQuery := fmt.Sprintf(`
		SELECT %s FROM discount_codes %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, discountColumns, where, len(args)+1, len(args)+2)
	args = append(args, q.Limit, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list discount codes: %w", err)
	}
	defer rows.Close()

	var codes []model.DiscountCode
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan discount code: %w", err)
		}
		codes = append(codes, *d)
	}
	return codes, total, rows.Err()
}

// consumeUseQuery is the whole concurrency story for discount commits:
// the usage-limit check and the increment happen in one statement, so
// two concurrent commits of the last remaining use cannot both succeed.
const consumeUseQuery = `
	UPDATE discount_codes
	SET used_count = used_count + 1, updated_at = NOW()
	WHERE LOWER(code) = LOWER($1)
		AND status = 'active'
		AND (max_uses IS NULL OR used_count < max_uses)`

func (r *postgresDiscountRepository) ConsumeUse(ctx context.Context, code string) (bool, error) {
	tag, err := r.db.Exec(ctx, consumeUseQuery, code)
	if err != nil {
		return false, fmt.Errorf("failed to consume discount use: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresDiscountRepository) ConsumeUseTx(ctx context.Context, tx pgx.Tx, code string) (bool, error) {
	tag, err := tx.Exec(ctx, consumeUseQuery, code)
	if err != nil {
		return false, fmt.Errorf("failed to consume discount use: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeactivateExpired flips codes whose end date has passed to inactive.
// Validation already rejects expired codes; this keeps admin listings
// honest and is run nightly by the worker.
func (r *postgresDiscountRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	query := `
		UPDATE discount_codes
		SET status = 'inactive', updated_at = NOW()
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date < NOW()`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired codes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresDiscountRepository) ListUsage(ctx context.Context, code string) ([]model.DiscountUsageRow, error) {
	query := `
		SELECT o.order_number, u.email, o.discount_amount, o.total, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE LOWER(o.discount_code) = LOWER($1)
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to list discount usage: %w", err)
	}
	defer rows.Close()

	var usage []model.DiscountUsageRow
	for rows.Next() {
		var row model.DiscountUsageRow
		if err := rows.Scan(&row.OrderNumber, &row.CustomerEmail, &row.DiscountAmount, &row.OrderTotal, &row.UsedAt); err != nil {
			return nil, fmt.Errorf("failed to scan discount usage: %w", err)
		}
		usage = append(usage, row)
	}
	return usage, rows.Err()
}

func scanDiscount(row pgx.Row) (*model.DiscountCode, error) {
	var d model.DiscountCode
	err := row.Scan(
		&d.ID, &d.Code, &d.Description, &d.Type, &d.Value, &d.MinAmount,
		&d.MaxDiscount, &d.MaxUses, &d.UsedCount, &d.EndDate, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
