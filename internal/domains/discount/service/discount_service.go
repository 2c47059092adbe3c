package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/discount/repository"
	"storefront-backend/pkg/logger"
)

type DiscountService interface {
	// Storefront operations
	ValidateCode(ctx context.Context, req model.ValidateCodeRequest) (*model.DiscountQuote, error)
	UseCode(ctx context.Context, req model.UseCodeRequest) error

	// Checkout integration: quote inside the flow, commit inside the
	// order transaction so the increment rolls back with the order.
	Quote(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.DiscountQuote, decimal.Decimal, error)
	CommitUseTx(ctx context.Context, tx pgx.Tx, code string) error

	// Admin operations
	Create(ctx context.Context, req model.CreateDiscountRequest) (*model.DiscountCode, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateDiscountRequest) (*model.DiscountCode, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error)
	List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	ExportUsage(ctx context.Context, code string) (*excelize.File, error)

	// Worker operation
	DeactivateExpired(ctx context.Context) (int64, error)
}

type discountService struct {
	repo   repository.DiscountRepository
	engine *Engine
}

func NewDiscountService(repo repository.DiscountRepository) DiscountService {
	return &discountService{
		repo:   repo,
		engine: NewEngine(),
	}
}

func (s *discountService) ValidateCode(ctx context.Context, req model.ValidateCodeRequest) (*model.DiscountQuote, error) {
	quote, _, err := s.Quote(ctx, req.Code, req.CartTotal)
	return quote, err
}

func (s *discountService) Quote(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.DiscountQuote, decimal.Decimal, error) {
	// The cart-total check does not need the record, so a bad total
	// short-circuits before touching the database.
	if !cartTotal.IsPositive() {
		return nil, decimal.Zero, model.ErrInvalidCartTotal
	}

	rec, err := s.repo.FindActiveByCode(ctx, model.NormalizeCode(code))
	if err != nil {
		return nil, decimal.Zero, err
	}

	quote, err := s.engine.Validate(rec, cartTotal, time.Now())
	if err != nil {
		return nil, decimal.Zero, err
	}
	return quote, s.engine.Calculate(rec, cartTotal), nil
}

// UseCode commits one use. The conditional update is the only guard
// against concurrent commits; a failed update is re-read once purely
// to report the right error.
func (s *discountService) UseCode(ctx context.Context, req model.UseCodeRequest) error {
	code := model.NormalizeCode(req.Code)

	ok, err := s.repo.ConsumeUse(ctx, code)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	rec, err := s.repo.FindActiveByCode(ctx, code)
	if err != nil {
		return err
	}
	if rec == nil {
		return model.ErrNotFound
	}
	return model.ErrExhausted
}

func (s *discountService) CommitUseTx(ctx context.Context, tx pgx.Tx, code string) error {
	ok, err := s.repo.ConsumeUseTx(ctx, tx, model.NormalizeCode(code))
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrExhausted
	}
	return nil
}

func (s *discountService) Create(ctx context.Context, req model.CreateDiscountRequest) (*model.DiscountCode, error) {
	d := &model.DiscountCode{
		ID:          uuid.New(),
		Code:        model.NormalizeCode(req.Code),
		Description: req.Description,
		Type:        req.Type,
		Value:       req.Value,
		MinAmount:   req.MinAmount,
		MaxDiscount: req.MaxDiscount,
		MaxUses:     req.MaxUses,
		EndDate:     req.EndDate,
		Status:      model.StatusActive,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("Discount code created", map[string]interface{}{
		"id":   d.ID.String(),
		"code": d.Code,
		"type": string(d.Type),
	})
	return d, nil
}

func (s *discountService) Update(ctx context.Context, id uuid.UUID, req model.UpdateDiscountRequest) (*model.DiscountCode, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, model.ErrNotFound
	}

	if req.Description != nil {
		d.Description = req.Description
	}
	if req.Value != nil {
		d.Value = *req.Value
	}
	if req.MinAmount != nil {
		d.MinAmount = req.MinAmount
	}
	if req.MaxDiscount != nil {
		d.MaxDiscount = req.MaxDiscount
	}
	if req.MaxUses != nil {
		d.MaxUses = req.MaxUses
	}
	if req.EndDate != nil {
		d.EndDate = req.EndDate
	}
	if req.Status != nil {
		d.Status = *req.Status
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *discountService) GetByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, model.ErrNotFound
	}
	return d, nil
}

func (s *discountService) List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int64, error) {
	q.Normalize()
	return s.repo.List(ctx, q)
}

// Deactivate soft-disables a code. Codes are never hard-deleted: past
// orders reference them and usage reports need the history.
func (s *discountService) Deactivate(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return model.ErrNotFound
	}

	d.Status = model.StatusInactive
	return s.repo.Update(ctx, d)
}

// ExportUsage builds an XLSX workbook of every order that used the code.
func (s *discountService) ExportUsage(ctx context.Context, code string) (*excelize.File, error) {
	rows, err := s.repo.ListUsage(ctx, model.NormalizeCode(code))
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Order Number", "Customer Email", "Discount (THB)", "Order Total (THB)", "Used At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.OrderNumber,
			row.CustomerEmail,
			row.DiscountAmount.String(),
			row.OrderTotal.String(),
			row.UsedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	return f, nil
}

func (s *discountService) DeactivateExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeactivateExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("Deactivated expired discount codes", map[string]interface{}{
			"count": n,
		})
	}
	return n, nil
}
