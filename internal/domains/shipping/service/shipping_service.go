package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/shipping/model"
	"storefront-backend/internal/domains/shipping/repository"
	"storefront-backend/pkg/logger"
)

type ShippingService interface {
	// GetSettings returns the active settings, materializing the
	// store defaults on first read.
	GetSettings(ctx context.Context) (*model.ShippingSettings, error)

	// UpdateSettings saves a new settings revision.
	UpdateSettings(ctx context.Context, req model.UpdateSettingsRequest) (*model.ShippingSettings, error)

	History(ctx context.Context, limit int) ([]model.ShippingSettings, error)

	// QuoteForCart prices shipping for a cart subtotal.
	QuoteForCart(ctx context.Context, subtotal decimal.Decimal) (*model.ShippingQuote, error)

	// CostForCart is the checkout-facing shortcut.
	CostForCart(ctx context.Context, subtotal decimal.Decimal) (decimal.Decimal, error)
}

type shippingService struct {
	repo repository.ShippingRepository
}

func NewShippingService(repo repository.ShippingRepository) ShippingService {
	return &shippingService{repo: repo}
}

func (s *shippingService) GetSettings(ctx context.Context) (*model.ShippingSettings, error) {
	settings, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	// First read on a fresh store: persist the defaults so every
	// later quote and order references a real revision.
	settings = model.NewDefaultSettings()
	if err := s.repo.Create(ctx, settings); err != nil {
		return nil, err
	}
	logger.Info("Created default shipping settings", map[string]interface{}{
		"free_shipping_min_amount": settings.FreeThreshold.String(),
		"standard_shipping_cost":   settings.ShippingFee.String(),
	})
	return settings, nil
}

func (s *shippingService) UpdateSettings(ctx context.Context, req model.UpdateSettingsRequest) (*model.ShippingSettings, error) {
	settings := &model.ShippingSettings{
		ID:            uuid.New(),
		FreeThreshold: req.FreeThreshold,
		ShippingFee:   req.ShippingFee,
	}
	if err := s.repo.Replace(ctx, settings); err != nil {
		return nil, err
	}

	logger.Info("Shipping settings updated", map[string]interface{}{
		"free_shipping_min_amount": settings.FreeThreshold.String(),
		"standard_shipping_cost":   settings.ShippingFee.String(),
	})
	return settings, nil
}

func (s *shippingService) History(ctx context.Context, limit int) ([]model.ShippingSettings, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.History(ctx, limit)
}

func (s *shippingService) QuoteForCart(ctx context.Context, subtotal decimal.Decimal) (*model.ShippingQuote, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return NewCalculator(settings).Quote(subtotal), nil
}

func (s *shippingService) CostForCart(ctx context.Context, subtotal decimal.Decimal) (decimal.Decimal, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return NewCalculator(settings).Cost(subtotal), nil
}
