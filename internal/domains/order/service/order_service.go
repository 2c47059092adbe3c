package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	discountmodel "storefront-backend/internal/domains/discount/model"
	discountsvc "storefront-backend/internal/domains/discount/service"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	productmodel "storefront-backend/internal/domains/product/model"
	productrepo "storefront-backend/internal/domains/product/repository"
	shippingsvc "storefront-backend/internal/domains/shipping/service"
	"storefront-backend/pkg/database"
	"storefront-backend/pkg/logger"
)

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req model.CheckoutRequest) (*model.Order, error)
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, q model.ListOrdersQuery) ([]model.Order, int64, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) error

	// MarkPaid is called by the payment webhook flow.
	MarkPaid(ctx context.Context, orderID uuid.UUID) (*model.Order, error)

	// Admin operations
	Get(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	List(ctx context.Context, q model.ListOrdersQuery) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req model.UpdateStatusRequest) (*model.Order, error)
}

type orderService struct {
	db       *pgxpool.Pool
	repo     repository.OrderRepository
	products productrepo.ProductRepository
	discount discountsvc.DiscountService
	shipping shippingsvc.ShippingService
}

func NewOrderService(
	db *pgxpool.Pool,
	repo repository.OrderRepository,
	products productrepo.ProductRepository,
	discount discountsvc.DiscountService,
	shipping shippingsvc.ShippingService,
) OrderService {
	return &orderService{
		db:       db,
		repo:     repo,
		products: products,
		discount: discount,
		shipping: shipping,
	}
}

// Checkout prices the cart and places the order in one transaction:
// stock reservation, discount commit, and the order insert all succeed
// or roll back together. Pricing reads (shipping settings, discount
// quote) happen first; the discount's usage limit is re-checked
// atomically by the commit inside the transaction.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req model.CheckoutRequest) (*model.Order, error) {
	items, subtotal, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	shippingFee, err := s.shipping.CostForCart(ctx, subtotal)
	if err != nil {
		return nil, err
	}

	discountAmount := decimal.Zero
	var discountCode *string
	if req.DiscountCode != nil && *req.DiscountCode != "" {
		_, amount, err := s.discount.Quote(ctx, *req.DiscountCode, subtotal)
		if err != nil {
			return nil, err
		}
		discountAmount = amount
		normalized := discountmodel.NormalizeCode(*req.DiscountCode)
		discountCode = &normalized
	}

	order := &model.Order{
		ID:             uuid.New(),
		OrderNumber:    model.NewOrderNumber(time.Now()),
		UserID:         userID,
		Status:         model.StatusPending,
		Subtotal:       subtotal,
		DiscountCode:   discountCode,
		DiscountAmount: discountAmount,
		ShippingFee:    shippingFee,
		Total:          model.CalculateTotal(subtotal, discountAmount, shippingFee),
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		AddressLine:    req.AddressLine,
		Subdistrict:    req.Subdistrict,
		District:       req.District,
		Province:       req.Province,
		ZipCode:        req.ZipCode,
		Items:          items,
	}

	err = database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		for _, item := range order.Items {
			ok, err := s.products.DecrementStockTx(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return model.ErrProductUnavailable
			}
		}

		if order.DiscountCode != nil {
			if err := s.discount.CommitUseTx(ctx, tx, *order.DiscountCode); err != nil {
				return err
			}
		}

		return s.repo.CreateTx(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
		"total":        order.Total.String(),
	})
	return order, nil
}

// priceItems merges duplicate cart lines, loads the products, and
// snapshots names and prices.
func (s *orderService) priceItems(ctx context.Context, reqItems []model.CheckoutItem) ([]model.OrderItem, decimal.Decimal, error) {
	if len(reqItems) == 0 {
		return nil, decimal.Zero, model.ErrEmptyCart
	}

	quantities := make(map[uuid.UUID]int, len(reqItems))
	var ids []uuid.UUID
	for _, it := range reqItems {
		if it.Quantity < 1 {
			return nil, decimal.Zero, model.ErrEmptyCart
		}
		if _, seen := quantities[it.ProductID]; !seen {
			ids = append(ids, it.ProductID)
		}
		quantities[it.ProductID] += it.Quantity
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byID := make(map[uuid.UUID]productmodel.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var items []model.OrderItem
	subtotal := decimal.Zero
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || p.Status != productmodel.StatusActive {
			return nil, decimal.Zero, model.ErrProductUnavailable
		}
		qty := quantities[id]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		items = append(items, model.OrderItem{
			ID:          uuid.New(),
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    qty,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	return items, subtotal, nil
}

func (s *orderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, model.ErrNotOwner
	}
	return o, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID, q model.ListOrdersQuery) ([]model.Order, int64, error) {
	q.Normalize()
	return s.repo.ListByUser(ctx, userID, q)
}

func (s *orderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) error {
	o, err := s.GetForUser(ctx, userID, orderID)
	if err != nil {
		return err
	}

	// Customers may only cancel before payment; a paid order is
	// cancelled by an admin as part of a refund.
	if o.Status != model.StatusPending {
		return model.ErrInvalidTransition
	}
	return s.transition(ctx, o, model.StatusCancelled)
}

func (s *orderService) MarkPaid(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == model.StatusPaid {
		// Webhooks retry; marking paid twice is a no-op.
		return o, nil
	}
	if err := s.transition(ctx, o, model.StatusPaid); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) Get(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, model.ErrNotFound
	}
	return o, nil
}

func (s *orderService) List(ctx context.Context, q model.ListOrdersQuery) ([]model.Order, int64, error) {
	q.Normalize()
	return s.repo.List(ctx, q)
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req model.UpdateStatusRequest) (*model.Order, error) {
	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, o, req.Status); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) transition(ctx context.Context, o *model.Order, to string) error {
	if !model.CanTransition(o.Status, to) {
		return model.ErrInvalidTransition
	}

	ok, err := s.repo.UpdateStatus(ctx, o.ID, o.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race against another transition.
		return model.ErrInvalidTransition
	}

	logger.Info("Order status changed", map[string]interface{}{
		"order_id": o.ID.String(),
		"from":     o.Status,
		"to":       to,
	})
	o.Status = to
	return nil
}
