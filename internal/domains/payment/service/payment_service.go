package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordermodel "storefront-backend/internal/domains/order/model"
	ordersvc "storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/repository"
	usersvc "storefront-backend/internal/domains/user/service"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/logger"
)

const currencyTHB = "thb"

var satangPerBaht = decimal.NewFromInt(100)

type PaymentService interface {
	// CreatePayment charges the order total through the gateway.
	CreatePayment(ctx context.Context, userID uuid.UUID, req model.CreatePaymentRequest) (*model.Payment, error)

	// GetStatus returns the latest payment for an order the user owns.
	GetStatus(ctx context.Context, userID, orderID uuid.UUID) (*model.Payment, error)

	// HandleWebhook processes a provider event. The event body is
	// untrusted; the charge is re-fetched from the provider before
	// any state changes.
	HandleWebhook(ctx context.Context, event model.WebhookEvent) error
}

// OrderPaidEnqueuer is what the service needs from the task queue.
type OrderPaidEnqueuer interface {
	EnqueueOrderPaid(ctx context.Context, p queue.OrderPaidPayload)
}

type paymentService struct {
	repo    repository.PaymentRepository
	gateway gateway.Gateway
	orders  ordersvc.OrderService
	users   usersvc.UserService
	queue   OrderPaidEnqueuer
}

func NewPaymentService(
	repo repository.PaymentRepository,
	gw gateway.Gateway,
	orders ordersvc.OrderService,
	users usersvc.UserService,
	queueClient OrderPaidEnqueuer,
) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gw,
		orders:  orders,
		users:   users,
		queue:   queueClient,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, userID uuid.UUID, req model.CreatePaymentRequest) (*model.Payment, error) {
	order, err := s.orders.GetForUser(ctx, userID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != ordermodel.StatusPending {
		return nil, model.ErrOrderNotPayable
	}

	// The provider counts in satang.
	amountSatang := order.Total.Mul(satangPerBaht).IntPart()

	chargeReq := gateway.ChargeRequest{
		Amount:      amountSatang,
		Currency:    currencyTHB,
		Description: fmt.Sprintf("Order %s", order.OrderNumber),
		ReturnURI:   req.ReturnURI,
		Metadata:    map[string]string{"order_id": order.ID.String()},
	}

	switch req.Method {
	case model.MethodCard:
		chargeReq.CardToken = req.CardToken
	case model.MethodPromptPay:
		source, err := s.gateway.CreatePromptPaySource(ctx, amountSatang, currencyTHB)
		if err != nil {
			return nil, err
		}
		chargeReq.SourceID = source.ID
	}

	charge, err := s.gateway.CreateCharge(ctx, chargeReq)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:       uuid.New(),
		OrderID:  order.ID,
		ChargeID: charge.ID,
		Method:   req.Method,
		Amount:   order.Total,
		Currency: currencyTHB,
		Status:   model.StatusPending,
	}
	if charge.AuthorizeURI != "" {
		payment.AuthorizeURI = &charge.AuthorizeURI
	}
	if charge.QRImageURI != "" {
		payment.QRImageURI = &charge.QRImageURI
	}

	if charge.Status == gateway.ChargeStatusFailed {
		payment.Status = model.StatusFailed
		if charge.FailureMessage != "" {
			payment.FailureMessage = &charge.FailureMessage
		}
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment created", map[string]interface{}{
		"payment_id": payment.ID.String(),
		"order_id":   order.ID.String(),
		"charge_id":  charge.ID,
		"method":     req.Method,
		"status":     payment.Status,
	})

	// Card charges without 3-D Secure can settle synchronously.
	if charge.Paid {
		if err := s.settle(ctx, payment); err != nil {
			return nil, err
		}
	}
	if payment.Status == model.StatusFailed {
		return payment, model.ErrChargeFailed
	}
	return payment, nil
}

func (s *paymentService) GetStatus(ctx context.Context, userID, orderID uuid.UUID) (*model.Payment, error) {
	// Ownership check rides on the order lookup.
	if _, err := s.orders.GetForUser(ctx, userID, orderID); err != nil {
		return nil, err
	}

	payment, err := s.repo.FindLatestByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, model.ErrNotFound
	}
	return payment, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, event model.WebhookEvent) error {
	if event.Key != "charge.complete" && event.Key != "charge.create" {
		return nil
	}
	chargeID := event.Data.ID
	if chargeID == "" {
		return nil
	}

	charge, err := s.gateway.GetCharge(ctx, chargeID)
	if err != nil {
		return fmt.Errorf("failed to verify charge %s: %w", chargeID, err)
	}

	payment, err := s.repo.FindByChargeID(ctx, chargeID)
	if err != nil {
		return err
	}
	if payment == nil {
		logger.Warn("Webhook for unknown charge", map[string]interface{}{
			"charge_id": chargeID,
		})
		return nil
	}
	if payment.Status == model.StatusSuccessful {
		// Providers redeliver events; settling twice is a no-op.
		return nil
	}

	switch {
	case charge.Paid:
		return s.settle(ctx, payment)
	case charge.Status == gateway.ChargeStatusFailed || charge.Status == gateway.ChargeStatusExpired:
		var msg *string
		if charge.FailureMessage != "" {
			msg = &charge.FailureMessage
		}
		return s.repo.UpdateStatus(ctx, payment.ID, model.StatusFailed, msg)
	default:
		return nil
	}
}

// settle marks the payment and order paid and queues the customer
// notifications.
func (s *paymentService) settle(ctx context.Context, payment *model.Payment) error {
	if err := s.repo.UpdateStatus(ctx, payment.ID, model.StatusSuccessful, nil); err != nil {
		return err
	}
	payment.Status = model.StatusSuccessful

	order, err := s.orders.MarkPaid(ctx, payment.OrderID)
	if err != nil {
		return err
	}

	email := ""
	if u, err := s.users.GetProfile(ctx, order.UserID); err == nil {
		email = u.Email
	} else {
		logger.Error("lookup customer email for notification", err)
	}

	s.queue.EnqueueOrderPaid(ctx, queue.OrderPaidPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Email:       email,
		Total:       order.Total.String(),
	})

	logger.Info("Payment settled", map[string]interface{}{
		"payment_id": payment.ID.String(),
		"order_id":   order.ID.String(),
	})
	return nil
}
