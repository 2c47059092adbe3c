package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/gateway"
	"storefront-backend/internal/domains/payment/model"
	usermodel "storefront-backend/internal/domains/user/model"
	"storefront-backend/internal/infrastructure/queue"
)

// fakePaymentRepo stores payments in memory.
type fakePaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) FindByChargeID(ctx context.Context, chargeID string) (*model.Payment, error) {
	for _, p := range f.payments {
		if p.ChargeID == chargeID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	for _, p := range f.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, failureMessage *string) error {
	p, ok := f.payments[id]
	if !ok {
		return model.ErrNotFound
	}
	p.Status = status
	p.FailureMessage = failureMessage
	return nil
}

// fakeGateway returns canned charges and records calls.
type fakeGateway struct {
	charge       *gateway.Charge
	fetched      *gateway.Charge
	getChargeIDs []string
	chargeReqs   []gateway.ChargeRequest
}

func (f *fakeGateway) CreateCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	f.chargeReqs = append(f.chargeReqs, req)
	return f.charge, nil
}

func (f *fakeGateway) GetCharge(ctx context.Context, chargeID string) (*gateway.Charge, error) {
	f.getChargeIDs = append(f.getChargeIDs, chargeID)
	return f.fetched, nil
}

func (f *fakeGateway) CreatePromptPaySource(ctx context.Context, amount int64, currency string) (*gateway.Source, error) {
	return &gateway.Source{ID: "src_test", Type: "promptpay", Amount: amount, QRImageURI: "https://example.com/qr.png"}, nil
}

// fakeOrderService serves a single order.
type fakeOrderService struct {
	order      *ordermodel.Order
	paidCalled int
}

func (f *fakeOrderService) Checkout(ctx context.Context, userID uuid.UUID, req ordermodel.CheckoutRequest) (*ordermodel.Order, error) {
	panic("not used")
}

func (f *fakeOrderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*ordermodel.Order, error) {
	if f.order == nil || f.order.ID != orderID {
		return nil, ordermodel.ErrNotFound
	}
	if f.order.UserID != userID {
		return nil, ordermodel.ErrNotOwner
	}
	return f.order, nil
}

func (f *fakeOrderService) ListForUser(ctx context.Context, userID uuid.UUID, q ordermodel.ListOrdersQuery) ([]ordermodel.Order, int64, error) {
	panic("not used")
}

func (f *fakeOrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) error {
	panic("not used")
}

func (f *fakeOrderService) MarkPaid(ctx context.Context, orderID uuid.UUID) (*ordermodel.Order, error) {
	f.paidCalled++
	f.order.Status = ordermodel.StatusPaid
	return f.order, nil
}

func (f *fakeOrderService) Get(ctx context.Context, orderID uuid.UUID) (*ordermodel.Order, error) {
	if f.order == nil || f.order.ID != orderID {
		return nil, ordermodel.ErrNotFound
	}
	return f.order, nil
}

func (f *fakeOrderService) List(ctx context.Context, q ordermodel.ListOrdersQuery) ([]ordermodel.Order, int64, error) {
	panic("not used")
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req ordermodel.UpdateStatusRequest) (*ordermodel.Order, error) {
	panic("not used")
}

// fakeUserService answers profile lookups only.
type fakeUserService struct {
	user *usermodel.User
}

func (f *fakeUserService) Register(ctx context.Context, req usermodel.RegisterRequest) (*usermodel.AuthResponse, error) {
	panic("not used")
}

func (f *fakeUserService) Login(ctx context.Context, req usermodel.LoginRequest) (*usermodel.AuthResponse, error) {
	panic("not used")
}

func (f *fakeUserService) Refresh(ctx context.Context, req usermodel.RefreshRequest) (*usermodel.AuthResponse, error) {
	panic("not used")
}

func (f *fakeUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*usermodel.User, error) {
	return f.user, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req usermodel.UpdateProfileRequest) (*usermodel.User, error) {
	panic("not used")
}

func (f *fakeUserService) ChangePassword(ctx context.Context, userID uuid.UUID, req usermodel.ChangePasswordRequest) error {
	panic("not used")
}

type fakeEnqueuer struct {
	payloads []queue.OrderPaidPayload
}

func (f *fakeEnqueuer) EnqueueOrderPaid(ctx context.Context, p queue.OrderPaidPayload) {
	f.payloads = append(f.payloads, p)
}

func testOrder(userID uuid.UUID) *ordermodel.Order {
	return &ordermodel.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260901-ABC123",
		UserID:      userID,
		Status:      ordermodel.StatusPending,
		Total:       decimal.NewFromInt(1250),
	}
}

func TestCreatePayment_CardChargesSatang(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	gw := &fakeGateway{charge: &gateway.Charge{ID: "chrg_1", Status: gateway.ChargeStatusPending, AuthorizeURI: "https://omise.co/auth"}}
	orders := &fakeOrderService{order: order}
	enq := &fakeEnqueuer{}
	svc := NewPaymentService(newFakePaymentRepo(), gw, orders, &fakeUserService{}, enq)

	payment, err := svc.CreatePayment(context.Background(), userID, model.CreatePaymentRequest{
		OrderID:   order.ID,
		Method:    model.MethodCard,
		CardToken: "tokn_test",
	})
	require.NoError(t, err)

	require.Len(t, gw.chargeReqs, 1)
	assert.Equal(t, int64(125000), gw.chargeReqs[0].Amount, "1250 THB is 125000 satang")
	assert.Equal(t, "tokn_test", gw.chargeReqs[0].CardToken)
	assert.Equal(t, model.StatusPending, payment.Status)
	require.NotNil(t, payment.AuthorizeURI)
	assert.Empty(t, enq.payloads, "nothing settles before the webhook")
}

func TestCreatePayment_PromptPayCreatesSource(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	gw := &fakeGateway{charge: &gateway.Charge{ID: "chrg_2", Status: gateway.ChargeStatusPending, QRImageURI: "https://example.com/qr.png"}}
	svc := NewPaymentService(newFakePaymentRepo(), gw, &fakeOrderService{order: order}, &fakeUserService{}, &fakeEnqueuer{})

	payment, err := svc.CreatePayment(context.Background(), userID, model.CreatePaymentRequest{
		OrderID: order.ID,
		Method:  model.MethodPromptPay,
	})
	require.NoError(t, err)

	require.Len(t, gw.chargeReqs, 1)
	assert.Equal(t, "src_test", gw.chargeReqs[0].SourceID)
	require.NotNil(t, payment.QRImageURI)
}

func TestCreatePayment_RejectsNonPendingOrder(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	order.Status = ordermodel.StatusPaid
	svc := NewPaymentService(newFakePaymentRepo(), &fakeGateway{}, &fakeOrderService{order: order}, &fakeUserService{}, &fakeEnqueuer{})

	_, err := svc.CreatePayment(context.Background(), userID, model.CreatePaymentRequest{
		OrderID:   order.ID,
		Method:    model.MethodCard,
		CardToken: "tokn_test",
	})
	assert.Equal(t, model.ErrOrderNotPayable, err)
}

func TestHandleWebhook_SettlesFromRefetchedCharge(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	repo := newFakePaymentRepo()
	payment := &model.Payment{
		ID:       uuid.New(),
		OrderID:  order.ID,
		ChargeID: "chrg_3",
		Status:   model.StatusPending,
		Amount:   order.Total,
	}
	require.NoError(t, repo.Create(context.Background(), payment))

	gw := &fakeGateway{fetched: &gateway.Charge{ID: "chrg_3", Status: gateway.ChargeStatusSuccessful, Paid: true}}
	orders := &fakeOrderService{order: order}
	enq := &fakeEnqueuer{}
	users := &fakeUserService{user: &usermodel.User{ID: userID, Email: "buyer@example.com"}}
	svc := NewPaymentService(repo, gw, orders, users, enq)

	event := model.WebhookEvent{Key: "charge.complete"}
	event.Data.ID = "chrg_3"
	require.NoError(t, svc.HandleWebhook(context.Background(), event))

	assert.Equal(t, []string{"chrg_3"}, gw.getChargeIDs, "charge must be re-fetched, not trusted from the body")
	assert.Equal(t, model.StatusSuccessful, payment.Status)
	assert.Equal(t, 1, orders.paidCalled)
	require.Len(t, enq.payloads, 1)
	assert.Equal(t, "buyer@example.com", enq.payloads[0].Email)
	assert.Equal(t, "ORD-20260901-ABC123", enq.payloads[0].OrderNumber)
}

func TestHandleWebhook_RedeliveryIsIdempotent(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	repo := newFakePaymentRepo()
	payment := &model.Payment{ID: uuid.New(), OrderID: order.ID, ChargeID: "chrg_4", Status: model.StatusSuccessful}
	require.NoError(t, repo.Create(context.Background(), payment))

	orders := &fakeOrderService{order: order}
	enq := &fakeEnqueuer{}
	gw := &fakeGateway{fetched: &gateway.Charge{ID: "chrg_4", Paid: true}}
	svc := NewPaymentService(repo, gw, orders, &fakeUserService{}, enq)

	event := model.WebhookEvent{Key: "charge.complete"}
	event.Data.ID = "chrg_4"
	require.NoError(t, svc.HandleWebhook(context.Background(), event))

	assert.Zero(t, orders.paidCalled)
	assert.Empty(t, enq.payloads)
}

func TestHandleWebhook_FailedChargeMarksPayment(t *testing.T) {
	userID := uuid.New()
	order := testOrder(userID)
	repo := newFakePaymentRepo()
	payment := &model.Payment{ID: uuid.New(), OrderID: order.ID, ChargeID: "chrg_5", Status: model.StatusPending}
	require.NoError(t, repo.Create(context.Background(), payment))

	gw := &fakeGateway{fetched: &gateway.Charge{
		ID:             "chrg_5",
		Status:         gateway.ChargeStatusFailed,
		FailureMessage: "insufficient funds",
	}}
	orders := &fakeOrderService{order: order}
	svc := NewPaymentService(repo, gw, orders, &fakeUserService{}, &fakeEnqueuer{})

	event := model.WebhookEvent{Key: "charge.complete"}
	event.Data.ID = "chrg_5"
	require.NoError(t, svc.HandleWebhook(context.Background(), event))

	assert.Equal(t, model.StatusFailed, payment.Status)
	require.NotNil(t, payment.FailureMessage)
	assert.Equal(t, "insufficient funds", *payment.FailureMessage)
	assert.Zero(t, orders.paidCalled)
}

func TestHandleWebhook_IgnoresUnknownEvents(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewPaymentService(newFakePaymentRepo(), gw, &fakeOrderService{}, &fakeUserService{}, &fakeEnqueuer{})

	event := model.WebhookEvent{Key: "customer.update"}
	event.Data.ID = "cust_1"
	require.NoError(t, svc.HandleWebhook(context.Background(), event))
	assert.Empty(t, gw.getChargeIDs)
}
