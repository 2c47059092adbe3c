package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/discount/model"
)

// fakeDiscountRepo is an in-memory DiscountRepository for service tests.
type fakeDiscountRepo struct {
	codes map[string]*model.DiscountCode
	usage []model.DiscountUsageRow
}

func newFakeDiscountRepo(codes ...*model.DiscountCode) *fakeDiscountRepo {
	m := make(map[string]*model.DiscountCode)
	for _, c := range codes {
		m[c.Code] = c
	}
	return &fakeDiscountRepo{codes: m}
}

func (f *fakeDiscountRepo) Create(ctx context.Context, d *model.DiscountCode) error {
	if _, ok := f.codes[d.Code]; ok {
		return model.ErrDuplicateCode
	}
	f.codes[d.Code] = d
	return nil
}

func (f *fakeDiscountRepo) Update(ctx context.Context, d *model.DiscountCode) error {
	f.codes[d.Code] = d
	return nil
}

func (f *fakeDiscountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error) {
	for _, c := range f.codes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeDiscountRepo) FindActiveByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	c, ok := f.codes[model.NormalizeCode(code)]
	if !ok || c.Status != model.StatusActive {
		return nil, nil
	}
	return c, nil
}

func (f *fakeDiscountRepo) List(ctx context.Context, q model.ListDiscountsQuery) ([]model.DiscountCode, int64, error) {
	var out []model.DiscountCode
	for _, c := range f.codes {
		if q.Status == "" || c.Status == q.Status {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDiscountRepo) ConsumeUse(ctx context.Context, code string) (bool, error) {
	c, ok := f.codes[model.NormalizeCode(code)]
	if !ok || c.Status != model.StatusActive || c.IsExhausted() {
		return false, nil
	}
	c.UsedCount++
	return true, nil
}

func (f *fakeDiscountRepo) ConsumeUseTx(ctx context.Context, tx pgx.Tx, code string) (bool, error) {
	return f.ConsumeUse(ctx, code)
}

func (f *fakeDiscountRepo) DeactivateExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeDiscountRepo) ListUsage(ctx context.Context, code string) ([]model.DiscountUsageRow, error) {
	return f.usage, nil
}

func TestValidateCode_CaseInsensitive(t *testing.T) {
	repo := newFakeDiscountRepo(&model.DiscountCode{
		Code:   "WELCOME10",
		Type:   model.DiscountTypePercentage,
		Value:  decimal.NewFromInt(10),
		Status: model.StatusActive,
	})
	svc := NewDiscountService(repo)

	quote, err := svc.ValidateCode(context.Background(), model.ValidateCodeRequest{
		Code:      "  welcome10 ",
		CartTotal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", quote.Code)
	assert.Equal(t, "100", quote.DiscountAmount)
}

func TestValidateCode_DoesNotConsumeUse(t *testing.T) {
	rec := &model.DiscountCode{
		Code:   "ONCE",
		Type:   model.DiscountTypeFixed,
		Value:  decimal.NewFromInt(50),
		Status: model.StatusActive,
	}
	repo := newFakeDiscountRepo(rec)
	svc := NewDiscountService(repo)

	for i := 0; i < 3; i++ {
		_, err := svc.ValidateCode(context.Background(), model.ValidateCodeRequest{
			Code:      "ONCE",
			CartTotal: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 0, rec.UsedCount)
}

func TestValidateCode_InvalidTotalSkipsLookup(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo())

	_, err := svc.ValidateCode(context.Background(), model.ValidateCodeRequest{
		Code:      "ANY",
		CartTotal: decimal.Zero,
	})
	assert.Equal(t, model.ErrInvalidCartTotal, err)
}

func TestUseCode_IncrementsUsage(t *testing.T) {
	rec := &model.DiscountCode{
		Code:    "LIMITED",
		Type:    model.DiscountTypeFixed,
		Value:   decimal.NewFromInt(20),
		Status:  model.StatusActive,
		MaxUses: ptr(2),
	}
	repo := newFakeDiscountRepo(rec)
	svc := NewDiscountService(repo)

	require.NoError(t, svc.UseCode(context.Background(), model.UseCodeRequest{Code: "limited"}))
	require.NoError(t, svc.UseCode(context.Background(), model.UseCodeRequest{Code: "LIMITED"}))
	assert.Equal(t, 2, rec.UsedCount)

	err := svc.UseCode(context.Background(), model.UseCodeRequest{Code: "LIMITED"})
	assert.Equal(t, model.ErrExhausted, err)
	assert.Equal(t, 2, rec.UsedCount)
}

func TestUseCode_UnknownCode(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo())

	err := svc.UseCode(context.Background(), model.UseCodeRequest{Code: "NOPE"})
	assert.Equal(t, model.ErrNotFound, err)
}

func TestCreate_NormalizesCode(t *testing.T) {
	repo := newFakeDiscountRepo()
	svc := NewDiscountService(repo)

	d, err := svc.Create(context.Background(), model.CreateDiscountRequest{
		Code:  " summer20 ",
		Type:  model.DiscountTypePercentage,
		Value: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", d.Code)
	assert.Equal(t, model.StatusActive, d.Status)
}

func TestDeactivate_SoftDisables(t *testing.T) {
	rec := &model.DiscountCode{
		ID:     uuid.New(),
		Code:   "GONE",
		Type:   model.DiscountTypeFixed,
		Value:  decimal.NewFromInt(10),
		Status: model.StatusActive,
	}
	repo := newFakeDiscountRepo(rec)
	svc := NewDiscountService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), rec.ID))
	assert.Equal(t, model.StatusInactive, rec.Status)

	_, err := svc.ValidateCode(context.Background(), model.ValidateCodeRequest{
		Code:      "GONE",
		CartTotal: decimal.NewFromInt(100),
	})
	assert.Equal(t, model.ErrNotFound, err)
}

func TestExportUsage_BuildsWorkbook(t *testing.T) {
	repo := newFakeDiscountRepo()
	repo.usage = []model.DiscountUsageRow{
		{OrderNumber: "ORD-20260901-0001", CustomerEmail: "a@example.com", DiscountAmount: decimal.NewFromInt(50), OrderTotal: decimal.NewFromInt(450)},
	}
	svc := NewDiscountService(repo)

	f, err := svc.ExportUsage(context.Background(), "SAVE10")
	require.NoError(t, err)

	sheet := f.GetSheetName(0)
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Order Number", header)

	orderNum, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260901-0001", orderNum)
}
