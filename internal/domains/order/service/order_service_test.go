package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/order/model"
	productmodel "storefront-backend/internal/domains/product/model"
)

type fakeProductRepo struct {
	products map[uuid.UUID]productmodel.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *productmodel.Product) error { panic("not used") }
func (f *fakeProductRepo) Update(ctx context.Context, p *productmodel.Product) error { panic("not used") }

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*productmodel.Product, error) {
	panic("not used")
}

func (f *fakeProductRepo) FindBySlug(ctx context.Context, slug string) (*productmodel.Product, error) {
	panic("not used")
}

func (f *fakeProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { panic("not used") }

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]productmodel.Product, error) {
	var out []productmodel.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(ctx context.Context, q productmodel.ListProductsQuery) ([]productmodel.Product, int64, error) {
	panic("not used")
}

func (f *fakeProductRepo) DecrementStockTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, qty int) (bool, error) {
	panic("not used")
}

func activeProduct(price int64) productmodel.Product {
	return productmodel.Product{
		ID:     uuid.New(),
		Name:   "Test product",
		Price:  decimal.NewFromInt(price),
		Stock:  10,
		Status: productmodel.StatusActive,
	}
}

func TestPriceItems_SnapshotsAndSums(t *testing.T) {
	p1 := activeProduct(350)
	p2 := activeProduct(120)
	svc := &orderService{products: &fakeProductRepo{products: map[uuid.UUID]productmodel.Product{
		p1.ID: p1,
		p2.ID: p2,
	}}}

	items, subtotal, err := svc.priceItems(context.Background(), []model.CheckoutItem{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "820", subtotal.String())
	assert.Equal(t, p1.Name, items[0].ProductName)
	assert.Equal(t, "700", items[0].LineTotal.String())
}

func TestPriceItems_MergesDuplicateLines(t *testing.T) {
	p := activeProduct(100)
	svc := &orderService{products: &fakeProductRepo{products: map[uuid.UUID]productmodel.Product{p.ID: p}}}

	items, subtotal, err := svc.priceItems(context.Background(), []model.CheckoutItem{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: p.ID, Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "300", subtotal.String())
}

func TestPriceItems_RejectsUnknownProduct(t *testing.T) {
	svc := &orderService{products: &fakeProductRepo{products: map[uuid.UUID]productmodel.Product{}}}

	_, _, err := svc.priceItems(context.Background(), []model.CheckoutItem{
		{ProductID: uuid.New(), Quantity: 1},
	})
	assert.Equal(t, model.ErrProductUnavailable, err)
}

func TestPriceItems_RejectsInactiveProduct(t *testing.T) {
	p := activeProduct(100)
	p.Status = productmodel.StatusInactive
	svc := &orderService{products: &fakeProductRepo{products: map[uuid.UUID]productmodel.Product{p.ID: p}}}

	_, _, err := svc.priceItems(context.Background(), []model.CheckoutItem{
		{ProductID: p.ID, Quantity: 1},
	})
	assert.Equal(t, model.ErrProductUnavailable, err)
}

func TestPriceItems_RejectsEmptyCart(t *testing.T) {
	svc := &orderService{products: &fakeProductRepo{}}

	_, _, err := svc.priceItems(context.Background(), nil)
	assert.Equal(t, model.ErrEmptyCart, err)
}
