package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/product/model"
)

type fakeProductRepo struct {
	byID map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[uuid.UUID]*model.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *model.Product) error {
	for _, existing := range f.byID {
		if existing.Slug == p.Slug {
			return model.ErrSlugTaken
		}
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *model.Product) error {
	if _, ok := f.byID[p.ID]; !ok {
		return model.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return f.byID[id], nil
}

func (f *fakeProductRepo) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	for _, p := range f.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) List(ctx context.Context, q model.ListProductsQuery) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := f.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	p.Status = model.StatusInactive
	return nil
}

func (f *fakeProductRepo) DecrementStockTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, qty int) (bool, error) {
	panic("not used")
}

// noopCache satisfies cache.Cache for tests that don't assert caching.
type noopCache struct {
	invalidations int
}

func (n *noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (n *noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (n *noopCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (n *noopCache) DeletePattern(ctx context.Context, pattern string) error {
	n.invalidations++
	return nil
}

func (n *noopCache) Ping(ctx context.Context) error { return nil }

func createReq(name string) model.CreateProductRequest {
	return model.CreateProductRequest{
		Name:  name,
		Price: decimal.NewFromInt(250),
		Stock: 5,
	}
}

func TestCreate_GeneratesSlugFromName(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &noopCache{})

	p, err := svc.Create(context.Background(), createReq("Drip Kettle 600ml"))
	require.NoError(t, err)
	assert.Equal(t, "drip-kettle-600ml", p.Slug)
}

func TestCreate_ExplicitSlugWins(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &noopCache{})

	req := createReq("Drip Kettle 600ml")
	slug := "kettle"
	req.Slug = &slug

	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "kettle", p.Slug)
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, &noopCache{})

	_, err := svc.Create(context.Background(), createReq("Moka Pot"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createReq("Moka  Pot"))
	assert.Equal(t, model.ErrSlugTaken, err, "both names slug to moka-pot")
}

func TestGetBySlug(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, &noopCache{})

	created, err := svc.Create(context.Background(), createReq("Moka Pot"))
	require.NoError(t, err)

	p, err := svc.GetBySlug(context.Background(), "moka-pot")
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)

	_, err = svc.GetBySlug(context.Background(), "no-such-slug")
	assert.Equal(t, model.ErrNotFound, err)
}

func TestDelete_DeactivatesAndInvalidatesCache(t *testing.T) {
	repo := newFakeProductRepo()
	cache := &noopCache{}
	svc := NewProductService(repo, cache)

	p, err := svc.Create(context.Background(), createReq("Moka Pot"))
	require.NoError(t, err)
	cache.invalidations = 0

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Equal(t, model.StatusInactive, repo.byID[p.ID].Status, "delete is soft")
	assert.Equal(t, 1, cache.invalidations)

	err = svc.Delete(context.Background(), uuid.New())
	assert.Equal(t, model.ErrNotFound, err)
}
