package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront-backend/internal/domains/product/model"
	"storefront-backend/internal/domains/product/repository"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

const (
	listCacheTTL     = 5 * time.Minute
	listCachePattern = "products:list:*"
)

type ProductService interface {
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, q model.ListProductsQuery) ([]model.Product, int64, error)

	// Delete deactivates a product. Rows stay so order items keep
	// their reference.
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	slug := ""
	if req.Slug != nil {
		slug = model.Slugify(*req.Slug)
	}
	if slug == "" {
		slug = model.Slugify(req.Name)
	}
	if slug == "" {
		// Names made entirely of symbols leave nothing to slug.
		slug = uuid.NewString()[:8]
	}

	p := &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Status:      model.StatusActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return p, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Slug != nil {
		p.Slug = model.Slugify(*req.Slug)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return p, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrNotFound
	}
	return p, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrNotFound
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

type cachedList struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
}

// List serves the storefront catalog. Pages are cached briefly; stock
// shown here is advisory, checkout re-checks it transactionally.
func (s *productService) List(ctx context.Context, q model.ListProductsQuery) ([]model.Product, int64, error) {
	q.Normalize()
	key := fmt.Sprintf("products:list:%s:%s:%d:%d", q.Status, q.Search, q.Page, q.Limit)

	var cached cachedList
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Error("product list cache get", err)
	}
	if found {
		return cached.Products, cached.Total, nil
	}

	products, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	if err := s.cache.Set(ctx, key, cachedList{Products: products, Total: total}, listCacheTTL); err != nil {
		logger.Error("product list cache set", err)
	}
	return products, total, nil
}

func (s *productService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listCachePattern); err != nil {
		logger.Error("product list cache invalidate", err)
	}
}
