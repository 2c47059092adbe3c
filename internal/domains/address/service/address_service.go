package service

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/address/model"
	"storefront-backend/internal/domains/address/repository"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// The division data changes roughly never, so a long cache TTL is safe.
const addressCacheTTL = 24 * time.Hour

type AddressService interface {
	Provinces(ctx context.Context) ([]model.Province, error)
	Districts(ctx context.Context, provinceID int) ([]model.District, error)
	Subdistricts(ctx context.Context, districtID int) ([]model.Subdistrict, error)
	ByZipCode(ctx context.Context, zipCode string) ([]model.ZipCodeEntry, error)
}

type addressService struct {
	repo  repository.AddressRepository
	cache cache.Cache
}

func NewAddressService(repo repository.AddressRepository, cache cache.Cache) AddressService {
	return &addressService{repo: repo, cache: cache}
}

func (s *addressService) Provinces(ctx context.Context) ([]model.Province, error) {
	var provinces []model.Province
	if ok := s.cacheGet(ctx, "address:provinces", &provinces); ok {
		return provinces, nil
	}

	provinces, err := s.repo.ListProvinces(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, "address:provinces", provinces)
	return provinces, nil
}

func (s *addressService) Districts(ctx context.Context, provinceID int) ([]model.District, error) {
	key := fmt.Sprintf("address:districts:%d", provinceID)

	var districts []model.District
	if ok := s.cacheGet(ctx, key, &districts); ok {
		return districts, nil
	}

	districts, err := s.repo.ListDistricts(ctx, provinceID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, districts)
	return districts, nil
}

func (s *addressService) Subdistricts(ctx context.Context, districtID int) ([]model.Subdistrict, error) {
	key := fmt.Sprintf("address:subdistricts:%d", districtID)

	var subdistricts []model.Subdistrict
	if ok := s.cacheGet(ctx, key, &subdistricts); ok {
		return subdistricts, nil
	}

	subdistricts, err := s.repo.ListSubdistricts(ctx, districtID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, subdistricts)
	return subdistricts, nil
}

// ByZipCode reverse-resolves a zip code so the checkout form can
// pre-fill the division dropdowns from the customer's zip input.
func (s *addressService) ByZipCode(ctx context.Context, zipCode string) ([]model.ZipCodeEntry, error) {
	key := fmt.Sprintf("address:zip:%s", zipCode)

	var entries []model.ZipCodeEntry
	if ok := s.cacheGet(ctx, key, &entries); ok {
		return entries, nil
	}

	entries, err := s.repo.FindByZipCode(ctx, zipCode)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, entries)
	return entries, nil
}

// cacheGet and cacheSet treat the cache as best-effort: a Redis outage
// degrades to database reads instead of failing the request.
func (s *addressService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Error("address cache get", err)
		return false
	}
	return found
}

func (s *addressService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, addressCacheTTL); err != nil {
		logger.Error("address cache set", err)
	}
}
