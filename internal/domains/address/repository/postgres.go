package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/address/model"
)

// AddressRepository reads the static Thai administrative division data.
type AddressRepository interface {
	ListProvinces(ctx context.Context) ([]model.Province, error)
	ListDistricts(ctx context.Context, provinceID int) ([]model.District, error)
	ListSubdistricts(ctx context.Context, districtID int) ([]model.Subdistrict, error)
	FindByZipCode(ctx context.Context, zipCode string) ([]model.ZipCodeEntry, error)
}

type postgresAddressRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAddressRepository(db *pgxpool.Pool) AddressRepository {
	return &postgresAddressRepository{db: db}
}

func (r *postgresAddressRepository) ListProvinces(ctx context.Context) ([]model.Province, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name_th, name_en FROM provinces ORDER BY name_th`)
	if err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}
	defer rows.Close()
	return scanAll(rows, func(row pgx.Rows) (model.Province, error) {
		var p model.Province
		err := row.Scan(&p.ID, &p.NameTH, &p.NameEN)
		return p, err
	})
}

func (r *postgresAddressRepository) ListDistricts(ctx context.Context, provinceID int) ([]model.District, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, province_id, name_th, name_en FROM districts WHERE province_id = $1 ORDER BY name_th`,
		provinceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	defer rows.Close()
	return scanAll(rows, func(row pgx.Rows) (model.District, error) {
		var d model.District
		err := row.Scan(&d.ID, &d.ProvinceID, &d.NameTH, &d.NameEN)
		return d, err
	})
}

func (r *postgresAddressRepository) ListSubdistricts(ctx context.Context, districtID int) ([]model.Subdistrict, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, district_id, name_th, name_en, zip_code FROM subdistricts WHERE district_id = $1 ORDER BY name_th`,
		districtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subdistricts: %w", err)
	}
	defer rows.Close()
	return scanAll(rows, func(row pgx.Rows) (model.Subdistrict, error) {
		var s model.Subdistrict
		err := row.Scan(&s.ID, &s.DistrictID, &s.NameTH, &s.NameEN, &s.ZipCode)
		return s, err
	})
}

// FindByZipCode resolves a zip code back to its subdistricts. One zip
// can span several subdistricts, so this returns all of them.
func (r *postgresAddressRepository) FindByZipCode(ctx context.Context, zipCode string) ([]model.ZipCodeEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.zip_code, s.name_th, d.name_th, p.name_th, p.id, d.id, s.id
		FROM subdistricts s
		JOIN districts d ON d.id = s.district_id
		JOIN provinces p ON p.id = d.province_id
		WHERE s.zip_code = $1
		ORDER BY p.name_th, d.name_th, s.name_th`,
		zipCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up zip code: %w", err)
	}
	defer rows.Close()
	return scanAll(rows, func(row pgx.Rows) (model.ZipCodeEntry, error) {
		var e model.ZipCodeEntry
		err := row.Scan(&e.ZipCode, &e.Subdistrict, &e.District, &e.Province,
			&e.ProvinceID, &e.DistrictID, &e.SubdistrictID)
		return e, err
	})
}

func scanAll[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
