package model

// Thai administrative divisions, used to fill the checkout address
// form. The data set is static and seeded by migration.

type Province struct {
	ID     int    `json:"id" db:"id"`
	NameTH string `json:"name_th" db:"name_th"`
	NameEN string `json:"name_en" db:"name_en"`
}

type District struct {
	ID         int    `json:"id" db:"id"`
	ProvinceID int    `json:"province_id" db:"province_id"`
	NameTH     string `json:"name_th" db:"name_th"`
	NameEN     string `json:"name_en" db:"name_en"`
}

type Subdistrict struct {
	ID         int    `json:"id" db:"id"`
	DistrictID int    `json:"district_id" db:"district_id"`
	NameTH     string `json:"name_th" db:"name_th"`
	NameEN     string `json:"name_en" db:"name_en"`
	ZipCode    string `json:"zip_code" db:"zip_code"`
}

// ZipCodeEntry is one match of the reverse lookup: a zip code maps to
// one or more subdistricts, each carried with its full division path.
type ZipCodeEntry struct {
	ZipCode       string `json:"zip_code"`
	Subdistrict   string `json:"subdistrict"`
	District      string `json:"district"`
	Province      string `json:"province"`
	ProvinceID    int    `json:"province_id"`
	DistrictID    int    `json:"district_id"`
	SubdistrictID int    `json:"subdistrict_id"`
}
