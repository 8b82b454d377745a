package model

type Box struct {
	ID             int64    `json:"id"`
	Name           *string  `json:"name"`
	InternalNumber *string  `json:"internal_number"`
	CityID         *int64   `json:"city_id"`
	FullAddress    *string  `json:"full_address"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// BoxMeta is the database side of a locker, keyed by its vendor
// machine id (boxes.internal_number, e.g. PST_0702).
type BoxMeta struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	FullAddress *string `json:"full_address"`
}
