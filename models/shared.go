package models

import "errors"

// ErrNotFound is returned by repositories when no document matches.
var ErrNotFound = errors.New("document not found")

// Coordinates is an optional geo point on an address.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Address is a full postal address.
type Address struct {
	Street      string       `bson:"street" json:"street" validate:"required"`
	City        string       `bson:"city" json:"city" validate:"required"`
	State       string       `bson:"state" json:"state" validate:"required"`
	ZipCode     string       `bson:"zipCode" json:"zipCode" validate:"required"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination normalises page/limit and computes the page count.
func NewPagination(page, limit int, total int64) Pagination {
	page, limit = NormalizePage(page, limit)
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// NormalizePage clamps page to >= 1 and limit to [1, 100], defaulting to 10.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
