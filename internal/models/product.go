package models

import (
	"math"
	"time"
)

type Product struct {
	ID                 int64     `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Description        string    `db:"description" json:"description"`
	Price              float64   `db:"price" json:"price"`
	Category           string    `db:"category" json:"category"`
	Brand              string    `db:"brand" json:"brand"`
	Image              string    `db:"image" json:"image"`
	Stock              int       `db:"stock" json:"stock"`
	SellerID           int64     `db:"seller_id" json:"seller_id"`
	DiscountPercentage float64   `db:"discount_percentage" json:"discount_percentage"`
	Rating             float64   `db:"rating" json:"rating"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

type ProductInput struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	Category           string  `json:"category"`
	Brand              string  `json:"brand"`
	Image              string  `json:"image"`
	Stock              int     `json:"stock"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// ProductUpdate carries an allow-listed partial update. Only the named fields
// can change; the seller is never updatable.
type ProductUpdate struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Price              *float64 `json:"price"`
	Category           *string  `json:"category"`
	Brand              *string  `json:"brand"`
	Image              *string  `json:"image"`
	Stock              *int     `json:"stock"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

type SortKey string

const (
	SortPriceLow   SortKey = "priceLow"
	SortPriceHigh  SortKey = "priceHigh"
	SortNewest     SortKey = "newest"
	SortPopularity SortKey = "popularity"
)

// ProductFilter is built per request from query parameters and consumed once
// by the catalog query.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
	Page     int
	PageSize int
}

type PaginationMeta struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func NewPaginationMeta(totalItems, page, pageSize int) PaginationMeta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	return PaginationMeta{
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
