// Package models defines the data shapes exchanged with the price list API.
package models

import "time"

// User is the identity record returned by the auth endpoints.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PriceList is the managed resource. Identifiers are assigned by the server;
// optimistic entries carry a temporary identifier until confirmed.
type PriceList struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePriceListRequest struct {
	Name string `json:"name"`
}

type UpdatePriceListRequest struct {
	Name string `json:"name"`
}

// SortDirection is either "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField is one of the sortable price list columns.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// ListQuery carries pagination, sorting and filter parameters for the
// price list collection endpoint. Zero values mean "not set".
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    SortField
	Direction SortDirection
	Search    string
	DateFrom  time.Time
	DateTo    time.Time
}
