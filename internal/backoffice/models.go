// Package backoffice exposes typed wrappers over the business endpoints:
// clients, products, orders and pawns. Payloads pass through unchanged; the
// backend owns validation and business rules.
package backoffice

import (
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	IDNumber    string    `json:"id_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Product struct {
	ID        int64     `json:"id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type OrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}

type Order struct {
	ID        int64       `json:"id,omitempty"`
	Code      string      `json:"code,omitempty"`
	ClientID  int64       `json:"client_id"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Paid      int64       `json:"paid"`
	Change    int64       `json:"change"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
}

type Pawn struct {
	ID         int64     `json:"id,omitempty"`
	Code       string    `json:"code,omitempty"`
	ClientID   int64     `json:"client_id"`
	Collateral string    `json:"collateral"`
	LoanAmount int64     `json:"loan_amount"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// ListParams carries the pagination and search state the dashboard keeps per
// table. Zero values are omitted so the backend applies its own defaults.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// List is one page of results.
type List[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}
