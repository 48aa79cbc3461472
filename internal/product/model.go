package product

import (
	"time"

	"storevista-be/internal/store"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	StoreID     int64           `json:"store"`
	StoreSlug   string          `json:"store_slug"`
	StoreName   string          `json:"store_name"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InStock reports whether qty units can be taken from the current stock.
func (p Product) InStock(qty int) bool {
	return qty > 0 && qty <= p.Stock
}

type CreateInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsAvailable *bool           `json:"is_available"`
}

type UpdateInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	IsAvailable *bool            `json:"is_available"`
}

// SearchFilter is a conjunction of the set fields.
type SearchFilter struct {
	Category      store.Category
	Keyword       string
	MaxPrice      *decimal.Decimal
	CheapestFirst bool
	Limit         int
}
