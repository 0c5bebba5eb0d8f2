// Package store provides persistence for products.
package store

import (
	"context"

	"github.com/abgdnv/catalog/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Product is a persisted product.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// NewProduct holds the fields of a product that has not been persisted yet.
type NewProduct struct {
	Name  string
	Price decimal.Decimal
}

// SortableColumns maps the sort properties accepted by FindAll to table columns.
var SortableColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// Insert persists a new product and returns it with its generated ID.
	Insert(ctx context.Context, product NewProduct) (Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// The boolean is false when no product has the given ID; that is not an error.
	FindByID(ctx context.Context, id int64) (Product, bool, error)

	// ExistsByID reports whether a product with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// DeleteByID removes a product by its ID. Deleting a missing ID is a no-op.
	DeleteByID(ctx context.Context, id int64) error

	// FindAll returns the requested page of products together with the total product count.
	// Unsorted requests are ordered by ID.
	FindAll(ctx context.Context, req pagination.Request) (pagination.Page[Product], error)

	// Update replaces the name and price of the product with product.ID.
	// Returns ErrProductNotFound if the row no longer exists.
	Update(ctx context.Context, product Product) (Product, error)
}

// priceScale is the number of fractional digits kept for prices.
const priceScale = 2
