// Package store provides persistence for inventory quantities.
package store

import "context"

// InventoryStore keeps the stock quantity of each product.
type InventoryStore interface {
	// FindQuantity returns the stored quantity and whether a row exists for the product.
	FindQuantity(ctx context.Context, productID int64) (int32, bool, error)
	// Upsert sets the quantity, creating the row on first use.
	Upsert(ctx context.Context, productID int64, quantity int32) error
}
