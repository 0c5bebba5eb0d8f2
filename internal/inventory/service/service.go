// Package service joins product data with stored inventory quantities.
package service

import (
	"context"
	"fmt"

	"github.com/abgdnv/catalog/internal/inventory/client"
	inverrors "github.com/abgdnv/catalog/internal/inventory/errors"
	"github.com/abgdnv/catalog/internal/inventory/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Inventory is the stock of one product.
type Inventory struct {
	ProductID   int64
	ProductName string
	Quantity    int32
}

// ProductFinder looks products up in the product service.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (client.Product, error)
}

// InventoryService defines the inventory operations.
type InventoryService interface {
	// Get returns the product name with its quantity, 0 when no quantity was ever set.
	// Errors from the product lookup are returned unchanged.
	Get(ctx context.Context, productID int64) (Inventory, error)

	// SetQuantity stores the quantity of a product.
	SetQuantity(ctx context.Context, productID int64, quantity int32) error
}

type Service struct {
	products        ProductFinder
	repository      store.InventoryStore
	quantityUpdates metric.Int64Counter
}

func NewService(products ProductFinder, repo store.InventoryStore) *Service {
	meter := otel.Meter("inventory-service")
	quantityUpdates, err := meter.Int64Counter("inventory_quantity_updates", metric.WithDescription("Total number of inventory quantity updates"))
	if err != nil {
		panic(fmt.Sprintf("failed to create inventory_quantity_updates counter: %v", err))
	}
	return &Service{
		products:        products,
		repository:      repo,
		quantityUpdates: quantityUpdates,
	}
}

func (s *Service) Get(ctx context.Context, productID int64) (Inventory, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return Inventory{}, err
	}
	quantity, _, err := s.repository.FindQuantity(ctx, productID)
	if err != nil {
		return Inventory{}, fmt.Errorf("failed to read inventory of product %d: %w", productID, err)
	}
	return Inventory{
		ProductID:   productID,
		ProductName: product.Name,
		Quantity:    quantity,
	}, nil
}

// SetQuantity does not check that the product exists.
func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int32) error {
	if quantity < 0 {
		return inverrors.ErrNegativeQuantity
	}
	if err := s.repository.Upsert(ctx, productID, quantity); err != nil {
		return err
	}
	s.quantityUpdates.Add(ctx, 1)
	return nil
}
