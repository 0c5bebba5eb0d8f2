// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/abgdnv/catalog/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create adds a new product to the system.
	Create(ctx context.Context, details ProductDetails) (store.Product, error)

	// GetByID retrieves a single product by its unique identifier.
	// The boolean is false when no product exists with the given ID.
	GetByID(ctx context.Context, id int64) (store.Product, bool, error)

	// Update replaces the name and price of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, details ProductDetails) (store.Product, error)

	// Delete removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Delete(ctx context.Context, id int64) error

	// List returns one page of products.
	List(ctx context.Context, req pagination.Request) (pagination.Page[store.Product], error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository      store.ProductStore
	productsCreated metric.Int64Counter
	productsDeleted metric.Int64Counter
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	meter := otel.Meter("product-service")
	productsCreated, err := meter.Int64Counter("products_created", metric.WithDescription("Total number of created products"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_created counter: %v", err))
	}
	productsDeleted, err := meter.Int64Counter("products_deleted", metric.WithDescription("Total number of deleted products"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_deleted counter: %v", err))
	}
	return &Service{
		repository:      repo,
		productsCreated: productsCreated,
		productsDeleted: productsDeleted,
	}
}

// ProductDetails is the client-supplied part of a product, used for both create and update.
type ProductDetails struct {
	Name  string           `json:"name"  validate:"required,max=255"`
	Price *decimal.Decimal `json:"price" validate:"required,price"`
}

var errPriceMissing = errors.New("price is required")

func (d ProductDetails) price() (decimal.Decimal, error) {
	if d.Price == nil {
		return decimal.Decimal{}, errPriceMissing
	}
	return *d.Price, nil
}

// Create inserts a new product built from details.
func (s *Service) Create(ctx context.Context, details ProductDetails) (store.Product, error) {
	price, err := details.price()
	if err != nil {
		return store.Product{}, err
	}
	created, err := s.repository.Insert(ctx, store.NewProduct{Name: details.Name, Price: price})
	if err != nil {
		return store.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	s.productsCreated.Add(ctx, 1)
	return created, nil
}

// GetByID looks a product up by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (store.Product, bool, error) {
	product, found, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return store.Product{}, false, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return product, found, nil
}

// Update copies name and price from details onto the stored product and persists it.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, details ProductDetails) (store.Product, error) {
	price, err := details.price()
	if err != nil {
		return store.Product{}, err
	}
	existing, found, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return store.Product{}, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if !found {
		return store.Product{}, perrors.ErrProductNotFound
	}

	existing.Name = details.Name
	existing.Price = price
	updated, err := s.repository.Update(ctx, existing)
	if err != nil {
		return store.Product{}, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes the product with the given ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product with ID %d: %w", id, err)
	}
	if !exists {
		return perrors.ErrProductNotFound
	}
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	s.productsDeleted.Add(ctx, 1)
	return nil
}

// List returns the requested page of products.
func (s *Service) List(ctx context.Context, req pagination.Request) (pagination.Page[store.Product], error) {
	page, err := s.repository.FindAll(ctx, req)
	if err != nil {
		return pagination.Page[store.Product]{}, fmt.Errorf("failed to fetch products: %w", err)
	}
	return page, nil
}
