package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	perrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/pkg/pagination"
)

// MemoryStore implements ProductStore using an in-memory map.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewMemoryStore creates an empty in-memory ProductStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

func (s *MemoryStore) Insert(_ context.Context, product NewProduct) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := Product{
		ID:    s.nextID,
		Name:  product.Name,
		Price: product.Price.Round(priceScale),
	}
	s.nextID++
	s.products[created.ID] = created
	return created, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok, nil
}

func (s *MemoryStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.products[id]
	return ok, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}

func (s *MemoryStore) FindAll(_ context.Context, req pagination.Request) (pagination.Page[Product], error) {
	for _, o := range req.Sort {
		if _, ok := SortableColumns[o.Property]; !ok {
			return pagination.Page[Product]{}, fmt.Errorf("unsupported sort property %q", o.Property)
		}
	}

	s.mu.RLock()
	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b Product) int {
		for _, o := range req.Sort {
			c := compareBy(o.Property, a, b)
			if o.Direction == pagination.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})

	start := min(req.Offset(), int64(len(list)))
	end := min(start+int64(req.Size), int64(len(list)))
	return pagination.Page[Product]{
		Content:       list[start:end],
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: int64(len(list)),
	}, nil
}

func (s *MemoryStore) Update(_ context.Context, product Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return Product{}, perrors.ErrProductNotFound
	}
	product.Price = product.Price.Round(priceScale)
	s.products[product.ID] = product
	return product, nil
}

func compareBy(property string, a, b Product) int {
	switch property {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "price":
		return a.Price.Cmp(b.Price)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}
