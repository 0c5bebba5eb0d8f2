package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	perrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/pkg/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertProduct = `INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id, name, price`
	findProduct   = `SELECT id, name, price FROM products WHERE id = $1`
	existsProduct = `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`
	deleteProduct = `DELETE FROM products WHERE id = $1`
	updateProduct = `UPDATE products SET name = $2, price = $3 WHERE id = $1 RETURNING id, name, price`
	countProducts = `SELECT count(*) FROM products`
	listProducts  = `SELECT id, name, price FROM products ORDER BY %s LIMIT $1 OFFSET $2`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// Insert adds a new product and returns it with the generated ID.
func (p *PgStore) Insert(ctx context.Context, product NewProduct) (Product, error) {
	row := p.db.QueryRow(ctx, insertProduct, product.Name, product.Price.String())
	created, err := scanProduct(row)
	if err != nil {
		return Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return created, nil
}

// FindByID retrieves a product by its unique identifier.
func (p *PgStore) FindByID(ctx context.Context, id int64) (Product, bool, error) {
	product, err := scanProduct(p.db.QueryRow(ctx, findProduct, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, false, nil
		}
		return Product{}, false, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, true, nil
}

// ExistsByID reports whether a product with the given ID exists.
func (p *PgStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := p.db.QueryRow(ctx, existsProduct, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// DeleteByID removes a product by its unique identifier.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	if _, err := p.db.Exec(ctx, deleteProduct, id); err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return nil
}

// FindAll retrieves one page of products and the total number of products.
func (p *PgStore) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[Product], error) {
	var total int64
	if err := p.db.QueryRow(ctx, countProducts).Scan(&total); err != nil {
		return pagination.Page[Product]{}, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy, err := orderClause(req.Sort)
	if err != nil {
		return pagination.Page[Product]{}, err
	}
	rows, err := p.db.Query(ctx, fmt.Sprintf(listProducts, orderBy), req.Size, req.Offset())
	if err != nil {
		return pagination.Page[Product]{}, fmt.Errorf("failed to find all products: %w", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return pagination.Page[Product]{}, fmt.Errorf("failed to read products: %w", err)
	}

	return pagination.Page[Product]{
		Content:       products,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}, nil
}

// Update replaces the name and price of an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, product Product) (Product, error) {
	updated, err := scanProduct(p.db.QueryRow(ctx, updateProduct, product.ID, product.Name, product.Price.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, perrors.ErrProductNotFound
		}
		return Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var product Product
	err := row.Scan(&product.ID, &product.Name, &product.Price)
	return product, err
}

// orderClause renders an ORDER BY list from whitelisted columns, always ending with id for a stable order.
func orderClause(orders []pagination.Order) (string, error) {
	parts := make([]string, 0, len(orders)+1)
	hasID := false
	for _, o := range orders {
		column, ok := SortableColumns[o.Property]
		if !ok {
			return "", fmt.Errorf("unsupported sort property %q", o.Property)
		}
		direction := "ASC"
		if o.Direction == pagination.Desc {
			direction = "DESC"
		}
		parts = append(parts, column+" "+direction)
		hasID = hasID || column == "id"
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", "), nil
}
