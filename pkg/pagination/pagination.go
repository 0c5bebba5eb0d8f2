// Package pagination describes page requests and page results.
package pagination

import (
	"fmt"
	"strings"
)

// Direction is the sort direction of a single property.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is a sort instruction for one property.
type Order struct {
	Property  string
	Direction Direction
}

// Request selects a zero-based page of a result set with an optional ordering.
type Request struct {
	Page int32
	Size int32
	Sort []Order
}

// Offset returns the number of rows to skip for the requested page.
func (r Request) Offset() int64 {
	return int64(r.Page) * int64(r.Size)
}

// Sorted reports whether the request carries an explicit ordering.
func (r Request) Sorted() bool {
	return len(r.Sort) > 0
}

// Page is one page of a result set plus the size of the whole set.
type Page[T any] struct {
	Content       []T
	Number        int32
	Size          int32
	TotalElements int64
}

// TotalPages returns the number of pages for the page size, 1 for an unpaged result.
func (p Page[T]) TotalPages() int64 {
	if p.Size <= 0 {
		return 1
	}
	return (p.TotalElements + int64(p.Size) - 1) / int64(p.Size)
}

// Map converts the content of a page, keeping its metadata.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	content := make([]R, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}
	return Page[R]{
		Content:       content,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
}

// ParseOrder parses a sort expression of the form "property" or "property,asc|desc".
func ParseOrder(expr string) (Order, error) {
	parts := strings.Split(expr, ",")
	property := strings.TrimSpace(parts[0])
	if property == "" {
		return Order{}, fmt.Errorf("empty sort property in %q", expr)
	}
	order := Order{Property: property, Direction: Asc}
	switch len(parts) {
	case 1:
	case 2:
		switch Direction(strings.ToLower(strings.TrimSpace(parts[1]))) {
		case Asc:
		case Desc:
			order.Direction = Desc
		default:
			return Order{}, fmt.Errorf("invalid sort direction in %q", expr)
		}
	default:
		return Order{}, fmt.Errorf("invalid sort expression %q", expr)
	}
	return order, nil
}
