package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/abgdnv/catalog/pkg/pagination"
)

// PageLimits holds the page size applied when the client sends none and the largest size honoured.
type PageLimits struct {
	DefaultSize int32
	MaxSize     int32
}

// ParsePageRequest reads page, size and the repeatable sort query parameters.
// Paging values never fail the request: an unparsable or negative page reads as 0, an unparsable or
// non-positive size reads as the default and sizes above the maximum are clamped.
// Malformed sort expressions and properties outside sortable are rejected with 400.
func ParsePageRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, limits PageLimits, sortable map[string]bool) (pagination.Request, bool) {
	page := queryInt32(r, "page", 0)
	if page < 0 {
		page = 0
	}
	size := queryInt32(r, "size", limits.DefaultSize)
	if size < 1 {
		size = limits.DefaultSize
	}
	if limits.MaxSize > 0 && size > limits.MaxSize {
		size = limits.MaxSize
	}

	var orders []pagination.Order
	for _, expr := range r.URL.Query()["sort"] {
		order, err := pagination.ParseOrder(expr)
		if err != nil {
			RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid sort parameter: %s", expr))
			return pagination.Request{}, false
		}
		if !sortable[order.Property] {
			RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Unknown sort property: %s", order.Property))
			return pagination.Request{}, false
		}
		orders = append(orders, order)
	}
	return pagination.Request{Page: page, Size: size, Sort: orders}, true
}

// queryInt32 returns the query parameter key as an int32, or def when it is absent or not a number.
func queryInt32(r *http.Request, key string, def int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}
