package rest

import (
	"encoding/json"
	"strconv"

	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/abgdnv/catalog/pkg/jsonapi"
)

const resourceType = "products"

// Attributes is the JSON representation of a product without its ID.
type Attributes struct {
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

// toResource renders a product with a stringified ID and the price as a JSON number with two decimals.
func toResource(p store.Product) jsonapi.Resource[Attributes] {
	return jsonapi.NewResource(strconv.FormatInt(p.ID, 10), resourceType, Attributes{
		Name:  p.Name,
		Price: json.Number(p.Price.StringFixed(2)),
	})
}

func toResources(products []store.Product) []jsonapi.Resource[Attributes] {
	out := make([]jsonapi.Resource[Attributes], len(products))
	for i, p := range products {
		out[i] = toResource(p)
	}
	return out
}
