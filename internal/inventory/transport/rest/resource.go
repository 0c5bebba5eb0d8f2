package rest

import (
	"strconv"

	"github.com/abgdnv/catalog/internal/inventory/service"
	"github.com/abgdnv/catalog/pkg/jsonapi"
)

const resourceType = "inventories"

type Attributes struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int32  `json:"quantity"`
}

// QuantityRequest is the body of a quantity update.
type QuantityRequest struct {
	Quantity *int32 `json:"quantity" validate:"required,min=0"`
}

func toResource(inv service.Inventory) jsonapi.Resource[Attributes] {
	return jsonapi.NewResource(strconv.FormatInt(inv.ProductID, 10), resourceType, Attributes{
		ProductID:   inv.ProductID,
		ProductName: inv.ProductName,
		Quantity:    inv.Quantity,
	})
}
