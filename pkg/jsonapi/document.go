// Package jsonapi provides the response envelope shared by the catalog services.
package jsonapi

// Resource is the externally visible shape of a single domain object.
type Resource[A any] struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes A      `json:"attributes"`
}

// Document is the top-level response envelope.
// Exactly one of Data or DataList is populated; the other is omitted from the JSON output.
type Document[T any] struct {
	Data     *T  `json:"data,omitempty"`
	DataList []T `json:"dataList,omitempty"`
}

// NewResource builds a resource of the given type.
func NewResource[A any](id, resourceType string, attributes A) Resource[A] {
	return Resource[A]{
		ID:         id,
		Type:       resourceType,
		Attributes: attributes,
	}
}

// Single wraps one value into the `data` member.
func Single[T any](v T) Document[T] {
	return Document[T]{Data: &v}
}

// List wraps a list of resources into the `dataList` member.
//
// The list is nested inside one more single-element sequence, so clients receive
// {"dataList": [[...]]}. Existing consumers depend on this shape.
func List[A any](items []Resource[A]) Document[[]Resource[A]] {
	if items == nil {
		items = []Resource[A]{}
	}
	return Document[[]Resource[A]]{DataList: [][]Resource[A]{items}}
}

// Items returns the resources of a list document, flattening the singleton wrapper.
func Items[A any](doc Document[[]Resource[A]]) []Resource[A] {
	var out []Resource[A]
	for _, page := range doc.DataList {
		out = append(out, page...)
	}
	return out
}
