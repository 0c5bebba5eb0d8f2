package jsonapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attrs struct {
	Name string `json:"name"`
}

func Test_Single(t *testing.T) {
	// given
	doc := Single(NewResource("7", "products", attrs{Name: "Laptop"}))

	// when
	out, err := json.Marshal(doc)

	// then
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"id":"7","type":"products","attributes":{"name":"Laptop"}}}`, string(out))
	assert.NotContains(t, string(out), "dataList")
}

func Test_List(t *testing.T) {
	testCases := []struct {
		name     string
		items    []Resource[attrs]
		expected string
	}{
		{
			name: "two items wrapped in singleton",
			items: []Resource[attrs]{
				NewResource("1", "products", attrs{Name: "a"}),
				NewResource("2", "products", attrs{Name: "b"}),
			},
			expected: `{"dataList":[[
				{"id":"1","type":"products","attributes":{"name":"a"}},
				{"id":"2","type":"products","attributes":{"name":"b"}}
			]]}`,
		},
		{
			name:     "nil items become empty inner list",
			items:    nil,
			expected: `{"dataList":[[]]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			out, err := json.Marshal(List(tc.items))

			// then
			require.NoError(t, err)
			assert.JSONEq(t, tc.expected, string(out))
			assert.NotContains(t, string(out), `"data"`)
		})
	}
}

func Test_Items(t *testing.T) {
	// given
	body := `{"dataList":[[{"id":"1","type":"products","attributes":{"name":"a"}}]]}`
	var doc Document[[]Resource[attrs]]
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	// when
	items := Items(doc)

	// then
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "a", items[0].Attributes.Name)
}
