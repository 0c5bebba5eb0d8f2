package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseOrder(t *testing.T) {
	testCases := []struct {
		name        string
		expr        string
		expected    Order
		expectError bool
	}{
		{name: "property only", expr: "name", expected: Order{Property: "name", Direction: Asc}},
		{name: "explicit asc", expr: "price,asc", expected: Order{Property: "price", Direction: Asc}},
		{name: "desc mixed case", expr: "price,DESC", expected: Order{Property: "price", Direction: Desc}},
		{name: "spaces trimmed", expr: " id , desc ", expected: Order{Property: "id", Direction: Desc}},
		{name: "empty property", expr: ",asc", expectError: true},
		{name: "bad direction", expr: "id,up", expectError: true},
		{name: "too many parts", expr: "id,asc,desc", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			order, err := ParseOrder(tc.expr)

			// then
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, order)
		})
	}
}

func Test_Request_Offset(t *testing.T) {
	assert.Equal(t, int64(0), Request{Page: 0, Size: 20}.Offset())
	assert.Equal(t, int64(60), Request{Page: 3, Size: 20}.Offset())
	assert.False(t, Request{}.Sorted())
	assert.True(t, Request{Sort: []Order{{Property: "id"}}}.Sorted())
}

func Test_Page_TotalPages(t *testing.T) {
	testCases := []struct {
		total    int64
		size     int32
		expected int64
	}{
		{total: 0, size: 10, expected: 0},
		{total: 10, size: 10, expected: 1},
		{total: 11, size: 10, expected: 2},
		{total: 5, size: 0, expected: 1},
	}
	for _, tc := range testCases {
		t.Run(strconv.FormatInt(tc.total, 10), func(t *testing.T) {
			p := Page[int]{Size: tc.size, TotalElements: tc.total}
			assert.Equal(t, tc.expected, p.TotalPages())
		})
	}
}

func Test_Map(t *testing.T) {
	// given
	p := Page[int]{Content: []int{1, 2}, Number: 1, Size: 2, TotalElements: 4}

	// when
	mapped := Map(p, strconv.Itoa)

	// then
	assert.Equal(t, []string{"1", "2"}, mapped.Content)
	assert.Equal(t, p.Number, mapped.Number)
	assert.Equal(t, p.Size, mapped.Size)
	assert.Equal(t, p.TotalElements, mapped.TotalElements)
}
