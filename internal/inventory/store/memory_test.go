package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Upsert(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewMemoryStore()

	// when
	_, found, err := s.FindQuantity(ctx, 1)

	// then
	require.NoError(t, err)
	assert.False(t, found)

	// when
	require.NoError(t, s.Upsert(ctx, 1, 10))
	require.NoError(t, s.Upsert(ctx, 1, 4))
	quantity, found, err := s.FindQuantity(ctx, 1)

	// then
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int32(4), quantity)
}
