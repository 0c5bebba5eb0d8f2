package store

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/abgdnv/catalog/internal/tests/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const skipIntegrationTests = "INVENTORY_SVC_SKIP_INTEGRATION_TESTS"

// InventoryStoreSuite is a test suite for the PgStore implementation.
type InventoryStoreSuite struct {
	suite.Suite
	db     *pgtest.Database
	store  InventoryStore
	logger *slog.Logger
	ctx    context.Context
}

func (s *InventoryStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s.db = pgtest.Start(s.ctx, s.T(), s.logger, "inventory")
	s.store = NewPgStore(s.db.Pool)
}

func (s *InventoryStoreSuite) TearDownSuite() {
	s.db.Close(s.ctx, s.logger)
}

func (s *InventoryStoreSuite) SetupTest() {
	_, err := s.db.Pool.Exec(s.ctx, "TRUNCATE TABLE inventories")
	require.NoError(s.T(), err, "Failed to truncate inventories table")
}

func TestInventoryStoreIntegration(t *testing.T) {
	pgtest.SkipIfRequested(t, skipIntegrationTests)
	suite.Run(t, new(InventoryStoreSuite))
}

func (s *InventoryStoreSuite) TestFindQuantity_NoRow() {
	// when
	quantity, found, err := s.store.FindQuantity(s.ctx, 42)

	// then
	require.NoError(s.T(), err)
	assert.False(s.T(), found)
	assert.Zero(s.T(), quantity)
}

func (s *InventoryStoreSuite) TestUpsert_InsertsThenUpdates() {
	// given
	require.NoError(s.T(), s.store.Upsert(s.ctx, 7, 50))

	// when
	require.NoError(s.T(), s.store.Upsert(s.ctx, 7, 45))
	quantity, found, err := s.store.FindQuantity(s.ctx, 7)

	// then
	require.NoError(s.T(), err)
	assert.True(s.T(), found)
	assert.Equal(s.T(), int32(45), quantity)

	var rows int
	require.NoError(s.T(), s.db.Pool.QueryRow(s.ctx, "SELECT count(*) FROM inventories").Scan(&rows))
	assert.Equal(s.T(), 1, rows)
}

func (s *InventoryStoreSuite) TestUpsert_RejectsNegativeQuantity() {
	err := s.store.Upsert(s.ctx, 8, -1)
	assert.Error(s.T(), err)
}
