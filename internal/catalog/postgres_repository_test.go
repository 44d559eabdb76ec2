package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/storeline/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "./migrations",
	}

	repo, err := NewRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func testCatalog() []domain.Product {
	expires := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	return []domain.Product{
		{ID: "p1", Name: "Cheese", Price: 100, Stock: 10, ExpiresAt: &expires, Shippable: true, WeightGrams: 700},
		{ID: "p3", Name: "TV", Price: 10000, Stock: 5, Shippable: true, WeightGrams: 15000},
		{ID: "p4", Name: "Mobile", Price: 500, Stock: 20},
	}
}

func TestRepository_SeedAndLoad(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.SeedProducts(ctx, testCatalog()))

	products, err := repo.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	byID := make(map[string]domain.Product)
	for _, p := range products {
		byID[p.ID] = p
	}

	cheese := byID["p1"]
	assert.Equal(t, "Cheese", cheese.Name)
	assert.Equal(t, float64(100), cheese.Price)
	assert.Equal(t, 10, cheese.Stock)
	assert.True(t, cheese.Shippable)
	assert.Equal(t, float64(700), cheese.WeightGrams)
	require.NotNil(t, cheese.ExpiresAt)

	mobile := byID["p4"]
	assert.False(t, mobile.Shippable)
	assert.Nil(t, mobile.ExpiresAt)
}

func TestRepository_Seed_DoesNotResetStock(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.SeedProducts(ctx, testCatalog()))

	// Simulate a sale, then re-seed as a restart would.
	require.NoError(t, repo.SaveStockLevels(ctx, map[string]int{"p1": 7}))
	require.NoError(t, repo.SeedProducts(ctx, testCatalog()))

	products, err := repo.LoadProducts(ctx)
	require.NoError(t, err)
	for _, p := range products {
		if p.ID == "p1" {
			assert.Equal(t, 7, p.Stock, "seed must not undo persisted sales")
		}
	}
}

func TestRepository_SaveStockLevels(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.SeedProducts(ctx, testCatalog()))

	require.NoError(t, repo.SaveStockLevels(ctx, map[string]int{"p1": 3, "p4": 0}))

	products, err := repo.LoadProducts(ctx)
	require.NoError(t, err)

	levels := make(map[string]int)
	for _, p := range products {
		levels[p.ID] = p.Stock
	}
	assert.Equal(t, 3, levels["p1"])
	assert.Equal(t, 0, levels["p4"])
	assert.Equal(t, 5, levels["p3"], "untouched product keeps its stock")
}
