package db_test

import (
	"context"
	"testing"

	"github.com/bizcurrency/bizcli/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB sets up an in-memory SQLite database for testing purposes.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&db.Token{}, &db.Identity{}))
	return database
}

func TestGetTokenReturnsNilWhenEmpty(t *testing.T) {
	repo := db.NewCredentialRepository(setupTestDB(t))

	token, err := repo.GetToken(context.Background())
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestUpsertTokenInsertsAndUpdates(t *testing.T) {
	repo := db.NewCredentialRepository(setupTestDB(t))
	ctx := context.Background()

	err := repo.UpsertToken(ctx, &db.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    "2026-01-02T15:04:05Z",
	})
	require.NoError(t, err)

	err = repo.UpsertToken(ctx, &db.Token{
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
		ExpiresAt:    "2026-01-02T16:04:05Z",
	})
	require.NoError(t, err)

	token, err := repo.GetToken(ctx)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "access-2", token.AccessToken)
	assert.Equal(t, "refresh-2", token.RefreshToken)
	assert.Equal(t, "2026-01-02T16:04:05Z", token.ExpiresAt)
}

func TestUpsertTokenKeepsSingleRow(t *testing.T) {
	database := setupTestDB(t)
	repo := db.NewCredentialRepository(database)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.UpsertToken(ctx, &db.Token{AccessToken: "a", RefreshToken: "r", ExpiresAt: "x"}))
	}

	var count int64
	require.NoError(t, database.Model(&db.Token{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertIdentityInsertsAndUpdates(t *testing.T) {
	repo := db.NewCredentialRepository(setupTestDB(t))
	ctx := context.Background()

	err := repo.UpsertIdentity(ctx, &db.Identity{UserID: "U1", UserName: "ada", Email: "ada@example.com"})
	require.NoError(t, err)
	err = repo.UpsertIdentity(ctx, &db.Identity{UserID: "U1", UserName: "ada", Email: "ada@bizcurrency.com"})
	require.NoError(t, err)

	identity, err := repo.GetIdentity(ctx)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "ada@bizcurrency.com", identity.Email)
}

func TestClearRemovesTokenAndIdentity(t *testing.T) {
	repo := db.NewCredentialRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertToken(ctx, &db.Token{AccessToken: "a", RefreshToken: "r", ExpiresAt: "x"}))
	require.NoError(t, repo.UpsertIdentity(ctx, &db.Identity{UserID: "U1"}))

	require.NoError(t, repo.Clear(ctx))

	token, err := repo.GetToken(ctx)
	require.NoError(t, err)
	assert.Nil(t, token)
	identity, err := repo.GetIdentity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestUninitializedRepositoryFails(t *testing.T) {
	repo := db.NewCredentialRepository(nil)
	ctx := context.Background()

	_, err := repo.GetToken(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.UpsertToken(ctx, &db.Token{}))
	_, err = repo.GetIdentity(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.Clear(ctx))
}
