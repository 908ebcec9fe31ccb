package repository

import (
	"context"
	"testing"

	"catalog_api/internal/domain/user/model"
	"catalog_api/internal/pkg/testdb"
	"catalog_api/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	u := &model.User{Username: "alice", HashedPassword: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", HashedPassword: "a"}))
	err := repo.Create(ctx, &model.User{Username: "alice", HashedPassword: "b"})
	assert.True(t, database.IsUniqueViolation(err))
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(testdb.Open(t))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.True(t, database.IsNotFound(err))
}
