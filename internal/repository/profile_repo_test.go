package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/testutil"
)

func TestProfileRepository_FindOrCreate(t *testing.T) {
	repo := NewProfileRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	created, err := repo.FindOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.Nil(t, created.FullName)

	name := "Ana Silva"
	age := 34
	created.FullName = &name
	created.Age = &age
	require.NoError(t, repo.Save(ctx, created))

	again, err := repo.FindOrCreate(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, again.FullName)
	assert.Equal(t, "Ana Silva", *again.FullName)
	assert.Equal(t, 34, *again.Age)
}
