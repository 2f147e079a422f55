package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed/pulsefeed/internal/model"
)

func TestFollowCreateIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.Create(ctx, bob.ID, alice.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)

	ok, err := repo.Exists(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// the reverse edge does not exist
	ok, err = repo.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowDeleteMissingEdgeIsNoop(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.Delete(ctx, bob.ID, alice.ID))

	require.NoError(t, repo.Create(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.Delete(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.Delete(ctx, bob.ID, alice.ID))

	ok, err := repo.Exists(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowCounts(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, repo.Create(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.Create(ctx, carol.ID, alice.ID))
	require.NoError(t, repo.Create(ctx, alice.ID, bob.ID))

	followers, err := repo.CountFollowers(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, followers)

	following, err := repo.CountFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)
}
