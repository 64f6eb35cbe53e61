package watchlist

import (
	"context"
	"testing"

	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWatchlistTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.WatchlistItem{}))
	return &Service{DB: db}, db
}

func makeListing(t *testing.T, db *gorm.DB, title string, active bool) domain.Listing {
	listing := domain.Listing{
		Title: title, Description: "d", InitialPrice: 1,
		IsActive: active, CreatorID: uuid.New(),
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func TestToggle_AddsThenRemoves(t *testing.T) {
	svc, db := setupWatchlistTest(t)
	ctx := context.Background()
	user := uuid.New()
	listing := makeListing(t, db, "Kettle", true)

	watching, err := svc.Toggle(ctx, user, listing.ListingID)
	require.NoError(t, err)
	assert.True(t, watching)

	// Toggling twice returns the set to its original state
	watching, err = svc.Toggle(ctx, user, listing.ListingID)
	require.NoError(t, err)
	assert.False(t, watching)

	items, err := svc.View(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggle_UnknownListing(t *testing.T) {
	svc, _ := setupWatchlistTest(t)
	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestToggle_PerUserMembership(t *testing.T) {
	svc, db := setupWatchlistTest(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	listing := makeListing(t, db, "Print", true)

	_, err := svc.Toggle(ctx, alice, listing.ListingID)
	require.NoError(t, err)

	bobItems, err := svc.View(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobItems)

	aliceItems, err := svc.View(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, listing.ListingID, aliceItems[0].ListingID)
}

func TestView_ActiveListingsFirst(t *testing.T) {
	svc, db := setupWatchlistTest(t)
	ctx := context.Background()
	user := uuid.New()

	closed := makeListing(t, db, "Closed", false)
	open := makeListing(t, db, "Open", true)
	_, err := svc.Toggle(ctx, user, closed.ListingID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, user, open.ListingID)
	require.NoError(t, err)

	items, err := svc.View(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, open.ListingID, items[0].ListingID)
	assert.Equal(t, closed.ListingID, items[1].ListingID)
}
