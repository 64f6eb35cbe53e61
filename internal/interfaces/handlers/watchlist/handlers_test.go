package watchlist

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	watchsvc "gavel-backend/internal/application/watchlist"
	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWatchlistTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Listing{}, &domain.WatchlistItem{},
	))
	svc := &watchsvc.Service{DB: db}
	return &Handlers{Service: svc}, db
}

func sessionStub(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  userID.String(),
			"username": "watcher",
			"email":    "watcher@test.com",
		})
		return c.Next()
	}
}

func TestToggle_AddThenRemove(t *testing.T) {
	h, db := setupWatchlistTest(t)
	user := domain.User{Username: "watcher", Email: "watcher@test.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	listing := domain.Listing{Title: "Clock", Description: "Wall clock", InitialPrice: 10, IsActive: true, CreatorID: user.UserID}
	require.NoError(t, db.Create(&listing).Error)

	app := fiber.New()
	app.Use(sessionStub(user.UserID))
	app.Post("/toggle", h.Toggle)

	body, _ := json.Marshal(map[string]string{"listing_id": listing.ListingID.String()})

	req := httptest.NewRequest("POST", "/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Listing added to watchlist", result["message"])
	data := result["data"].(map[string]interface{})
	assert.Equal(t, true, data["watching"])

	req2 := httptest.NewRequest("POST", "/toggle", bytes.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	resp2, err := app.Test(req2)
	require.NoError(t, err)
	assert.Equal(t, 200, resp2.StatusCode)

	var result2 map[string]interface{}
	json.NewDecoder(resp2.Body).Decode(&result2)
	assert.Equal(t, "Listing removed from watchlist", result2["message"])
	data2 := result2["data"].(map[string]interface{})
	assert.Equal(t, false, data2["watching"])

	var count int64
	db.Model(&domain.WatchlistItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestToggle_UnknownListing(t *testing.T) {
	h, db := setupWatchlistTest(t)
	user := domain.User{Username: "watcher", Email: "watcher@test.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Use(sessionStub(user.UserID))
	app.Post("/toggle", h.Toggle)

	body, _ := json.Marshal(map[string]string{"listing_id": uuid.New().String()})
	req := httptest.NewRequest("POST", "/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestView_ReturnsWatchedListings(t *testing.T) {
	h, db := setupWatchlistTest(t)
	user := domain.User{Username: "watcher", Email: "watcher@test.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	watched := domain.Listing{Title: "Clock", Description: "Wall clock", InitialPrice: 10, IsActive: true, CreatorID: user.UserID}
	require.NoError(t, db.Create(&watched).Error)
	ignored := domain.Listing{Title: "Vase", Description: "Ceramic", InitialPrice: 5, IsActive: true, CreatorID: user.UserID}
	require.NoError(t, db.Create(&ignored).Error)
	require.NoError(t, db.Create(&domain.WatchlistItem{UserID: user.UserID, ListingID: watched.ListingID}).Error)

	app := fiber.New()
	app.Use(sessionStub(user.UserID))
	app.Get("/view-watchlist", h.View)

	req := httptest.NewRequest("GET", "/view-watchlist", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Clock", first["title"])
}
