package listings

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	listsvc "gavel-backend/internal/application/listings"
	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupListingsTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Category{}, &domain.Listing{},
		&domain.Bid{}, &domain.Comment{}, &domain.ListingEvent{},
	))
	svc := &listsvc.Service{DB: db}
	return &Handlers{Service: svc}, db
}

func sessionStub(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  userID.String(),
			"username": "seller",
			"email":    "seller@test.com",
		})
		return c.Next()
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string) domain.User {
	u := domain.User{Username: username, Email: username + "@test.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestCreateListing_Success(t *testing.T) {
	h, db := setupListingsTest(t)
	creator := seedUser(t, db, "seller")

	app := fiber.New()
	app.Use(sessionStub(creator.UserID))
	app.Post("/create-listing", h.CreateListing)

	body, _ := json.Marshal(map[string]interface{}{
		"title":         "Vintage radio",
		"description":   "Still works",
		"initial_price": 40.0,
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Listing created successfully", result["message"])

	var count int64
	db.Model(&domain.Listing{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateListing_MissingFields(t *testing.T) {
	h, db := setupListingsTest(t)
	creator := seedUser(t, db, "seller")

	app := fiber.New()
	app.Use(sessionStub(creator.UserID))
	app.Post("/create-listing", h.CreateListing)

	body, _ := json.Marshal(map[string]interface{}{"title": "No price"})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCreateListing_UnknownCategory(t *testing.T) {
	h, db := setupListingsTest(t)
	creator := seedUser(t, db, "seller")

	app := fiber.New()
	app.Use(sessionStub(creator.UserID))
	app.Post("/create-listing", h.CreateListing)

	body, _ := json.Marshal(map[string]interface{}{
		"title":         "Lamp",
		"description":   "Desk lamp",
		"initial_price": 5.0,
		"category_id":   uuid.New().String(),
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetAllListings_EmptyDB(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := fiber.New()
	app.Get("/get-all-listings", h.GetAllListings)

	req := httptest.NewRequest("GET", "/get-all-listings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Listings fetched successfully", result["message"])
}

func TestGetListingByID_InvalidUUID(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := fiber.New()
	app.Get("/get-listing/:listing_id", h.GetListingByID)

	req := httptest.NewRequest("GET", "/get-listing/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetListingByID_IncludesCurrentPrice(t *testing.T) {
	h, db := setupListingsTest(t)
	creator := seedUser(t, db, "seller")
	bidder := seedUser(t, db, "buyer")

	listing := domain.Listing{Title: "Chair", Description: "Oak", InitialPrice: 20, IsActive: true, CreatorID: creator.UserID}
	require.NoError(t, db.Create(&listing).Error)
	require.NoError(t, db.Create(&domain.Bid{ListingID: listing.ListingID, BidderID: bidder.UserID, Amount: 35}).Error)

	app := fiber.New()
	app.Get("/get-listing/:listing_id", h.GetListingByID)

	req := httptest.NewRequest("GET", "/get-listing/"+listing.ListingID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, 35.0, data["current_price"])
	assert.Equal(t, bidder.UserID.String(), data["leading_bidder_id"])
}

func TestCloseListing_NotCreator(t *testing.T) {
	h, db := setupListingsTest(t)
	creator := seedUser(t, db, "seller")
	stranger := seedUser(t, db, "stranger")

	listing := domain.Listing{Title: "Chair", Description: "Oak", InitialPrice: 20, IsActive: true, CreatorID: creator.UserID}
	require.NoError(t, db.Create(&listing).Error)

	app := fiber.New()
	app.Use(sessionStub(stranger.UserID))
	app.Post("/close-listing", h.CloseListing)

	body, _ := json.Marshal(map[string]string{"listing_id": listing.ListingID.String()})
	req := httptest.NewRequest("POST", "/close-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	var stored domain.Listing
	require.NoError(t, db.First(&stored, "listing_id = ?", listing.ListingID).Error)
	assert.True(t, stored.IsActive)
}

func TestCloseListing_Creator(t *testing.T) {
	h, db := setupListingsTest(t)
	creator := seedUser(t, db, "seller")

	listing := domain.Listing{Title: "Chair", Description: "Oak", InitialPrice: 20, IsActive: true, CreatorID: creator.UserID}
	require.NoError(t, db.Create(&listing).Error)

	app := fiber.New()
	app.Use(sessionStub(creator.UserID))
	app.Post("/close-listing", h.CloseListing)

	body, _ := json.Marshal(map[string]string{"listing_id": listing.ListingID.String()})
	req := httptest.NewRequest("POST", "/close-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stored domain.Listing
	require.NoError(t, db.First(&stored, "listing_id = ?", listing.ListingID).Error)
	assert.False(t, stored.IsActive)
}
