package categories

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	catsvc "gavel-backend/internal/application/categories"
	"gavel-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCategoriesTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}, &domain.Listing{}))
	svc := &catsvc.Service{DB: db}
	return &Handlers{Service: svc}, db
}

func TestCreateCategory_Success(t *testing.T) {
	h, db := setupCategoriesTest(t)
	app := fiber.New()
	app.Post("/create-category", h.CreateCategory)

	body, _ := json.Marshal(map[string]string{
		"name":        "Electronics",
		"description": "Gadgets and devices",
	})
	req := httptest.NewRequest("POST", "/create-category", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var count int64
	db.Model(&domain.Category{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	h, db := setupCategoriesTest(t)
	require.NoError(t, db.Create(&domain.Category{Name: "Electronics", Description: "Gadgets"}).Error)

	app := fiber.New()
	app.Post("/create-category", h.CreateCategory)

	body, _ := json.Marshal(map[string]string{
		"name":        "Electronics",
		"description": "More gadgets",
	})
	req := httptest.NewRequest("POST", "/create-category", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestCreateCategory_MissingName(t *testing.T) {
	h, _ := setupCategoriesTest(t)
	app := fiber.New()
	app.Post("/create-category", h.CreateCategory)

	body, _ := json.Marshal(map[string]string{"description": "No name"})
	req := httptest.NewRequest("POST", "/create-category", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDeleteCategory_DetachesListings(t *testing.T) {
	h, db := setupCategoriesTest(t)
	category := domain.Category{Name: "Furniture", Description: "Chairs and tables"}
	require.NoError(t, db.Create(&category).Error)
	listing := domain.Listing{Title: "Chair", Description: "Oak", InitialPrice: 20, IsActive: true, CategoryID: &category.CategoryID, CreatorID: uuid.New()}
	require.NoError(t, db.Create(&listing).Error)

	app := fiber.New()
	app.Delete("/delete-category/:id", h.DeleteCategory)

	req := httptest.NewRequest("DELETE", "/delete-category/"+category.CategoryID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var stored domain.Listing
	require.NoError(t, db.First(&stored, "listing_id = ?", listing.ListingID).Error)
	assert.Nil(t, stored.CategoryID)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	h, _ := setupCategoriesTest(t)
	app := fiber.New()
	app.Delete("/delete-category/:id", h.DeleteCategory)

	req := httptest.NewRequest("DELETE", "/delete-category/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
