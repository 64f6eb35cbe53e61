package categories

import (
	"errors"

	catsvc "gavel-backend/internal/application/categories"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *catsvc.Service
}

// POST /api/v1/categories/create-category (auth)
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	category, err := h.Service.CreateCategory(c.Context(), catsvc.CreateCategoryInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, catsvc.ErrInvalidCategory):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, catsvc.ErrCategoryExists):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Category created successfully", category, nil)
}

// GET /api/v1/categories/get-categories (public)
func (h *Handlers) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Service.GetCategories(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Categories fetched successfully", categories, nil)
}

// DELETE /api/v1/categories/delete-category/:id (auth)
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid category id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteCategory(c.Context(), categoryID); err != nil {
		if errors.Is(err, catsvc.ErrCategoryNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Category deleted successfully", nil, nil)
}
