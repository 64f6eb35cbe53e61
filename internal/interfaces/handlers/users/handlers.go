package users

import (
	"errors"

	usersvc "gavel-backend/internal/application/user"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *usersvc.Service
	Config  middleware.SessionConfig
}

// POST /api/v1/users/register (public)
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		Confirmation string `json:"confirmation"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Password != body.Confirmation {
		return response.Error(c, "Passwords must match", fiber.StatusBadRequest, nil)
	}

	u, err := h.Service.Register(c.Context(), usersvc.RegisterInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrInvalidUsername),
			errors.Is(err, usersvc.ErrInvalidEmail),
			errors.Is(err, usersvc.ErrInvalidPassword):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, usersvc.ErrUsernameTaken), errors.Is(err, usersvc.ErrEmailTaken):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	return response.SuccessCreated(c, "User registered successfully", fiber.Map{
		"user": fiber.Map{
			"user_id":  u.UserID.String(),
			"username": u.Username,
			"email":    u.Email,
		},
	}, nil)
}

// GET /api/v1/users/view-user/:id (auth)
func (h *Handlers) ViewUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.ViewUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "User fetched successfully", fiber.Map{"user": u}, nil)
}
