package server

import (
	"github.com/gofiber/fiber/v2"

	"scribe/internal/middleware"
	"scribe/internal/models"
)

// GetMe handles GET /api/users/me
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PrivateUser
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(user.ToPrivate())
}

// GetUser handles GET /api/users/:id
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.PublicUser
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user.ToPublic())
}

// GetUserPosts handles GET /api/users/:id/posts
// @Summary List a user's posts, newest first
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.PostResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	posts, err := s.userService.ListPosts(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(models.PostResponses(posts))
}

// UpdateUser handles PATCH /api/users/:id
// @Summary Update the authenticated user's own account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body updateUserRequest true "Fields to change"
// @Success 200 {object} models.PrivateUser
// @Failure 400 {object} models.ErrorResponse "Username or email already registered"
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users/{id} [patch]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationErrorWithDetails("Invalid request body", "body: "+err.Error())
	}
	if err := req.validate(); err != nil {
		return err
	}

	user, err := s.userService.Update(c.UserContext(), id, middleware.CurrentUser(c), req.input())
	if err != nil {
		return err
	}
	return c.JSON(user.ToPrivate())
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete the authenticated user's own account and posts
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := s.userService.Delete(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
