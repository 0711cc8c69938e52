package server

import (
	"github.com/gofiber/fiber/v2"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/service"
)

// ListPosts handles GET /api/posts
// @Summary List all posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostResponse
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(models.PostResponses(posts))
}

// CreatePost handles POST /api/posts
// @Summary Create a post authored by the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body postRequest true "Post"
// @Success 201 {object} models.PostResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post, err := s.postService.Create(c.UserContext(), middleware.CurrentUser(c), service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post.ToResponse())
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(post.ToResponse())
}

// ReplacePost handles PUT /api/posts/:id
// @Summary Replace a post's title and content
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body postRequest true "Post"
// @Success 200 {object} models.PostResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) ReplacePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req postRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post, err := s.postService.Replace(c.UserContext(), id, middleware.CurrentUser(c), service.ReplacePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(post.ToResponse())
}

// PatchPost handles PATCH /api/posts/:id
// @Summary Change some of a post's fields
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body postPatchRequest true "Fields to change"
// @Success 200 {object} models.PostResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/{id} [patch]
func (s *Server) PatchPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req postPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post, err := s.postService.Patch(c.UserContext(), id, middleware.CurrentUser(c), service.PatchPostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(post.ToResponse())
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := s.postService.Delete(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
