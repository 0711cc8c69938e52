package server

import (
	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users
// @Summary Register a new user
// @Description Creates an account. Username and email are unique regardless of case.
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration details"
// @Success 201 {object} models.PrivateUser
// @Failure 400 {object} models.ErrorResponse "Username or email already registered"
// @Failure 422 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := s.userService.Register(c.UserContext(), req.input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user.ToPrivate())
}

// Login handles POST /api/users/token
// @Summary Exchange credentials for an access token
// @Description OAuth2 password flow. The username field carries the email address.
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email address"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users/token [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(TokenResponse{AccessToken: token, TokenType: "bearer"})
}
