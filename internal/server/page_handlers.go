package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"scribe/internal/models"
)

const pageTitleLimit = 50

// HomePage renders every post, newest first.
func (s *Server) HomePage(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("home", fiber.Map{
		"Title": "Home",
		"Posts": models.PostResponses(posts),
	})
}

// PostPage renders a single post.
func (s *Server) PostPage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("post", fiber.Map{
		"Title": truncate(post.Title, pageTitleLimit),
		"Post":  post.ToResponse(),
	})
}

// UserPostsPage renders the posts of one user.
func (s *Server) UserPostsPage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	posts, err := s.userService.ListPosts(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("user_posts", fiber.Map{
		"Title": fmt.Sprintf("%s's Posts", user.Username),
		"User":  user.ToPublic(),
		"Posts": models.PostResponses(posts),
	})
}

func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Title": "Login"})
}

func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{"Title": "Register"})
}

// AccountPage is filled in client-side from /api/users/me.
func (s *Server) AccountPage(c *fiber.Ctx) error {
	return c.Render("account", fiber.Map{"Title": "Account"})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
