package server

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"scribe/internal/middleware"
	"scribe/internal/models"
)

const (
	msgPageError      = "An error occurred. Please check your request and try again."
	msgPageValidation = "Invalid request. Please check your input and try again."
)

// ErrorHandler maps every error returned by a handler onto a response. API
// clients get the JSON ErrorResponse, browsers get the rendered error page.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	status := models.StatusCode(err)

	var appErr *models.AppError
	var fiberErr *fiber.Error
	if status >= fiber.StatusInternalServerError && !errors.As(err, &appErr) && !errors.As(err, &fiberErr) {
		err = models.NewInternalError(err)
	}
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	if isAPIPath(c.Path()) {
		return models.RespondWithError(c, status, err)
	}
	return s.renderErrorPage(c, status, err)
}

func (s *Server) renderErrorPage(c *fiber.Ctx, status int, err error) error {
	message := pageMessage(err)
	if status == fiber.StatusUnprocessableEntity {
		message = msgPageValidation
	}

	c.Status(status)
	if renderErr := c.Render("error", fiber.Map{
		"Title":      status,
		"StatusCode": status,
		"Message":    message,
	}); renderErr != nil {
		middleware.Logger.Error("failed to render error page", slog.String("error", renderErr.Error()))
		return c.Status(status).SendString(message)
	}
	return nil
}

func pageMessage(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Message != "" {
		return fiberErr.Message
	}
	return msgPageError
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
