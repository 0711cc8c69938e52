package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scribe/internal/models"
)

func TestErrorHandler_DoesNotLeakInternalErrors(t *testing.T) {
	m := newMockServer(t)
	m.posts.On("List", mock.Anything).Return([]models.Post(nil), errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	resp, body := doRequest(t, m.app, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	errResp := decode[models.ErrorResponse](t, body)
	assert.Equal(t, "Internal server error", errResp.Error)
	assert.Equal(t, models.CodeInternal, errResp.Code)
	assert.NotContains(t, string(body), "10.0.0.5")

	resp, page := getPage(t, m.app, "/")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, page, "10.0.0.5")
}

func TestIsAPIPath(t *testing.T) {
	assert.True(t, isAPIPath("/api"))
	assert.True(t, isAPIPath("/api/posts"))
	assert.False(t, isAPIPath("/apiary"))
	assert.False(t, isAPIPath("/posts"))
}

func TestPageMessage(t *testing.T) {
	assert.Equal(t, "Post with ID 1 not found", pageMessage(models.NewNotFoundError("Post", 1)))
	assert.Equal(t, "Not Found", pageMessage(fiber.ErrNotFound))
	assert.Equal(t, msgPageError, pageMessage(fiber.NewError(http.StatusBadRequest, "")))
	assert.Equal(t, msgPageError, pageMessage(errors.New("boom")))
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "blog post ID", humanizeParam("blogPostId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}
