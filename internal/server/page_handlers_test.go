package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/models"
)

func getPage(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil))
	return resp, string(body)
}

func TestPages_RenderThroughServices(t *testing.T) {
	app := setupSQLiteApp(t)
	alice := register(t, app, "alice", "a@x.com", "password1")
	aliceAuth := login(t, app, "a@x.com", "password1")

	longTitle := strings.Repeat("t", 60)
	resp, body := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/posts",
		map[string]string{"title": longTitle, "content": "<b>bold</b>"}, aliceAuth))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decode[models.PostResponse](t, body)

	resp, html := getPage(t, app, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, html, "<title>Scribe - Home</title>")
	assert.Contains(t, html, longTitle)
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, html, "<b>bold</b>")

	resp, html = getPage(t, app, fmt.Sprintf("/posts/%d", post.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "<title>Scribe - "+strings.Repeat("t", 50)+"</title>")

	resp, html = getPage(t, app, fmt.Sprintf("/users/%d/posts", alice.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, "s Posts</title>")
	assert.Contains(t, html, longTitle)

	for _, path := range []string{"/login", "/register", "/account", "/posts"} {
		resp, _ = getPage(t, app, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestPages_ErrorPage(t *testing.T) {
	app := setupSQLiteApp(t)

	tests := []struct {
		path           string
		expectedStatus int
		expectedText   string
	}{
		{"/posts/999", http.StatusNotFound, "Post with ID 999 not found"},
		{"/users/999/posts", http.StatusNotFound, "User with ID 999 not found"},
		{"/posts/not-a-number", http.StatusUnprocessableEntity, msgPageValidation},
		{"/no/such/page", http.StatusNotFound, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, html := getPage(t, app, tt.path)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			assert.Contains(t, html, fmt.Sprintf("<h1>%d</h1>", tt.expectedStatus))
			assert.Contains(t, html, tt.expectedText)
		})
	}
}

func TestAPI_UnknownRouteIsJSON(t *testing.T) {
	app := setupSQLiteApp(t)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", decode[models.ErrorResponse](t, body).Error)
}
