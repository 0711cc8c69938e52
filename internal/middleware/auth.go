// Package middleware provides request-scoped concerns: authentication, logging, tracing and metrics.
package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"scribe/internal/models"
	"scribe/internal/observability"
)

// MsgInvalidCredentials is the single message for every authentication failure.
const MsgInvalidCredentials = "Could not validate credentials"

const localUser = "user"

// TokenVerifier turns a bearer token into a user ID.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserLoader fetches a user by ID.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Guard is the sole authentication entry point.
type Guard struct {
	tokens TokenVerifier
	users  UserLoader
}

// NewGuard creates a Guard.
func NewGuard(tokens TokenVerifier, users UserLoader) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Resolve maps an Authorization header value to the user it authenticates.
// A missing, malformed, invalid or expired token and a token for a user that
// no longer exists all fail with the same UNAUTHENTICATED error.
func (g *Guard) Resolve(ctx context.Context, authorization string) (*models.User, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return nil, unauthenticated()
	}

	userID, err := g.tokens.Verify(token)
	if err != nil {
		return nil, unauthenticated()
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, unauthenticated()
		}
		return nil, err
	}
	observability.TokenVerifications.WithLabelValues(observability.OutcomeSuccess).Inc()
	return user, nil
}

// Required rejects requests that do not carry a valid bearer token and stores
// the resolved user for handlers.
func (g *Guard) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := g.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		c.Locals(localUser, user)
		c.Locals("userID", user.ID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))
		return c.Next()
	}
}

// CurrentUser returns the user stored by Required, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func unauthenticated() error {
	observability.TokenVerifications.WithLabelValues(observability.OutcomeFailure).Inc()
	return models.NewUnauthenticatedError(MsgInvalidCredentials)
}
