package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"scribe/internal/auth"
	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/repository"
)

// MsgBadCredentials is returned for every failed login, whatever the cause.
const MsgBadCredentials = "Incorrect email or password"

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
	// VerifyMissing performs a comparison of equal cost when no user exists.
	VerifyMissing(plain string)
}

// TokenIssuer signs bearer tokens for a user.
type TokenIssuer interface {
	Issue(userID uint, ttl time.Duration) (string, error)
}

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	tokenTTL time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries a partial update. Nil pointers and an unset
// ImageFile leave the stored value untouched.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	ImageFile models.NullableString
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	tokenTTL time.Duration,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register creates a user. A username collision is reported before an email
// collision. The email address is stored lower-cased.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (user *models.User, err error) {
	ctx, span := observability.TraceServiceMethod(ctx, "UserService", "Register")
	defer func() { observability.EndSpan(span, err) }()

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, models.NewValidationErrorWithDetails("Validation failed", "password: must be at most 72 bytes")
		}
		return nil, models.NewInternalError(err)
	}

	user = &models.User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
	}

	err = s.userRepo.Transaction(ctx, func(tx repository.UserRepository) error {
		taken, err := tx.UsernameTaken(ctx, user.Username, 0)
		if err != nil {
			return err
		}
		if taken {
			return models.NewConflictError(repository.MsgUsernameTaken)
		}

		taken, err = tx.EmailTaken(ctx, user.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return models.NewConflictError(repository.MsgEmailTaken)
		}

		return tx.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate exchanges credentials for a bearer token. An unknown email and
// a wrong password produce the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (token string, err error) {
	ctx, span := observability.TraceServiceMethod(ctx, "UserService", "Authenticate")
	defer func() { observability.EndSpan(span, err) }()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		s.hasher.VerifyMissing(password)
		observability.AuthAttempts.WithLabelValues(observability.OutcomeFailure).Inc()
		return "", models.NewUnauthenticatedError(MsgBadCredentials)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if !ok {
		observability.AuthAttempts.WithLabelValues(observability.OutcomeFailure).Inc()
		return "", models.NewUnauthenticatedError(MsgBadCredentials)
	}

	token, err = s.tokens.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	observability.AuthAttempts.WithLabelValues(observability.OutcomeSuccess).Inc()
	return token, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListPosts returns the user's posts, newest first.
func (s *UserService) ListPosts(ctx context.Context, id uint) ([]models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.postRepo.ListByUser(ctx, id)
}

// Update applies a partial update to the requester's own record.
func (s *UserService) Update(ctx context.Context, id uint, requester *models.User, in UpdateUserInput) (*models.User, error) {
	if requester == nil || requester.ID != id {
		return nil, models.NewForbiddenError("Not authorized to update this user")
	}

	var updated *models.User
	err := s.userRepo.Transaction(ctx, func(tx repository.UserRepository) error {
		user, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Username != nil {
			taken, err := tx.UsernameTaken(ctx, *in.Username, id)
			if err != nil {
				return err
			}
			if taken {
				return models.NewConflictError(repository.MsgUsernameTaken)
			}
			user.Username = *in.Username
		}

		if in.Email != nil {
			email := strings.ToLower(*in.Email)
			taken, err := tx.EmailTaken(ctx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return models.NewConflictError(repository.MsgEmailTaken)
			}
			user.Email = email
		}

		if in.ImageFile.Set {
			user.ImageFile = in.ImageFile.Value
		}

		if err := tx.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the requester's own account along with their posts.
func (s *UserService) Delete(ctx context.Context, id uint, requester *models.User) error {
	if requester == nil || requester.ID != id {
		return models.NewForbiddenError("Not authorized to delete this user")
	}
	return s.userRepo.Delete(ctx, id)
}
