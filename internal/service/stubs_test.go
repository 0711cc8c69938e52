package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"scribe/internal/auth"
	"scribe/internal/models"
	"scribe/internal/repository"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	usernameTakenFn func(context.Context, string, uint) (bool, error)
	emailTakenFn    func(context.Context, string, uint) (bool, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return s.usernameTakenFn(ctx, username, excludeID)
}
func (s *userRepoStub) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.emailTakenFn(ctx, email, excludeID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) Transaction(_ context.Context, fn func(tx repository.UserRepository) error) error {
	return fn(s)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		usernameTakenFn: func(context.Context, string, uint) (bool, error) { return false, nil },
		emailTakenFn:    func(context.Context, string, uint) (bool, error) { return false, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		updateFn: func(context.Context, *models.User) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

type postRepoStub struct {
	listFn       func(context.Context) ([]models.Post, error)
	listByUserFn func(context.Context, uint) ([]models.Post, error)
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	createFn     func(context.Context, *models.Post) error
	updateFn     func(context.Context, *models.Post) error
	deleteFn     func(context.Context, uint) error
}

func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:       func(context.Context) ([]models.Post, error) { return []models.Post{}, nil },
		listByUserFn: func(context.Context, uint) ([]models.Post, error) { return []models.Post{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
		createFn: func(context.Context, *models.Post) error { return nil },
		updateFn: func(context.Context, *models.Post) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

func testHasher(t *testing.T) *auth.PasswordHasher {
	t.Helper()
	h, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	s, err := auth.NewTokenService([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestUserService(t *testing.T, users repository.UserRepository, posts repository.PostRepository) *UserService {
	t.Helper()
	return NewUserService(users, posts, testHasher(t), testTokens(t), 30*time.Minute)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func strPtr(s string) *string { return &s }
