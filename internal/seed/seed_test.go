package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"scribe/internal/auth"
	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/service"
)

func setupSeeder(t *testing.T) (*Seeder, *service.UserService, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(&config.Config{DBDriver: config.DriverSQLite, DBPath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService([]byte("seed-test-secret-with-plenty-of-length"))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	users := service.NewUserService(userRepo, postRepo, hasher, tokens, time.Minute)
	posts := service.NewPostService(postRepo)
	return NewSeeder(db, users, posts, 42), users, db
}

func TestSeeder_Run(t *testing.T) {
	seeder, users, db := setupSeeder(t)
	ctx := context.Background()

	summary, err := seeder.Run(ctx, Options{Users: 3, Posts: 7})
	require.NoError(t, err)
	require.Len(t, summary.Users, 3)
	assert.Equal(t, 7, summary.Posts)

	var postCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(7), postCount)

	for _, u := range summary.Users {
		assert.LessOrEqual(t, len(u.Username), 50)
		token, err := users.Authenticate(ctx, u.Email, DefaultPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	}
}

func TestSeeder_RunWithoutUsersCreatesNoPosts(t *testing.T) {
	seeder, _, _ := setupSeeder(t)

	summary, err := seeder.Run(context.Background(), Options{Posts: 5})
	require.NoError(t, err)
	assert.Empty(t, summary.Users)
	assert.Zero(t, summary.Posts)
}

func TestSeeder_ClearAll(t *testing.T) {
	seeder, _, db := setupSeeder(t)

	_, err := seeder.Run(context.Background(), Options{Users: 2, Posts: 3})
	require.NoError(t, err)
	require.NoError(t, seeder.ClearAll())

	var users, posts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Zero(t, users)
	assert.Zero(t, posts)
}
