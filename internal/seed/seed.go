// Package seed populates a development database with fake users and posts.
// Everything goes through the services so the stored data obeys the same
// rules as data created over the API.
package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"scribe/internal/middleware"
	"scribe/internal/models"
	"scribe/internal/service"
)

// DefaultPassword is the password given to every seeded user.
const DefaultPassword = "password123"

const maxUsernameAttempts = 5

// Options controls how much data Run creates.
type Options struct {
	Users    int
	Posts    int
	Password string
}

// Summary reports what Run created.
type Summary struct {
	Users []*models.User
	Posts int
}

// Seeder creates fake data through the user and post services.
type Seeder struct {
	db    *gorm.DB
	users *service.UserService
	posts *service.PostService
	faker *gofakeit.Faker
}

// NewSeeder returns a Seeder. A zero seed picks a random one.
func NewSeeder(db *gorm.DB, users *service.UserService, posts *service.PostService, seed int64) *Seeder {
	return &Seeder{
		db:    db,
		users: users,
		posts: posts,
		faker: gofakeit.New(seed),
	}
}

// ClearAll removes every post and user.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{&models.Post{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	middleware.Logger.Info("cleared existing users and posts")
	return nil
}

// Run creates opts.Users users and spreads opts.Posts posts across them.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	summary := &Summary{Users: make([]*models.User, 0, opts.Users)}
	for i := 0; i < opts.Users; i++ {
		user, err := s.CreateUser(ctx, opts.Password)
		if err != nil {
			return summary, err
		}
		summary.Users = append(summary.Users, user)
	}

	if len(summary.Users) == 0 {
		return summary, nil
	}
	for i := 0; i < opts.Posts; i++ {
		author := summary.Users[s.faker.Number(0, len(summary.Users)-1)]
		if _, err := s.CreatePost(ctx, author); err != nil {
			return summary, err
		}
		summary.Posts++
	}

	middleware.Logger.Info("seeding complete", "users", len(summary.Users), "posts", summary.Posts)
	return summary, nil
}

// CreateUser registers a user with a fake identity. Name collisions are
// retried with a fresh identity.
func (s *Seeder) CreateUser(ctx context.Context, password string) (*models.User, error) {
	var lastErr error
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		user, err := s.users.Register(ctx, service.RegisterInput{
			Username: fmt.Sprintf("%s%d", s.faker.Username(), s.faker.Number(100, 9999)),
			Email:    s.faker.Email(),
			Password: password,
		})
		if err == nil {
			return user, nil
		}
		if !models.IsCode(err, models.CodeConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("create user after %d attempts: %w", maxUsernameAttempts, lastErr)
}

// CreatePost writes a post with fake content for author.
func (s *Seeder) CreatePost(ctx context.Context, author *models.User) (*models.Post, error) {
	title := s.faker.Sentence(s.faker.Number(3, 8))
	if len(title) > 100 {
		title = title[:100]
	}
	return s.posts.Create(ctx, author, service.CreatePostInput{
		Title:   title,
		Content: s.faker.Paragraph(1, 3, 8, "\n\n"),
	})
}
