// Command seed fills the configured database with fake users and posts.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"scribe/internal/auth"
	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/middleware"
	"scribe/internal/repository"
	"scribe/internal/seed"
	"scribe/internal/service"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	shouldClean := flag.Bool("clean", false, "Remove existing users and posts before seeding")
	seedValue := flag.Int64("seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}
	middleware.InitLogger(cfg.Env, cfg.LogLevel, os.Stdout)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to create password hasher: %v", err)
	}
	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret))
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	s := seed.NewSeeder(db,
		service.NewUserService(userRepo, postRepo, hasher, tokens, cfg.AccessTokenTTL()),
		service.NewPostService(postRepo),
		*seedValue,
	)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	summary, err := s.Run(context.Background(), seed.Options{Users: *numUsers, Posts: *numPosts})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users and %d posts", len(summary.Users), summary.Posts)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
