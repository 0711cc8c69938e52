// Package server contains the HTTP handlers for the JSON API and the rendered pages.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/gofiber/template/django/v3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	_ "scribe/docs" // swagger docs
	"scribe/internal/auth"
	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/middleware"
	"scribe/internal/observability"
	"scribe/internal/repository"
	"scribe/internal/service"
	"scribe/web"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus
	userService    *service.UserService
	postService    *service.PostService
	guard          *middleware.Guard
}

// NewServer connects to the configured database, brings the schema up to
// date and returns a server ready to build its app.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return NewServerWithDeps(cfg, db)
}

// NewServerWithDeps creates a Server using an already-initialized database.
// Use this in tests or when a bootstrap layer owns the connection.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) (*Server, error) {
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	server := &Server{
		config:      cfg,
		db:          db,
		userService: service.NewUserService(userRepo, postRepo, hasher, tokens, cfg.AccessTokenTTL()),
		postService: service.NewPostService(postRepo),
		guard:       middleware.NewGuard(tokens, userRepo),
	}
	if cfg.MetricsEnabled {
		server.promMiddleware = middleware.InitMetrics(observability.ServiceName)
	}
	return server, nil
}

// NewApp builds the fiber application with middleware, routes and views.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Scribe",
		Views:        django.NewPathForwardingFileSystem(http.FS(web.Views), "/views", ".html"),
		ViewsLayout:  "layout",
		ErrorHandler: s.ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Runs after requestid and tracing so both IDs reach the context.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:8000,http://127.0.0.1:8000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "WWW-Authenticate",
		MaxAge:        86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Static("/static", s.config.StaticDir)
	app.Static("/media", s.config.MediaDir)

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Scribe Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	users := api.Group("/users")
	users.Post("/", s.Register)
	users.Post("/token", s.Login)
	// Registered before /:id so "me" is not parsed as an ID.
	users.Get("/me", s.guard.Required(), s.GetMe)
	users.Get("/:id", s.GetUser)
	users.Get("/:id/posts", s.GetUserPosts)
	users.Patch("/:id", s.guard.Required(), s.UpdateUser)
	users.Delete("/:id", s.guard.Required(), s.DeleteUser)

	posts := api.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.guard.Required(), s.CreatePost)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.guard.Required(), s.ReplacePost)
	posts.Patch("/:id", s.guard.Required(), s.PatchPost)
	posts.Delete("/:id", s.guard.Required(), s.DeletePost)

	app.Get("/", s.HomePage)
	app.Get("/posts", s.HomePage)
	app.Get("/posts/:id", s.PostPage)
	app.Get("/users/:id/posts", s.UserPostsPage)
	app.Get("/login", s.LoginPage)
	app.Get("/register", s.RegisterPage)
	app.Get("/account", s.AccountPage)

	// Anything left is a 404 rendered by the error handler.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}

// LivenessCheck reports that the process is serving requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": dbStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases the resources owned by the server. The caller shuts
// down the fiber app first.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := database.Close(s.db); err != nil {
		middleware.Logger.ErrorContext(ctx, "error closing database", slog.String("error", err.Error()))
		return err
	}

	middleware.Logger.InfoContext(ctx, "Server shutdown complete")
	return nil
}
