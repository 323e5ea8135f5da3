// Package server wires HTTP routing onto the service layer.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberws "github.com/gofiber/websocket/v2"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sanaalens/internal/config"
	"sanaalens/internal/middleware"
	"sanaalens/internal/realtime"
	"sanaalens/internal/repository"
	"sanaalens/internal/service"
)

// Server holds the application's wiring: config, storage handles and the
// service layer behind every route.
type Server struct {
	app *fiber.App
	cfg *config.Config
	db  *gorm.DB
	rdb *redis.Client

	posts      *service.PostService
	engagement *service.EngagementService
	comments   *service.CommentService
	profiles   *service.ProfileService
	users      *service.UserService

	hub      *realtime.Hub
	notifier *realtime.Notifier

	prom *fiberprometheus.FiberPrometheus
}

// New builds a server from storage handles, constructing the repository
// and service layers internally.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	postRepo := repository.NewPostRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	userRepo := repository.NewUserRepository(db, rdb)

	hub := realtime.NewHub()
	notifier := realtime.NewNotifier(rdb, hub)

	return NewWithDeps(cfg, db, rdb,
		service.NewPostService(postRepo, engagementRepo, rdb),
		service.NewEngagementService(postRepo, engagementRepo, rdb),
		service.NewCommentService(commentRepo, postRepo, notifier),
		service.NewProfileService(userRepo, engagementRepo),
		service.NewUserService(userRepo),
		hub, notifier,
	)
}

// NewWithDeps builds a server from pre-constructed services. Tests use
// this to inject stubs.
func NewWithDeps(cfg *config.Config, db *gorm.DB, rdb *redis.Client,
	posts *service.PostService,
	engagement *service.EngagementService,
	comments *service.CommentService,
	profiles *service.ProfileService,
	users *service.UserService,
	hub *realtime.Hub,
	notifier *realtime.Notifier,
) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "sanaalens",
			DisableStartupMessage: cfg.IsProduction(),
		}),
		cfg:        cfg,
		db:         db,
		rdb:        rdb,
		posts:      posts,
		engagement: engagement,
		comments:   comments,
		profiles:   profiles,
		users:      users,
		hub:        hub,
		notifier:   notifier,
		prom:       middleware.InitMetrics("sanaalens"),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// App exposes the Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(helmet.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Viewer-Key",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	s.app.Use(middleware.ContextMiddleware())
	s.app.Use(middleware.StructuredLogger())
	s.app.Use(middleware.MetricsMiddleware(s.prom))
	s.app.Use(middleware.Tracing())
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.Health)
	s.app.Get("/health/live", s.HealthLive)
	s.app.Get("/health/ready", s.Health)
	s.prom.RegisterAt(s.app, "/metrics")

	api := s.app.Group("/api/v1")
	api.Use(middleware.RateLimit(s.rdb, 300, time.Minute, "api"))
	auth := middleware.AuthRequired(s.cfg.JWTSecret)
	optional := middleware.OptionalAuth(s.cfg.JWTSecret)

	// Writes get a tighter limit than reads.
	writeLimit := middleware.RateLimit(s.rdb, 30, time.Minute, "writes")

	api.Post("/auth/signup", writeLimit, s.Signup)
	api.Post("/auth/login", writeLimit, s.Login)

	// Specific post routes must come before the slug route.
	posts := api.Group("/posts")
	posts.Get("/featured", s.GetFeaturedPosts)
	posts.Get("/trending", s.GetTrendingPosts)
	posts.Get("/categories", s.GetCategories)
	posts.Get("/search", s.SearchPosts)
	posts.Get("/category/:category", s.GetPostsByCategory)
	posts.Get("/", s.GetPosts)
	posts.Get("/:slug", optional, s.GetPostBySlug)
	posts.Get("/:slug/related", s.GetRelatedPosts)

	api.Post("/posts/:id/view", s.RecordView)
	api.Post("/posts/:id/like", auth, writeLimit, s.ToggleLike)
	api.Get("/posts/:id/like", auth, s.GetLikeStatus)
	api.Post("/posts/:id/bookmark", auth, writeLimit, s.ToggleBookmark)

	api.Get("/posts/:id/comments", s.GetComments)
	api.Post("/posts/:id/comments", auth, writeLimit, s.CreateComment)
	api.Put("/comments/:id", auth, writeLimit, s.UpdateComment)
	api.Delete("/comments/:id", auth, writeLimit, s.DeleteComment)

	api.Get("/me", auth, s.GetMyProfile)
	api.Put("/me", auth, s.UpdateMyProfile)
	api.Put("/me/password", auth, s.ChangeMyPassword)
	api.Delete("/me", auth, s.DeleteMyAccount)
	api.Get("/me/bookmarks", auth, s.GetMyBookmarks)

	// Live comment stream. Auth is optional; watching a thread is public.
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws/posts/:id/comments", fiberws.New(s.CommentStream))
}

// HealthLive reports process liveness only.
func (s *Server) HealthLive(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Health reports process liveness and dependency reachability.
func (s *Server) Health(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status["database"] = "unreachable"
			status["status"] = "degraded"
		} else {
			status["database"] = "ok"
		}
	}
	if s.rdb != nil {
		if err := s.rdb.Ping(c.UserContext()).Err(); err != nil {
			status["redis"] = "unreachable"
			status["status"] = "degraded"
		} else {
			status["redis"] = "ok"
		}
	}

	return c.JSON(status)
}

// Listen starts the HTTP listener and the realtime relay.
func (s *Server) Listen(ctx context.Context, addr string) error {
	if s.notifier != nil {
		go s.notifier.Run(ctx)
	}
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
