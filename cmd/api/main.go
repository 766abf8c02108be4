package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/careloop/backend/auth"
	"github.com/careloop/backend/config"
	"github.com/careloop/backend/database"
	"github.com/careloop/backend/logging"
	"github.com/careloop/backend/middleware/bearerware"
	"github.com/careloop/backend/routine"
	"github.com/careloop/backend/shop"
)

// userTrackerAdapter narrows the users repository to the slice the identity
// provider needs.
type userTrackerAdapter struct {
	users auth.Users
}

func (a userTrackerAdapter) GetByIdentifier(ctx context.Context, identifier string) (*auth.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a userTrackerAdapter) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return a.users.GetByUsername(ctx, username)
}

func (a userTrackerAdapter) TrackAttemptedLogin(ctx context.Context, user *auth.User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a userTrackerAdapter) TrackSuccessfulLogin(ctx context.Context, user *auth.User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("error").Fatal("invalid configuration", "error", err)
	}

	logger := logging.New(cfg.LogLevel)

	signingKey, generated, err := auth.ResolveSigningKey(cfg.GetSigningKey())
	if err != nil {
		logger.Fatal("failed to resolve signing key", "error", err)
	}
	if generated {
		if cfg.IsProduction() {
			logger.Fatal("refusing to start with an ephemeral signing key in production")
		}
		logger.Warn("JWT_SECRET not set, generated an ephemeral signing key: tokens will not survive a restart")
	}

	db, err := database.Connect(cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to open database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db, logger.WithComponent("database")); err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}

	repo := auth.NewRepositoryManager(db)

	tokens := auth.NewTokenService(signingKey, cfg.GetTokenTTL(), logger.WithComponent("tokens"))
	provider := auth.NewUserProvider(userTrackerAdapter{users: repo.Users()}).
		WithLogger(logger.WithComponent("identity"))
	auther := auth.NewAuthenticator(repo, provider, tokens).
		WithLogger(logger.WithComponent("auth"))

	routineService := routine.NewService(routine.NewRepository(db), logger.WithComponent("routine"))
	shopService := shop.NewService(shop.NewRepository(db), logger.WithComponent("shop"))

	app := fiber.New(fiber.Config{
		AppName:      "careloop-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(bearerware.New(bearerware.Config{
		Tokens:     tokens,
		Identities: provider,
		AuthScheme: cfg.GetAuthScheme(),
		Logger:     logger.WithComponent("bearer"),
	}))

	authRoutes := auth.DefaultAuthRoutes()
	policy := auth.NewAccessPolicy(
		authRoutes.Register,
		authRoutes.Login,
		authRoutes.Health,
	)
	app.Use(bearerware.RequireIdentity(policy))

	auth.RegisterAuthRoutes(app,
		auth.WithAuthenticator(auther),
		auth.WithRoutes(authRoutes),
		auth.WithControllerLogger(logger.WithComponent("auth.http")),
	)

	routine.NewController(routineService, logger.WithComponent("routine.http")).RegisterRoutes(app)
	shop.NewController(shopService, logger.WithComponent("shop.http")).RegisterRoutes(app)

	go func() {
		logger.Info("server listening", "addr", cfg.ServerAddr)
		if err := app.Listen(cfg.ServerAddr); err != nil {
			logger.Fatal("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
