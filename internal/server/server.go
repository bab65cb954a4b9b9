package server

import (
	"context"

	"career-compass-be/internal/bootstrap"
	"career-compass-be/internal/config"
	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) (*Server, error) {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, resumes are capped lower by the handler
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return serverutils.WriteError(ctx, container.Logger, err)
		},
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{"status": "up"}))
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{})))

	jwtMiddleware, err := serverutils.NewJwtMiddleware(serverutils.JwtConfig{
		PublicKeyPEM: cfg.Auth.PublicKeyPEM,
		Secret:       cfg.Auth.JWTSecret,
		Issuer:       cfg.Auth.Issuer,
	})
	if err != nil {
		return nil, err
	}
	auth := []fiber.Handler{jwtMiddleware, serverutils.UserResolver(resolveUser(container))}

	registerRoutes(app, container, auth)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}, nil
}

func resolveUser(c *bootstrap.Container) serverutils.ResolveUserFunc {
	return func(ctx context.Context, identity serverutils.IdentityClaims) (string, error) {
		id, err := c.UserService.ResolveUser(ctx, dto.Identity{
			ExternalId: identity.Subject,
			Email:      identity.Email,
			Name:       identity.Name,
			ImageURL:   identity.Picture,
		})
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"port": s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container, auth []fiber.Handler) {
	api := app.Group("/api")

	c.UserController.RegisterRoutes(api, auth...)
	c.AssessmentController.RegisterRoutes(api, auth...)
	c.ValidationController.RegisterRoutes(api, auth...)
	c.RoadmapController.RegisterRoutes(api, auth...)
	c.FeedbackController.RegisterRoutes(api, auth...)
	c.OpportunityController.RegisterRoutes(api, auth...)
	c.WritingController.RegisterRoutes(api, auth...)
	c.InsightController.RegisterRoutes(api, auth...)
}
