package routes

import (
	"jobmatch/internal/delivery/http/handler"
	"jobmatch/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Auth            *middleware.AuthMiddleware
	Health          *handler.HealthHandler
	Recommendations *handler.RecommendationHandler
	Resume          *handler.ResumeHandler
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	if deps.Health != nil {
		deps.Health.RegisterRoutes(app)
	}

	v1 := app.Group("/api/v1")
	if deps.Auth != nil {
		v1.Use(deps.Auth.Middleware())
	}
	if deps.Recommendations != nil {
		deps.Recommendations.RegisterRoutes(v1)
	}
	if deps.Resume != nil {
		deps.Resume.RegisterRoutes(v1)
	}
}
