package app

import (
	"fmt"
	"log"
	"strings"

	"jobmatch/internal/delivery/http/handler"
	"jobmatch/internal/delivery/http/middleware"
	"jobmatch/internal/delivery/http/routes"
	"jobmatch/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(container *Container) *App {
	f := fiber.New(fiber.Config{AppName: container.Config.App.AppName})

	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(log.Default()).Middleware())

	jwtSvc := jwt.NewHMACService(container.Config.App.JWTSecret)

	routes.Register(f, routes.Deps{
		Auth:            middleware.NewAuthMiddleware(jwtSvc),
		Health:          handler.NewHealthHandler(container.DB),
		Recommendations: handler.NewRecommendationHandler(container.Recommendations),
		Resume:          handler.NewResumeHandler(container.ResumeUploads),
	})

	return &App{Fiber: f, Container: container}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
