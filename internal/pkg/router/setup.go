package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router registers a group of routes on the app
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Controllers must be initialized before the routers are installed.
	setup(app, NewApiRouter(), NewAdminRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
