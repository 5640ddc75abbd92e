package router

import (
	"github.com/ManuelReschke/ShellEconomy/app/controllers"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/env"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type AdminRouter struct {
	keyHash string
}

func (h AdminRouter) InstallRouter(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdminKey(h.keyHash))

	// Global rate
	adminGroup.Get("/rates", controllers.HandleGetRates)
	adminGroup.Post("/rates", controllers.HandleUpdateRates)
	adminGroup.Put("/rates", controllers.HandleUpdateRates)
	adminGroup.Post("/rates/recalculate", controllers.HandleRecalculate)

	// Shop catalog
	adminGroup.Post("/shop/items", controllers.HandleCreateShopItem)

	// Reviewer dashboards
	adminGroup.Post("/approved-hours/batch", controllers.HandleApprovedHoursBatch)
	adminGroup.Delete("/approved-hours/:id", controllers.HandleInvalidateApprovedHours)
}

func NewAdminRouter() *AdminRouter {
	return &AdminRouter{keyHash: env.GetEnv("ADMIN_API_KEY_HASH", "")}
}
