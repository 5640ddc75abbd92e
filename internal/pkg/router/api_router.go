package router

import (
	"time"

	"github.com/ManuelReschke/ShellEconomy/app/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Storage:    newLimiterStorage(),
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/users/:id/approved-hours", controllers.HandleGetApprovedHours)
	v1.Get("/shop/items", controllers.HandleListShopItems)
	v1.Get("/shop/items/:id/price", controllers.HandleGetItemPrice)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
