package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuelReschke/ShellEconomy/app/controllers"
	"github.com/ManuelReschke/ShellEconomy/app/repository"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/cache"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/database"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/economy"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/env"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	controllers.InitializeEconomyController(economy.NewServiceFromEnv(repository.GetGlobalRepositories()))

	app := fiber.New(fiber.Config{
		BodyLimit: 1 << 20,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ROUTER
	router.InstallRouter(app)

	return app
}
