package router

import (
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/ShellEconomy/internal/pkg/cache"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/env"
)

// limiterDatabase keeps rate limit counters apart from the cache (DB 0)
const limiterDatabase = 2

func newLimiterStorage() fiber.Storage {
	// Reuse the address of the cache client
	cacheClient := cache.GetClient()
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnvInt("CACHE_PORT", 6379)
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient != nil {
		if h, p, err := net.SplitHostPort(cacheClient.Options().Addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: limiterDatabase,
		Reset:    false,
	})
}
