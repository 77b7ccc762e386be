package admin

import (
	"context"

	"brokerd/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers holds dependencies for the admin endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  *gorm.DB
}

// NewApp builds the read-only admin sidecar. It exposes operational
// visibility over HTTP while the brokerage protocol stays on the raw
// TCP socket.
func NewApp(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/health/json", h.JSON)
	app.Get("/ledger", h.Ledger)
	return app
}

// JSON returns health data: runtime, command traffic, dependencies.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx := context.Background()
	var pinger DBPinger
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil {
			pinger = sqlDB
		}
	}
	result := CollectHealth(ctx, h.Rdb, pinger)
	out := map[string]interface{}{
		"service":      "brokerd",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	}
	return c.JSON(out)
}

// Ledger returns a snapshot of users, holdings and recent trade events.
func (h *Handlers) Ledger(c *fiber.Ctx) error {
	if h.DB == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "database not configured"})
	}

	var users []domain.User
	if err := h.DB.Order("id asc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	var holdings []domain.Holding
	if err := h.DB.Order("id asc").Find(&holdings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	var events []domain.TradeEvent
	if err := h.DB.Order("created_at desc").Limit(50).Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"users":    users,
		"holdings": holdings,
		"events":   events,
	})
}
