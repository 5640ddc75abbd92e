package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/economy"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/pricing"
)

// maxBatchUsers bounds a single approved-hours batch request.
const maxBatchUsers = 500

// EconomyService is what the economy handlers need from the service layer
type EconomyService interface {
	ApprovedHours(ctx context.Context, userID uint) (*economy.ApprovedHours, error)
	ApprovedHoursBatch(ctx context.Context, userIDs []uint) ([]economy.ApprovedHours, error)
	InvalidateApprovedHours(ctx context.Context, userID uint) error
	ListItems(ctx context.Context) ([]models.ShopItem, error)
	Quote(ctx context.Context, itemID, userID uint) (*economy.PriceQuote, error)
	CreateItem(ctx context.Context, item *models.ShopItem) error
	RateConfig(ctx context.Context) (models.GlobalRateConfig, error)
	UpdateRateConfig(ctx context.Context, cfg models.GlobalRateConfig) (*economy.RecalcReport, error)
	RecalculateFixedPrices(ctx context.Context) (*economy.RecalcReport, error)
}

// EconomyController serves approved hours, shop prices and the admin rate endpoints
type EconomyController struct {
	svc EconomyService
}

// NewEconomyController creates a new economy controller
func NewEconomyController(svc EconomyService) *EconomyController {
	return &EconomyController{svc: svc}
}

// Global economy controller instance
var economyController *EconomyController

// InitializeEconomyController initializes the global economy controller
func InitializeEconomyController(svc EconomyService) {
	economyController = NewEconomyController(svc)
}

// GetEconomyController returns the global economy controller instance
func GetEconomyController() *EconomyController {
	if economyController == nil {
		log.Fatal("[Economy] controller used before InitializeEconomyController")
	}
	return economyController
}

// HandleGetApprovedHours returns the approved hours of a user. A failed lookup
// still answers 200 with a zero total and degraded set.
func (ec *EconomyController) HandleGetApprovedHours(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	res, err := ec.svc.ApprovedHours(c.UserContext(), userID)
	if err != nil {
		if res == nil {
			return internalError(c, "Failed to load approved hours")
		}
		log.Warnf("[Hours] user %d: %v", userID, err)
	}
	return c.JSON(res)
}

// HandleInvalidateApprovedHours drops the cached snapshot of a user so the next
// dashboard read recomputes it, e.g. after a reviewer override.
func (ec *EconomyController) HandleInvalidateApprovedHours(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := ec.svc.InvalidateApprovedHours(c.UserContext(), userID); err != nil {
		return internalError(c, "Failed to invalidate approved hours")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type batchApprovedHoursRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// HandleApprovedHoursBatch computes approved hours for many users at once
func (ec *EconomyController) HandleApprovedHoursBatch(c *fiber.Ctx) error {
	var req batchApprovedHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.UserIDs) == 0 {
		return badRequest(c, "user_ids must not be empty")
	}
	if len(req.UserIDs) > maxBatchUsers {
		return badRequest(c, "Too many user_ids")
	}

	results, err := ec.svc.ApprovedHoursBatch(c.UserContext(), req.UserIDs)
	if err != nil {
		log.Warnf("[Hours] batch of %d users degraded: %v", len(req.UserIDs), err)
	}
	return c.JSON(fiber.Map{"results": results})
}

// HandleListShopItems lists all shop items with their base prices
func (ec *EconomyController) HandleListShopItems(c *fiber.Ctx) error {
	items, err := ec.svc.ListItems(c.UserContext())
	if err != nil {
		return internalError(c, "Failed to load shop items")
	}
	if items == nil {
		items = []models.ShopItem{}
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleGetItemPrice returns the price a user currently sees for an item
func (ec *EconomyController) HandleGetItemPrice(c *fiber.Ctx) error {
	itemID, err := parseUintParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid item id")
	}
	userID, err := parseUintQuery(c, "user_id")
	if err != nil {
		return badRequest(c, "Invalid or missing user_id")
	}

	quote, err := ec.svc.Quote(c.UserContext(), itemID, userID)
	if err != nil {
		switch {
		case isNotFound(err):
			return notFound(c, "Item not found")
		case errors.Is(err, pricing.ErrInvalidCostBasis):
			return unprocessable(c, err.Error())
		default:
			return internalError(c, "Failed to compute price")
		}
	}
	return c.JSON(quote)
}

// HandleCreateShopItem stores a new item with an engine-derived base price
func (ec *EconomyController) HandleCreateShopItem(c *fiber.Ctx) error {
	var item models.ShopItem
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, "Invalid request body")
	}
	item.ID = 0

	if err := ec.svc.CreateItem(c.UserContext(), &item); err != nil {
		if isValidationError(err) {
			return badRequest(c, err.Error())
		}
		if errors.Is(err, pricing.ErrInvalidCostBasis) {
			return unprocessable(c, err.Error())
		}
		return internalError(c, "Failed to create shop item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGetRates returns the global rate config
func (ec *EconomyController) HandleGetRates(c *fiber.Ctx) error {
	cfg, err := ec.svc.RateConfig(c.UserContext())
	if err != nil {
		return internalError(c, "Failed to load rate config")
	}
	return c.JSON(cfg)
}

type updateRatesRequest struct {
	DollarsPerHour        *float64 `json:"dollars_per_hour"`
	PriceRandomMinPercent *float64 `json:"price_random_min_percent"`
	PriceRandomMaxPercent *float64 `json:"price_random_max_percent"`
}

// HandleUpdateRates applies a partial rate change. A new dollars per hour
// triggers recalculation of all fixed prices; the report is returned.
func (ec *EconomyController) HandleUpdateRates(c *fiber.Ctx) error {
	var req updateRatesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cfg, err := ec.svc.RateConfig(c.UserContext())
	if err != nil {
		return internalError(c, "Failed to load rate config")
	}
	if req.DollarsPerHour != nil {
		cfg.DollarsPerHour = *req.DollarsPerHour
	}
	if req.PriceRandomMinPercent != nil {
		cfg.PriceRandomMinPercent = *req.PriceRandomMinPercent
	}
	if req.PriceRandomMaxPercent != nil {
		cfg.PriceRandomMaxPercent = *req.PriceRandomMaxPercent
	}

	report, err := ec.svc.UpdateRateConfig(c.UserContext(), cfg)
	if err != nil {
		if isValidationError(err) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "Failed to update rate config")
	}
	return c.JSON(fiber.Map{"rates": cfg, "recalculation": report})
}

// HandleRecalculate reruns recalculation with the stored rate
func (ec *EconomyController) HandleRecalculate(c *fiber.Ctx) error {
	report, err := ec.svc.RecalculateFixedPrices(c.UserContext())
	if err != nil {
		return internalError(c, "Failed to recalculate prices")
	}
	return c.JSON(report)
}

// Adapter functions for the router

func HandleGetApprovedHours(c *fiber.Ctx) error {
	return GetEconomyController().HandleGetApprovedHours(c)
}

func HandleInvalidateApprovedHours(c *fiber.Ctx) error {
	return GetEconomyController().HandleInvalidateApprovedHours(c)
}

func HandleApprovedHoursBatch(c *fiber.Ctx) error {
	return GetEconomyController().HandleApprovedHoursBatch(c)
}

func HandleListShopItems(c *fiber.Ctx) error {
	return GetEconomyController().HandleListShopItems(c)
}

func HandleGetItemPrice(c *fiber.Ctx) error {
	return GetEconomyController().HandleGetItemPrice(c)
}

func HandleCreateShopItem(c *fiber.Ctx) error {
	return GetEconomyController().HandleCreateShopItem(c)
}

func HandleGetRates(c *fiber.Ctx) error {
	return GetEconomyController().HandleGetRates(c)
}

func HandleUpdateRates(c *fiber.Ctx) error {
	return GetEconomyController().HandleUpdateRates(c)
}

func HandleRecalculate(c *fiber.Ctx) error {
	return GetEconomyController().HandleRecalculate(c)
}
