// FILE: internal/controller/plan_controller.go
// Controller for plan catalog endpoints
package controller

import (
	"plans-assistant-be/internal/pkg/serverutils"
	"plans-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router)
}

type planController struct {
	planService service.PlanService
}

func NewPlanController(planService service.PlanService) PlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router) {
	api.Get("/plans", c.GetAllPlans)
	api.Get("/plans/categories", c.GetCategories)
	api.Get("/plans/category/:category", c.GetPlansByCategory)
}

func (c *planController) GetAllPlans(ctx *fiber.Ctx) error {
	plans, err := c.planService.GetAllPlans(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}

func (c *planController) GetCategories(ctx *fiber.Ctx) error {
	categories, err := c.planService.GetCategories(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Categories retrieved", categories))
}

func (c *planController) GetPlansByCategory(ctx *fiber.Ctx) error {
	category := ctx.Params("category")

	plans, err := c.planService.GetPlansByCategory(ctx.Context(), category)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}
