package controller

import (
	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type planController struct {
	planService service.PlanService
}

func NewPlanController(planService service.PlanService) PlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	// Public endpoints
	api.Get("/gyms/:gymId/plans", c.ListByGym)
	api.Get("/plans/:id", c.Show)

	// Gym owner or admin
	plans := api.Group("/plans", jwtMiddleware)
	plans.Post("", c.Create)
	plans.Put("/:id", c.Update)
	plans.Delete("/:id", c.Delete)
}

// ListByGym returns every plan of a gym, enabled or not
// @Summary List gym plans
// @Tags Plans
// @Produce json
// @Success 200 {object} []dto.PlanResponse
// @Router /api/gyms/{gymId}/plans [get]
func (c *planController) ListByGym(ctx *fiber.Ctx) error {
	gymId, err := paramId(ctx, "gymId")
	if err != nil {
		return err
	}

	plans, err := c.planService.ListByGym(ctx.UserContext(), gymId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}

func (c *planController) Show(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	plan, err := c.planService.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Plan retrieved", plan))
}

func (c *planController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return invalidBody()
	}

	plan, err := c.planService.Create(ctx.UserContext(), serverutils.CallerFromCtx(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Plan created", plan))
}

func (c *planController) Update(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return invalidBody()
	}

	plan, err := c.planService.Update(ctx.UserContext(), serverutils.CallerFromCtx(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Plan updated", plan))
}

func (c *planController) Delete(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.planService.Delete(ctx.UserContext(), serverutils.CallerFromCtx(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Plan deleted", nil))
}
