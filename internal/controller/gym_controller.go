package controller

import (
	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGymController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware, optionalJwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type gymController struct {
	gymService service.IGymService
}

func NewGymController(gymService service.IGymService) IGymController {
	return &gymController{
		gymService: gymService,
	}
}

func (c *gymController) RegisterRoutes(r fiber.Router, jwtMiddleware, optionalJwtMiddleware fiber.Handler) {
	h := r.Group("/gyms")
	h.Get("", optionalJwtMiddleware, c.List)
	h.Get("/:id", c.Show)
	h.Post("", jwtMiddleware, c.Create)
	h.Put("/:id", jwtMiddleware, c.Update)
	h.Delete("/:id", jwtMiddleware, c.Delete)
}

// List returns the gyms visible to the caller
// @Summary List gyms
// @Tags Gyms
// @Param ownerId query string false "Owner filter (admin only)"
// @Param managed query bool false "Only gyms managed by the caller"
// @Success 200 {object} []dto.GymResponse
// @Router /api/gyms [get]
func (c *gymController) List(ctx *fiber.Ctx) error {
	var query dto.ListGymsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.Validation("Invalid query parameters")
	}

	res, err := c.gymService.List(ctx.UserContext(), serverutils.CallerFromCtx(ctx), query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Gyms retrieved", res))
}

func (c *gymController) Show(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.gymService.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Gym retrieved", res))
}

func (c *gymController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateGymRequest
	if err := ctx.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := c.gymService.Create(ctx.UserContext(), serverutils.CallerFromCtx(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Gym registered", res))
}

func (c *gymController) Update(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateGymRequest
	if err := ctx.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := c.gymService.Update(ctx.UserContext(), serverutils.CallerFromCtx(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Gym updated", res))
}

func (c *gymController) Delete(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.gymService.Delete(ctx.UserContext(), serverutils.CallerFromCtx(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Gym deleted", nil))
}
