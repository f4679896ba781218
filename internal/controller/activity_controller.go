package controller

import (
	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
}

type activityController struct {
	activityService service.IActivityService
}

func NewActivityController(activityService service.IActivityService) IActivityController {
	return &activityController{
		activityService: activityService,
	}
}

func (c *activityController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/activities", jwtMiddleware, c.List)
}

func (c *activityController) List(ctx *fiber.Ctx) error {
	var page dto.PageQuery
	if err := ctx.QueryParser(&page); err != nil {
		return apperror.Validation("Invalid query parameters")
	}

	res, err := c.activityService.List(ctx.UserContext(), serverutils.CallerFromCtx(ctx), page)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Activities retrieved", res))
}
