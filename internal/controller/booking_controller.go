package controller

import (
	"strings"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/serverutils"
	"gymkaana-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	ListByGym(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Lookup(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	UpdateDate(ctx *fiber.Ctx) error
}

type bookingController struct {
	bookingService service.IBookingService
}

func NewBookingController(bookingService service.IBookingService) IBookingController {
	return &bookingController{
		bookingService: bookingService,
	}
}

func (c *bookingController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/bookings")

	// Public: checkout posts here after payment
	h.Post("", c.Create)
	h.Post("/create-direct", c.Create)

	h.Use(jwtMiddleware)
	h.Get("", c.List)
	h.Get("/my", c.ListMine)
	h.Get("/gym/:gymId", c.ListByGym)
	h.Post("/lookup-qr", c.Lookup)
	h.Post("/verify-qr", c.Lookup)
	h.Post("/confirm-qr", c.Confirm)
	h.Get("/:id", c.Show)
	h.Put("/:id/cancel", c.Cancel)
	h.Put("/:id/update-date", c.UpdateDate)
}

// Create books a plan for a member
// @Summary Create booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} dto.BookingResponse
// @Router /api/bookings [post]
func (c *bookingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := c.bookingService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Booking created", res))
}

func (c *bookingController) List(ctx *fiber.Ctx) error {
	var page dto.PageQuery
	if err := ctx.QueryParser(&page); err != nil {
		return apperror.Validation("Invalid query parameters")
	}

	res, err := c.bookingService.List(ctx.UserContext(), serverutils.CallerFromCtx(ctx), page)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Bookings retrieved", res))
}

func (c *bookingController) ListMine(ctx *fiber.Ctx) error {
	res, err := c.bookingService.ListMine(ctx.UserContext(), serverutils.CallerFromCtx(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Bookings retrieved", res))
}

func (c *bookingController) ListByGym(ctx *fiber.Ctx) error {
	gymId, err := paramId(ctx, "gymId")
	if err != nil {
		return err
	}

	res, err := c.bookingService.ListByGym(ctx.UserContext(), serverutils.CallerFromCtx(ctx), gymId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Bookings retrieved", res))
}

func (c *bookingController) Show(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.bookingService.GetById(ctx.UserContext(), serverutils.CallerFromCtx(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Booking retrieved", res))
}

// Lookup resolves a scanned QR code or a typed short reference
// @Summary Look up booking for check-in
// @Tags Bookings
// @Security BearerAuth
// @Param request body dto.LookupBookingRequest true "Reference"
// @Success 200 {object} dto.BookingResponse
// @Router /api/bookings/lookup-qr [post]
func (c *bookingController) Lookup(ctx *fiber.Ctx) error {
	var req dto.LookupBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := c.bookingService.Lookup(ctx.UserContext(), serverutils.CallerFromCtx(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Booking found", res))
}

// Confirm accepts or rejects a member at the desk
// @Summary Accept or reject check-in
// @Tags Bookings
// @Security BearerAuth
// @Param request body dto.ConfirmBookingRequest true "Decision"
// @Success 200 {object} dto.BookingResponse
// @Router /api/bookings/confirm-qr [post]
func (c *bookingController) Confirm(ctx *fiber.Ctx) error {
	var req dto.ConfirmBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := c.bookingService.Confirm(ctx.UserContext(), serverutils.CallerFromCtx(ctx), &req)
	if err != nil {
		return err
	}

	message := "Entry accepted"
	if strings.EqualFold(req.Action, "reject") {
		message = "Entry rejected"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.bookingService.Cancel(ctx.UserContext(), serverutils.CallerFromCtx(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Booking cancelled successfully", res))
}

func (c *bookingController) UpdateDate(ctx *fiber.Ctx) error {
	id, err := paramId(ctx, "id")
	if err != nil {
		return err
	}

	// Body is ignored, the operation is disabled.
	var req dto.UpdateBookingDateRequest
	_ = ctx.BodyParser(&req)

	if err := c.bookingService.UpdateDate(ctx.UserContext(), serverutils.CallerFromCtx(ctx), id, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Booking dates updated", nil))
}

func paramId(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid "+name, name)
	}
	return id, nil
}

func invalidBody() error {
	return apperror.Validation("Invalid request body")
}
