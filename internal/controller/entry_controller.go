package controller

import (
	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEntryController interface {
	RegisterRoutes(r fiber.Router)
	GetByNotebook(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type entryController struct {
	service service.IEntryService
	auth    *serverutils.AuthMiddleware
}

func NewEntryController(service service.IEntryService, auth *serverutils.AuthMiddleware) IEntryController {
	return &entryController{service: service, auth: auth}
}

func (c *entryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/entry/v1")
	h.Use(c.auth.Required())
	h.Get("/notebook/:notebookId", c.GetByNotebook)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *entryController) GetByNotebook(ctx *fiber.Ctx) error {
	notebookId, err := uuid.Parse(ctx.Params("notebookId"))
	if err != nil {
		return apperror.NotFound("notebook")
	}

	res, err := c.service.GetByNotebook(ctx.Context(), serverutils.IdentityFromCtx(ctx), notebookId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get entries", res))
}

func (c *entryController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), serverutils.IdentityFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Entry created", res))
}

func (c *entryController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "entry")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), serverutils.IdentityFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get entry", res))
}

func (c *entryController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "entry")
	if err != nil {
		return err
	}

	var req dto.UpdateEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.Update(ctx.Context(), serverutils.IdentityFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Entry updated", res))
}

func (c *entryController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "entry")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), serverutils.IdentityFromCtx(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Entry deleted", struct{}{}))
}
