package controller

import (
	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type tagController struct {
	service service.ITagService
	auth    *serverutils.AuthMiddleware
}

func NewTagController(service service.ITagService, auth *serverutils.AuthMiddleware) ITagController {
	return &tagController{service: service, auth: auth}
}

func (c *tagController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tag/v1")
	h.Use(c.auth.Required())
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Delete(":id", c.Delete)
}

func (c *tagController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context(), serverutils.IdentityFromCtx(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get tags", res))
}

func (c *tagController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTagRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Tag created", res))
}

func (c *tagController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "tag")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), serverutils.IdentityFromCtx(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tag deleted", struct{}{}))
}
