package controller

import (
	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
	Unpublish(ctx *fiber.Ctx) error
	SetTags(ctx *fiber.Ctx) error
}

type notebookController struct {
	service service.INotebookService
	auth    *serverutils.AuthMiddleware
}

func NewNotebookController(service service.INotebookService, auth *serverutils.AuthMiddleware) INotebookController {
	return &notebookController{service: service, auth: auth}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebook/v1")
	h.Use(c.auth.Required())
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Put(":id/publish", c.Publish)
	h.Put(":id/unpublish", c.Unpublish)
	h.Put(":id/tags", c.SetTags)
}

// paramID parses the :id segment. A malformed id behaves like an absent
// resource.
func paramID(ctx *fiber.Ctx, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound(resource)
	}
	return id, nil
}

func (c *notebookController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context(), serverutils.IdentityFromCtx(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all notebooks", res))
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNotebookRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Notebook created", res))
}

func (c *notebookController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "notebook")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), serverutils.IdentityFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get notebook", res))
}

func (c *notebookController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "notebook")
	if err != nil {
		return err
	}

	var req dto.UpdateNotebookRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Notebook updated", res))
}

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "notebook")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), serverutils.IdentityFromCtx(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notebook deleted", struct{}{}))
}

func (c *notebookController) Publish(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "notebook")
	if err != nil {
		return err
	}

	res, err := c.service.Publish(ctx.Context(), serverutils.IdentityFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notebook published", res))
}

func (c *notebookController) Unpublish(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "notebook")
	if err != nil {
		return err
	}

	res, err := c.service.Unpublish(ctx.Context(), serverutils.IdentityFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notebook unpublished", res))
}

func (c *notebookController) SetTags(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "notebook")
	if err != nil {
		return err
	}

	var req dto.SetNotebookTagsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Id = id

	res, err := c.service.SetTags(ctx.Context(), serverutils.IdentityFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notebook tags updated", res))
}
