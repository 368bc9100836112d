package controller

import (
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PublicNotebookController serves the anonymous read surface. No auth
// middleware is mounted here on purpose.
type IPublicNotebookController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	ListByHandle(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type publicNotebookController struct {
	service service.IPublicNotebookService
}

func NewPublicNotebookController(service service.IPublicNotebookService) IPublicNotebookController {
	return &publicNotebookController{service: service}
}

func (c *publicNotebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebook/v1/public")
	h.Get("", c.List)
	// The literal segment must register before the :id wildcard.
	h.Get("user/:handle", c.ListByHandle)
	h.Get(":id", c.Show)
}

func (c *publicNotebookController) ListByHandle(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 0)

	res, err := c.service.ListByHandle(ctx.Context(), ctx.Params("handle"), page, pageSize)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get public notebooks", res))
}

func (c *publicNotebookController) List(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 0)

	res, err := c.service.List(ctx.Context(), page, pageSize)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get public notebooks", res))
}

func (c *publicNotebookController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "notebook")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get public notebook", res))
}
