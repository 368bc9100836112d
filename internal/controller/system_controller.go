package controller

import (
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	EmbeddingQueueStatus(ctx *fiber.Ctx) error
}

type systemController struct {
	service service.ISystemService
	auth    *serverutils.AuthMiddleware
}

func NewSystemController(service service.ISystemService, auth *serverutils.AuthMiddleware) ISystemController {
	return &systemController{service: service, auth: auth}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/system/v1")
	h.Use(c.auth.Required())
	h.Get("/embedding-queue", c.EmbeddingQueueStatus)
}

func (c *systemController) EmbeddingQueueStatus(ctx *fiber.Ctx) error {
	res, err := c.service.EmbeddingQueueStatus(ctx.Context(), serverutils.IdentityFromCtx(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get embedding queue status", res))
}
