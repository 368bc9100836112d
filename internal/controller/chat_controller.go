package controller

import (
	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	ArchiveSession(ctx *fiber.Ctx) error
	RestoreSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	auth    *serverutils.AuthMiddleware
}

func NewChatController(service service.IChatService, auth *serverutils.AuthMiddleware) IChatController {
	return &chatController{service: service, auth: auth}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1/sessions")
	h.Use(c.auth.Required())
	h.Get("", c.GetSessions)
	h.Post("", c.CreateSession)
	h.Put(":id/archive", c.ArchiveSession)
	h.Put(":id/restore", c.RestoreSession)
	h.Delete(":id", c.DeleteSession)
	h.Get(":id/messages", c.GetMessages)
	h.Post(":id/messages", c.SendMessage)
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	res, err := c.service.GetSessions(ctx.Context(), serverutils.IdentityFromCtx(ctx), ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context(), serverutils.IdentityFromCtx(ctx))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Session created", res))
}

func (c *chatController) ArchiveSession(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "chat session")
	if err != nil {
		return err
	}

	res, err := c.service.ArchiveSession(ctx.Context(), serverutils.IdentityFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session archived", res))
}

func (c *chatController) RestoreSession(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "chat session")
	if err != nil {
		return err
	}

	res, err := c.service.RestoreSession(ctx.Context(), serverutils.IdentityFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session restored", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "chat session")
	if err != nil {
		return err
	}

	if err := c.service.DeleteSession(ctx.Context(), serverutils.IdentityFromCtx(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session deleted", struct{}{}))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "chat session")
	if err != nil {
		return err
	}

	res, err := c.service.GetMessages(ctx.Context(), serverutils.IdentityFromCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "chat session")
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), serverutils.IdentityFromCtx(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}
