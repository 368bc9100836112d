package controller

import (
	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Profile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	SetPublicHandle(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
	auth    *serverutils.AuthMiddleware
}

func NewUserController(service service.IUserService, auth *serverutils.AuthMiddleware) IUserController {
	return &userController{service: service, auth: auth}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(c.auth.Required())
	h.Get("/profile", c.Profile)
	h.Put("/profile", c.UpdateProfile)
	h.Put("/public-handle", c.SetPublicHandle)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	res, err := c.service.GetProfile(ctx.Context(), serverutils.IdentityFromCtx(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), serverutils.IdentityFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) SetPublicHandle(ctx *fiber.Ctx) error {
	var req dto.SetPublicHandleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetPublicHandle(ctx.Context(), serverutils.IdentityFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Public handle set", res))
}
