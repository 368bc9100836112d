package controller

import (
	"reflecto-be/internal/dto"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmissionController mounts with the optional auth middleware: both
// forms accept anonymous submissions, but a valid token attaches the
// caller to the stored message.
type ISubmissionController interface {
	RegisterRoutes(r fiber.Router)
	Contact(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
}

type submissionController struct {
	service service.ISubmissionService
	auth    *serverutils.AuthMiddleware
}

func NewSubmissionController(service service.ISubmissionService, auth *serverutils.AuthMiddleware) ISubmissionController {
	return &submissionController{service: service, auth: auth}
}

func (c *submissionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/submission/v1")
	h.Use(c.auth.Optional())
	h.Post("/contact", c.Contact)
	h.Post("/feedback", c.Feedback)
}

func (c *submissionController) Contact(ctx *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res, err := c.service.SubmitContact(ctx.Context(), serverutils.IdentityFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Message received", res))
}

func (c *submissionController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res, err := c.service.SubmitFeedback(ctx.Context(), serverutils.IdentityFromCtx(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Feedback received", res))
}
