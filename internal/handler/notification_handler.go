package handler

import (
	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/pkg/serverutils"
	"reflecto-be/internal/service"
	internalWS "reflecto-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service service.INotificationService
	auth    *serverutils.AuthMiddleware
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(
	svc service.INotificationService,
	auth *serverutils.AuthMiddleware,
	hub *internalWS.Hub,
	log logger.ILogger,
) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		auth:    auth,
		hub:     hub,
		logger:  log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	n := r.Group("/notification/v1")
	n.Use(h.auth.Required())
	n.Get("", h.GetNotifications)
	n.Get("/unread-count", h.UnreadCount)
	n.Put(":id/read", h.MarkRead)
}

// ServeWs upgrades the connection and attaches it to the hub. Browser
// websocket clients cannot set headers, so the token may arrive in the
// query string.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	identity := h.auth.ResolveToken(tokenStr)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusUnauthorized,
			"message": "authentication required",
		})
	}

	if websocket.IsWebSocketUpgrade(c) {
		userID := identity.Id
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	res, err := h.service.GetForUser(c.Context(), serverutils.IdentityFromCtx(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get notifications", res))
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.service.CountUnread(c.Context(), serverutils.IdentityFromCtx(c))
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get unread count", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.NotFound("notification")
	}

	if err := h.service.MarkRead(c.Context(), serverutils.IdentityFromCtx(c), id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Notification marked read", struct{}{}))
}
