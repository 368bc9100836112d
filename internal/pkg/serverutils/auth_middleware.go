package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"reflecto-be/internal/entity"
)

const identityLocal = "identity"

// AuthMiddleware resolves the caller identity from the bearer token.
// The secret is injected once at construction instead of read from the
// environment on every request, so handlers and tests never depend on
// ambient state.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// Required aborts with 401 when no valid identity can be resolved.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity := m.resolve(ctx)
		if identity == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusUnauthorized,
				"message": "authentication required",
			})
		}
		ctx.Locals(identityLocal, identity)
		return ctx.Next()
	}
}

// Optional resolves an identity when a valid token is present and
// continues as anonymous otherwise. An absent or expired token is a
// normal outcome here, never an error.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if identity := m.resolve(ctx); identity != nil {
			ctx.Locals(identityLocal, identity)
		}
		return ctx.Next()
	}
}

func (m *AuthMiddleware) resolve(ctx *fiber.Ctx) *entity.Identity {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return m.ResolveToken(ctx.Query("token")) // websocket clients pass the token via query
	}
	return m.ResolveToken(authHeader[7:])
}

// ResolveToken parses and verifies a raw token string. Returns nil for
// anything invalid; the caller decides whether anonymous is acceptable.
func (m *AuthMiddleware) ResolveToken(tokenStr string) *entity.Identity {
	if tokenStr == "" {
		return nil
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = string(entity.UserRoleUser)
	}

	return &entity.Identity{Id: userId, Role: entity.UserRole(role)}
}

// IdentityFromCtx returns the resolved identity or nil for anonymous
// callers. Services receive this value explicitly; they never reach
// back into the request context.
func IdentityFromCtx(ctx *fiber.Ctx) *entity.Identity {
	identity, _ := ctx.Locals(identityLocal).(*entity.Identity)
	return identity
}
