package serverutils

import (
	"strings"

	"gymkaana-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const callerLocalKey = "caller"

// NewJwtMiddleware rejects requests without a valid bearer token and stores
// the caller identity in the request locals.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		caller, err := parseBearer(ctx.Get("Authorization"), secret)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
		}
		setCaller(ctx, caller)
		return ctx.Next()
	}
}

// NewOptionalJwtMiddleware attaches the caller when a valid token is present
// and lets anonymous requests through.
func NewOptionalJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if header := ctx.Get("Authorization"); header != "" {
			if caller, err := parseBearer(header, secret); err == nil {
				setCaller(ctx, caller)
			}
		}
		return ctx.Next()
	}
}

// CallerFromCtx returns the caller set by the JWT middleware, or the zero
// Caller for anonymous requests.
func CallerFromCtx(ctx *fiber.Ctx) entity.Caller {
	if caller, ok := ctx.Locals(callerLocalKey).(entity.Caller); ok {
		return caller
	}
	return entity.Caller{}
}

// ParseToken validates a raw token. The websocket feed uses it for the
// token query parameter.
func ParseToken(tokenStr, secret string) (entity.Caller, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return entity.Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
	}

	rawId, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(rawId)
	if err != nil {
		return entity.Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
	}

	return entity.Caller{UserId: userId, Roles: rolesFromClaims(claims)}, nil
}

func parseBearer(header, secret string) (entity.Caller, error) {
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return entity.Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}
	return ParseToken(header[7:], secret)
}

func setCaller(ctx *fiber.Ctx, caller entity.Caller) {
	ctx.Locals(callerLocalKey, caller)
	ctx.Locals("user_id", caller.UserId.String())
}

// rolesFromClaims accepts either a "roles" array or a single "role" string.
func rolesFromClaims(claims jwt.MapClaims) []entity.Role {
	var roles []entity.Role
	if list, ok := claims["roles"].([]interface{}); ok {
		for _, r := range list {
			if s, ok := r.(string); ok && s != "" {
				roles = append(roles, entity.Role(strings.ToLower(s)))
			}
		}
	}
	if s, ok := claims["role"].(string); ok && s != "" {
		roles = append(roles, entity.Role(strings.ToLower(s)))
	}
	if len(roles) == 0 {
		roles = []entity.Role{entity.RoleUser}
	}
	return roles
}
