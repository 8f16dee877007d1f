package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxAuthKey   = "auth"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token and stores the
// caller's AuthContext in the request locals.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		auth, claims, err := m.authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		c.Locals(CtxUserIDKey, auth.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxAuthKey, auth)
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(header string) (user.AuthContext, jwt.Claims, error) {
	token, ok := BearerToken(header)
	if !ok {
		return user.AuthContext{}, jwt.Claims{}, unauthorized("Unauthorized", nil)
	}

	claims, err := m.jwt.ValidateToken(token)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return user.AuthContext{}, jwt.Claims{}, unauthorized("Token expired", err)
	case err != nil:
		return user.AuthContext{}, jwt.Claims{}, unauthorized("Invalid token", err)
	case claims.TokenType != jwt.TokenTypeAccess:
		return user.AuthContext{}, jwt.Claims{}, unauthorized("Invalid token", nil)
	}

	// tokens issued before roles existed carry none and must be renewed
	role, ok := user.ParseRole(claims.Role)
	if !ok {
		return user.AuthContext{}, jwt.Claims{}, unauthorized("Invalid token", nil)
	}
	return user.AuthContext{UserID: claims.UserID, Role: role, Token: token}, claims, nil
}

func unauthorized(msg string, cause error) error {
	return NewAppError(fiber.StatusUnauthorized, msg, nil, cause)
}

// AuthFromCtx returns the AuthContext set by the auth middleware, or the
// zero value on routes it does not guard.
func AuthFromCtx(c fiber.Ctx) user.AuthContext {
	a, _ := c.Locals(CtxAuthKey).(user.AuthContext)
	return a
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
