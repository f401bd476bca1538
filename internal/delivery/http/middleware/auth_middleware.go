package middleware

import (
	"strings"

	"arena/internal/delivery/http/response"
	domainerrors "arena/internal/domain/errors"
	"arena/internal/domain/service"
	"arena/internal/errors"

	"github.com/labstack/echo/v4"
)

// UsernameContextKey is the echo context key carrying the authenticated username.
const UsernameContextKey = "username"

// AuthMiddleware provides middleware for bearer-token authentication.
type AuthMiddleware struct {
	codec service.TokenCodec
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(codec service.TokenCodec) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// Authenticate validates the Authorization bearer token and stores the claim
// username on the context. All token failure kinds return 401 with the typed
// error code, nothing more.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.codec.Verify(tokenString)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) {
				return response.Unauthorized(c, appErr.ErrorCode(), appErr.Message())
			}

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		if claims.Username == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Username missing from token")
		}

		c.Set(UsernameContextKey, claims.Username)

		return next(c)
	}
}
