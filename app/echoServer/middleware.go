// app/echoServer/middleware.go
package echoServer

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"camrental/app/echoServer/jwtx"
	"camrental/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// UserLoader resolves the token subject to a stored user record.
type UserLoader interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

// Identity runs after the JWT middleware. It resolves the token subject
// against the credential store, so tokens for deleted users stop working,
// and parks the user on the context for handlers and the admin gate.
func Identity(users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := jwtx.UserIDFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
			}

			u, err := users.ByID(c.Request().Context(), uid)
			if err != nil || u == nil {
				rid := c.Response().Header().Get(echo.HeaderXRequestID)
				slog.Warn("token subject not found", "user_id", uid, "req_id", rid)
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
			}

			c.Set("user_id", u.ID)
			c.Set("role", u.Role)
			c.Set("current_user", u)
			return next(c)
		}
	}
}

// RequireAdmin gates catalog mutations. It only ever runs behind Identity,
// so an unauthenticated caller sees 401, never 403.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get("role").(string)
		if role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "admin privileges required"})
		}
		return next(c)
	}
}
