package echoServer

import (
	"net/http"

	"camrental/app/echoServer/controller/auth"
	"camrental/app/echoServer/controller/camera"
	"camrental/app/echoServer/controller/rental"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig verifies bearer tokens on the protected group. Absent and
// malformed tokens both map to 401.
func JWTConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(secret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
		},
	}
}

type C struct {
	Auth   *auth.Controller
	Camera *camera.Controller
	Rental *rental.Controller

	Users     UserLoader
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// Open catalog reads
	pub.GET("/cameras", c.Camera.List)
	pub.GET("/cameras/:id", c.Camera.Detail)

	// Bearer token required
	authed := e.Group("/api")
	authed.Use(echojwt.WithConfig(JWTConfig(c.JWTSecret)))
	authed.Use(Identity(c.Users))

	authed.GET("/rentals", c.Rental.List)
	authed.GET("/rentals/:id", c.Rental.Detail)
	authed.POST("/rentals", c.Rental.Create)
	authed.PATCH("/rentals/:id/status", c.Rental.UpdateStatus)

	// Catalog mutations are admin only
	admin := authed.Group("", RequireAdmin)
	admin.POST("/cameras", c.Camera.Create)
	admin.PUT("/cameras/:id", c.Camera.Update)
	admin.DELETE("/cameras/:id", c.Camera.Delete)
}
