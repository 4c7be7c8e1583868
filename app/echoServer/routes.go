package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/kotresh75/Aws-Project/app/echoServer/controller"
	authctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/auth"
	bookctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/book"
	notifctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/notification"
	requestctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/request"
	userctrl "github.com/kotresh75/Aws-Project/app/echoServer/controller/user"
)

type C struct {
	Auth    *authctrl.Controller
	Book    *bookctrl.Controller
	Request *requestctrl.Controller
	Notif   *notifctrl.Controller
	User    *userctrl.Controller
	Stats   *controller.StatsController

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tok, ok := ctx.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			return next(ctx)
		}
	})

	// Books
	auth.GET("/books", c.Book.List)
	auth.GET("/books/:id", c.Book.Detail)
	// Staff catalog management
	auth.POST("/books", c.Book.Create)
	auth.PUT("/books/:id", c.Book.Edit)
	auth.DELETE("/books/:id", c.Book.Delete)

	// Requests
	auth.POST("/requests", c.Request.Create)
	auth.GET("/requests", c.Request.ListAll)
	auth.GET("/requests/my", c.Request.ListMine)
	auth.POST("/requests/:id/:action", c.Request.Transition)

	// Notifications
	auth.GET("/notifications", c.Notif.List)
	auth.POST("/notifications/:id/read", c.Notif.MarkRead)

	// Staff user management
	auth.GET("/users/students", c.User.ListStudents)
	auth.DELETE("/users/:email", c.User.Remove)

	// Stats
	auth.GET("/stats", c.Stats.Snapshot)
}
