package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Routes collects what RegisterRoutes mounts. Nil middlewares are skipped.
type Routes struct {
	Health      *Handler
	Clients     *ClientHandler
	Auth        *AuthHandler
	Metrics     http.Handler
	RequireAuth echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func RegisterRoutes(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	if r.Auth != nil {
		e.POST("/login", r.Auth.Login)
		e.POST("/users", r.Auth.Register)
		e.POST("/forgot-password", r.Auth.ForgotPassword)
		e.POST("/reset-password", r.Auth.ResetPassword)
	}

	var mw []echo.MiddlewareFunc
	for _, m := range []echo.MiddlewareFunc{r.RequireAuth, r.Idempotency} {
		if m != nil {
			mw = append(mw, m)
		}
	}
	g := e.Group("/clients", mw...)
	g.GET("", r.Clients.List)
	g.POST("", r.Clients.Create)
	g.GET("/:id", r.Clients.Get)
	g.PUT("/:id", r.Clients.Update)
	g.DELETE("/:id", r.Clients.Delete)
}
