package router

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/middleware"
	"rite-api/modules/auth/controller"
)

type AuthRouter struct {
	Controller *controller.AuthController
}

func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{Controller: ctrl}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	e.POST("/api/v1/auth/google", r.Controller.GoogleLogin)

	priv := e.Group("/api/v1/private", mw.AuthMiddleware())
	priv.GET("/me", r.Controller.Me)
	priv.POST("/auth/logout", r.Controller.Logout)
}
