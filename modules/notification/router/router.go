package router

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/middleware"
	"rite-api/modules/notification/controller"
)

type NotificationRouter struct {
	Controller *controller.NotificationController
}

func NewNotificationRouter(ctrl *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{Controller: ctrl}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	priv := e.Group("/api/v1/private", mw.AuthMiddleware())
	priv.GET("/notifications", r.Controller.List)
	priv.PATCH("/notifications/:id/read", r.Controller.MarkRead)
	priv.PATCH("/notifications/read-all", r.Controller.MarkAllRead)
}
