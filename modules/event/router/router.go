package router

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/middleware"
	"rite-api/modules/event/controller"
)

type EventRouter struct {
	Controller *controller.EventController
}

func NewEventRouter(ctrl *controller.EventController) *EventRouter {
	return &EventRouter{Controller: ctrl}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	priv := e.Group("/api/v1/private", mw.AuthMiddleware())
	priv.POST("/events", r.Controller.Create)
	priv.GET("/events", r.Controller.List)
	priv.GET("/events/:id", r.Controller.Get)
	priv.PATCH("/events/:id", r.Controller.Update)
	priv.POST("/events/:id/transition", r.Controller.Transition)
	priv.GET("/events/:id/actions", r.Controller.Actions)
}
