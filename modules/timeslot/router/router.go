package router

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/middleware"
	"rite-api/modules/timeslot/controller"
)

type TimeslotRouter struct {
	Controller *controller.TimeslotController
}

func NewTimeslotRouter(ctrl *controller.TimeslotController) *TimeslotRouter {
	return &TimeslotRouter{Controller: ctrl}
}

func (r *TimeslotRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	// The unique link a DJ receives resolves here, no account needed.
	e.GET("/api/v1/public/submit/:token", r.Controller.Resolve)

	priv := e.Group("/api/v1/private", mw.AuthMiddleware())
	priv.POST("/events/:eventId/timeslots", r.Controller.Create)
	priv.GET("/events/:eventId/timeslots", r.Controller.List)
	priv.PATCH("/timeslots/:id", r.Controller.Update)
	priv.DELETE("/timeslots/:id", r.Controller.Delete)
}
