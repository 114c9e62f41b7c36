package router

import (
	"github.com/labstack/echo/v4"

	"rite-api/modules/submission/controller"
)

type SubmissionRouter struct {
	Controller *controller.SubmissionController
}

func NewSubmissionRouter(ctrl *controller.SubmissionController) *SubmissionRouter {
	return &SubmissionRouter{Controller: ctrl}
}

func (r *SubmissionRouter) Setup(e *echo.Echo) {
	e.PUT("/api/v1/public/timeslots/:id/submission", r.Controller.Save)
	e.POST("/api/v1/public/timeslots/:id/upload-ticket", r.Controller.UploadTicket)
}
