package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rite-api/core/controller"
	"rite-api/core/errors"
	"rite-api/modules/submission/dto"
	"rite-api/modules/submission/service"
)

type SubmissionController struct {
	controller.BaseController
	svc service.SubmissionServiceInterface
}

func NewSubmissionController(svc service.SubmissionServiceInterface) *SubmissionController {
	return &SubmissionController{
		BaseController: controller.NewBaseController(),
		svc:            svc,
	}
}

// Save persists a DJ submission. The token travels as a query parameter on
// the unique link; it is the sole credential on this route.
func (ctrl *SubmissionController) Save(c echo.Context) error {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid timeslot id")
	}

	var payload dto.SubmissionPayload
	if err := c.Bind(&payload); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	sub, appErr := ctrl.svc.SaveSubmission(c.Request().Context(), slotID, c.QueryParam("token"), &payload)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, sub, "submission saved")
}

func (ctrl *SubmissionController) UploadTicket(c echo.Context) error {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid timeslot id")
	}

	var req dto.UploadTicketRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	ticket, appErr := ctrl.svc.GenerateUploadTicket(c.Request().Context(), slotID, c.QueryParam("token"), &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, ticket, "upload ticket issued")
}
