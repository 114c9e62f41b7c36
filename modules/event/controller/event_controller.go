package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rite-api/core/controller"
	"rite-api/core/errors"
	"rite-api/core/middleware"
	"rite-api/modules/event/dto"
	"rite-api/modules/event/entity"
	"rite-api/modules/event/service"
)

type EventController struct {
	controller.BaseController
	svc service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		svc:            svc,
	}
}

func requester(c echo.Context) (uuid.UUID, bool) {
	return middleware.UserID(c)
}

func (ctrl *EventController) Create(c echo.Context) error {
	userID, ok := requester(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	event, appErr := ctrl.svc.CreateEvent(c.Request().Context(), userID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "event created")
}

func (ctrl *EventController) Get(c echo.Context) error {
	userID, ok := requester(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	event, appErr := ctrl.svc.GetEvent(c.Request().Context(), eventID, userID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "ok")
}

func (ctrl *EventController) List(c echo.Context) error {
	userID, ok := requester(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	events, appErr := ctrl.svc.ListEvents(c.Request().Context(), userID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, events, "ok")
}

func (ctrl *EventController) Update(c echo.Context) error {
	userID, ok := requester(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	event, appErr := ctrl.svc.UpdateEvent(c.Request().Context(), eventID, userID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "event updated")
}

func (ctrl *EventController) Transition(c echo.Context) error {
	userID, ok := requester(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	var req dto.TransitionPhaseRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	event, appErr := ctrl.svc.TransitionPhase(c.Request().Context(), eventID, userID, entity.EventPhase(req.ToPhase), req.Reason)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "phase updated")
}

func (ctrl *EventController) Actions(c echo.Context) error {
	userID, ok := requester(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	resp, appErr := ctrl.svc.AvailableActions(c.Request().Context(), eventID, userID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "ok")
}
