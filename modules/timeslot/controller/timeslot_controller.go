package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rite-api/core/cache"
	"rite-api/core/controller"
	"rite-api/core/errors"
	"rite-api/core/logger"
	"rite-api/core/middleware"
	"rite-api/modules/timeslot/dto"
	"rite-api/modules/timeslot/service"
)

type TimeslotController struct {
	controller.BaseController
	svc   service.TimeslotServiceInterface
	cache cache.Cache
}

func NewTimeslotController(svc service.TimeslotServiceInterface, c cache.Cache) *TimeslotController {
	return &TimeslotController{
		BaseController: controller.NewBaseController(),
		svc:            svc,
		cache:          c,
	}
}

func (ctrl *TimeslotController) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	var req dto.CreateTimeslotRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	slot, appErr := ctrl.svc.CreateTimeslot(c.Request().Context(), eventID, userID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, slot, "timeslot created")
}

func (ctrl *TimeslotController) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	slots, appErr := ctrl.svc.ListTimeslots(c.Request().Context(), eventID, userID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, slots, "ok")
}

func (ctrl *TimeslotController) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid timeslot id")
	}

	var req dto.UpdateTimeslotRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	slot, appErr := ctrl.svc.UpdateTimeslot(c.Request().Context(), slotID, userID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, slot, "timeslot updated")
}

func (ctrl *TimeslotController) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid timeslot id")
	}

	if appErr := ctrl.svc.DeleteTimeslot(c.Request().Context(), slotID, userID); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, nil, "timeslot deleted")
}

// Resolve is the anonymous DJ entry point. Rate limited per client IP
// because the token in the URL is the only credential.
func (ctrl *TimeslotController) Resolve(c echo.Context) error {
	allowed, err := ctrl.cache.AllowResolveAttempt(c.Request().Context(), c.RealIP())
	if err != nil {
		// Rate limiter trouble should not take down the submission path.
		logger.Warn("TimeslotController:Resolve:RateLimit:Error:", err)
	} else if !allowed {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrTooManyRequests, "too many attempts, slow down", nil))
	}

	resp, appErr := ctrl.svc.ResolveByToken(c.Request().Context(), c.Param("token"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "ok")
}
