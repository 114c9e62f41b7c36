package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"rite-api/core/controller"
	"rite-api/core/errors"
	"rite-api/core/middleware"
	"rite-api/core/params"
	"rite-api/modules/notification/service"
)

type NotificationController struct {
	controller.BaseController
	svc service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController: controller.NewBaseController(),
		svc:            svc,
	}
}

func (ctrl *NotificationController) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	resp, appErr := ctrl.svc.List(c.Request().Context(), userID, params.FromContext(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "ok")
}

func (ctrl *NotificationController) MarkRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid notification id")
	}

	if appErr := ctrl.svc.MarkRead(c.Request().Context(), id, userID); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, nil, "notification marked read")
}

func (ctrl *NotificationController) MarkAllRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	if appErr := ctrl.svc.MarkAllRead(c.Request().Context(), userID); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, nil, "notifications marked read")
}
