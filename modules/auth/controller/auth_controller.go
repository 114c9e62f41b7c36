package controller

import (
	"strings"

	"github.com/labstack/echo/v4"

	"rite-api/core/controller"
	"rite-api/core/errors"
	"rite-api/core/middleware"
	"rite-api/modules/auth/dto"
	"rite-api/modules/auth/service"
)

type AuthController struct {
	controller.BaseController
	svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		svc:            svc,
	}
}

func (ctrl *AuthController) GoogleLogin(c echo.Context) error {
	var req dto.GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}

	resp, appErr := ctrl.svc.LoginWithGoogle(c.Request().Context(), &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "login successful")
}

func (ctrl *AuthController) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return ctrl.Unauthorized(errors.ErrUnauthorized, "not authenticated")
	}

	user, appErr := ctrl.svc.GetUserByID(c.Request().Context(), userID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, user, "ok")
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ctrl.Unauthorized(errors.ErrInvalidTokenFormat, "authorization header must be a bearer token")
	}

	if appErr := ctrl.svc.Logout(c.Request().Context(), tokenString); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, nil, "logged out")
}
