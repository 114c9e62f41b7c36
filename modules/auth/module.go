package auth

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/cache"
	"rite-api/core/config"
	"rite-api/core/database"
	"rite-api/core/middleware"
	"rite-api/modules/auth/controller"
	"rite-api/modules/auth/repository"
	"rite-api/modules/auth/router"
	"rite-api/modules/auth/service"
)

func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, cfg *config.Config, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, c, cfg)
	ctrl := controller.NewAuthController(svc)
	router.NewAuthRouter(ctrl).Setup(e, mw)
}
