package notification

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"rite-api/core/database"
	"rite-api/core/middleware"
	"rite-api/modules/notification/controller"
	"rite-api/modules/notification/repository"
	"rite-api/modules/notification/router"
	"rite-api/modules/notification/service"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, mux *asynq.ServeMux) {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	router.NewNotificationRouter(ctrl).Setup(e, mw)

	NewWorker(svc).Register(mux)
}
