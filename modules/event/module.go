package event

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/database"
	"rite-api/core/middleware"
	"rite-api/modules/event/controller"
	"rite-api/modules/event/repository"
	"rite-api/modules/event/router"
	"rite-api/modules/event/service"
	submissionRepository "rite-api/modules/submission/repository"
	timeslotRepository "rite-api/modules/timeslot/repository"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) {
	repo := repository.NewEventRepository(db)
	slotRepo := timeslotRepository.NewTimeslotRepository(db)
	subRepo := submissionRepository.NewSubmissionRepository(db)

	svc := service.NewEventService(repo, slotRepo, subRepo)
	ctrl := controller.NewEventController(svc)
	router.NewEventRouter(ctrl).Setup(e, mw)
}
