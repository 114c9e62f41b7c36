package timeslot

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/cache"
	"rite-api/core/database"
	"rite-api/core/middleware"
	eventRepository "rite-api/modules/event/repository"
	submissionRepository "rite-api/modules/submission/repository"
	submissionService "rite-api/modules/submission/service"
	"rite-api/modules/timeslot/controller"
	"rite-api/modules/timeslot/repository"
	"rite-api/modules/timeslot/router"
	"rite-api/modules/timeslot/service"
)

func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, mw *middleware.Middleware, subSvc *submissionService.SubmissionService) {
	repo := repository.NewTimeslotRepository(db)
	eventRepo := eventRepository.NewEventRepository(db)
	subRepo := submissionRepository.NewSubmissionRepository(db)

	svc := service.NewTimeslotService(repo, eventRepo, subRepo, subSvc)
	ctrl := controller.NewTimeslotController(svc, c)
	router.NewTimeslotRouter(ctrl).Setup(e, mw)
}
