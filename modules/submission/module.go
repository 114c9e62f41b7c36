package submission

import (
	"github.com/labstack/echo/v4"

	"rite-api/core/database"
	"rite-api/core/storage"
	"rite-api/core/tasks"
	"rite-api/core/utils"
	eventRepository "rite-api/modules/event/repository"
	"rite-api/modules/submission/controller"
	"rite-api/modules/submission/repository"
	"rite-api/modules/submission/router"
	"rite-api/modules/submission/service"
	timeslotRepository "rite-api/modules/timeslot/repository"
)

// Init wires the submission processor and returns the service for modules
// that read submissions through the token path.
func Init(e *echo.Echo, db database.IDatabase, cipher *utils.Cipher, enqueuer tasks.Enqueuer, store storage.Storage) *service.SubmissionService {
	repo := repository.NewSubmissionRepository(db)
	slotRepo := timeslotRepository.NewTimeslotRepository(db)
	eventRepo := eventRepository.NewEventRepository(db)

	svc := service.NewSubmissionService(repo, slotRepo, eventRepo, cipher, enqueuer, store)
	ctrl := controller.NewSubmissionController(svc)
	router.NewSubmissionRouter(ctrl).Setup(e)
	return svc
}
