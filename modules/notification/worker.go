package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"rite-api/core/constants"
	"rite-api/core/logger"
	"rite-api/core/tasks"
	"rite-api/modules/notification/dto"
	"rite-api/modules/notification/entity"
	"rite-api/modules/notification/service"
)

// Worker consumes queued submission events and turns them into organizer
// notifications.
type Worker struct {
	svc service.NotificationServiceInterface
}

func NewWorker(svc service.NotificationServiceInterface) *Worker {
	return &Worker{svc: svc}
}

func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskTypeSubmissionReceived, w.HandleSubmissionReceived)
}

func (w *Worker) HandleSubmissionReceived(ctx context.Context, t *asynq.Task) error {
	var p tasks.SubmissionReceivedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.Error("NotificationWorker:HandleSubmissionReceived:Unmarshal:Error:", err)
		// A payload that never parses will never parse on retry either.
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	req := &dto.CreateNotificationRequest{
		UserID:  p.OrganizerID,
		Title:   "New DJ submission",
		Message: fmt.Sprintf("%s submitted materials for %s", p.DJName, p.EventName),
		Type:    entity.TypeSubmissionReceived,
		Data: map[string]any{
			"event_id":     p.EventID.String(),
			"timeslot_id":  p.TimeslotID.String(),
			"submitted_at": p.SubmittedAt,
		},
	}
	if err := w.svc.Create(ctx, req); err != nil {
		return err
	}

	logger.Info("NotificationWorker:HandleSubmissionReceived:Done",
		"organizer_id", p.OrganizerID,
		"event_id", p.EventID,
	)
	return nil
}
