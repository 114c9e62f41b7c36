package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rite-api/core/constants"
	appErrors "rite-api/core/errors"
	"rite-api/core/params"
	"rite-api/core/tasks"
	"rite-api/modules/notification/dto"
	"rite-api/modules/notification/entity"
)

type fakeNotificationService struct {
	created []*dto.CreateNotificationRequest
}

func (f *fakeNotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeNotificationService) List(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*dto.NotificationListResponse, *appErrors.AppError) {
	return nil, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) *appErrors.AppError {
	return nil
}

func (f *fakeNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) *appErrors.AppError {
	return nil
}

func TestHandleSubmissionReceived(t *testing.T) {
	svc := &fakeNotificationService{}
	w := NewWorker(svc)

	organizer := uuid.New()
	task, err := tasks.NewSubmissionReceivedTask(tasks.SubmissionReceivedPayload{
		OrganizerID: organizer,
		EventID:     uuid.New(),
		EventName:   "Warehouse Rite",
		TimeslotID:  uuid.New(),
		DJName:      "Objekt",
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.TaskTypeSubmissionReceived, task.Type())

	require.NoError(t, w.HandleSubmissionReceived(context.Background(), task))

	require.Len(t, svc.created, 1)
	n := svc.created[0]
	assert.Equal(t, organizer, n.UserID)
	assert.Equal(t, entity.TypeSubmissionReceived, n.Type)
	assert.Contains(t, n.Message, "Objekt")
	assert.Contains(t, n.Message, "Warehouse Rite")
}

func TestHandleSubmissionReceived_BadPayloadSkipsRetry(t *testing.T) {
	w := NewWorker(&fakeNotificationService{})
	task := asynq.NewTask(constants.TaskTypeSubmissionReceived, []byte("not json"))

	err := w.HandleSubmissionReceived(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
