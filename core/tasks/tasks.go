package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"rite-api/core/constants"
)

// Enqueuer is the slice of asynq.Client the services need; lets tests
// substitute a fake.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// SubmissionReceivedPayload notifies the organizer that a DJ submitted
// materials for a slot.
type SubmissionReceivedPayload struct {
	OrganizerID uuid.UUID `json:"organizer_id"`
	EventID     uuid.UUID `json:"event_id"`
	EventName   string    `json:"event_name"`
	TimeslotID  uuid.UUID `json:"timeslot_id"`
	DJName      string    `json:"dj_name"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewSubmissionReceivedTask(p SubmissionReceivedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskTypeSubmissionReceived, payload, asynq.MaxRetry(3)), nil
}
