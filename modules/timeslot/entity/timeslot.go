package entity

import (
	"time"

	"github.com/google/uuid"

	coreEntity "rite-api/core/entity"
)

// Timeslot is one DJ performance window within an event. SubmissionToken is
// the bearer credential the DJ's unique link carries; SubmissionID is a
// denormalized convenience reference, never the source of truth for "has a
// submission".
type Timeslot struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	EventID         uuid.UUID  `db:"event_id" json:"event_id"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         time.Time  `db:"end_time" json:"end_time"`
	DJName          string     `db:"dj_name" json:"dj_name"`
	DJHandle        string     `db:"dj_handle" json:"dj_handle"`
	SubmissionToken *string    `db:"submission_token" json:"-"`
	SubmissionID    *uuid.UUID `db:"submission_id" json:"submission_id,omitempty"`
	coreEntity.BaseEntity
}
