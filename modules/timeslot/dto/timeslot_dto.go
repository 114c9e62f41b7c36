package dto

import (
	"time"

	eventDto "rite-api/modules/event/dto"
	submissionDto "rite-api/modules/submission/dto"
	"rite-api/modules/timeslot/entity"
)

type CreateTimeslotRequest struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	DJName    string    `json:"dj_name"`
	DJHandle  string    `json:"dj_handle"`
}

// UpdateTimeslotRequest is a sparse patch. RotateToken mints a fresh
// submission token; it is refused once a submission exists, since rotating
// then would orphan the DJ's re-submission link.
type UpdateTimeslotRequest struct {
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	DJName      *string    `json:"dj_name,omitempty"`
	DJHandle    *string    `json:"dj_handle,omitempty"`
	RotateToken bool       `json:"rotate_token,omitempty"`
}

// TimeslotWithToken is the organizer-facing view; the token is included so
// the organizer can hand the unique link to the DJ out-of-band.
type TimeslotWithToken struct {
	*entity.Timeslot
	SubmissionToken string `json:"submission_token"`
}

// ResolveResponse is the DJ-facing read behind a valid token. Submission is
// the DJ's own prior submission, if any, so the form can be pre-filled.
type ResolveResponse struct {
	Timeslot   *PublicTimeslotView               `json:"timeslot"`
	Event      *eventDto.PublicEventView         `json:"event"`
	Submission *submissionDto.SubmissionResponse `json:"submission,omitempty"`
}

type PublicTimeslotView struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	DJName    string    `json:"dj_name"`
	DJHandle  string    `json:"dj_handle"`
}

func ToPublicTimeslotView(t *entity.Timeslot) *PublicTimeslotView {
	return &PublicTimeslotView{
		ID:        t.ID.String(),
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		DJName:    t.DJName,
		DJHandle:  t.DJHandle,
	}
}
