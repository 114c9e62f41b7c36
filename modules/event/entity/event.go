package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	coreEntity "rite-api/core/entity"
)

// EventPhase is the event's position in its lifecycle.
type EventPhase string

const (
	PhaseDraft     EventPhase = "draft"
	PhasePlanning  EventPhase = "planning"
	PhaseFinalized EventPhase = "finalized"
	PhaseDayOf     EventPhase = "day_of"
	PhaseCompleted EventPhase = "completed"
	PhaseCancelled EventPhase = "cancelled"
)

// IsTerminal reports whether no further transitions leave this phase.
func (p EventPhase) IsTerminal() bool {
	return p == PhaseCompleted || p == PhaseCancelled
}

func (p EventPhase) Valid() bool {
	switch p {
	case PhaseDraft, PhasePlanning, PhaseFinalized, PhaseDayOf, PhaseCompleted, PhaseCancelled:
		return true
	}
	return false
}

type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (v Venue) Value() (driver.Value, error) {
	return json.Marshal(v)
}

func (v *Venue) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, v)
}

type Deadlines struct {
	GuestList      time.Time `json:"guest_list"`
	PromoMaterials time.Time `json:"promo_materials"`
}

func (d Deadlines) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Deadlines) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, d)
}

// Payment is stored, never processed.
type Payment struct {
	TotalAmount float64   `json:"total_amount"`
	PerDJAmount *float64  `json:"per_dj_amount,omitempty"`
	Currency    string    `json:"currency"`
	DueDate     time.Time `json:"due_date"`
}

func (p Payment) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Payment) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

type Event struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	OrganizerID     uuid.UUID  `db:"organizer_id" json:"organizer_id"`
	Name            string     `db:"name" json:"name"`
	Slug            string     `db:"slug" json:"slug"`
	Date            time.Time  `db:"event_date" json:"date"`
	Venue           Venue      `db:"venue" json:"venue"`
	Description     *string    `db:"description" json:"description,omitempty"`
	Hashtag         *string    `db:"hashtag" json:"hashtag,omitempty"`
	Deadlines       Deadlines  `db:"deadlines" json:"deadlines"`
	Payment         Payment    `db:"payment" json:"payment"`
	GuestLimitPerDJ *int       `db:"guest_limit_per_dj" json:"guest_limit_per_dj,omitempty"`
	Phase           EventPhase `db:"phase" json:"phase"`
	CancelReason    *string    `db:"cancel_reason" json:"cancel_reason,omitempty"`
	coreEntity.BaseEntity
}
