package dto

import (
	"time"

	"rite-api/modules/event/entity"
)

type VenueDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type DeadlinesDTO struct {
	GuestList      time.Time `json:"guest_list"`
	PromoMaterials time.Time `json:"promo_materials"`
}

type PaymentDTO struct {
	TotalAmount float64   `json:"total_amount"`
	PerDJAmount *float64  `json:"per_dj_amount,omitempty"`
	Currency    string    `json:"currency"`
	DueDate     time.Time `json:"due_date"`
}

type CreateEventRequest struct {
	Name            string       `json:"name"`
	Date            time.Time    `json:"date"`
	Venue           VenueDTO     `json:"venue"`
	Description     *string      `json:"description,omitempty"`
	Hashtag         *string      `json:"hashtag,omitempty"`
	Deadlines       DeadlinesDTO `json:"deadlines"`
	Payment         PaymentDTO   `json:"payment"`
	GuestLimitPerDJ *int         `json:"guest_limit_per_dj,omitempty"`
}

// UpdateEventRequest is a sparse patch: only fields the caller set are
// applied. Nil means "leave the column alone", never "write null".
type UpdateEventRequest struct {
	Name            *string       `json:"name,omitempty"`
	Date            *time.Time    `json:"date,omitempty"`
	Venue           *VenueDTO     `json:"venue,omitempty"`
	Description     *string       `json:"description,omitempty"`
	Hashtag         *string       `json:"hashtag,omitempty"`
	Deadlines       *DeadlinesDTO `json:"deadlines,omitempty"`
	Payment         *PaymentDTO   `json:"payment,omitempty"`
	GuestLimitPerDJ *int          `json:"guest_limit_per_dj,omitempty"`
}

type TransitionPhaseRequest struct {
	ToPhase string  `json:"to_phase"`
	Reason  *string `json:"reason,omitempty"`
}

type AvailableActionDTO struct {
	Action       string `json:"action"`
	TargetPhase  string `json:"target_phase"`
	Confirmation string `json:"confirmation"`
}

type AvailableActionsResponse struct {
	Phase   string               `json:"phase"`
	Actions []AvailableActionDTO `json:"actions"`
}

// PublicEventView is what a DJ holding a submission token may see. No
// organizer identity, no payment totals.
type PublicEventView struct {
	Name            string       `json:"name"`
	Date            time.Time    `json:"date"`
	Venue           VenueDTO     `json:"venue"`
	Hashtag         *string      `json:"hashtag,omitempty"`
	Deadlines       DeadlinesDTO `json:"deadlines"`
	GuestLimitPerDJ *int         `json:"guest_limit_per_dj,omitempty"`
}

func ToPublicEventView(e *entity.Event) *PublicEventView {
	return &PublicEventView{
		Name:            e.Name,
		Date:            e.Date,
		Venue:           VenueDTO{Name: e.Venue.Name, Address: e.Venue.Address},
		Hashtag:         e.Hashtag,
		Deadlines:       DeadlinesDTO{GuestList: e.Deadlines.GuestList, PromoMaterials: e.Deadlines.PromoMaterials},
		GuestLimitPerDJ: e.GuestLimitPerDJ,
	}
}
