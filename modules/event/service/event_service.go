package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"rite-api/core/errors"
	"rite-api/core/logger"
	"rite-api/core/utils"
	"rite-api/modules/event/dto"
	"rite-api/modules/event/entity"
	"rite-api/modules/event/repository"
)

// TimeslotCounter is the slice of the timeslot repository the capability
// snapshot needs.
type TimeslotCounter interface {
	CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error)
}

// SubmissionCounter reports how many timeslots of an event carry a complete
// submission (promo materials and guest list both present).
type SubmissionCounter interface {
	CountCompleteByEventID(ctx context.Context, eventID uuid.UUID) (int, error)
}

type EventService struct {
	repo        repository.EventRepositoryInterface
	timeslots   TimeslotCounter
	submissions SubmissionCounter
	now         func() time.Time
}

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*entity.Event, *errors.AppError)
	GetEvent(ctx context.Context, id, requesterID uuid.UUID) (*entity.Event, *errors.AppError)
	ListEvents(ctx context.Context, organizerID uuid.UUID) ([]entity.Event, *errors.AppError)
	UpdateEvent(ctx context.Context, id, requesterID uuid.UUID, req *dto.UpdateEventRequest) (*entity.Event, *errors.AppError)
	TransitionPhase(ctx context.Context, id, requesterID uuid.UUID, toPhase entity.EventPhase, reason *string) (*entity.Event, *errors.AppError)
	AvailableActions(ctx context.Context, id, requesterID uuid.UUID) (*dto.AvailableActionsResponse, *errors.AppError)
}

func NewEventService(repo repository.EventRepositoryInterface, timeslots TimeslotCounter, submissions SubmissionCounter) *EventService {
	return &EventService{
		repo:        repo,
		timeslots:   timeslots,
		submissions: submissions,
		now:         time.Now,
	}
}

func validateCreateEvent(req *dto.CreateEventRequest) []any {
	var details []any
	if req.Name == "" {
		details = append(details, map[string]string{"field": "name", "message": "name is required"})
	}
	if req.Date.IsZero() {
		details = append(details, map[string]string{"field": "date", "message": "date is required"})
	}
	if req.Venue.Name == "" {
		details = append(details, map[string]string{"field": "venue.name", "message": "venue name is required"})
	}
	if req.Venue.Address == "" {
		details = append(details, map[string]string{"field": "venue.address", "message": "venue address is required"})
	}
	if req.Payment.TotalAmount < 0 {
		details = append(details, map[string]string{"field": "payment.total_amount", "message": "payment amount must be >= 0"})
	}
	// Deadlines are organizer-supplied and deliberately not cross-checked
	// against the event date.
	return details
}

func (s *EventService) CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*entity.Event, *errors.AppError) {
	if details := validateCreateEvent(req); len(details) > 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid event", fmt.Errorf("%d invalid fields", len(details)))
	}

	event := &entity.Event{
		OrganizerID:     organizerID,
		Name:            req.Name,
		Slug:            slug.Make(req.Name) + "-" + utils.GenerateID(),
		Date:            req.Date,
		Venue:           entity.Venue{Name: req.Venue.Name, Address: req.Venue.Address},
		Description:     req.Description,
		Hashtag:         req.Hashtag,
		Deadlines:       entity.Deadlines{GuestList: req.Deadlines.GuestList, PromoMaterials: req.Deadlines.PromoMaterials},
		Payment:         entity.Payment{TotalAmount: req.Payment.TotalAmount, PerDJAmount: req.Payment.PerDJAmount, Currency: req.Payment.Currency, DueDate: req.Payment.DueDate},
		GuestLimitPerDJ: req.GuestLimitPerDJ,
		Phase:           entity.PhaseDraft,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		logger.Error("EventService:CreateEvent:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}

	logger.Info("EventService:CreateEvent:Created", "event_id", created.ID, "organizer_id", organizerID)
	return created, nil
}

// getOwned loads the event and enforces the owner-only read rule. DJ-facing
// reads go through the timeslot token path instead.
func (s *EventService) getOwned(ctx context.Context, id, requesterID uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Error("EventService:getOwned:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if event.OrganizerID != requesterID {
		return nil, errors.NewAppError(errors.ErrForbidden, "event belongs to another organizer", nil)
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id, requesterID uuid.UUID) (*entity.Event, *errors.AppError) {
	return s.getOwned(ctx, id, requesterID)
}

func (s *EventService) ListEvents(ctx context.Context, organizerID uuid.UUID) ([]entity.Event, *errors.AppError) {
	events, err := s.repo.GetByOrganizerID(ctx, organizerID)
	if err != nil {
		logger.Error("EventService:ListEvents:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	return events, nil
}

// UpdateEvent applies a partial patch. The column map is built strictly from
// fields the caller supplied; a field left nil in the request never reaches
// the store.
func (s *EventService) UpdateEvent(ctx context.Context, id, requesterID uuid.UUID, req *dto.UpdateEventRequest) (*entity.Event, *errors.AppError) {
	if _, appErr := s.getOwned(ctx, id, requesterID); appErr != nil {
		return nil, appErr
	}

	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "name cannot be empty", nil)
		}
		fields["name"] = *req.Name
	}
	if req.Date != nil {
		fields["event_date"] = *req.Date
	}
	if req.Venue != nil {
		if req.Venue.Name == "" || req.Venue.Address == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "venue name and address are required", nil)
		}
		fields["venue"] = entity.Venue{Name: req.Venue.Name, Address: req.Venue.Address}
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Hashtag != nil {
		fields["hashtag"] = *req.Hashtag
	}
	if req.Deadlines != nil {
		fields["deadlines"] = entity.Deadlines{GuestList: req.Deadlines.GuestList, PromoMaterials: req.Deadlines.PromoMaterials}
	}
	if req.Payment != nil {
		if req.Payment.TotalAmount < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "payment amount must be >= 0", nil)
		}
		fields["payment"] = entity.Payment{TotalAmount: req.Payment.TotalAmount, PerDJAmount: req.Payment.PerDJAmount, Currency: req.Payment.Currency, DueDate: req.Payment.DueDate}
	}
	if req.GuestLimitPerDJ != nil {
		fields["guest_limit_per_dj"] = *req.GuestLimitPerDJ
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		logger.Error("EventService:UpdateEvent:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	return updated, nil
}

// capabilities derives the snapshot the state machine gates on. Submission
// completeness is re-derived from the submissions table on every call; the
// denormalized submission_id on timeslot rows is display-only.
func (s *EventService) capabilities(ctx context.Context, event *entity.Event) (Capabilities, error) {
	slotCount, err := s.timeslots.CountByEventID(ctx, event.ID)
	if err != nil {
		return Capabilities{}, err
	}
	completeCount, err := s.submissions.CountCompleteByEventID(ctx, event.ID)
	if err != nil {
		return Capabilities{}, err
	}

	return Capabilities{
		HasTimeslots:      slotCount > 0,
		HasAllSubmissions: slotCount > 0 && completeCount >= slotCount,
		EventDayReached:   !s.now().Before(startOfDay(event.Date)),
	}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *EventService) TransitionPhase(ctx context.Context, id, requesterID uuid.UUID, toPhase entity.EventPhase, reason *string) (*entity.Event, *errors.AppError) {
	event, appErr := s.getOwned(ctx, id, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	if !toPhase.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidTransition, fmt.Sprintf("unknown phase %q", toPhase), nil)
	}

	action, ok := actionForTransition(event.Phase, toPhase)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidTransition,
			fmt.Sprintf("no transition %s", describeEdge(event.Phase, toPhase)), nil)
	}

	caps, err := s.capabilities(ctx, event)
	if err != nil {
		logger.Error("EventService:TransitionPhase:Capabilities:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to evaluate event state", err)
	}

	if unmet := checkPrecondition(action, caps); unmet != "" {
		return nil, errors.NewAppError(errors.ErrPreconditionFailed, unmet, nil)
	}

	var cancelReason *string
	if action == ActionCancelEvent {
		cancelReason = reason
	}

	updated, err := s.repo.UpdatePhase(ctx, id, toPhase, cancelReason)
	if err != nil {
		logger.Error("EventService:TransitionPhase:Update:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to persist phase", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	logger.Info("EventService:TransitionPhase:Done",
		"event_id", id, "action", action, "from", event.Phase, "to", toPhase)
	return updated, nil
}

func (s *EventService) AvailableActions(ctx context.Context, id, requesterID uuid.UUID) (*dto.AvailableActionsResponse, *errors.AppError) {
	event, appErr := s.getOwned(ctx, id, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	caps, err := s.capabilities(ctx, event)
	if err != nil {
		logger.Error("EventService:AvailableActions:Capabilities:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to evaluate event state", err)
	}

	actions := GetAvailableActions(event.Phase, caps)
	resp := &dto.AvailableActionsResponse{
		Phase:   string(event.Phase),
		Actions: make([]dto.AvailableActionDTO, 0, len(actions)),
	}
	for _, a := range actions {
		resp.Actions = append(resp.Actions, dto.AvailableActionDTO{
			Action:       string(a.Action),
			TargetPhase:  string(a.TargetPhase),
			Confirmation: a.Confirmation,
		})
	}
	return resp, nil
}
