package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rite-api/core/errors"
	"rite-api/modules/event/dto"
	"rite-api/modules/event/entity"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*entity.Event

	lastFields map[string]any
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uuid.UUID]*entity.Event{}}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	e := *event
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.events[e.ID] = &e
	return &e, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) GetByOrganizerID(ctx context.Context, organizerID uuid.UUID) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Event, error) {
	f.lastFields = fields
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["name"]; ok {
		e.Name = v.(string)
	}
	if v, ok := fields["venue"]; ok {
		e.Venue = v.(entity.Venue)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) UpdatePhase(ctx context.Context, id uuid.UUID, phase entity.EventPhase, cancelReason *string) (*entity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	e.Phase = phase
	e.CancelReason = cancelReason
	cp := *e
	return &cp, nil
}

type fakeSlotCounter struct{ n int }

func (f fakeSlotCounter) CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	return f.n, nil
}

type fakeSubCounter struct{ n int }

func (f fakeSubCounter) CountCompleteByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	return f.n, nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validCreateRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Name: "Midnight Rite",
		Date: time.Date(2026, 10, 24, 22, 0, 0, 0, time.UTC),
		Venue: dto.VenueDTO{
			Name:    "Cakeshop",
			Address: "134 Itaewon-ro, Seoul",
		},
		Deadlines: dto.DeadlinesDTO{
			GuestList:      time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC),
			PromoMaterials: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		},
		Payment: dto.PaymentDTO{TotalAmount: 500000, Currency: "KRW"},
	}
}

func newTestService(repo *fakeEventRepo, slots, subs int) *EventService {
	svc := NewEventService(repo, fakeSlotCounter{n: slots}, fakeSubCounter{n: subs})
	svc.now = fixedNow(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	return svc
}

func TestCreateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo, 0, 0)
	organizer := uuid.New()

	event, appErr := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	require.Nil(t, appErr)
	assert.Equal(t, entity.PhaseDraft, event.Phase)
	assert.Equal(t, organizer, event.OrganizerID)
	assert.Contains(t, event.Slug, "midnight-rite-")
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := newTestService(newFakeEventRepo(), 0, 0)

	req := validCreateRequest()
	req.Name = ""
	_, appErr := svc.CreateEvent(context.Background(), uuid.New(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	req = validCreateRequest()
	req.Venue.Address = ""
	_, appErr = svc.CreateEvent(context.Background(), uuid.New(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetEvent_OwnershipAndMissing(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo, 0, 0)
	organizer := uuid.New()

	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())

	_, appErr := svc.GetEvent(context.Background(), uuid.New(), organizer)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	_, appErr = svc.GetEvent(context.Background(), event.ID, uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	got, appErr := svc.GetEvent(context.Background(), event.ID, organizer)
	require.Nil(t, appErr)
	assert.Equal(t, event.ID, got.ID)
}

// A nil field in the patch request must never become a column write.
func TestUpdateEvent_SparsePatch(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo, 0, 0)
	organizer := uuid.New()
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())

	name := "Renamed Rite"
	_, appErr := svc.UpdateEvent(context.Background(), event.ID, organizer, &dto.UpdateEventRequest{Name: &name})
	require.Nil(t, appErr)

	require.Len(t, repo.lastFields, 1)
	assert.Equal(t, "Renamed Rite", repo.lastFields["name"])
}

func TestUpdateEvent_RejectsEmptyName(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestService(repo, 0, 0)
	organizer := uuid.New()
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())

	empty := ""
	_, appErr := svc.UpdateEvent(context.Background(), event.ID, organizer, &dto.UpdateEventRequest{Name: &empty})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestTransitionPhase_PublishNeedsTimeslots(t *testing.T) {
	repo := newFakeEventRepo()
	organizer := uuid.New()

	svc := newTestService(repo, 0, 0)
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())

	_, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhasePlanning, nil)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrPreconditionFailed, appErr.Code)

	svc = newTestService(repo, 3, 0)
	updated, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhasePlanning, nil)
	require.Nil(t, appErr)
	assert.Equal(t, entity.PhasePlanning, updated.Phase)
}

func TestTransitionPhase_FinalizeNeedsAllSubmissions(t *testing.T) {
	repo := newFakeEventRepo()
	organizer := uuid.New()
	svc := newTestService(repo, 3, 2)
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	repo.events[event.ID].Phase = entity.PhasePlanning

	_, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhaseFinalized, nil)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrPreconditionFailed, appErr.Code)

	svc = newTestService(repo, 3, 3)
	updated, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhaseFinalized, nil)
	require.Nil(t, appErr)
	assert.Equal(t, entity.PhaseFinalized, updated.Phase)
}

func TestTransitionPhase_StartEventDayGatedOnDate(t *testing.T) {
	repo := newFakeEventRepo()
	organizer := uuid.New()
	svc := newTestService(repo, 1, 1)
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	repo.events[event.ID].Phase = entity.PhaseFinalized

	// Clock well before the event date.
	_, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhaseDayOf, nil)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrPreconditionFailed, appErr.Code)

	// Midnight of the event date is enough; the party may start before the
	// official hour.
	svc.now = fixedNow(time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC))
	updated, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhaseDayOf, nil)
	require.Nil(t, appErr)
	assert.Equal(t, entity.PhaseDayOf, updated.Phase)
}

func TestTransitionPhase_IllegalEdges(t *testing.T) {
	repo := newFakeEventRepo()
	organizer := uuid.New()
	svc := newTestService(repo, 3, 3)
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())

	for _, to := range []entity.EventPhase{entity.PhaseFinalized, entity.PhaseDayOf, entity.PhaseCompleted, entity.PhaseDraft} {
		_, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, to, nil)
		require.NotNil(t, appErr, "draft -> %s must fail", to)
		assert.Equal(t, errors.ErrInvalidTransition, appErr.Code)
	}

	_, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, "vip_only", nil)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidTransition, appErr.Code)
}

func TestTransitionPhase_CancelStoresReason(t *testing.T) {
	repo := newFakeEventRepo()
	organizer := uuid.New()
	svc := newTestService(repo, 0, 0)
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())

	reason := "venue flooded"
	updated, appErr := svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhaseCancelled, &reason)
	require.Nil(t, appErr)
	assert.Equal(t, entity.PhaseCancelled, updated.Phase)
	require.NotNil(t, updated.CancelReason)
	assert.Equal(t, "venue flooded", *updated.CancelReason)

	// Terminal: cancelling again must fail.
	_, appErr = svc.TransitionPhase(context.Background(), event.ID, organizer, entity.PhaseCancelled, nil)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidTransition, appErr.Code)
}

func TestAvailableActions_MatchesPhaseAndCapabilities(t *testing.T) {
	repo := newFakeEventRepo()
	organizer := uuid.New()
	svc := newTestService(repo, 2, 2)
	event, _ := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	repo.events[event.ID].Phase = entity.PhasePlanning

	resp, appErr := svc.AvailableActions(context.Background(), event.ID, organizer)
	require.Nil(t, appErr)
	assert.Equal(t, "planning", resp.Phase)
	require.Len(t, resp.Actions, 2)
	assert.Equal(t, "FINALIZE_EVENT", resp.Actions[0].Action)
	assert.Equal(t, "CANCEL_EVENT", resp.Actions[1].Action)
}
