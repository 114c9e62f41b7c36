package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rite-api/core/constants"
	"rite-api/core/errors"
	eventEntity "rite-api/modules/event/entity"
	submissionDto "rite-api/modules/submission/dto"
	submissionEntity "rite-api/modules/submission/entity"
	"rite-api/modules/timeslot/dto"
	"rite-api/modules/timeslot/entity"
)

type fakeSlotRepo struct {
	slots map[uuid.UUID]*entity.Timeslot

	// createFailures makes the first N Create calls fail with a unique
	// violation, simulating token collisions.
	createFailures int
	deleted        []uuid.UUID
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[uuid.UUID]*entity.Timeslot{}}
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *entity.Timeslot) (*entity.Timeslot, error) {
	if f.createFailures > 0 {
		f.createFailures--
		return nil, &pq.Error{Code: "23505"}
	}
	s := *slot
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.slots[s.ID] = &s
	return &s, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Timeslot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlotRepo) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Timeslot, error) {
	var out []entity.Timeslot
	for _, s := range f.slots {
		if s.EventID == eventID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByToken(ctx context.Context, token string) (*entity.Timeslot, error) {
	for _, s := range f.slots {
		if s.SubmissionToken != nil && *s.SubmissionToken == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotRepo) CountByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	n := 0
	for _, s := range f.slots {
		if s.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSlotRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Timeslot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["dj_name"]; ok {
		s.DJName = v.(string)
	}
	if v, ok := fields["start_time"]; ok {
		s.StartTime = v.(time.Time)
	}
	if v, ok := fields["end_time"]; ok {
		s.EndTime = v.(time.Time)
	}
	if v, ok := fields["submission_token"]; ok {
		token := v.(string)
		s.SubmissionToken = &token
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlotRepo) SetSubmissionRef(ctx context.Context, id, submissionID uuid.UUID) error {
	if s, ok := f.slots[id]; ok {
		s.SubmissionID = &submissionID
	}
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.slots, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEventRepo struct {
	events map[uuid.UUID]*eventEntity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uuid.UUID]*eventEntity.Event{}}
}

func (f *fakeEventRepo) addEvent(organizerID uuid.UUID) *eventEntity.Event {
	e := &eventEntity.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Name:        "Basement Session",
		Date:        time.Date(2026, 11, 7, 22, 0, 0, 0, time.UTC),
		Venue:       eventEntity.Venue{Name: "vurt.", Address: "Seoul"},
		Phase:       eventEntity.PhaseDraft,
	}
	f.events[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, event *eventEntity.Event) (*eventEntity.Event, error) {
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) GetByOrganizerID(ctx context.Context, organizerID uuid.UUID) ([]eventEntity.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*eventEntity.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) UpdatePhase(ctx context.Context, id uuid.UUID, phase eventEntity.EventPhase, cancelReason *string) (*eventEntity.Event, error) {
	return f.events[id], nil
}

type fakeSubRepo struct {
	byTimeslot map[uuid.UUID]*submissionEntity.Submission
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{byTimeslot: map[uuid.UUID]*submissionEntity.Submission{}}
}

func (f *fakeSubRepo) GetByTimeslotID(ctx context.Context, timeslotID uuid.UUID) (*submissionEntity.Submission, error) {
	return f.byTimeslot[timeslotID], nil
}

func (f *fakeSubRepo) Upsert(ctx context.Context, sub *submissionEntity.Submission) (*submissionEntity.Submission, error) {
	f.byTimeslot[sub.TimeslotID] = sub
	return sub, nil
}

func (f *fakeSubRepo) CountCompleteByEventID(ctx context.Context, eventID uuid.UUID) (int, error) {
	return len(f.byTimeslot), nil
}

type fakeSubReader struct {
	resp *submissionDto.SubmissionResponse
}

func (f *fakeSubReader) GetForTimeslot(ctx context.Context, timeslotID uuid.UUID) (*submissionDto.SubmissionResponse, error) {
	return f.resp, nil
}

func validSlotRequest() *dto.CreateTimeslotRequest {
	return &dto.CreateTimeslotRequest{
		StartTime: time.Date(2026, 11, 7, 23, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 11, 8, 0, 30, 0, 0, time.UTC),
		DJName:    "Objekt",
		DJHandle:  "@objekt",
	}
}

func newSlotTestService(slotRepo *fakeSlotRepo, eventRepo *fakeEventRepo, subRepo *fakeSubRepo) *TimeslotService {
	return NewTimeslotService(slotRepo, eventRepo, subRepo, &fakeSubReader{})
}

func TestCreateTimeslot_MintsToken(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())
	slot, appErr := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())
	require.Nil(t, appErr)

	assert.Len(t, slot.SubmissionToken, constants.SubmissionTokenLength)
	for _, r := range slot.SubmissionToken {
		assert.Contains(t, constants.SubmissionTokenAlphabet, string(r))
	}
}

func TestCreateTimeslot_RetriesOnTokenCollision(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	slotRepo.createFailures = 2
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())
	slot, appErr := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())
	require.Nil(t, appErr)
	assert.NotEmpty(t, slot.SubmissionToken)
}

func TestCreateTimeslot_GivesUpAfterRepeatedCollisions(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	slotRepo.createFailures = constants.TokenMintRetries
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())
	_, appErr := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInternalServer, appErr.Code)
}

func TestCreateTimeslot_Validation(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)
	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())

	req := validSlotRequest()
	req.EndTime = req.StartTime
	_, appErr := svc.CreateTimeslot(context.Background(), event.ID, organizer, req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	req = validSlotRequest()
	req.DJName = ""
	_, appErr = svc.CreateTimeslot(context.Background(), event.ID, organizer, req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateTimeslot_OwnershipEnforced(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	event := eventRepo.addEvent(uuid.New())
	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())

	_, appErr := svc.CreateTimeslot(context.Background(), event.ID, uuid.New(), validSlotRequest())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = svc.CreateTimeslot(context.Background(), uuid.New(), uuid.New(), validSlotRequest())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestUpdateTimeslot_RotateTokenRefusedAfterSubmission(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	subRepo := newFakeSubRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, subRepo)
	slot, appErr := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())
	require.Nil(t, appErr)

	subRepo.byTimeslot[slot.ID] = &submissionEntity.Submission{TimeslotID: slot.ID}

	_, appErr = svc.UpdateTimeslot(context.Background(), slot.ID, organizer, &dto.UpdateTimeslotRequest{RotateToken: true})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrPreconditionFailed, appErr.Code)
}

func TestUpdateTimeslot_RotateTokenBeforeSubmission(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())
	slot, appErr := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())
	require.Nil(t, appErr)
	oldToken := slot.SubmissionToken

	updated, appErr := svc.UpdateTimeslot(context.Background(), slot.ID, organizer, &dto.UpdateTimeslotRequest{RotateToken: true})
	require.Nil(t, appErr)
	assert.NotEqual(t, oldToken, updated.SubmissionToken)
	assert.Len(t, updated.SubmissionToken, constants.SubmissionTokenLength)
}

func TestUpdateTimeslot_WindowValidationUsesEffectiveValues(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())
	slot, _ := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())

	// Moving only the end before the stored start must fail.
	badEnd := slot.StartTime.Add(-time.Hour)
	_, appErr := svc.UpdateTimeslot(context.Background(), slot.ID, organizer, &dto.UpdateTimeslotRequest{EndTime: &badEnd})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestDeleteTimeslot_RefusedWithSubmission(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	subRepo := newFakeSubRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, subRepo)
	slot, _ := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())
	subRepo.byTimeslot[slot.ID] = &submissionEntity.Submission{TimeslotID: slot.ID}

	appErr := svc.DeleteTimeslot(context.Background(), slot.ID, organizer)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	assert.Empty(t, slotRepo.deleted)
}

func TestDeleteTimeslot_EmptySlot(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())
	slot, _ := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())

	appErr := svc.DeleteTimeslot(context.Background(), slot.ID, organizer)
	require.Nil(t, appErr)
	assert.Equal(t, []uuid.UUID{slot.ID}, slotRepo.deleted)
}

func TestResolveByToken(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	eventRepo := newFakeEventRepo()
	organizer := uuid.New()
	event := eventRepo.addEvent(organizer)

	svc := newSlotTestService(slotRepo, eventRepo, newFakeSubRepo())
	slot, _ := svc.CreateTimeslot(context.Background(), event.ID, organizer, validSlotRequest())

	resp, appErr := svc.ResolveByToken(context.Background(), slot.SubmissionToken)
	require.Nil(t, appErr)
	assert.Equal(t, slot.ID.String(), resp.Timeslot.ID)
	assert.Equal(t, "Basement Session", resp.Event.Name)
	assert.Nil(t, resp.Submission)
}

// Unknown token and empty token must be indistinguishable from each other.
func TestResolveByToken_InvalidTokens(t *testing.T) {
	svc := newSlotTestService(newFakeSlotRepo(), newFakeEventRepo(), newFakeSubRepo())

	_, unknownErr := svc.ResolveByToken(context.Background(), "AAAAAAAAAAAAAAAA")
	require.NotNil(t, unknownErr)
	assert.Equal(t, errors.ErrInvalidToken, unknownErr.Code)

	_, emptyErr := svc.ResolveByToken(context.Background(), "")
	require.NotNil(t, emptyErr)
	assert.Equal(t, errors.ErrInvalidToken, emptyErr.Code)

	assert.Equal(t, unknownErr.Message, emptyErr.Message)
}
