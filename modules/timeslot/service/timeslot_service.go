package service

import (
	"context"

	"github.com/google/uuid"

	"rite-api/core/constants"
	"rite-api/core/errors"
	"rite-api/core/logger"
	"rite-api/core/utils"
	eventDto "rite-api/modules/event/dto"
	eventRepository "rite-api/modules/event/repository"
	submissionDto "rite-api/modules/submission/dto"
	submissionRepository "rite-api/modules/submission/repository"
	"rite-api/modules/timeslot/dto"
	"rite-api/modules/timeslot/entity"
	"rite-api/modules/timeslot/repository"
)

// SubmissionReader hands back the DJ's own prior submission, decrypted,
// for pre-filling the form behind a valid token. Implemented by the
// submission service.
type SubmissionReader interface {
	GetForTimeslot(ctx context.Context, timeslotID uuid.UUID) (*submissionDto.SubmissionResponse, error)
}

type TimeslotService struct {
	repo      repository.TimeslotRepositoryInterface
	eventRepo eventRepository.EventRepositoryInterface
	subRepo   submissionRepository.SubmissionRepositoryInterface
	subReader SubmissionReader
	mintToken func() (string, error)
}

type TimeslotServiceInterface interface {
	CreateTimeslot(ctx context.Context, eventID, requesterID uuid.UUID, req *dto.CreateTimeslotRequest) (*dto.TimeslotWithToken, *errors.AppError)
	ListTimeslots(ctx context.Context, eventID, requesterID uuid.UUID) ([]dto.TimeslotWithToken, *errors.AppError)
	UpdateTimeslot(ctx context.Context, id, requesterID uuid.UUID, req *dto.UpdateTimeslotRequest) (*dto.TimeslotWithToken, *errors.AppError)
	DeleteTimeslot(ctx context.Context, id, requesterID uuid.UUID) *errors.AppError
	ResolveByToken(ctx context.Context, token string) (*dto.ResolveResponse, *errors.AppError)
}

func NewTimeslotService(
	repo repository.TimeslotRepositoryInterface,
	eventRepo eventRepository.EventRepositoryInterface,
	subRepo submissionRepository.SubmissionRepositoryInterface,
	subReader SubmissionReader,
) *TimeslotService {
	return &TimeslotService{
		repo:      repo,
		eventRepo: eventRepo,
		subRepo:   subRepo,
		subReader: subReader,
		mintToken: utils.GenerateSubmissionToken,
	}
}

// requireOwnedEvent enforces that the requester owns the event the slot
// operation targets.
func (s *TimeslotService) requireOwnedEvent(ctx context.Context, eventID, requesterID uuid.UUID) *errors.AppError {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		logger.Error("TimeslotService:requireOwnedEvent:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to load event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if event.OrganizerID != requesterID {
		return errors.NewAppError(errors.ErrForbidden, "event belongs to another organizer", nil)
	}
	return nil
}

// CreateTimeslot mints the submission token at creation. The issuer does
// not check uniqueness itself; the unique index on submission_token does,
// and a collision (however unlikely at 62^16) retries with a fresh token.
func (s *TimeslotService) CreateTimeslot(ctx context.Context, eventID, requesterID uuid.UUID, req *dto.CreateTimeslotRequest) (*dto.TimeslotWithToken, *errors.AppError) {
	if appErr := s.requireOwnedEvent(ctx, eventID, requesterID); appErr != nil {
		return nil, appErr
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() || !req.StartTime.Before(req.EndTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start time must be before end time", nil)
	}
	if req.DJName == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "dj name is required", nil)
	}

	var created *entity.Timeslot
	for attempt := 0; attempt < constants.TokenMintRetries; attempt++ {
		token, err := s.mintToken()
		if err != nil {
			logger.Error("TimeslotService:CreateTimeslot:MintToken:Error:", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to mint submission token", err)
		}

		slot := &entity.Timeslot{
			EventID:         eventID,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DJName:          req.DJName,
			DJHandle:        req.DJHandle,
			SubmissionToken: &token,
		}

		created, err = s.repo.Create(ctx, slot)
		if err == nil {
			break
		}
		if repository.IsUniqueViolation(err) {
			logger.Warn("TimeslotService:CreateTimeslot:TokenCollision", "attempt", attempt+1)
			continue
		}
		logger.Error("TimeslotService:CreateTimeslot:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create timeslot", err)
	}
	if created == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to mint a unique submission token", nil)
	}

	return &dto.TimeslotWithToken{Timeslot: created, SubmissionToken: *created.SubmissionToken}, nil
}

func (s *TimeslotService) ListTimeslots(ctx context.Context, eventID, requesterID uuid.UUID) ([]dto.TimeslotWithToken, *errors.AppError) {
	if appErr := s.requireOwnedEvent(ctx, eventID, requesterID); appErr != nil {
		return nil, appErr
	}

	slots, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		logger.Error("TimeslotService:ListTimeslots:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list timeslots", err)
	}

	result := make([]dto.TimeslotWithToken, 0, len(slots))
	for i := range slots {
		token := ""
		if slots[i].SubmissionToken != nil {
			token = *slots[i].SubmissionToken
		}
		result = append(result, dto.TimeslotWithToken{Timeslot: &slots[i], SubmissionToken: token})
	}
	return result, nil
}

func (s *TimeslotService) getOwnedSlot(ctx context.Context, id, requesterID uuid.UUID) (*entity.Timeslot, *errors.AppError) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Error("TimeslotService:getOwnedSlot:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load timeslot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "timeslot not found", nil)
	}
	if appErr := s.requireOwnedEvent(ctx, slot.EventID, requesterID); appErr != nil {
		return nil, appErr
	}
	return slot, nil
}

// hasSubmission re-derives submission existence from the submissions table;
// the slot's submission_id column may lag and is never trusted here.
func (s *TimeslotService) hasSubmission(ctx context.Context, slotID uuid.UUID) (bool, error) {
	sub, err := s.subRepo.GetByTimeslotID(ctx, slotID)
	if err != nil {
		return false, err
	}
	return sub != nil, nil
}

func (s *TimeslotService) UpdateTimeslot(ctx context.Context, id, requesterID uuid.UUID, req *dto.UpdateTimeslotRequest) (*dto.TimeslotWithToken, *errors.AppError) {
	slot, appErr := s.getOwnedSlot(ctx, id, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	fields := map[string]any{}
	start, end := slot.StartTime, slot.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
		fields["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
		fields["end_time"] = *req.EndTime
	}
	if !start.Before(end) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start time must be before end time", nil)
	}
	if req.DJName != nil {
		if *req.DJName == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "dj name cannot be empty", nil)
		}
		fields["dj_name"] = *req.DJName
	}
	if req.DJHandle != nil {
		fields["dj_handle"] = *req.DJHandle
	}

	if req.RotateToken {
		submitted, err := s.hasSubmission(ctx, slot.ID)
		if err != nil {
			logger.Error("TimeslotService:UpdateTimeslot:hasSubmission:Error:", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check submission state", err)
		}
		if submitted {
			// Rotating now would orphan the DJ's re-submission link.
			return nil, errors.NewAppError(errors.ErrPreconditionFailed, "cannot rotate the token of a timeslot that already has a submission", nil)
		}
		token, err := s.mintToken()
		if err != nil {
			logger.Error("TimeslotService:UpdateTimeslot:MintToken:Error:", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to mint submission token", err)
		}
		fields["submission_token"] = token
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		logger.Error("TimeslotService:UpdateTimeslot:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update timeslot", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "timeslot not found", nil)
	}

	token := ""
	if updated.SubmissionToken != nil {
		token = *updated.SubmissionToken
	}
	return &dto.TimeslotWithToken{Timeslot: updated, SubmissionToken: token}, nil
}

// DeleteTimeslot refuses to delete a slot whose submission already exists;
// deleting it would orphan the submission row.
func (s *TimeslotService) DeleteTimeslot(ctx context.Context, id, requesterID uuid.UUID) *errors.AppError {
	slot, appErr := s.getOwnedSlot(ctx, id, requesterID)
	if appErr != nil {
		return appErr
	}

	submitted, err := s.hasSubmission(ctx, slot.ID)
	if err != nil {
		logger.Error("TimeslotService:DeleteTimeslot:hasSubmission:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to check submission state", err)
	}
	if submitted {
		return errors.NewAppError(errors.ErrAlreadyExists, "timeslot already has a submission and cannot be deleted", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error("TimeslotService:DeleteTimeslot:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete timeslot", err)
	}
	return nil
}

// ResolveByToken is the only read path available without an account. All
// failure modes collapse into the same invalid-token error, and the event
// view is trimmed to what the DJ needs.
func (s *TimeslotService) ResolveByToken(ctx context.Context, token string) (*dto.ResolveResponse, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrInvalidToken, "submission link is invalid", nil)
	}

	slot, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		logger.Error("TimeslotService:ResolveByToken:GetByToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to resolve link", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrInvalidToken, "submission link is invalid", nil)
	}

	event, err := s.eventRepo.GetByID(ctx, slot.EventID)
	if err != nil {
		logger.Error("TimeslotService:ResolveByToken:GetEvent:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to resolve link", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrInvalidToken, "submission link is invalid", nil)
	}

	existing, err := s.subReader.GetForTimeslot(ctx, slot.ID)
	if err != nil {
		logger.Error("TimeslotService:ResolveByToken:GetForTimeslot:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to resolve link", err)
	}

	return &dto.ResolveResponse{
		Timeslot:   dto.ToPublicTimeslotView(slot),
		Event:      eventDto.ToPublicEventView(event),
		Submission: existing,
	}, nil
}
