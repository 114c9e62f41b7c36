package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rite-api/core/errors"
	"rite-api/core/logger"
	"rite-api/core/storage"
	"rite-api/core/tasks"
	"rite-api/core/utils"
	eventRepository "rite-api/modules/event/repository"
	"rite-api/modules/submission/dto"
	"rite-api/modules/submission/entity"
	"rite-api/modules/submission/repository"
	timeslotEntity "rite-api/modules/timeslot/entity"
	timeslotRepository "rite-api/modules/timeslot/repository"
)

const invalidLinkMessage = "submission link is invalid"

type SubmissionService struct {
	repo      repository.SubmissionRepositoryInterface
	slotRepo  timeslotRepository.TimeslotRepositoryInterface
	eventRepo eventRepository.EventRepositoryInterface
	cipher    *utils.Cipher
	enqueuer  tasks.Enqueuer
	storage   storage.Storage
}

type SubmissionServiceInterface interface {
	SaveSubmission(ctx context.Context, timeslotID uuid.UUID, token string, payload *dto.SubmissionPayload) (*dto.SubmissionResponse, *errors.AppError)
	GetForTimeslot(ctx context.Context, timeslotID uuid.UUID) (*dto.SubmissionResponse, error)
	GenerateUploadTicket(ctx context.Context, timeslotID uuid.UUID, token string, req *dto.UploadTicketRequest) (*storage.UploadTicket, *errors.AppError)
}

func NewSubmissionService(
	repo repository.SubmissionRepositoryInterface,
	slotRepo timeslotRepository.TimeslotRepositoryInterface,
	eventRepo eventRepository.EventRepositoryInterface,
	cipher *utils.Cipher,
	enqueuer tasks.Enqueuer,
	store storage.Storage,
) *SubmissionService {
	return &SubmissionService{
		repo:      repo,
		slotRepo:  slotRepo,
		eventRepo: eventRepo,
		cipher:    cipher,
		enqueuer:  enqueuer,
		storage:   store,
	}
}

// authorize re-checks the token against the slot row. The token is the sole
// credential on this path; a slot with no token, a missing slot, and a
// mismatched token all produce the identical error.
func (s *SubmissionService) authorize(ctx context.Context, timeslotID uuid.UUID, token string) (*timeslotEntity.Timeslot, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrInvalidToken, invalidLinkMessage, nil)
	}

	slot, err := s.slotRepo.GetByID(ctx, timeslotID)
	if err != nil {
		logger.Error("SubmissionService:authorize:GetByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load timeslot", err)
	}
	if slot == nil || slot.SubmissionToken == nil || *slot.SubmissionToken != token {
		return nil, errors.NewAppError(errors.ErrInvalidToken, invalidLinkMessage, nil)
	}
	return slot, nil
}

func validatePayload(payload *dto.SubmissionPayload, guestLimit *int) *errors.AppError {
	for _, f := range payload.Files {
		if appErr := ValidateFile(f); appErr != nil {
			return appErr
		}
	}

	for i, g := range payload.GuestList {
		if g.Name == "" {
			return errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("guest entry %d has no name", i+1), nil)
		}
	}
	if guestLimit != nil && len(payload.GuestList) > *guestLimit {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("guest list exceeds the limit of %d per DJ", *guestLimit), nil)
	}

	p := payload.PaymentInfo
	if p.AccountHolder == "" || p.BankName == "" || p.AccountNumber == "" || p.ResidentNumber == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "all payment fields are required", nil)
	}

	return nil
}

// SaveSubmission validates and persists a DJ's materials. First save for a
// timeslot inserts; later saves with the same token replace materials in
// place. The store's unique index is what guarantees at-most-one submission
// per timeslot under concurrent redemptions.
func (s *SubmissionService) SaveSubmission(ctx context.Context, timeslotID uuid.UUID, token string, payload *dto.SubmissionPayload) (*dto.SubmissionResponse, *errors.AppError) {
	slot, appErr := s.authorize(ctx, timeslotID, token)
	if appErr != nil {
		return nil, appErr
	}

	event, err := s.eventRepo.GetByID(ctx, slot.EventID)
	if err != nil {
		logger.Error("SubmissionService:SaveSubmission:GetEvent:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrInvalidToken, invalidLinkMessage, nil)
	}

	if appErr := validatePayload(payload, event.GuestLimitPerDJ); appErr != nil {
		return nil, appErr
	}

	encAccount, err := s.cipher.EncryptString(payload.PaymentInfo.AccountNumber)
	if err != nil {
		logger.Error("SubmissionService:SaveSubmission:Encrypt:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to protect payment info", err)
	}
	encResident, err := s.cipher.EncryptString(payload.PaymentInfo.ResidentNumber)
	if err != nil {
		logger.Error("SubmissionService:SaveSubmission:Encrypt:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to protect payment info", err)
	}

	now := time.Now()
	files := make([]entity.FileDescriptor, 0, len(payload.Files))
	for _, f := range payload.Files {
		files = append(files, entity.FileDescriptor{
			Name:       f.Name,
			MimeType:   f.MimeType,
			Size:       f.Size,
			StorageKey: f.StorageKey,
			UploadedAt: now,
		})
	}
	guests := make(entity.GuestList, 0, len(payload.GuestList))
	for _, g := range payload.GuestList {
		guests = append(guests, entity.GuestEntry{Name: g.Name, Phone: g.Phone})
	}

	sub := &entity.Submission{
		EventID:        slot.EventID,
		TimeslotID:     slot.ID,
		UniqueLink:     token,
		PromoMaterials: entity.PromoMaterials{Files: files, Description: payload.PromoDescription},
		GuestList:      guests,
		PaymentInfo: entity.PaymentInfo{
			AccountHolder:       payload.PaymentInfo.AccountHolder,
			BankName:            payload.PaymentInfo.BankName,
			AccountNumber:       encAccount,
			ResidentNumber:      encResident,
			PreferDirectContact: payload.PaymentInfo.PreferDirectContact,
		},
	}

	saved, err := s.repo.Upsert(ctx, sub)
	if err != nil {
		logger.Error("SubmissionService:SaveSubmission:Upsert:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save submission", err)
	}

	// Denormalized reference; failure here is recoverable because every
	// completeness check re-derives from the submissions table.
	if err := s.slotRepo.SetSubmissionRef(ctx, slot.ID, saved.ID); err != nil {
		logger.Warn("SubmissionService:SaveSubmission:SetSubmissionRef:Error:", err)
	}

	s.notifyOrganizer(event.OrganizerID, event.ID, event.Name, slot, saved)

	resp := s.toResponse(saved)
	// Return what the DJ sent, not ciphertext.
	resp.PaymentInfo.AccountNumber = payload.PaymentInfo.AccountNumber
	resp.PaymentInfo.ResidentNumber = payload.PaymentInfo.ResidentNumber
	return resp, nil
}

// notifyOrganizer is best-effort: a queue hiccup must never fail the save.
func (s *SubmissionService) notifyOrganizer(organizerID, eventID uuid.UUID, eventName string, slot *timeslotEntity.Timeslot, sub *entity.Submission) {
	if s.enqueuer == nil {
		return
	}
	task, err := tasks.NewSubmissionReceivedTask(tasks.SubmissionReceivedPayload{
		OrganizerID: organizerID,
		EventID:     eventID,
		EventName:   eventName,
		TimeslotID:  slot.ID,
		DJName:      slot.DJName,
		SubmittedAt: sub.SubmittedAt,
	})
	if err != nil {
		logger.Warn("SubmissionService:notifyOrganizer:Task:Error:", err)
		return
	}
	if _, err := s.enqueuer.Enqueue(task); err != nil {
		logger.Warn("SubmissionService:notifyOrganizer:Enqueue:Error:", err)
	}
}

// GetForTimeslot returns the existing submission for a slot with sensitive
// fields decrypted, or nil when none exists. Callers have already proven
// token possession.
func (s *SubmissionService) GetForTimeslot(ctx context.Context, timeslotID uuid.UUID) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.GetByTimeslotID(ctx, timeslotID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	resp := s.toResponse(sub)
	if account, err := s.cipher.DecryptString(sub.PaymentInfo.AccountNumber); err == nil {
		resp.PaymentInfo.AccountNumber = account
	} else {
		logger.Error("SubmissionService:GetForTimeslot:Decrypt:Error:", err)
		resp.PaymentInfo.AccountNumber = ""
	}
	if resident, err := s.cipher.DecryptString(sub.PaymentInfo.ResidentNumber); err == nil {
		resp.PaymentInfo.ResidentNumber = resident
	} else {
		logger.Error("SubmissionService:GetForTimeslot:Decrypt:Error:", err)
		resp.PaymentInfo.ResidentNumber = ""
	}
	return resp, nil
}

func (s *SubmissionService) toResponse(sub *entity.Submission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		ID:             sub.ID.String(),
		TimeslotID:     sub.TimeslotID.String(),
		PromoMaterials: sub.PromoMaterials,
		GuestList:      sub.GuestList,
		PaymentInfo: dto.PaymentInfoDTO{
			AccountHolder:       sub.PaymentInfo.AccountHolder,
			BankName:            sub.PaymentInfo.BankName,
			PreferDirectContact: sub.PaymentInfo.PreferDirectContact,
		},
		SubmittedAt:   sub.SubmittedAt,
		LastUpdatedAt: sub.LastUpdatedAt,
	}
}

// GenerateUploadTicket hands the DJ a presigned PUT for one promo file.
// Token possession and the file policy are checked before any blob-store
// call.
func (s *SubmissionService) GenerateUploadTicket(ctx context.Context, timeslotID uuid.UUID, token string, req *dto.UploadTicketRequest) (*storage.UploadTicket, *errors.AppError) {
	if _, appErr := s.authorize(ctx, timeslotID, token); appErr != nil {
		return nil, appErr
	}

	if appErr := ValidateFile(dto.FileDescriptorDTO{Name: req.Filename, MimeType: req.MimeType, Size: req.Size}); appErr != nil {
		return nil, appErr
	}

	ticket, err := s.storage.GenerateUploadTicket(ctx, req.Filename, req.MimeType)
	if err != nil {
		logger.Error("SubmissionService:GenerateUploadTicket:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue upload ticket", err)
	}
	return ticket, nil
}
