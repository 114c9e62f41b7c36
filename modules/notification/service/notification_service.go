package service

import (
	"context"

	"github.com/google/uuid"

	"rite-api/core/errors"
	"rite-api/core/logger"
	"rite-api/core/params"
	"rite-api/modules/notification/dto"
	"rite-api/modules/notification/entity"
	"rite-api/modules/notification/repository"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

type NotificationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) error
	List(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*dto.NotificationListResponse, *errors.AppError)
	MarkRead(ctx context.Context, id, userID uuid.UUID) *errors.AppError
	MarkAllRead(ctx context.Context, userID uuid.UUID) *errors.AppError
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	n := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.Data(req.Data),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		logger.Error("NotificationService:Create:Error:", err)
		return err
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*dto.NotificationListResponse, *errors.AppError) {
	notifications, err := s.repo.GetByUserID(ctx, userID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list notifications", err)
	}
	unread, err := s.repo.CountUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to count notifications", err)
	}
	return &dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
		Page:          p.Page,
		Limit:         p.Limit,
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) *errors.AppError {
	updated, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to mark notification read", err)
	}
	if !updated {
		return errors.NewAppError(errors.ErrNotFound, "notification not found", nil)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to mark notifications read", err)
	}
	return nil
}
