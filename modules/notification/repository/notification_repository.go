package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"rite-api/core/database"
	"rite-api/core/logger"
	"rite-api/core/params"
	"rite-api/modules/notification/entity"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) ([]entity.Notification, error)
	CountUnreadByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	dataValue, err := n.Data.Value()
	if err != nil {
		logger.Error("NotificationRepository:Create:DataValue:Error:", err)
		return err
	}
	row := r.db.QueryRowContext(ctx, query, n.UserID, n.Title, n.Message, n.Type, dataValue)
	if err := row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) ([]entity.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, data, is_read, created_at, updated_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	notifications := []entity.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID, p.Limit, p.Offset())
	if err != nil {
		logger.Error("NotificationRepository:GetByUserID:Error:", err)
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnreadByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		logger.Error("NotificationRepository:CountUnreadByUserID:Error:", err)
		return 0, err
	}
	return count, nil
}

// MarkRead flips is_read for a single notification. The user_id predicate
// keeps one user from touching another user's rows.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`
	var updated uuid.UUID
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&updated)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		logger.Error("NotificationRepository:MarkRead:Error:", err)
		return false, err
	}
	return true, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = now()
		WHERE user_id = $1 AND is_read = false
	`
	if err := r.db.ExecContext(ctx, query, userID); err != nil {
		logger.Error("NotificationRepository:MarkAllRead:Error:", err)
		return err
	}
	return nil
}
