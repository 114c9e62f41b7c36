package dto

import (
	"github.com/google/uuid"

	"rite-api/modules/notification/entity"
)

type CreateNotificationRequest struct {
	UserID  uuid.UUID      `json:"user_id"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Data    map[string]any `json:"data,omitempty"`
}

type NotificationListResponse struct {
	Notifications []entity.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
}
