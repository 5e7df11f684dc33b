package response

import (
	"time"

	"carwash-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      entity.NotificationType `json:"type"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
