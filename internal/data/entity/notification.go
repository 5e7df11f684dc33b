package entity

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Title   string           `db:"title"`
	Message string           `db:"message"`
	Type    NotificationType `db:"type"`
	IsRead  bool             `db:"is_read"`
}
