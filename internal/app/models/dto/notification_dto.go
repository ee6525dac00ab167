package dto

import "github.com/yigit/clubsphere/internal/app/models"

// NotificationListResponse is the latest notifications with the derived unread count
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}
