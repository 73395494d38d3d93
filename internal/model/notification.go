package model

type GetNotificationsRequest struct {
	Type  string `json:"type"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
}

type GetUnreadNotificationCountRequest struct{}

type GetUnreadNotificationCountResponse struct {
	Count int64 `json:"count"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notification_id"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}

type DeleteNotificationRequest struct {
	NotificationID string `json:"notification_id"`
}

type DeleteNotificationResponse struct{}
