package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationTimetableChange NotificationType = "timetableChange"
	NotificationRoomChange      NotificationType = "roomChange"
	NotificationAnnouncement    NotificationType = "announcement"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTimetableChange, NotificationRoomChange, NotificationAnnouncement:
		return true
	}
	return false
}

// Notification is a message from one user to another.
type Notification struct {
	ID         string           `bson:"id" json:"id"`
	SenderID   string           `bson:"senderId" json:"senderId"`
	ReceiverID string           `bson:"receiverId" json:"receiverId"`
	Message    string           `bson:"message" json:"message"`
	Type       NotificationType `bson:"type" json:"type"`
	Timestamp  time.Time        `bson:"timestamp" json:"timestamp"`
}

// NotificationInput is the payload for POST /api/notifications.
type NotificationInput struct {
	Receiver  string           `json:"receiver" binding:"required"`
	Message   string           `json:"message" binding:"required"`
	Type      NotificationType `json:"type" binding:"required,notificationtype"`
	Timestamp *time.Time       `json:"timestamp"`
}

// NotificationUpdate is the payload for PUT /api/notifications/:id.
type NotificationUpdate struct {
	Message string `json:"message" binding:"required"`
}

// NotificationPayload is the background-task body used to deliver system
// generated notifications.
type NotificationPayload struct {
	SenderID    string           `json:"senderId"`
	ReceiverIDs []string         `json:"receiverIds"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	Timestamp   time.Time        `json:"timestamp"`
}
