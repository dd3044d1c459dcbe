package models

import "time"

type NotificationType string

const (
	NotifyWelcome         NotificationType = "welcome"
	NotifyBookingRequest  NotificationType = "booking_request"
	NotifyBookingApproved NotificationType = "booking_confirmed"
	NotifyBookingCanceled NotificationType = "booking_cancelled"
	NotifyPaymentReceived NotificationType = "payment_received"
	NotifyPaymentUpdated  NotificationType = "payment_updated"
)

// Notification is an in-app message, optionally mirrored by email.
type Notification struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	UserID            uint             `gorm:"not null;index" json:"user_id"`
	Type              NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title             string           `gorm:"not null" json:"title"`
	Message           string           `gorm:"type:text" json:"message"`
	EmailSent         bool             `gorm:"not null" json:"email_sent"`
	EmailSentAt       *time.Time       `json:"email_sent_at"`
	SendgridMessageID *string          `json:"sendgrid_message_id"`
	IsRead            bool             `gorm:"not null" json:"is_read"`
	RelatedEntityType string           `json:"related_entity_type"`
	RelatedEntityID   uint             `json:"related_entity_id"`
	ActionURL         string           `json:"action_url"`
	CreatedAt         time.Time        `json:"created_at"`
}
