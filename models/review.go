package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookingID     uint      `gorm:"uniqueIndex;not null" json:"booking_id"`
	TenantID      uint      `gorm:"not null;index" json:"tenant_id"`
	PropertyID    uint      `gorm:"not null;index" json:"property_id"`
	LandlordID    uint      `gorm:"not null;index" json:"landlord_id"`
	Rating        int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText    string    `gorm:"type:text" json:"review_text"`
	LandlordReply string    `gorm:"type:text" json:"landlord_reply"`
	IsApproved    bool      `gorm:"not null" json:"is_approved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
