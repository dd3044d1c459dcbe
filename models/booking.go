package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"

	// BookingPaid is a legacy label for a paid booking. It is accepted when
	// read back but never written; BookingActive is the post-payment state.
	BookingPaid BookingStatus = "paid"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingActive, BookingCancelled, BookingPaid:
		return true
	}
	return false
}

// PostPayment reports whether the booking has been paid for.
func (s BookingStatus) PostPayment() bool {
	return s == BookingActive || s == BookingPaid
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

type Booking struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	TenantID   uint           `gorm:"not null;index:idx_booking_tenant_property" json:"tenant_id"`
	Tenant     *User          `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	PropertyID uint           `gorm:"not null;index:idx_booking_tenant_property" json:"property_id"`
	Property   *Property      `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	StartDate  datatypes.Date `json:"start_date"`
	EndDate    datatypes.Date `json:"end_date"`
	Status     BookingStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	Payments   []Payment      `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
	Review     *Review        `gorm:"foreignKey:BookingID" json:"review,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
