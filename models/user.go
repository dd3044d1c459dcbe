package models

import (
	"strings"
	"time"
)

// Role is the closed set of account types.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLandlord, RoleTenant:
		return true
	}
	return false
}

// ParseRole normalizes s and reports whether it names a known role.
// An empty string yields RoleTenant.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleTenant, true
	}
	r := Role(s)
	return r, r.Valid()
}

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password;not null" json:"-"` // hide from JSON response
	Role         Role       `gorm:"type:varchar(20);not null;default:'tenant'" json:"role"`
	Properties   []Property `gorm:"foreignKey:LandlordID" json:"properties,omitempty"`
	Bookings     []Booking  `gorm:"foreignKey:TenantID" json:"bookings,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Favorite marks a user's interest in a property.
type Favorite struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PropertyID uint      `gorm:"primaryKey;autoIncrement:false" json:"property_id"`
	Property   *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
