package models

import "time"

type Property struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"not null" json:"title"`
	Description string            `gorm:"type:text;not null" json:"description"`
	RentPrice   float64           `gorm:"type:decimal(12,2);not null;check:rent_price > 0" json:"rent_price"`
	Location    string            `gorm:"not null;index" json:"location"`
	ImageURL    string            `json:"image_url"`
	LandlordID  uint              `gorm:"not null;index" json:"landlord_id"`
	Landlord    *User             `gorm:"foreignKey:LandlordID" json:"landlord,omitempty"`
	Available   bool              `gorm:"not null" json:"available"`
	Images      []PropertyImage   `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Amenities   []PropertyAmenity `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type PropertyImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	ImageURL   string    `gorm:"type:text;not null" json:"image_url"`
	Caption    string    `json:"caption"`
	IsPrimary  bool      `gorm:"not null;default:false" json:"is_primary"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

type PropertyAmenity struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PropertyID  uint   `gorm:"not null;index" json:"property_id"`
	AmenityName string `gorm:"not null" json:"amenity_name"`
	Description string `json:"description"`
	Included    bool   `gorm:"not null" json:"included"`
}
