// Package repository is the entity store: persisted users, properties,
// bookings, payments, reviews, favorites and notifications.
package repository

import (
	"context"
	"errors"

	"github.com/sidhant-sriv/rentease-api/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type PropertyFilter struct {
	LandlordID uint
	Available  *bool
	Location   string
	MinPrice   float64
	MaxPrice   float64

	// Limit and Offset page the result; a zero Limit returns everything.
	Limit  int
	Offset int
}

type BookingFilter struct {
	TenantID   uint
	LandlordID uint
	PropertyID uint
	Status     models.BookingStatus
}

type PaymentFilter struct {
	TenantID   uint
	LandlordID uint
	BookingID  uint
}

type ReviewFilter struct {
	PropertyID   uint
	ApprovedOnly bool
}

// Store is everything the domain services need from persistence.
//
// Lock* methods read a row for update; they only make sense inside
// Transaction.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	CountUserLinks(ctx context.Context, id uint) (int64, error)

	CreateProperty(ctx context.Context, p *models.Property) error
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	LockProperty(ctx context.Context, id uint) (*models.Property, error)
	ListProperties(ctx context.Context, f PropertyFilter) ([]models.Property, error)
	CountProperties(ctx context.Context, f PropertyFilter) (int64, error)
	UpdateProperty(ctx context.Context, p *models.Property) error
	DeleteProperty(ctx context.Context, id uint) error
	CreatePropertyImage(ctx context.Context, img *models.PropertyImage) error
	ListPropertyImages(ctx context.Context, propertyID uint) ([]models.PropertyImage, error)
	CreatePropertyAmenity(ctx context.Context, a *models.PropertyAmenity) error
	ListPropertyAmenities(ctx context.Context, propertyID uint) ([]models.PropertyAmenity, error)

	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	LockBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uint, status models.BookingStatus) error
	CountOpenBookings(ctx context.Context, tenantID, propertyID uint) (int64, error)
	CountPropertyBookings(ctx context.Context, propertyID uint) (int64, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	LockPayment(ctx context.Context, id uint) (*models.Payment, error)
	ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error

	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	ListReviews(ctx context.Context, f ReviewFilter) ([]models.Review, error)
	UpdateReview(ctx context.Context, r *models.Review) error

	AddFavorite(ctx context.Context, userID, propertyID uint) error
	RemoveFavorite(ctx context.Context, userID, propertyID uint) error
	IsFavorite(ctx context.Context, userID, propertyID uint) (bool, error)
	ListFavorites(ctx context.Context, userID uint) ([]models.Property, error)

	CreateNotification(ctx context.Context, n *models.Notification) error
	UpdateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id uint) error
}
