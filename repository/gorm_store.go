package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sidhant-sriv/rentease-api/models"
)

// GormStore implements Store on a gorm connection (or transaction).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) q(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *GormStore) forUpdate(ctx context.Context) *gorm.DB {
	return s.q(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.q(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Users

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.q(ctx).Create(u).Error)
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.q(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.q(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.q(ctx).Order("id ASC").Find(&users).Error
	return users, translate(err)
}

func (s *GormStore) UpdateUser(ctx context.Context, u *models.User) error {
	return translate(s.q(ctx).Omit(clause.Associations).Save(u).Error)
}

func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	if err := s.q(ctx).Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
		return translate(err)
	}
	if err := s.q(ctx).Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
		return translate(err)
	}
	return affected(s.q(ctx).Delete(&models.User{}, id))
}

// CountUserLinks counts the properties and bookings that reference a user.
func (s *GormStore) CountUserLinks(ctx context.Context, id uint) (int64, error) {
	var props, bookings int64
	if err := s.q(ctx).Model(&models.Property{}).Where("landlord_id = ?", id).Count(&props).Error; err != nil {
		return 0, translate(err)
	}
	if err := s.q(ctx).Model(&models.Booking{}).Where("tenant_id = ?", id).Count(&bookings).Error; err != nil {
		return 0, translate(err)
	}
	return props + bookings, nil
}

// Properties

func (s *GormStore) CreateProperty(ctx context.Context, p *models.Property) error {
	return translate(s.q(ctx).Create(p).Error)
}

func (s *GormStore) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	err := s.q(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC, id ASC") }).
		Preload("Amenities").
		First(&p, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) LockProperty(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := s.forUpdate(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) filterProperties(ctx context.Context, f PropertyFilter) *gorm.DB {
	q := s.q(ctx).Model(&models.Property{})
	if f.LandlordID != 0 {
		q = q.Where("landlord_id = ?", f.LandlordID)
	}
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.MinPrice > 0 {
		q = q.Where("rent_price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("rent_price <= ?", f.MaxPrice)
	}
	return q
}

func (s *GormStore) ListProperties(ctx context.Context, f PropertyFilter) ([]models.Property, error) {
	q := s.filterProperties(ctx, f).Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var props []models.Property
	err := q.Find(&props).Error
	return props, translate(err)
}

func (s *GormStore) CountProperties(ctx context.Context, f PropertyFilter) (int64, error) {
	var n int64
	err := s.filterProperties(ctx, f).Count(&n).Error
	return n, translate(err)
}

func (s *GormStore) UpdateProperty(ctx context.Context, p *models.Property) error {
	return translate(s.q(ctx).Omit(clause.Associations).Save(p).Error)
}

// DeleteProperty removes a property with its images, amenities and
// favorites. Callers check for bookings first.
func (s *GormStore) DeleteProperty(ctx context.Context, id uint) error {
	for _, child := range []any{&models.PropertyImage{}, &models.PropertyAmenity{}, &models.Favorite{}} {
		if err := s.q(ctx).Where("property_id = ?", id).Delete(child).Error; err != nil {
			return translate(err)
		}
	}
	return affected(s.q(ctx).Delete(&models.Property{}, id))
}

func (s *GormStore) CreatePropertyImage(ctx context.Context, img *models.PropertyImage) error {
	return translate(s.q(ctx).Create(img).Error)
}

func (s *GormStore) ListPropertyImages(ctx context.Context, propertyID uint) ([]models.PropertyImage, error) {
	var imgs []models.PropertyImage
	err := s.q(ctx).Where("property_id = ?", propertyID).Order("sort_order ASC, id ASC").Find(&imgs).Error
	return imgs, translate(err)
}

func (s *GormStore) CreatePropertyAmenity(ctx context.Context, a *models.PropertyAmenity) error {
	return translate(s.q(ctx).Create(a).Error)
}

func (s *GormStore) ListPropertyAmenities(ctx context.Context, propertyID uint) ([]models.PropertyAmenity, error) {
	var amenities []models.PropertyAmenity
	err := s.q(ctx).Where("property_id = ?", propertyID).Order("id ASC").Find(&amenities).Error
	return amenities, translate(err)
}

// Bookings

func (s *GormStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return translate(s.q(ctx).Omit(clause.Associations).Create(b).Error)
}

func (s *GormStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.q(ctx).Preload("Property").First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *GormStore) LockBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.forUpdate(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *GormStore) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := s.q(ctx).Model(&models.Booking{}).Preload("Property").Preload("Tenant")
	if f.LandlordID != 0 {
		q = q.Joins("JOIN properties ON properties.id = bookings.property_id").
			Where("properties.landlord_id = ?", f.LandlordID)
	}
	if f.TenantID != 0 {
		q = q.Where("bookings.tenant_id = ?", f.TenantID)
	}
	if f.PropertyID != 0 {
		q = q.Where("bookings.property_id = ?", f.PropertyID)
	}
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}

	var bookings []models.Booking
	err := q.Order("bookings.created_at DESC, bookings.id DESC").Find(&bookings).Error
	return bookings, translate(err)
}

func (s *GormStore) UpdateBookingStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	return affected(s.q(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status))
}

// CountOpenBookings counts the non-cancelled bookings of a tenant on a property.
func (s *GormStore) CountOpenBookings(ctx context.Context, tenantID, propertyID uint) (int64, error) {
	var n int64
	err := s.q(ctx).Model(&models.Booking{}).
		Where("tenant_id = ? AND property_id = ? AND status <> ?", tenantID, propertyID, models.BookingCancelled).
		Count(&n).Error
	return n, translate(err)
}

func (s *GormStore) CountPropertyBookings(ctx context.Context, propertyID uint) (int64, error) {
	var n int64
	err := s.q(ctx).Model(&models.Booking{}).Where("property_id = ?", propertyID).Count(&n).Error
	return n, translate(err)
}

// Payments

func (s *GormStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	return translate(s.q(ctx).Omit(clause.Associations).Create(p).Error)
}

func (s *GormStore) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := s.q(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) LockPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := s.forUpdate(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) ListPayments(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	q := s.q(ctx).Model(&models.Payment{})
	if f.TenantID != 0 {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.LandlordID != 0 {
		q = q.Where("landlord_id = ?", f.LandlordID)
	}
	if f.BookingID != 0 {
		q = q.Where("booking_id = ?", f.BookingID)
	}

	var payments []models.Payment
	err := q.Order("created_at DESC, id DESC").Find(&payments).Error
	return payments, translate(err)
}

func (s *GormStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return translate(s.q(ctx).Omit(clause.Associations).Save(p).Error)
}

// Reviews

func (s *GormStore) CreateReview(ctx context.Context, r *models.Review) error {
	return translate(s.q(ctx).Create(r).Error)
}

func (s *GormStore) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var r models.Review
	if err := s.q(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *GormStore) ListReviews(ctx context.Context, f ReviewFilter) ([]models.Review, error) {
	q := s.q(ctx).Model(&models.Review{})
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if f.ApprovedOnly {
		q = q.Where("is_approved = ?", true)
	}

	var reviews []models.Review
	err := q.Order("created_at DESC, id DESC").Find(&reviews).Error
	return reviews, translate(err)
}

func (s *GormStore) UpdateReview(ctx context.Context, r *models.Review) error {
	return translate(s.q(ctx).Save(r).Error)
}

// Favorites

func (s *GormStore) AddFavorite(ctx context.Context, userID, propertyID uint) error {
	fav := models.Favorite{UserID: userID, PropertyID: propertyID}
	return translate(s.q(ctx).Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&fav).Error)
}

func (s *GormStore) RemoveFavorite(ctx context.Context, userID, propertyID uint) error {
	err := s.q(ctx).Where("user_id = ? AND property_id = ?", userID, propertyID).Delete(&models.Favorite{}).Error
	return translate(err)
}

func (s *GormStore) IsFavorite(ctx context.Context, userID, propertyID uint) (bool, error) {
	var n int64
	err := s.q(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&n).Error
	return n > 0, translate(err)
}

func (s *GormStore) ListFavorites(ctx context.Context, userID uint) ([]models.Property, error) {
	var props []models.Property
	err := s.q(ctx).
		Joins("JOIN favorites ON favorites.property_id = properties.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&props).Error
	return props, translate(err)
}

// Notifications

func (s *GormStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return translate(s.q(ctx).Create(n).Error)
}

func (s *GormStore) UpdateNotification(ctx context.Context, n *models.Notification) error {
	return translate(s.q(ctx).Save(n).Error)
}

func (s *GormStore) ListNotifications(ctx context.Context, userID uint) ([]models.Notification, error) {
	var ns []models.Notification
	err := s.q(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&ns).Error
	return ns, translate(err)
}

func (s *GormStore) MarkNotificationRead(ctx context.Context, userID, id uint) error {
	return affected(s.q(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true))
}
