package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
)

type BookingService struct {
	store    repository.Store
	notifier Notifier
	log      *slog.Logger
}

func NewBookingService(store repository.Store, notifier Notifier, log *slog.Logger) *BookingService {
	return &BookingService{store: store, notifier: notifier, log: log}
}

type BookingInput struct {
	TenantID   uint
	PropertyID uint
	StartDate  string
	EndDate    string
}

// Create requests a stay. The tenant may hold at most one non-cancelled
// booking per property.
func (s *BookingService) Create(ctx context.Context, actor Actor, in BookingInput) (*models.Booking, error) {
	const op = "bookings.create"

	if in.TenantID == 0 || in.PropertyID == 0 {
		return nil, validation(op, "tenant_id and property_id are required")
	}
	start, end, err := parseStay(op, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if !actor.Is(in.TenantID) {
		return nil, forbidden(op, "you can only book for yourself")
	}

	var (
		b        *models.Booking
		landlord uint
		title    string
	)
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.GetUser(ctx, in.TenantID); err != nil {
			return storeErr(op, "tenant", err)
		}
		p, err := tx.LockProperty(ctx, in.PropertyID)
		if err != nil {
			return storeErr(op, "property", err)
		}
		if !p.Available {
			return invalidState(op, "property is not available")
		}

		open, err := tx.CountOpenBookings(ctx, in.TenantID, in.PropertyID)
		if err != nil {
			return storeErr(op, "booking", err)
		}
		if open > 0 {
			return conflict(op, "you already have a booking for this property")
		}

		b = &models.Booking{
			TenantID:   in.TenantID,
			PropertyID: in.PropertyID,
			StartDate:  datatypes.Date(start),
			EndDate:    datatypes.Date(end),
			Status:     models.BookingPending,
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return storeErr(op, "booking", err)
		}
		landlord, title = p.LandlordID, p.Title
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyUser(ctx, landlord, Notice{
		Type:       models.NotifyBookingRequest,
		Title:      "New booking request",
		Message:    fmt.Sprintf("A tenant requested %s from %s to %s.", title, in.StartDate, in.EndDate),
		EntityType: "booking",
		EntityID:   b.ID,
		ActionURL:  fmt.Sprintf("/landlord/bookings?booking_id=%d", b.ID),
	})
	return b, nil
}

// canTransition reports whether a booking may move from one status to
// another. Paid bookings can only be cancelled.
func canTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	switch {
	case from == models.BookingPending:
		return to == models.BookingApproved || to == models.BookingCancelled
	case from == models.BookingApproved, from.PostPayment():
		return to == models.BookingCancelled
	}
	return false
}

// UpdateStatus applies a manual status change. Bookings only become active
// through a successful payment.
func (s *BookingService) UpdateStatus(ctx context.Context, actor Actor, id uint, status string) (*models.Booking, error) {
	const op = "bookings.update_status"

	to, ok := models.ParseBookingStatus(status)
	if !ok || to == models.BookingActive || to == models.BookingPaid {
		return nil, validation(op, "status must be one of pending, approved, cancelled")
	}

	var (
		b       *models.Booking
		changed bool
		title   string
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		b, err = tx.LockBooking(ctx, id)
		if err != nil {
			return storeErr(op, "booking", err)
		}
		p, err := tx.GetProperty(ctx, b.PropertyID)
		if err != nil {
			return storeErr(op, "property", err)
		}
		title = p.Title

		switch to {
		case models.BookingCancelled:
			if !actor.Is(b.TenantID) && !actor.Is(p.LandlordID) {
				return forbidden(op, "you cannot cancel this booking")
			}
		default:
			if !actor.Is(p.LandlordID) {
				return forbidden(op, "only the property landlord can change this booking")
			}
		}

		if !canTransition(b.Status, to) {
			return invalidState(op, fmt.Sprintf("cannot change booking from %s to %s", b.Status, to))
		}
		if b.Status == to {
			return nil
		}
		if err := tx.UpdateBookingStatus(ctx, b.ID, to); err != nil {
			return storeErr(op, "booking", err)
		}
		b.Status, changed = to, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		n := Notice{
			Type:       models.NotifyBookingApproved,
			Title:      "Booking approved",
			Message:    fmt.Sprintf("Your booking for %s was approved. You can now complete payment.", title),
			EntityType: "booking",
			EntityID:   b.ID,
			ActionURL:  fmt.Sprintf("/bookings?booking_id=%d", b.ID),
		}
		switch to {
		case models.BookingCancelled:
			n.Type, n.Title = models.NotifyBookingCanceled, "Booking cancelled"
			n.Message = fmt.Sprintf("Your booking for %s was cancelled.", title)
		case models.BookingPending:
			n.Type, n.Title = models.NotifyBookingRequest, "Booking pending"
			n.Message = fmt.Sprintf("Your booking for %s is pending review.", title)
		}
		s.notifyUser(ctx, b.TenantID, n)
	}
	return b, nil
}

func (s *BookingService) Cancel(ctx context.Context, actor Actor, id uint) (*models.Booking, error) {
	return s.UpdateStatus(ctx, actor, id, string(models.BookingCancelled))
}

// ListForTenant lists a tenant's bookings; tenantID 0 means the caller.
func (s *BookingService) ListForTenant(ctx context.Context, actor Actor, tenantID uint) ([]models.Booking, error) {
	const op = "bookings.list_tenant"
	if tenantID == 0 {
		tenantID = actor.UserID
	}
	if !actor.Is(tenantID) {
		return nil, forbidden(op, "you can only view your own bookings")
	}
	bs, err := s.store.ListBookings(ctx, repository.BookingFilter{TenantID: tenantID})
	if err != nil {
		return nil, storeErr(op, "booking", err)
	}
	return bs, nil
}

// ListForLandlord lists bookings on a landlord's properties; landlordID 0
// means the caller.
func (s *BookingService) ListForLandlord(ctx context.Context, actor Actor, landlordID uint) ([]models.Booking, error) {
	const op = "bookings.list_landlord"
	if landlordID == 0 {
		landlordID = actor.UserID
	}
	if !actor.Is(landlordID) {
		return nil, forbidden(op, "you can only view bookings on your own properties")
	}
	bs, err := s.store.ListBookings(ctx, repository.BookingFilter{LandlordID: landlordID})
	if err != nil {
		return nil, storeErr(op, "booking", err)
	}
	return bs, nil
}

func (s *BookingService) ListAll(ctx context.Context, actor Actor) ([]models.Booking, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("bookings.list", "admin access required")
	}
	bs, err := s.store.ListBookings(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, storeErr("bookings.list", "booking", err)
	}
	return bs, nil
}

// notifyUser fills in the recipient and hands n to the notifier.
func (s *BookingService) notifyUser(ctx context.Context, userID uint, n Notice) {
	notifyUser(ctx, s.store, s.notifier, s.log, userID, n)
}

func notifyUser(ctx context.Context, store repository.Store, notifier Notifier, log *slog.Logger, userID uint, n Notice) {
	u, err := store.GetUser(ctx, userID)
	if err != nil {
		log.Warn("notification.recipient_missing", "user_id", userID, "type", n.Type, "error", err)
		return
	}
	n.UserID, n.Email = u.ID, u.Email
	notifier.Notify(ctx, n)
}
