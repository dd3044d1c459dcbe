package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
)

type PaymentService struct {
	store    repository.Store
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewPaymentService(store repository.Store, notifier Notifier, log *slog.Logger) *PaymentService {
	return &PaymentService{store: store, notifier: notifier, log: log, now: time.Now}
}

type PaymentInput struct {
	BookingID     uint
	Amount        float64
	PaymentMethod string
}

// NewTransactionID returns TXN followed by a UTC timestamp and eight hex
// characters.
func NewTransactionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "TXN" + now.UTC().Format("20060102150405") + strings.ToUpper(suffix)
}

// Create records a completed payment for an approved booking and activates
// the booking in the same transaction.
func (s *PaymentService) Create(ctx context.Context, actor Actor, in PaymentInput) (*models.Payment, error) {
	const op = "payments.create"

	if in.BookingID == 0 {
		return nil, validation(op, "booking_id is required")
	}
	if in.Amount <= 0 {
		return nil, validation(op, "amount must be greater than 0")
	}
	method, ok := models.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, validation(op, "payment_method must be one of credit_card, bank_transfer, digital_wallet")
	}

	var (
		pay   *models.Payment
		title string
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		b, err := tx.LockBooking(ctx, in.BookingID)
		if err != nil {
			return storeErr(op, "booking", err)
		}
		if !actor.Is(b.TenantID) {
			return forbidden(op, "you can only pay for your own bookings")
		}
		if b.Status != models.BookingApproved {
			return invalidState(op, "booking must be approved before payment")
		}

		p, err := tx.GetProperty(ctx, b.PropertyID)
		if err != nil {
			return storeErr(op, "property", err)
		}
		title = p.Title

		now := s.now()
		pay = &models.Payment{
			BookingID:     b.ID,
			TenantID:      b.TenantID,
			LandlordID:    p.LandlordID,
			Amount:        in.Amount,
			PaymentMethod: method,
			Status:        models.PaymentCompleted,
			TransactionID: NewTransactionID(now),
			PaidAt:        &now,
		}
		if err := tx.CreatePayment(ctx, pay); err != nil {
			return storeErr(op, "payment", err)
		}
		return storeErr(op, "booking", tx.UpdateBookingStatus(ctx, b.ID, models.BookingActive))
	})
	if err != nil {
		return nil, err
	}

	notifyUser(ctx, s.store, s.notifier, s.log, pay.LandlordID, Notice{
		Type:       models.NotifyPaymentReceived,
		Title:      "Payment received",
		Message:    fmt.Sprintf("Payment of %.2f received for %s (transaction %s).", pay.Amount, title, pay.TransactionID),
		EntityType: "payment",
		EntityID:   pay.ID,
		ActionURL:  fmt.Sprintf("/payments?payment_id=%d", pay.ID),
	})
	return pay, nil
}

func canMovePayment(from, to models.PaymentStatus) bool {
	switch from {
	case models.PaymentRefunded:
		return false
	case models.PaymentCompleted:
		return to == models.PaymentRefunded
	}
	return true
}

// UpdateStatus lets the payee (or an admin) correct a payment. paid_at
// follows the completed status.
func (s *PaymentService) UpdateStatus(ctx context.Context, actor Actor, id uint, status string) (*models.Payment, error) {
	const op = "payments.update_status"

	to, ok := models.ParsePaymentStatus(status)
	if !ok {
		return nil, validation(op, "status must be one of pending, completed, failed, refunded")
	}

	var (
		pay     *models.Payment
		changed bool
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		pay, err = tx.LockPayment(ctx, id)
		if err != nil {
			return storeErr(op, "payment", err)
		}
		if !actor.Is(pay.LandlordID) {
			return forbidden(op, "only the receiving landlord can update this payment")
		}
		if pay.Status == to {
			return nil
		}
		if !canMovePayment(pay.Status, to) {
			return invalidState(op, fmt.Sprintf("cannot change payment from %s to %s", pay.Status, to))
		}

		pay.Status = to
		if to == models.PaymentCompleted {
			now := s.now()
			pay.PaidAt = &now
		} else {
			pay.PaidAt = nil
		}
		if err := tx.UpdatePayment(ctx, pay); err != nil {
			return storeErr(op, "payment", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		notifyUser(ctx, s.store, s.notifier, s.log, pay.TenantID, Notice{
			Type:       models.NotifyPaymentUpdated,
			Title:      "Payment updated",
			Message:    fmt.Sprintf("Payment %s is now %s.", pay.TransactionID, pay.Status),
			EntityType: "payment",
			EntityID:   pay.ID,
		})
	}
	return pay, nil
}

// List returns the caller's payments seen as role. An empty role means the
// caller's own role; admins without a role see every payment.
func (s *PaymentService) List(ctx context.Context, actor Actor, role string) ([]models.Payment, error) {
	const op = "payments.list"

	view := models.Role(strings.ToLower(strings.TrimSpace(role)))
	if view == "" {
		view = actor.Role
	}

	var f repository.PaymentFilter
	switch view {
	case models.RoleTenant:
		f.TenantID = actor.UserID
	case models.RoleLandlord:
		f.LandlordID = actor.UserID
	case models.RoleAdmin:
		if !actor.IsAdmin() {
			return nil, forbidden(op, "admin access required")
		}
	default:
		return nil, validation(op, "role must be tenant or landlord")
	}

	ps, err := s.store.ListPayments(ctx, f)
	if err != nil {
		return nil, storeErr(op, "payment", err)
	}
	return ps, nil
}
