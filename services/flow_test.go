package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/services"
)

func TestRentalLifecycle(t *testing.T) {
	e := newEnv(t)

	owner, err := e.users.Register(e.ctx, services.RegisterInput{
		Name: "Grace", Email: "grace@example.com", Password: "secret123", Role: "landlord",
	})
	require.NoError(t, err)
	renter, err := e.users.Register(e.ctx, services.RegisterInput{
		Name: "Brian", Email: "brian@example.com", Password: "secret123", Role: "tenant",
	})
	require.NoError(t, err)
	landlord := services.Actor{UserID: owner.ID, Role: owner.Role}
	tenant := services.Actor{UserID: renter.ID, Role: renter.Role}

	p, err := e.props.Create(e.ctx, landlord, services.PropertyInput{
		Title: "Lavington maisonette", Description: "Three bedrooms", RentPrice: 120000, Location: "Lavington",
	})
	require.NoError(t, err)

	b, err := e.bookings.Create(e.ctx, tenant, services.BookingInput{
		TenantID: renter.ID, PropertyID: p.ID, StartDate: "2025-01-01", EndDate: "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)

	_, err = e.payments.Create(e.ctx, tenant, services.PaymentInput{BookingID: b.ID, Amount: 120000})
	assert.Equal(t, services.KindState, kind(err), "pending bookings cannot be paid")

	_, err = e.reviews.Create(e.ctx, tenant, services.ReviewInput{BookingID: b.ID, Rating: 5})
	assert.Equal(t, services.KindState, kind(err), "unpaid stays cannot be reviewed")

	b, err = e.bookings.UpdateStatus(e.ctx, landlord, b.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, b.Status)

	pay, err := e.payments.Create(e.ctx, tenant, services.PaymentInput{BookingID: b.ID, Amount: 120000, PaymentMethod: "credit_card"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, pay.Status)
	assert.Equal(t, owner.ID, pay.LandlordID)

	bookings, err := e.bookings.ListForTenant(e.ctx, tenant, 0)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.BookingActive, bookings[0].Status)

	r, err := e.reviews.Create(e.ctx, tenant, services.ReviewInput{BookingID: b.ID, Rating: 5, ReviewText: "Great stay"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, r.PropertyID)
	assert.Equal(t, owner.ID, r.LandlordID)

	var types []models.NotificationType
	for _, n := range e.notices.notices {
		types = append(types, n.Type)
	}
	assert.Equal(t, []models.NotificationType{
		models.NotifyWelcome,
		models.NotifyWelcome,
		models.NotifyBookingRequest,
		models.NotifyBookingApproved,
		models.NotifyPaymentReceived,
	}, types)
}

func TestSecondPaymentIsRejected(t *testing.T) {
	e := newEnv(t)

	alice, err := e.users.Register(e.ctx, services.RegisterInput{
		Name: "Alice", Email: "alice@x.com", Password: "pw123", Role: "tenant",
	})
	require.NoError(t, err)
	tenant := services.Actor{UserID: alice.ID, Role: alice.Role}

	flat, err := e.props.Create(e.ctx, e.landlord, services.PropertyInput{
		Title: "Flat A", Description: "One bedroom", RentPrice: 1000, Location: "Town",
	})
	require.NoError(t, err)

	b, err := e.bookings.Create(e.ctx, tenant, services.BookingInput{
		TenantID: alice.ID, PropertyID: flat.ID, StartDate: "2024-01-01", EndDate: "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)

	b, err = e.bookings.UpdateStatus(e.ctx, e.landlord, b.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, b.Status)

	_, err = e.payments.Create(e.ctx, tenant, services.PaymentInput{BookingID: b.ID, Amount: 1000})
	require.NoError(t, err)

	paid, err := e.store.GetBooking(e.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingActive, paid.Status)

	_, err = e.payments.Create(e.ctx, tenant, services.PaymentInput{BookingID: b.ID, Amount: 1000})
	assert.Equal(t, services.KindState, kind(err))
}
