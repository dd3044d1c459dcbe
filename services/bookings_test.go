package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/services"
)

func TestCreateBooking(t *testing.T) {
	e := newEnv(t)

	b := e.book(t)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "2024-03-01", time.Time(b.StartDate).Format("2006-01-02"))

	n := e.notices.last()
	assert.Equal(t, models.NotifyBookingRequest, n.Type)
	assert.Equal(t, e.landlord.UserID, n.UserID)
	assert.Equal(t, "jeremy@example.com", n.Email)
	assert.Equal(t, b.ID, n.EntityID)
}

func TestCreateBookingValidation(t *testing.T) {
	e := newEnv(t)

	cases := map[string]services.BookingInput{
		"missing tenant":   {PropertyID: e.property.ID, StartDate: "2024-03-01", EndDate: "2024-04-01"},
		"missing property": {TenantID: e.tenant.UserID, StartDate: "2024-03-01", EndDate: "2024-04-01"},
		"missing dates":    {TenantID: e.tenant.UserID, PropertyID: e.property.ID},
		"bad start":        {TenantID: e.tenant.UserID, PropertyID: e.property.ID, StartDate: "03/01/2024", EndDate: "2024-04-01"},
		"bad end":          {TenantID: e.tenant.UserID, PropertyID: e.property.ID, StartDate: "2024-03-01", EndDate: "2024-13-01"},
		"end before start": {TenantID: e.tenant.UserID, PropertyID: e.property.ID, StartDate: "2024-04-01", EndDate: "2024-03-01"},
		"same day":         {TenantID: e.tenant.UserID, PropertyID: e.property.ID, StartDate: "2024-04-01", EndDate: "2024-04-01"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.bookings.Create(e.ctx, e.tenant, in)
			assert.Equal(t, services.KindValidation, kind(err))
		})
	}
}

func TestCreateBookingRules(t *testing.T) {
	e := newEnv(t)
	in := services.BookingInput{
		TenantID: e.tenant.UserID, PropertyID: e.property.ID,
		StartDate: "2024-03-01", EndDate: "2024-06-01",
	}

	_, err := e.bookings.Create(e.ctx, e.other, in)
	assert.Equal(t, services.KindForbidden, kind(err), "booking for someone else")

	missing := in
	missing.PropertyID = 9999
	_, err = e.bookings.Create(e.ctx, e.tenant, missing)
	assert.Equal(t, services.KindNotFound, kind(err))

	first, err := e.bookings.Create(e.ctx, e.tenant, in)
	require.NoError(t, err)

	_, err = e.bookings.Create(e.ctx, e.tenant, in)
	assert.Equal(t, services.KindConflict, kind(err), "second open booking for the same property")

	_, err = e.bookings.Cancel(e.ctx, e.tenant, first.ID)
	require.NoError(t, err)

	again, err := e.bookings.Create(e.ctx, e.tenant, in)
	require.NoError(t, err, "rebooking after cancellation")
	assert.NotEqual(t, first.ID, again.ID)

	adminBooked, err := e.bookings.Create(e.ctx, e.admin, services.BookingInput{
		TenantID: e.other.UserID, PropertyID: e.property.ID, StartDate: "2024-07-01", EndDate: "2024-08-01",
	})
	require.NoError(t, err)
	assert.Equal(t, e.other.UserID, adminBooked.TenantID)
}

func TestCreateBookingUnavailableProperty(t *testing.T) {
	e := newEnv(t)
	e.property.Available = false
	require.NoError(t, e.store.UpdateProperty(e.ctx, e.property))

	_, err := e.bookings.Create(e.ctx, e.tenant, services.BookingInput{
		TenantID: e.tenant.UserID, PropertyID: e.property.ID, StartDate: "2024-03-01", EndDate: "2024-06-01",
	})
	assert.Equal(t, services.KindState, kind(err))
}

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from models.BookingStatus
		to   string
		want services.Kind
	}{
		{models.BookingPending, "approved", ""},
		{models.BookingPending, "cancelled", ""},
		{models.BookingPending, "pending", ""},
		{models.BookingApproved, "cancelled", ""},
		{models.BookingApproved, "approved", ""},
		{models.BookingApproved, "pending", services.KindState},
		{models.BookingActive, "cancelled", ""},
		{models.BookingActive, "approved", services.KindState},
		{models.BookingActive, "pending", services.KindState},
		{models.BookingPaid, "cancelled", ""},
		{models.BookingCancelled, "approved", services.KindState},
		{models.BookingCancelled, "pending", services.KindState},
		{models.BookingCancelled, "cancelled", ""},
		{models.BookingPending, "active", services.KindValidation},
		{models.BookingApproved, "paid", services.KindValidation},
		{models.BookingPending, "archived", services.KindValidation},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
			e := newEnv(t)
			b := e.seedBooking(t, e.tenant, tc.from)

			got, err := e.bookings.UpdateStatus(e.ctx, e.landlord, b.ID, tc.to)
			assert.Equal(t, tc.want, kind(err))
			if tc.want == "" {
				assert.Equal(t, models.BookingStatus(tc.to), got.Status)
				stored, err := e.store.GetBooking(e.ctx, b.ID)
				require.NoError(t, err)
				assert.Equal(t, models.BookingStatus(tc.to), stored.Status)
			}
		})
	}
}

func TestBookingStatusIsCaseInsensitive(t *testing.T) {
	e := newEnv(t)
	b := e.book(t)

	got, err := e.bookings.UpdateStatus(e.ctx, e.landlord, b.ID, "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, got.Status)

	n := e.notices.last()
	assert.Equal(t, models.NotifyBookingApproved, n.Type)
	assert.Equal(t, e.tenant.UserID, n.UserID)
}

func TestBookingStatusPermissions(t *testing.T) {
	e := newEnv(t)
	b := e.book(t)

	_, err := e.bookings.UpdateStatus(e.ctx, e.tenant, b.ID, "approved")
	assert.Equal(t, services.KindForbidden, kind(err), "tenants cannot approve")

	_, err = e.bookings.Cancel(e.ctx, e.other, b.ID)
	assert.Equal(t, services.KindForbidden, kind(err), "strangers cannot cancel")

	_, err = e.bookings.UpdateStatus(e.ctx, e.landlord, 9999, "approved")
	assert.Equal(t, services.KindNotFound, kind(err))

	got, err := e.bookings.UpdateStatus(e.ctx, e.admin, b.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, got.Status)

	got, err = e.bookings.Cancel(e.ctx, e.tenant, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
	assert.Equal(t, models.NotifyBookingCanceled, e.notices.last().Type)
}

func TestNoOpTransitionDoesNotNotify(t *testing.T) {
	e := newEnv(t)
	b := e.seedBooking(t, e.tenant, models.BookingApproved)

	before := e.notices.count()
	_, err := e.bookings.UpdateStatus(e.ctx, e.landlord, b.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, before, e.notices.count())
}

func TestListBookings(t *testing.T) {
	e := newEnv(t)
	mine := e.book(t)
	e.seedBooking(t, e.other, models.BookingPending)

	got, err := e.bookings.ListForTenant(e.ctx, e.tenant, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
	require.NotNil(t, got[0].Property)
	assert.Equal(t, "Westlands flat", got[0].Property.Title)

	_, err = e.bookings.ListForTenant(e.ctx, e.tenant, e.other.UserID)
	assert.Equal(t, services.KindForbidden, kind(err))

	landlord, err := e.bookings.ListForLandlord(e.ctx, e.landlord, e.landlord.UserID)
	require.NoError(t, err)
	assert.Len(t, landlord, 2)

	_, err = e.bookings.ListForLandlord(e.ctx, e.tenant, e.landlord.UserID)
	assert.Equal(t, services.KindForbidden, kind(err))

	_, err = e.bookings.ListAll(e.ctx, e.landlord)
	assert.Equal(t, services.KindForbidden, kind(err))
	all, err := e.bookings.ListAll(e.ctx, e.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
