package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"", RoleTenant, true},
		{"Landlord", RoleLandlord, true},
		{" admin ", RoleAdmin, true},
		{"owner", Role("owner"), false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestBookingStatus(t *testing.T) {
	st, ok := ParseBookingStatus("APPROVED")
	assert.True(t, ok)
	assert.Equal(t, BookingApproved, st)

	_, ok = ParseBookingStatus("confirmed")
	assert.False(t, ok)

	for s, paid := range map[BookingStatus]bool{
		BookingPending:   false,
		BookingApproved:  false,
		BookingActive:    true,
		BookingPaid:      true,
		BookingCancelled: false,
	} {
		assert.Equal(t, paid, s.PostPayment(), s)
	}
}

func TestPaymentEnums(t *testing.T) {
	st, ok := ParsePaymentStatus("Refunded")
	assert.True(t, ok)
	assert.Equal(t, PaymentRefunded, st)
	_, ok = ParsePaymentStatus("settled")
	assert.False(t, ok)

	m, ok := ParsePaymentMethod("")
	assert.True(t, ok)
	assert.Equal(t, MethodDigitalWallet, m)
	m, ok = ParsePaymentMethod("CREDIT_CARD")
	assert.True(t, ok)
	assert.Equal(t, MethodCreditCard, m)
	_, ok = ParsePaymentMethod("cash")
	assert.False(t, ok)
}
