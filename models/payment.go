package models

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	st := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

type PaymentMethod string

const (
	MethodCreditCard    PaymentMethod = "credit_card"
	MethodBankTransfer  PaymentMethod = "bank_transfer"
	MethodDigitalWallet PaymentMethod = "digital_wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodBankTransfer, MethodDigitalWallet:
		return true
	}
	return false
}

// ParsePaymentMethod defaults an empty method to digital_wallet.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MethodDigitalWallet, true
	}
	m := PaymentMethod(s)
	return m, m.Valid()
}

type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	BookingID     uint          `gorm:"not null;index" json:"booking_id"`
	Booking       *Booking      `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	TenantID      uint          `gorm:"not null;index" json:"tenant_id"`
	LandlordID    uint          `gorm:"not null;index" json:"landlord_id"`
	Amount        float64       `gorm:"type:decimal(12,2);not null;check:amount > 0" json:"amount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(30);not null" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TransactionID string        `gorm:"uniqueIndex;not null" json:"transaction_id"`
	PaidAt        *time.Time    `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
