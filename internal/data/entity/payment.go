package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCard          PaymentMethod = "card"
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodDigitalWallet PaymentMethod = "digital_wallet"
)

type Payment struct {
	Base
	BookingID     uuid.UUID     `db:"booking_id"`
	Amount        float64       `db:"amount"`
	Status        PaymentStatus `db:"status"`
	Method        PaymentMethod `db:"method"`
	TransactionID *string       `db:"transaction_id"`
}
