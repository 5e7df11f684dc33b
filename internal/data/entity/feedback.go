package entity

import (
	"github.com/google/uuid"
)

type Feedback struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	UserID    uuid.UUID `db:"user_id"`
	WasherID  uuid.UUID `db:"washer_id"`
	Rating    int       `db:"rating"`
	Comment   *string   `db:"comment"`
}
