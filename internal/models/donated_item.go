package models

import (
	"time"

	"github.com/google/uuid"
)

// DonatedItem описывает пожертвованную вещь.
//
// Жизненный цикл выводится из пары claimed_by_id/claimed_date:
// available (никто не забронировал) -> claimed (бронь без даты выдачи)
// -> completed (бронь и дата выдачи). Администратор может вернуть вещь
// в available, очистив оба поля.
type DonatedItem struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	DonorID        uuid.UUID  `db:"donor_id" json:"donorId"`
	DonorName      string     `db:"donor_name" json:"donorName"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	Category       string     `db:"category" json:"category"`
	Condition      string     `db:"condition" json:"condition"`
	EstimatedValue *float64   `db:"estimated_value" json:"estimatedValue,omitempty"`
	PickupLocation string     `db:"pickup_location" json:"pickupLocation"`
	ClaimedByID    *uuid.UUID `db:"claimed_by_id" json:"claimedBy,omitempty"`
	ClaimedDate    *time.Time `db:"claimed_date" json:"claimedDate,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// Status возвращает производный статус жизненного цикла.
func (d *DonatedItem) Status() string {
	switch {
	case d.ClaimedByID == nil:
		return DonationStatusAvailable
	case d.ClaimedDate == nil:
		return DonationStatusClaimed
	default:
		return DonationStatusCompleted
	}
}
