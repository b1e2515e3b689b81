package model

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventItemIssued          EventType = "ITEM_ISSUED"
	EventItemReturned        EventType = "ITEM_RETURNED"
	EventReservationNotified EventType = "RESERVATION_NOTIFIED"
)

// Event is published after a committed state change. ID lets consumers
// drop redeliveries.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	BorrowerID    int64     `json:"borrowerId"`
	ItemID        int64     `json:"itemId"`
	Barcode       string    `json:"barcode,omitempty"`
	Title         string    `json:"title,omitempty"`
	LoanID        int64     `json:"loanId,omitempty"`
	ReservationID int64     `json:"reservationId,omitempty"`
	Points        int64     `json:"points,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewEvent(t EventType, item Item, borrowerID int64, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		BorrowerID: borrowerID,
		ItemID:     item.ID,
		Barcode:    item.Barcode,
		Title:      item.Title,
		Timestamp:  at,
	}
}

// SettleRequest asks the waitlist to settle one item.
type SettleRequest struct {
	ItemID int64 `json:"itemId"`
}
