package model

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
)

type ItemStatus string

const (
	ItemAvailable   ItemStatus = "AVAILABLE"
	ItemUnavailable ItemStatus = "UNAVAILABLE"
)

type Item struct {
	ID              int64      `json:"id" db:"id"`
	Barcode         string     `json:"barcode" db:"barcode"`
	ISBN            string     `json:"isbn" db:"isbn"`
	Title           string     `json:"title" db:"title"`
	Author          string     `json:"author" db:"author"`
	Year            int        `json:"year" db:"publication_year"`
	TotalCopies     int        `json:"totalCopies" db:"total_copies"`
	AvailableCopies int        `json:"availableCopies" db:"available_copies"`
	Status          ItemStatus `json:"status" db:"status"`
	CreatedAt       *time.Time `json:"createdAt,omitempty" db:"created_at"`
}

func (i Item) Available() bool {
	return i.AvailableCopies > 0 && i.Status == ItemAvailable
}

// Validate checks 0 <= availableCopies <= totalCopies.
func (i Item) Validate() error {
	if i.AvailableCopies < 0 || i.AvailableCopies > i.TotalCopies {
		return errors.Wrapf(errs.ErrInvariant, "item %d: available %d of total %d",
			i.ID, i.AvailableCopies, i.TotalCopies)
	}
	return nil
}

// Checkout takes one copy off the shelf.
func (i *Item) Checkout() error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !i.Available() {
		return errs.ErrNotAvailable
	}
	i.AvailableCopies--
	i.Status = statusFor(i.AvailableCopies)
	return nil
}

// Checkin puts one copy back, never exceeding TotalCopies.
func (i *Item) Checkin() error {
	if err := i.Validate(); err != nil {
		return err
	}
	if i.AvailableCopies < i.TotalCopies {
		i.AvailableCopies++
	}
	i.Status = statusFor(i.AvailableCopies)
	return nil
}

func statusFor(available int) ItemStatus {
	if available > 0 {
		return ItemAvailable
	}
	return ItemUnavailable
}

type LoanKind string

const (
	LoanIssue  LoanKind = "ISSUE"
	LoanReturn LoanKind = "RETURN"
)

type LoanStatus string

const (
	LoanActive    LoanStatus = "ACTIVE"
	LoanCompleted LoanStatus = "COMPLETED"
)

type Loan struct {
	ID         int64      `json:"id" db:"id"`
	ItemID     int64      `json:"itemId" db:"item_id"`
	BorrowerID int64      `json:"borrowerId" db:"borrower_id"`
	Kind       LoanKind   `json:"kind" db:"kind"`
	Status     LoanStatus `json:"status" db:"status"`
	IssuedAt   time.Time  `json:"issuedAt" db:"issued_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
}

func NewLoan(borrowerID, itemID int64, now time.Time) Loan {
	return Loan{
		ItemID:     itemID,
		BorrowerID: borrowerID,
		Kind:       LoanIssue,
		Status:     LoanActive,
		IssuedAt:   now,
	}
}

// Complete turns an active issue into a completed return in place.
func (l *Loan) Complete(now time.Time) error {
	if l.Status != LoanActive {
		return errors.Wrapf(errs.ErrInvariant, "loan %d is %s", l.ID, l.Status)
	}
	l.Kind = LoanReturn
	l.Status = LoanCompleted
	l.ReturnedAt = &now
	return nil
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationNotified  ReservationStatus = "NOTIFIED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID         int64             `json:"id" db:"id"`
	ItemID     int64             `json:"itemId" db:"item_id"`
	BorrowerID int64             `json:"borrowerId" db:"borrower_id"`
	Status     ReservationStatus `json:"status" db:"status"`
	Notified   bool              `json:"notified" db:"notified"`
	NotifiedAt *time.Time        `json:"notifiedAt,omitempty" db:"notified_at"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
}

type Borrower struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Points   int64  `json:"points" db:"points"`
}

// ItemCount is the number of loans of one item inside a window.
type ItemCount struct {
	ItemID int64 `json:"itemId" db:"item_id"`
	Count  int64 `json:"count" db:"cnt"`
}

type Recommendations struct {
	PopularOverall     []Item `json:"popularOverall"`
	BecauseYouBorrowed []Item `json:"becauseYouBorrowed"`
}

type Discover struct {
	Trending    []Item `json:"trending"`
	NewArrivals []Item `json:"newArrivals"`
}

type Overview struct {
	TotalBorrowers int64  `json:"totalBorrowers"`
	TotalItems     int64  `json:"totalItems"`
	IssuesToday    int64  `json:"issuesToday"`
	TopItems       []Item `json:"topItems"`
}
