package repository

import (
	"context"
	"time"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

// NoItemID never matches a stored item; it stands in for an empty
// exclusion list.
const NoItemID int64 = -1

type Catalog interface {
	GetItemByKey(ctx context.Context, barcode string) (model.Item, error)
	GetItemByID(ctx context.Context, id int64) (model.Item, error)
	ExistsByKey(ctx context.Context, barcode string) (bool, error)
	ListAvailable(ctx context.Context) ([]model.Item, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Item, error)
	// ListByCreationDesc skips items without a creation timestamp.
	ListByCreationDesc(ctx context.Context, n int) ([]model.Item, error)
	ListByIDDesc(ctx context.Context, n int) ([]model.Item, error)
	// Search returns matches in ascending id order.
	Search(ctx context.Context, filter model.ItemFilter) ([]model.Item, error)
	CountItems(ctx context.Context) (int64, error)
}

type LoanLedger interface {
	// AggregateCountsSince counts ACTIVE and COMPLETED loans issued at or
	// after since, highest count first, ties by item id.
	AggregateCountsSince(ctx context.Context, since time.Time) ([]model.ItemCount, error)
	BorrowedAuthors(ctx context.Context, borrowerID int64) ([]string, error)
	BorrowedItemIDs(ctx context.Context, borrowerID int64) ([]int64, error)
}

type RequestQueue interface {
	ListPendingByBorrower(ctx context.Context, borrowerID int64) ([]model.Reservation, error)
	ListNotified(ctx context.Context) ([]model.Reservation, error)
}

type Borrowers interface {
	GetBorrower(ctx context.Context, id int64) (model.Borrower, error)
	CountBorrowers(ctx context.Context) (int64, error)
}

// Tx is the write side. Everything done through one Tx commits together
// or not at all.
type Tx interface {
	// LockItemByKey holds the item exclusively until the Tx ends.
	LockItemByKey(ctx context.Context, barcode string) (model.Item, error)
	LockItemByID(ctx context.Context, id int64) (model.Item, error)
	UpdateItemCopies(ctx context.Context, item model.Item) error

	FindActiveLoan(ctx context.Context, borrowerID, itemID int64) (model.Loan, error)
	InsertLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	UpdateLoan(ctx context.Context, loan model.Loan) error

	FindPending(ctx context.Context, borrowerID, itemID int64) (model.Reservation, error)
	// FindPendingByItem orders earliest created first, then by id.
	FindPendingByItem(ctx context.Context, itemID int64) ([]model.Reservation, error)
	LockReservation(ctx context.Context, id int64) (model.Reservation, error)
	InsertReservation(ctx context.Context, r model.Reservation) (model.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	// MarkNotified moves a PENDING reservation to NOTIFIED and reports
	// whether it did; any other status is left alone.
	MarkNotified(ctx context.Context, id int64, at time.Time) (bool, error)

	// AddPoints atomically increments and returns the new total.
	AddPoints(ctx context.Context, borrowerID int64, delta int64) (int64, error)
}

type Repository interface {
	Catalog
	LoanLedger
	RequestQueue
	Borrowers
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
