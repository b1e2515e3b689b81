package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

// Memory keeps everything in process. A single mutex is held
// for the whole of InTx, so every transaction is serialized; failed
// transactions replay their undo log.
type Memory struct {
	mu           sync.RWMutex
	items        map[int64]model.Item
	byBarcode    map[string]int64
	loans        []model.Loan
	reservations []model.Reservation
	borrowers    map[int64]model.Borrower
	nextItemID   int64
	nextBorrower int64
	log          *zap.Logger
}

var _ Repository = (*Memory)(nil)

func NewMemory(log *zap.Logger) *Memory {
	return &Memory{
		items:     make(map[int64]model.Item),
		byBarcode: make(map[string]int64),
		borrowers: make(map[int64]model.Borrower),
		log:       log.Named("repo"),
	}
}

// AddItem registers a catalog item, assigning its id and status.
func (r *Memory) AddItem(item model.Item) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := item.Validate(); err != nil {
		return model.Item{}, err
	}
	if _, ok := r.byBarcode[item.Barcode]; ok {
		return model.Item{}, errors.Errorf("barcode %q already exists", item.Barcode)
	}
	if item.ID == 0 {
		r.nextItemID++
		item.ID = r.nextItemID
	} else if item.ID > r.nextItemID {
		r.nextItemID = item.ID
	}
	item.Status = model.ItemUnavailable
	if item.AvailableCopies > 0 {
		item.Status = model.ItemAvailable
	}
	r.items[item.ID] = item
	r.byBarcode[item.Barcode] = item.ID
	return item, nil
}

func (r *Memory) AddBorrower(b model.Borrower) model.Borrower {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == 0 {
		r.nextBorrower++
		b.ID = r.nextBorrower
	} else if b.ID > r.nextBorrower {
		r.nextBorrower = b.ID
	}
	r.borrowers[b.ID] = b
	return b
}

func (r *Memory) InTx(_ context.Context, fn func(tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryTx{r: r}
	committed := false
	defer func() {
		if !committed {
			tx.rollback()
		}
	}()
	if err := fn(tx); err != nil {
		r.log.Debug("rollback", zap.Int("undo", len(tx.undo)), zap.Error(err))
		return err
	}
	committed = true
	return nil
}

func (r *Memory) GetItemByKey(_ context.Context, barcode string) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.itemByKey(barcode)
}

func (r *Memory) itemByKey(barcode string) (model.Item, error) {
	id, ok := r.byBarcode[barcode]
	if !ok {
		return model.Item{}, errors.Wrapf(errs.ErrNotFound, "item %q", barcode)
	}
	return r.items[id], nil
}

func (r *Memory) GetItemByID(_ context.Context, id int64) (model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.itemByID(id)
}

func (r *Memory) itemByID(id int64) (model.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return model.Item{}, errors.Wrapf(errs.ErrNotFound, "item %d", id)
	}
	return item, nil
}

func (r *Memory) ExistsByKey(_ context.Context, barcode string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byBarcode[barcode]
	return ok, nil
}

func (r *Memory) ListAvailable(ctx context.Context) ([]model.Item, error) {
	return r.Search(ctx, model.ItemFilter{AvailableOnly: true})
}

func (r *Memory) ListByIDs(_ context.Context, ids []int64) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	sortByID(items)
	return items, nil
}

func (r *Memory) ListByCreationDesc(_ context.Context, n int) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		if item.CreatedAt != nil {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(*items[j].CreatedAt) {
			return items[i].CreatedAt.After(*items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return head(items, n), nil
}

func (r *Memory) ListByIDDesc(_ context.Context, n int) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.allItems()
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return head(items, n), nil
}

func (r *Memory) Search(_ context.Context, filter model.ItemFilter) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	authors := make(map[string]struct{}, len(filter.Authors))
	for _, a := range filter.Authors {
		authors[a] = struct{}{}
	}
	exclude := make(map[int64]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		exclude[id] = struct{}{}
	}
	q := strings.ToLower(filter.Query)

	items := make([]model.Item, 0)
	for _, item := range r.allItems() {
		if len(filter.Authors) > 0 {
			if _, ok := authors[item.Author]; !ok {
				continue
			}
		}
		if _, ok := exclude[item.ID]; ok {
			continue
		}
		if filter.AvailableOnly && !item.Available() {
			continue
		}
		if filter.YearFrom > 0 && (item.Year == 0 || item.Year < filter.YearFrom) {
			continue
		}
		if filter.YearTo > 0 && (item.Year == 0 || item.Year > filter.YearTo) {
			continue
		}
		if q != "" && !matchesText(item, q) {
			continue
		}
		items = append(items, item)
	}
	sortByID(items)
	return head(items, filter.Limit), nil
}

func matchesText(item model.Item, q string) bool {
	for _, field := range []string{item.Title, item.Author, item.ISBN, item.Barcode} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *Memory) CountItems(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *Memory) AggregateCountsSince(_ context.Context, since time.Time) ([]model.ItemCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[int64]int64)
	for _, l := range r.loans {
		if l.IssuedAt.Before(since) {
			continue
		}
		if l.Status == model.LoanActive || l.Status == model.LoanCompleted {
			counts[l.ItemID]++
		}
	}
	res := make([]model.ItemCount, 0, len(counts))
	for id, c := range counts {
		res = append(res, model.ItemCount{ItemID: id, Count: c})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].ItemID < res[j].ItemID
	})
	return res, nil
}

func (r *Memory) BorrowedAuthors(_ context.Context, borrowerID int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	authors := make([]string, 0)
	for _, l := range r.loans {
		if l.BorrowerID != borrowerID {
			continue
		}
		author := r.items[l.ItemID].Author
		if _, ok := seen[author]; ok || author == "" {
			continue
		}
		seen[author] = struct{}{}
		authors = append(authors, author)
	}
	sort.Strings(authors)
	return authors, nil
}

func (r *Memory) BorrowedItemIDs(_ context.Context, borrowerID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, l := range r.loans {
		if l.BorrowerID != borrowerID {
			continue
		}
		if _, ok := seen[l.ItemID]; ok {
			continue
		}
		seen[l.ItemID] = struct{}{}
		ids = append(ids, l.ItemID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *Memory) ListPendingByBorrower(_ context.Context, borrowerID int64) ([]model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]model.Reservation, 0)
	for _, rv := range r.reservations {
		if rv.BorrowerID == borrowerID && rv.Status == model.ReservationPending {
			res = append(res, rv)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *Memory) ListNotified(_ context.Context) ([]model.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]model.Reservation, 0)
	for _, rv := range r.reservations {
		if rv.Status == model.ReservationNotified {
			res = append(res, rv)
		}
	}
	// latest notification first, like the postgres store
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].NotifiedAt, res[j].NotifiedAt
		if a != nil && b != nil && !a.Equal(*b) {
			return a.After(*b)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *Memory) GetBorrower(_ context.Context, id int64) (model.Borrower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.borrowers[id]
	if !ok {
		return model.Borrower{}, errors.Wrapf(errs.ErrNotFound, "borrower %d", id)
	}
	return b, nil
}

func (r *Memory) CountBorrowers(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.borrowers)), nil
}

func (r *Memory) allItems() []model.Item {
	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	return items
}

func sortByID(items []model.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

func head[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// memoryTx runs with Memory.mu held.
type memoryTx struct {
	r    *Memory
	undo []func()
}

func (tx *memoryTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *memoryTx) LockItemByKey(_ context.Context, barcode string) (model.Item, error) {
	return tx.r.itemByKey(barcode)
}

func (tx *memoryTx) LockItemByID(_ context.Context, id int64) (model.Item, error) {
	return tx.r.itemByID(id)
}

func (tx *memoryTx) UpdateItemCopies(_ context.Context, item model.Item) error {
	prev, ok := tx.r.items[item.ID]
	if !ok {
		return errors.Wrapf(errs.ErrNotFound, "item %d", item.ID)
	}
	next := prev
	next.AvailableCopies = item.AvailableCopies
	next.Status = item.Status
	if err := next.Validate(); err != nil {
		return err
	}
	tx.r.items[item.ID] = next
	tx.undo = append(tx.undo, func() { tx.r.items[prev.ID] = prev })
	return nil
}

func (tx *memoryTx) FindActiveLoan(_ context.Context, borrowerID, itemID int64) (model.Loan, error) {
	for _, l := range tx.r.loans {
		if l.BorrowerID == borrowerID && l.ItemID == itemID && l.Status == model.LoanActive {
			return l, nil
		}
	}
	return model.Loan{}, errors.Wrapf(errs.ErrNotFound, "active loan borrower %d item %d", borrowerID, itemID)
}

// references mirrors the foreign keys of the postgres schema.
func (tx *memoryTx) references(borrowerID, itemID int64) error {
	if _, ok := tx.r.borrowers[borrowerID]; !ok {
		return errors.Wrapf(errs.ErrNotFound, "borrower %d", borrowerID)
	}
	if _, ok := tx.r.items[itemID]; !ok {
		return errors.Wrapf(errs.ErrNotFound, "item %d", itemID)
	}
	return nil
}

func (tx *memoryTx) InsertLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	if err := tx.references(loan.BorrowerID, loan.ItemID); err != nil {
		return model.Loan{}, err
	}
	if loan.Status == model.LoanActive {
		if _, err := tx.FindActiveLoan(ctx, loan.BorrowerID, loan.ItemID); err == nil {
			return model.Loan{}, errs.ErrAlreadyIssued
		}
	}
	n := len(tx.r.loans)
	loan.ID = int64(n + 1)
	tx.r.loans = append(tx.r.loans, loan)
	tx.undo = append(tx.undo, func() { tx.r.loans = tx.r.loans[:n] })
	return loan, nil
}

func (tx *memoryTx) UpdateLoan(_ context.Context, loan model.Loan) error {
	idx := int(loan.ID - 1)
	if idx < 0 || idx >= len(tx.r.loans) {
		return errors.Wrapf(errs.ErrNotFound, "loan %d", loan.ID)
	}
	prev := tx.r.loans[idx]
	tx.r.loans[idx] = loan
	tx.undo = append(tx.undo, func() { tx.r.loans[idx] = prev })
	return nil
}

func (tx *memoryTx) FindPending(_ context.Context, borrowerID, itemID int64) (model.Reservation, error) {
	for _, rv := range tx.r.reservations {
		if rv.BorrowerID == borrowerID && rv.ItemID == itemID && rv.Status == model.ReservationPending {
			return rv, nil
		}
	}
	return model.Reservation{}, errors.Wrapf(errs.ErrNotFound, "pending reservation borrower %d item %d", borrowerID, itemID)
}

func (tx *memoryTx) FindPendingByItem(_ context.Context, itemID int64) ([]model.Reservation, error) {
	res := make([]model.Reservation, 0)
	for _, rv := range tx.r.reservations {
		if rv.ItemID == itemID && rv.Status == model.ReservationPending {
			res = append(res, rv)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (tx *memoryTx) LockReservation(_ context.Context, id int64) (model.Reservation, error) {
	idx := int(id - 1)
	if idx < 0 || idx >= len(tx.r.reservations) {
		return model.Reservation{}, errors.Wrapf(errs.ErrNotFound, "reservation %d", id)
	}
	return tx.r.reservations[idx], nil
}

func (tx *memoryTx) InsertReservation(ctx context.Context, rv model.Reservation) (model.Reservation, error) {
	if err := tx.references(rv.BorrowerID, rv.ItemID); err != nil {
		return model.Reservation{}, err
	}
	if rv.Status == model.ReservationPending {
		if _, err := tx.FindPending(ctx, rv.BorrowerID, rv.ItemID); err == nil {
			return model.Reservation{}, errs.ErrDuplicateRequest
		}
	}
	n := len(tx.r.reservations)
	rv.ID = int64(n + 1)
	tx.r.reservations = append(tx.r.reservations, rv)
	tx.undo = append(tx.undo, func() { tx.r.reservations = tx.r.reservations[:n] })
	return rv, nil
}

func (tx *memoryTx) UpdateReservationStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	prev, err := tx.LockReservation(ctx, id)
	if err != nil {
		return err
	}
	idx := int(id - 1)
	tx.r.reservations[idx].Status = status
	tx.undo = append(tx.undo, func() { tx.r.reservations[idx] = prev })
	return nil
}

func (tx *memoryTx) MarkNotified(ctx context.Context, id int64, at time.Time) (bool, error) {
	prev, err := tx.LockReservation(ctx, id)
	if err != nil {
		return false, err
	}
	if prev.Status != model.ReservationPending {
		return false, nil
	}
	idx := int(id - 1)
	next := prev
	next.Status = model.ReservationNotified
	next.Notified = true
	next.NotifiedAt = &at
	tx.r.reservations[idx] = next
	tx.undo = append(tx.undo, func() { tx.r.reservations[idx] = prev })
	return true, nil
}

func (tx *memoryTx) AddPoints(_ context.Context, borrowerID int64, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, errors.Wrapf(errs.ErrInvariant, "points delta %d", delta)
	}
	prev, ok := tx.r.borrowers[borrowerID]
	if !ok {
		return 0, errors.Wrapf(errs.ErrNotFound, "borrower %d", borrowerID)
	}
	next := prev
	next.Points += delta
	tx.r.borrowers[borrowerID] = next
	tx.undo = append(tx.undo, func() { tx.r.borrowers[borrowerID] = prev })
	return next.Points, nil
}
