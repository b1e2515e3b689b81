package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
)

func newMemory(t *testing.T) (repository.Repository, model.Item, model.Borrower) {
	t.Helper()
	repo := repository.NewMemory(zap.NewNop())
	item, err := repo.AddItem(model.Item{Barcode: "BC-1", Title: "1984", Author: "Orwell", TotalCopies: 2, AvailableCopies: 2})
	require.NoError(t, err)
	b := repo.AddBorrower(model.Borrower{Username: "student1"})
	return repo, item, b
}

func TestMemory_InTxRollback(t *testing.T) {
	t.Parallel()
	repo, item, b := newMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.InTx(ctx, func(tx repository.Tx) error {
		locked, err := tx.LockItemByKey(ctx, item.Barcode)
		require.NoError(t, err)
		require.NoError(t, locked.Checkout())
		require.NoError(t, tx.UpdateItemCopies(ctx, locked))
		_, err = tx.InsertLoan(ctx, model.NewLoan(b.ID, item.ID, time.Now()))
		require.NoError(t, err)
		_, err = tx.AddPoints(ctx, b.ID, 10)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetItemByKey(ctx, item.Barcode)
	require.NoError(t, err)
	require.Equal(t, 2, got.AvailableCopies)

	borrower, err := repo.GetBorrower(ctx, b.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, borrower.Points)

	ids, err := repo.BorrowedItemIDs(ctx, b.ID)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestMemory_UniqueActiveLoan(t *testing.T) {
	t.Parallel()
	repo, item, b := newMemory(t)
	ctx := context.Background()

	err := repo.InTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.InsertLoan(ctx, model.NewLoan(b.ID, item.ID, time.Now())); err != nil {
			return err
		}
		_, err := tx.InsertLoan(ctx, model.NewLoan(b.ID, item.ID, time.Now()))
		return err
	})
	require.ErrorIs(t, err, errs.ErrAlreadyIssued)
}

func TestMemory_MarkNotifiedIdempotent(t *testing.T) {
	t.Parallel()
	repo, item, b := newMemory(t)
	ctx := context.Background()
	now := time.Now()

	var rv model.Reservation
	require.NoError(t, repo.InTx(ctx, func(tx repository.Tx) error {
		var err error
		rv, err = tx.InsertReservation(ctx, model.Reservation{
			ItemID: item.ID, BorrowerID: b.ID, Status: model.ReservationPending, CreatedAt: now,
		})
		return err
	}))

	for i, want := range []bool{true, false} {
		require.NoError(t, repo.InTx(ctx, func(tx repository.Tx) error {
			changed, err := tx.MarkNotified(ctx, rv.ID, now)
			require.Equal(t, want, changed, "attempt %d", i)
			return err
		}))
	}

	notified, err := repo.ListNotified(ctx)
	require.NoError(t, err)
	require.Len(t, notified, 1)
	require.True(t, notified[0].Notified)
	require.NotNil(t, notified[0].NotifiedAt)
}

func TestMemory_AddPointsConcurrent(t *testing.T) {
	t.Parallel()
	repo, _, b := newMemory(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = repo.InTx(ctx, func(tx repository.Tx) error {
				_, err := tx.AddPoints(ctx, b.ID, 5)
				return err
			})
		}()
	}
	wg.Wait()

	got, err := repo.GetBorrower(ctx, b.ID)
	require.NoError(t, err)
	require.EqualValues(t, workers*5, got.Points)
}

func TestMemory_AddPointsRejectsNonPositive(t *testing.T) {
	t.Parallel()
	repo, _, b := newMemory(t)
	ctx := context.Background()
	err := repo.InTx(ctx, func(tx repository.Tx) error {
		_, err := tx.AddPoints(ctx, b.ID, 0)
		return err
	})
	require.ErrorIs(t, err, errs.ErrInvariant)
}

func TestMemory_Search(t *testing.T) {
	t.Parallel()
	repo := repository.NewMemory(zap.NewNop())
	ctx := context.Background()
	for _, it := range []model.Item{
		{Barcode: "A", Title: "Animal Farm", Author: "Orwell", Year: 1945, TotalCopies: 1, AvailableCopies: 1},
		{Barcode: "B", Title: "Brave New World", Author: "Huxley", Year: 1932, TotalCopies: 1, AvailableCopies: 0},
		{Barcode: "C", Title: "Homage to Catalonia", Author: "Orwell", TotalCopies: 1, AvailableCopies: 1},
	} {
		_, err := repo.AddItem(it)
		require.NoError(t, err)
	}

	got, err := repo.Search(ctx, model.ItemFilter{Query: "orwell"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.Search(ctx, model.ItemFilter{Authors: []string{"Orwell"}, ExcludeIDs: []int64{1}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "C", got[0].Barcode)

	got, err = repo.Search(ctx, model.ItemFilter{YearFrom: 1940})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "A", got[0].Barcode)

	got, err = repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestMemory_InsertChecksReferences(t *testing.T) {
	t.Parallel()
	repo, item, b := newMemory(t)
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name   string
		insert func(tx repository.Tx) error
	}{
		{name: "loan. unknown borrower", insert: func(tx repository.Tx) error {
			_, err := tx.InsertLoan(ctx, model.NewLoan(999, item.ID, now))
			return err
		}},
		{name: "loan. unknown item", insert: func(tx repository.Tx) error {
			_, err := tx.InsertLoan(ctx, model.NewLoan(b.ID, 999, now))
			return err
		}},
		{name: "reservation. unknown borrower", insert: func(tx repository.Tx) error {
			_, err := tx.InsertReservation(ctx, model.Reservation{ItemID: item.ID, BorrowerID: 999, Status: model.ReservationPending, CreatedAt: now})
			return err
		}},
		{name: "reservation. unknown item", insert: func(tx repository.Tx) error {
			_, err := tx.InsertReservation(ctx, model.Reservation{ItemID: 999, BorrowerID: b.ID, Status: model.ReservationPending, CreatedAt: now})
			return err
		}},
	}
	for _, tt := range tests {
		require.ErrorIs(t, repo.InTx(ctx, tt.insert), errs.ErrNotFound, tt.name)
	}
}

func TestMemory_ListOrdering(t *testing.T) {
	t.Parallel()
	repo := repository.NewMemory(zap.NewNop())
	ctx := context.Background()
	var items []model.Item
	for _, bc := range []string{"A", "B", "C"} {
		it, err := repo.AddItem(model.Item{Barcode: bc, Title: bc, TotalCopies: 1, AvailableCopies: 1})
		require.NoError(t, err)
		items = append(items, it)
	}
	b := repo.AddBorrower(model.Borrower{Username: "b"})
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	// ids 1..3, created latest first
	ids := make([]int64, 0, len(items))
	require.NoError(t, repo.InTx(ctx, func(tx repository.Tx) error {
		for i, it := range items {
			rv, err := tx.InsertReservation(ctx, model.Reservation{
				ItemID: it.ID, BorrowerID: b.ID, Status: model.ReservationPending,
				CreatedAt: base.Add(-time.Duration(i) * time.Minute),
			})
			if err != nil {
				return err
			}
			ids = append(ids, rv.ID)
		}
		return nil
	}))

	pending, err := repo.ListPendingByBorrower(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	require.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{pending[0].ID, pending[1].ID, pending[2].ID})

	// notify in id order, one minute apart
	require.NoError(t, repo.InTx(ctx, func(tx repository.Tx) error {
		for i, id := range ids {
			if _, err := tx.MarkNotified(ctx, id, base.Add(time.Duration(i)*time.Minute)); err != nil {
				return err
			}
		}
		return nil
	}))

	notified, err := repo.ListNotified(ctx)
	require.NoError(t, err)
	require.Len(t, notified, 3)
	require.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{notified[0].ID, notified[1].ID, notified[2].ID})
}
