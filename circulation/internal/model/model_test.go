package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

func TestItem_CheckoutCheckin(t *testing.T) {
	t.Parallel()
	item := model.Item{ID: 1, TotalCopies: 2, AvailableCopies: 2, Status: model.ItemAvailable}

	require.NoError(t, item.Checkout())
	require.Equal(t, 1, item.AvailableCopies)
	require.Equal(t, model.ItemAvailable, item.Status)

	require.NoError(t, item.Checkout())
	require.Equal(t, 0, item.AvailableCopies)
	require.Equal(t, model.ItemUnavailable, item.Status)

	require.ErrorIs(t, item.Checkout(), errs.ErrNotAvailable)
	require.Equal(t, 0, item.AvailableCopies)

	require.NoError(t, item.Checkin())
	require.Equal(t, 1, item.AvailableCopies)
	require.Equal(t, model.ItemAvailable, item.Status)
}

func TestItem_CheckinCapped(t *testing.T) {
	t.Parallel()
	item := model.Item{ID: 1, TotalCopies: 1, AvailableCopies: 1, Status: model.ItemAvailable}
	require.NoError(t, item.Checkin())
	require.Equal(t, 1, item.AvailableCopies)
}

func TestItem_CheckoutUnavailableStatus(t *testing.T) {
	t.Parallel()
	item := model.Item{ID: 1, TotalCopies: 1, AvailableCopies: 1, Status: model.ItemUnavailable}
	require.ErrorIs(t, item.Checkout(), errs.ErrNotAvailable)
}

func TestItem_Invariant(t *testing.T) {
	t.Parallel()
	tests := []model.Item{
		{ID: 1, TotalCopies: 1, AvailableCopies: -1},
		{ID: 2, TotalCopies: 1, AvailableCopies: 2, Status: model.ItemAvailable},
	}
	for _, item := range tests {
		item := item
		require.ErrorIs(t, item.Checkout(), errs.ErrInvariant)
		require.ErrorIs(t, item.Checkin(), errs.ErrInvariant)
	}
}

func TestLoan_Complete(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	loan := model.NewLoan(7, 3, now)
	require.Equal(t, model.LoanIssue, loan.Kind)
	require.Equal(t, model.LoanActive, loan.Status)
	require.Nil(t, loan.ReturnedAt)

	later := now.Add(time.Hour)
	require.NoError(t, loan.Complete(later))
	require.Equal(t, model.LoanReturn, loan.Kind)
	require.Equal(t, model.LoanCompleted, loan.Status)
	require.Equal(t, later, *loan.ReturnedAt)

	require.ErrorIs(t, loan.Complete(later), errs.ErrInvariant)
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    model.SortKey
		wantErr bool
	}{
		{in: "", want: model.SortByTitle},
		{in: "title", want: model.SortByTitle},
		{in: "Author", want: model.SortByAuthor},
		{in: "year", want: model.SortByYear},
		{in: "rating", wantErr: true},
	}
	for _, tt := range tests {
		got, err := model.ParseSortKey(tt.in)
		if tt.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	order, err := model.ParseSortOrder("DESC")
	require.NoError(t, err)
	require.Equal(t, model.Desc, order)
	_, err = model.ParseSortOrder("sideways")
	require.Error(t, err)
}
