package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
)

// Request files a pending reservation. Copies may still be on the shelf.
func (s *Service) Request(ctx context.Context, borrowerID int64, barcode string) (model.Reservation, error) {
	var rv model.Reservation
	err := s.repo.InTx(ctx, func(tx repository.Tx) error {
		item, err := tx.LockItemByKey(ctx, barcode)
		if err != nil {
			return err
		}
		if _, err = tx.FindPending(ctx, borrowerID, item.ID); err == nil {
			return errs.ErrDuplicateRequest
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		rv, err = tx.InsertReservation(ctx, model.Reservation{
			ItemID:     item.ID,
			BorrowerID: borrowerID,
			Status:     model.ReservationPending,
			CreatedAt:  s.now(),
		})
		return err
	})
	if err != nil {
		return model.Reservation{}, errors.Wrapf(err, "request %q for borrower %d", barcode, borrowerID)
	}
	return rv, nil
}

// Cancel withdraws a pending reservation owned by the borrower. The row
// is kept with status CANCELLED.
func (s *Service) Cancel(ctx context.Context, borrowerID, reservationID int64) error {
	err := s.repo.InTx(ctx, func(tx repository.Tx) error {
		rv, err := tx.LockReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		if rv.BorrowerID != borrowerID {
			return errs.ErrForbidden
		}
		if rv.Status != model.ReservationPending {
			return errors.Wrapf(errs.ErrNotFound, "reservation is %s", rv.Status)
		}
		return tx.UpdateReservationStatus(ctx, rv.ID, model.ReservationCancelled)
	})
	return errors.Wrapf(err, "cancel reservation %d", reservationID)
}

// Settle notifies every pending reservation of the item, earliest first,
// and returns the ones it changed. Reservations already notified are
// skipped, so settling twice is harmless.
func (s *Service) Settle(ctx context.Context, itemID int64) ([]model.Reservation, error) {
	now := s.now()
	var (
		item     model.Item
		notified []model.Reservation
	)
	err := s.repo.InTx(ctx, func(tx repository.Tx) error {
		var err error
		if item, err = tx.LockItemByID(ctx, itemID); err != nil {
			return err
		}
		pending, err := tx.FindPendingByItem(ctx, itemID)
		if err != nil {
			return err
		}
		notified = make([]model.Reservation, 0, len(pending))
		for _, rv := range pending {
			changed, err := tx.MarkNotified(ctx, rv.ID, now)
			if err != nil {
				return err
			}
			if !changed {
				continue
			}
			rv.Status = model.ReservationNotified
			rv.Notified = true
			rv.NotifiedAt = &now
			notified = append(notified, rv)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "settle item %d", itemID)
	}
	if len(notified) > 0 {
		s.log.Info("waitlist settled", zap.Int64("item", itemID), zap.Int("notified", len(notified)))
	}

	for _, rv := range notified {
		ev := model.NewEvent(model.EventReservationNotified, item, rv.BorrowerID, now)
		ev.ReservationID = rv.ID
		s.publish(ctx, ev)
	}
	return notified, nil
}

func (s *Service) ListPending(ctx context.Context, borrowerID int64) ([]model.Reservation, error) {
	return s.repo.ListPendingByBorrower(ctx, borrowerID)
}

func (s *Service) ListNotified(ctx context.Context) ([]model.Reservation, error) {
	return s.repo.ListNotified(ctx)
}
