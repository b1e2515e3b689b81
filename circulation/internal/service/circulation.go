package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
)

// Issue hands one copy of the item to the borrower. The copy count, the
// new loan and the reward points commit together.
func (s *Service) Issue(ctx context.Context, borrowerID int64, barcode string) (model.Loan, error) {
	now := s.now()
	var (
		item  model.Item
		loan  model.Loan
		total int64
	)
	err := s.repo.InTx(ctx, func(tx repository.Tx) error {
		var err error
		if item, err = tx.LockItemByKey(ctx, barcode); err != nil {
			return err
		}
		if err = item.Checkout(); err != nil {
			return err
		}
		if _, err = tx.FindActiveLoan(ctx, borrowerID, item.ID); err == nil {
			return errs.ErrAlreadyIssued
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if err = tx.UpdateItemCopies(ctx, item); err != nil {
			return err
		}
		if loan, err = tx.InsertLoan(ctx, model.NewLoan(borrowerID, item.ID, now)); err != nil {
			return err
		}
		total, err = tx.AddPoints(ctx, borrowerID, s.cfg.IssuePoints)
		return err
	})
	if err != nil {
		return model.Loan{}, errors.Wrapf(err, "issue %q to borrower %d", barcode, borrowerID)
	}
	s.log.Debug("issued", zap.String("barcode", barcode), zap.Int64("borrower", borrowerID),
		zap.Int("available", item.AvailableCopies), zap.Int64("points", total))

	ev := model.NewEvent(model.EventItemIssued, item, borrowerID, now)
	ev.LoanID = loan.ID
	ev.Points = s.cfg.IssuePoints
	s.publish(ctx, ev)
	return loan, nil
}

// Return completes the borrower's active loan of the item and then
// settles the item's waitlist. A failed settlement does not undo the
// return.
func (s *Service) Return(ctx context.Context, borrowerID int64, barcode string) (model.Loan, error) {
	now := s.now()
	var (
		item model.Item
		loan model.Loan
	)
	err := s.repo.InTx(ctx, func(tx repository.Tx) error {
		var err error
		if item, err = tx.LockItemByKey(ctx, barcode); err != nil {
			return err
		}
		loan, err = tx.FindActiveLoan(ctx, borrowerID, item.ID)
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNoActiveLoan
		} else if err != nil {
			return err
		}
		if err = loan.Complete(now); err != nil {
			return err
		}
		if err = tx.UpdateLoan(ctx, loan); err != nil {
			return err
		}
		if err = item.Checkin(); err != nil {
			return err
		}
		if err = tx.UpdateItemCopies(ctx, item); err != nil {
			return err
		}
		_, err = tx.AddPoints(ctx, borrowerID, s.cfg.ReturnPoints)
		return err
	})
	if err != nil {
		return model.Loan{}, errors.Wrapf(err, "return %q from borrower %d", barcode, borrowerID)
	}

	ev := model.NewEvent(model.EventItemReturned, item, borrowerID, now)
	ev.LoanID = loan.ID
	ev.Points = s.cfg.ReturnPoints
	s.publish(ctx, ev)

	if _, err = s.Settle(ctx, item.ID); err != nil {
		s.log.Error("settle after return", zap.Int64("item", item.ID), zap.Error(err))
	}
	return loan, nil
}

func (s *Service) IsAvailable(ctx context.Context, barcode string) (bool, error) {
	item, err := s.repo.GetItemByKey(ctx, barcode)
	if err != nil {
		return false, err
	}
	return item.Available(), nil
}
