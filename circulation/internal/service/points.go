package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
)

// Accrue adds delta to the borrower's points and returns the new total.
func (s *Service) Accrue(ctx context.Context, borrowerID, delta int64) (int64, error) {
	var total int64
	err := s.repo.InTx(ctx, func(tx repository.Tx) error {
		var err error
		total, err = tx.AddPoints(ctx, borrowerID, delta)
		return err
	})
	if err != nil {
		return 0, errors.Wrapf(err, "accrue %d points to borrower %d", delta, borrowerID)
	}
	return total, nil
}

func (s *Service) Points(ctx context.Context, borrowerID int64) (int64, error) {
	b, err := s.repo.GetBorrower(ctx, borrowerID)
	if err != nil {
		return 0, err
	}
	return b.Points, nil
}
