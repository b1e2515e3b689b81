package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

const topItemsLimit = 5

func (s *Service) Overview(ctx context.Context) (model.Overview, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var o model.Overview
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() (err error) {
		o.TotalBorrowers, err = s.repo.CountBorrowers(ctx)
		return err
	})
	gg.Go(func() (err error) {
		o.TotalItems, err = s.repo.CountItems(ctx)
		return err
	})
	gg.Go(func() error {
		counts, err := s.repo.AggregateCountsSince(ctx, startOfDay)
		if err != nil {
			return err
		}
		for _, c := range counts {
			o.IssuesToday += c.Count
		}
		return nil
	})
	gg.Go(func() (err error) {
		o.TopItems, err = s.popular(ctx, time.Time{}, topItemsLimit)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Overview{}, errors.Wrap(err, "overview")
	}
	return o, nil
}
