package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
)

// RecommendFor builds the borrower's ranked lists. A non-positive limit
// means the configured default.
func (s *Service) RecommendFor(ctx context.Context, borrowerID int64, limit int) (model.Recommendations, error) {
	if _, err := s.repo.GetBorrower(ctx, borrowerID); err != nil {
		return model.Recommendations{}, errors.Wrapf(err, "borrower %d", borrowerID)
	}
	limit = orDefault(limit, s.cfg.RecommendLimit)
	since := s.now().Add(-s.cfg.PopularWindow)

	var rec model.Recommendations
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() (err error) {
		rec.PopularOverall, err = s.popular(ctx, since, limit)
		return err
	})
	gg.Go(func() (err error) {
		rec.BecauseYouBorrowed, err = s.becauseYouBorrowed(ctx, borrowerID, limit)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Recommendations{}, errors.Wrap(err, "recommend")
	}
	return rec, nil
}

func (s *Service) Discover(ctx context.Context, limit int) (model.Discover, error) {
	limit = orDefault(limit, s.cfg.DiscoverLimit)
	since := s.now().Add(-s.cfg.TrendingWindow)

	var d model.Discover
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() (err error) {
		d.Trending, err = s.popular(ctx, since, limit)
		return err
	})
	gg.Go(func() (err error) {
		d.NewArrivals, err = s.newArrivals(ctx, limit)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Discover{}, errors.Wrap(err, "discover")
	}
	return d, nil
}

// popular ranks items by loans issued since the given time, keeping the
// rank order the ledger reports.
func (s *Service) popular(ctx context.Context, since time.Time, limit int) ([]model.Item, error) {
	counts, err := s.repo.AggregateCountsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	if len(counts) > limit {
		counts = counts[:limit]
	}
	ids := make([]int64, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.ItemID)
	}
	found, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Item, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}
	items := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Service) becauseYouBorrowed(ctx context.Context, borrowerID int64, limit int) ([]model.Item, error) {
	authors, err := s.repo.BorrowedAuthors(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return []model.Item{}, nil
	}
	seen, err := s.repo.BorrowedItemIDs(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	if len(seen) == 0 {
		seen = []int64{repository.NoItemID}
	}
	return s.repo.Search(ctx, model.ItemFilter{
		Authors:    authors,
		ExcludeIDs: seen,
		Limit:      limit,
	})
}

func (s *Service) newArrivals(ctx context.Context, limit int) ([]model.Item, error) {
	items, err := s.repo.ListByCreationDesc(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return s.repo.ListByIDDesc(ctx, limit)
}

func orDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
